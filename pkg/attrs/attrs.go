// Package attrs reads personality attributes from delimited text files.
//
// # Input Format
//
// One record per line. Lines starting with '#' are comments. Other lines are
// "name,value[,...]": only the first two comma-separated fields are used.
// Lines with fewer than two fields are skipped silently. At most
// [MaxAttributes] data lines are kept; later ones are parsed and dropped.
//
//	# name,value
//	courage,15
//	wit,-1
//	loyalty,25
//
// # Normalization
//
// Values are plotted on a 1..20 scale. [Normalize] clamps every value into
// that range, except negative values, which mean "unknown" and are replaced
// by a uniformly random value. Normalize must run exactly once per render so
// that label text and plotted radius agree.
package attrs

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/radar/pkg/errors"
)

const (
	// MaxAttributes is the number of data lines kept from an input file.
	MaxAttributes = 20

	// MinValue and MaxValue bound a normalized attribute value.
	MinValue = 1
	MaxValue = 20

	commentPrefix = "#"
	separator     = ","
)

// Attribute is a named personality trait with an integer score.
type Attribute struct {
	Name  string
	Value int
}

// Set is an ordered collection of attributes in file read order.
type Set []Attribute

// Len returns the number of attributes.
func (s Set) Len() int { return len(s) }

// Names returns the attribute names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, a := range s {
		names[i] = a.Name
	}
	return names
}

// Values returns the attribute values in order.
func (s Set) Values() []int {
	values := make([]int, len(s))
	for i, a := range s {
		values[i] = a.Value
	}
	return values
}

// Load reads the attribute file at path. The file is only read, never
// modified, and is closed before Load returns.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "open %s", path)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read %s", path)
	}
	return s, nil
}

// Read parses attributes from r. Trailing empty fields are dropped before
// a line is checked for a value, so "wit," and "wit,,," are skipped.
//
// A value field that is not an integer fails the whole read with a
// [*errors.LineError], even when the line lies beyond the [MaxAttributes]
// cap. A name that repeats an earlier one replaces that entry's value and
// keeps its position.
func Read(r io.Reader) (Set, error) {
	var (
		s     Set
		index = make(map[string]int)
		count int
		line  int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(text, commentPrefix) {
			continue
		}
		fields := trimEmpty(strings.Split(text, separator))
		if len(fields) < 2 {
			continue
		}

		name := fields[0]
		raw := strings.TrimSpace(fields[1])
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &errors.LineError{Line: line, Value: raw, Err: err}
		}

		if count < MaxAttributes {
			if i, ok := index[name]; ok {
				s[i].Value = value
			} else {
				index[name] = len(s)
				s = append(s, Attribute{Name: name, Value: value})
			}
		}
		count++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// trimEmpty drops trailing empty fields.
func trimEmpty(fields []string) []string {
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}
