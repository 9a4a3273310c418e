// Package pkg provides the core libraries for radar personality charts.
//
// # Overview
//
// Radar turns a short list of named personality attributes into a radial
// chart: one spoke per attribute, a filled polygon through the values, and
// upper-cased labels around the rim. Every chart is drawn once per theme.
//
// # Architecture
//
// The data flow through radar:
//
//	name,value lines
//	         ↓
//	    [attrs] package (parse, cap, normalize)
//	         ↓
//	    [polar] package (angles, radii, label placement)
//	         ↓
//	    [chart] package (rasterize with a [palette] theme)
//	         ↓
//	    PNG per theme
//
// [pipeline] runs these stages for one input file, driven by a [config]
// built from TOML and flags.
//
// # Quick Start
//
//	set, _ := attrs.Load("host.csv")
//	set = attrs.Normalize(set, attrs.NewRand(7))
//	data, _ := chart.RenderPNG(set, palette.Dark, chart.DefaultGeometry())
//
// # Packages
//
//   - attrs: attribute files and value normalization
//   - polar: chart geometry in polar coordinates
//   - chart: canvas geometry and rasterization
//   - palette: dark, light and configured themes
//   - fonts: label font loading
//   - config: TOML configuration
//   - pipeline: load, render and write orchestration
//   - observability: pipeline event hooks
//   - errors: coded errors
//   - buildinfo: version information
package pkg
