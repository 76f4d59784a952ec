package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Geometry of the generated visual container.
type Geometry struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Z      int `yaml:"z"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ChartOverrides toggle the encoding-based overrides applied after the
// mark lookup. Unset means enabled.
type ChartOverrides struct {
	Scatter *bool `yaml:"scatter"`
	Table   *bool `yaml:"table"`
}

// ScatterEnabled reports whether color+size encodings force a scatter chart.
func (o ChartOverrides) ScatterEnabled() bool {
	return o.Scatter == nil || *o.Scatter
}

// TableEnabled reports whether three or more encodings force a table.
func (o ChartOverrides) TableEnabled() bool {
	return o.Table == nil || *o.Table
}

// Options are the conversion policy knobs.
type Options struct {
	ColumnCap      int            `yaml:"column_cap"`
	FallbackTable  string         `yaml:"fallback_table"`
	PageWidth      int            `yaml:"page_width"`
	PageHeight     int            `yaml:"page_height"`
	Visual         Geometry       `yaml:"visual"`
	ChartOverrides ChartOverrides `yaml:"chart_overrides"`
}

// Default returns the policy the converter ships with.
func Default() Options {
	return Options{
		ColumnCap:     10,
		FallbackTable: "SampleData",
		PageWidth:     1280,
		PageHeight:    720,
		Visual:        Geometry{X: 50, Y: 50, Z: 1000, Width: 600, Height: 400},
	}
}

// WithDefaults fills unset knobs from Default. Visual x/y keep their
// zero values, they are valid page coordinates.
func (o Options) WithDefaults() Options {
	def := Default()
	if o.ColumnCap <= 0 {
		o.ColumnCap = def.ColumnCap
	}
	if o.FallbackTable == "" {
		o.FallbackTable = def.FallbackTable
	}
	if o.PageWidth <= 0 {
		o.PageWidth = def.PageWidth
	}
	if o.PageHeight <= 0 {
		o.PageHeight = def.PageHeight
	}
	if o.Visual.Width <= 0 {
		o.Visual.Width = def.Visual.Width
	}
	if o.Visual.Height <= 0 {
		o.Visual.Height = def.Visual.Height
	}
	if o.Visual.Z <= 0 {
		o.Visual.Z = def.Visual.Z
	}
	return o
}

// Load reads a YAML options file over the defaults. Keys absent from
// the file keep their default values.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err = yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options: %w", err)
	}
	return opts.WithDefaults(), nil
}
