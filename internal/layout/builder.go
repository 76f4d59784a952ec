package layout

import (
	"fmt"

	"github.com/twbconv/twb2pbit/internal/options"
	"github.com/twbconv/twb2pbit/internal/schema"
)

// sum aggregation tag of the target query contract.
const aggregationSum = 1

// Builder turns template models into report layout documents. The
// identifier source is injected so callers can hold it constant.
type Builder struct {
	opts  options.Options
	newID func() string
}

// NewBuilder ...
func NewBuilder(opts options.Options, newID func() string) *Builder {
	return &Builder{
		opts:  opts.WithDefaults(),
		newID: newID,
	}
}

// Build allocates fresh identifiers and places the model's chart, if
// any, at the default geometry. A model without a chart still yields a
// valid empty page.
func (b *Builder) Build(model schema.Model) Document {
	doc := Document{
		ReportID:   b.newID(),
		PageID:     b.newID(),
		PageWidth:  b.opts.PageWidth,
		PageHeight: b.opts.PageHeight,
	}
	if model.Chart == nil {
		return doc
	}

	doc.Visual = &Visual{
		ID:            b.newID(),
		ChartKind:     model.Chart.Kind,
		CategoryField: model.Chart.CategoryField,
		ValueField:    model.Chart.ValueField,
		Geometry: Geometry{
			X:      b.opts.Visual.X,
			Y:      b.opts.Visual.Y,
			Z:      b.opts.Visual.Z,
			Width:  b.opts.Visual.Width,
			Height: b.opts.Visual.Height,
		},
		Projections: projections(model.TableName, model.Chart),
		Query:       prototypeQuery(model.TableName, model.Chart),
	}
	return doc
}

func projections(table string, chart *schema.ChartSpec) Projections {
	return Projections{
		Category: []Projection{
			{QueryRef: fmt.Sprintf("%s.%s", table, chart.CategoryField), Active: true},
		},
		Y: []Projection{
			{QueryRef: fmt.Sprintf("%s.%s", table, chart.ValueField), Active: true},
		},
	}
}

// prototypeQuery selects the category column directly and the value
// column through a sum aggregation, from the table as entity "t".
func prototypeQuery(table string, chart *schema.ChartSpec) PrototypeQuery {
	category := ColumnRef{
		Expression: Expression{SourceRef: SourceRef{Source: "t"}},
		Property:   chart.CategoryField,
	}
	value := ColumnRef{
		Expression: Expression{SourceRef: SourceRef{Source: "t"}},
		Property:   chart.ValueField,
	}

	return PrototypeQuery{
		Version: 2,
		From: []EntitySource{
			{Name: "t", Entity: table, Type: 0},
		},
		Select: []Selection{
			{
				Column: &category,
				Name:   fmt.Sprintf("%s.%s", table, chart.CategoryField),
			},
			{
				Aggregation: &Aggregation{
					Expression: AggregationExpression{Column: value},
					Function:   aggregationSum,
				},
				Name: fmt.Sprintf("Sum(%s.%s)", table, chart.ValueField),
			},
		},
	}
}
