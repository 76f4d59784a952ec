package schema

import (
	"strings"

	"github.com/twbconv/twb2pbit/internal/mquery"
	"github.com/twbconv/twb2pbit/internal/options"
	"github.com/twbconv/twb2pbit/internal/typemap"
	"github.com/twbconv/twb2pbit/internal/workbook"
)

const (
	federatedPrefix = "federated."
	reservedPrefix  = "Measure"
)

var bracketStripper = strings.NewReplacer("[", "", "]", "")

// Builder turns extracted workbooks into template models.
type Builder struct {
	opts options.Options
}

// NewBuilder ...
func NewBuilder(opts options.Options) *Builder {
	return &Builder{
		opts: opts.WithDefaults(),
	}
}

// Build converts the first datasource and first worksheet of wb into a
// model. It never fails: missing structure degrades to defaults so a
// minimal workbook still yields a valid package.
func (b *Builder) Build(wb workbook.Workbook) Model {
	model := Model{
		TableName: b.opts.FallbackTable,
	}

	var ds workbook.Datasource
	if len(wb.Datasources) > 0 {
		ds = wb.Datasources[0]
		model.TableName = b.tableName(ds)
		model.Columns = b.columns(ds.Columns)
	}
	if len(model.Columns) == 0 {
		model.Columns = fallbackColumns()
	}

	model.QueryExpression = mquery.Build(
		ds.ConnectionClass,
		ds.Server,
		ds.Port,
		ds.DBName,
		ds.Schema,
		model.TableName,
	)
	model.Chart = b.chartSpec(wb, model.Columns)
	return model
}

// tableName prefers the datasource name, then its schema, then the
// fallback. Federated names are synthetic and fall back too.
func (b *Builder) tableName(ds workbook.Datasource) string {
	name := ds.Name
	if name == "" {
		name = ds.Schema
	}
	if name == "" || strings.HasPrefix(name, federatedPrefix) {
		name = b.opts.FallbackTable
	}
	return name
}

// columns keeps the source order, strips bracket delimiters, drops
// empty and reserved names, de-duplicates by exact name and stops at
// the configured cap.
func (b *Builder) columns(source []workbook.Column) []Column {
	columns := make([]Column, 0, b.opts.ColumnCap)
	seen := make(map[string]struct{}, b.opts.ColumnCap)
	for _, col := range source {
		name := strings.TrimSpace(bracketStripper.Replace(col.Name))
		if name == "" || strings.HasPrefix(name, reservedPrefix) {
			continue
		}
		if _, isDup := seen[name]; isDup {
			continue
		}
		seen[name] = struct{}{}
		columns = append(columns, Column{
			Name:         name,
			SemanticType: typemap.Map(col.Datatype),
		})
		if len(columns) >= b.opts.ColumnCap {
			break
		}
	}
	return columns
}

// fallbackColumns is substituted whenever filtering leaves nothing, an
// empty table is invalid in the target application.
func fallbackColumns() []Column {
	return []Column{
		{Name: "Category", SemanticType: typemap.Text},
		{Name: "Value", SemanticType: typemap.Double},
	}
}

// chartSpec derives the single visual from the first worksheet. Field
// defaults come from the column list and are overridden by matching
// x/columns and y/rows encodings.
func (b *Builder) chartSpec(wb workbook.Workbook, columns []Column) *ChartSpec {
	if len(wb.Worksheets) == 0 || len(columns) == 0 {
		return nil
	}
	ws := wb.Worksheets[0]

	spec := &ChartSpec{
		Kind:          b.chartKind(ws),
		CategoryField: columns[0].Name,
		ValueField:    columns[0].Name,
	}
	if len(columns) > 1 {
		spec.ValueField = columns[1].Name
	}

	if field, ok := encodedField(ws, columns, "x", "columns"); ok {
		spec.CategoryField = field
	}
	if field, ok := encodedField(ws, columns, "y", "rows"); ok {
		spec.ValueField = field
	}
	return spec
}

// encodedField resolves the first listed encoding attribute carrying a
// field that exists in the column list.
func encodedField(ws workbook.Worksheet, columns []Column, attrs ...string) (string, bool) {
	for _, attr := range attrs {
		enc, ok := ws.Encodings[attr]
		if !ok {
			continue
		}
		field := strings.TrimSpace(bracketStripper.Replace(enc.Field))
		if field != "" && hasColumn(columns, field) {
			return field, true
		}
	}
	return "", false
}

// chartKind looks up the first mark class, then applies the encoding
// overrides on top: color+size means scatter, three or more encodings
// mean tabular data. The table override wins last.
func (b *Builder) chartKind(ws workbook.Worksheet) string {
	kind := ChartColumn
	if len(ws.Marks) > 0 {
		switch strings.ToLower(ws.Marks[0].Class) {
		case "bar", "automatic":
			kind = ChartColumn
		case "line":
			kind = ChartLine
		case "circle", "shape":
			kind = ChartScatter
		case "square", "ganttbar":
			kind = ChartBar
		case "text":
			kind = ChartTable
		case "map":
			kind = ChartMap
		}
	}

	_, hasColor := ws.Encodings["color"]
	_, hasSize := ws.Encodings["size"]
	if b.opts.ChartOverrides.ScatterEnabled() && hasColor && hasSize {
		kind = ChartScatter
	}
	if b.opts.ChartOverrides.TableEnabled() && len(ws.Encodings) >= 3 {
		kind = ChartTable
	}
	return kind
}

func hasColumn(columns []Column, name string) bool {
	for _, col := range columns {
		if col.Name == name {
			return true
		}
	}
	return false
}
