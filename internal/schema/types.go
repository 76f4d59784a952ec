package schema

// Chart kind tags understood by the template's visual contract.
const (
	ChartColumn  = "columnChart"
	ChartLine    = "lineChart"
	ChartScatter = "scatterChart"
	ChartBar     = "barChart"
	ChartTable   = "table"
	ChartMap     = "map"
)

// Column of the logical table.
type Column struct {
	Name         string
	SemanticType string
}

// ChartSpec describes the single visual derived from the first worksheet.
type ChartSpec struct {
	Kind          string
	CategoryField string
	ValueField    string
}

// Model is the target-side data model built once per conversion run
// and never mutated afterwards.
type Model struct {
	TableName       string
	Columns         []Column
	QueryExpression string
	Chart           *ChartSpec
}
