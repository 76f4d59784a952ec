package layout

// Geometry of a visual container on the page.
type Geometry struct {
	X      int
	Y      int
	Z      int
	Width  int
	Height int
}

// Projection binds a visual role to a query reference.
type Projection struct {
	QueryRef string `json:"queryRef"`
	Active   bool   `json:"active"`
}

// Projections holds the role bindings of the single visual.
type Projections struct {
	Category []Projection `json:"Category"`
	Y        []Projection `json:"Y"`
}

// SourceRef names the query entity a column comes from.
type SourceRef struct {
	Source string `json:"Source"`
}

// Expression wraps an entity reference.
type Expression struct {
	SourceRef SourceRef `json:"SourceRef"`
}

// ColumnRef selects one column of an entity.
type ColumnRef struct {
	Expression Expression `json:"Expression"`
	Property   string     `json:"Property"`
}

// Aggregation applies a function to a column. Function 1 is sum.
type Aggregation struct {
	Expression AggregationExpression `json:"Expression"`
	Function   int                   `json:"Function"`
}

// AggregationExpression wraps the aggregated column.
type AggregationExpression struct {
	Column ColumnRef `json:"Column"`
}

// Selection is one entry of the prototype query select list, either a
// direct column or an aggregation.
type Selection struct {
	Column      *ColumnRef   `json:"Column,omitempty"`
	Aggregation *Aggregation `json:"Aggregation,omitempty"`
	Name        string       `json:"Name"`
}

// EntitySource names the table the prototype query reads from.
type EntitySource struct {
	Name   string `json:"Name"`
	Entity string `json:"Entity"`
	Type   int    `json:"Type"`
}

// PrototypeQuery is the structured query descriptor the target format
// requires to bind a visual to data. Without it the visual renders
// empty even though the partition expression is valid.
type PrototypeQuery struct {
	Version int            `json:"Version"`
	From    []EntitySource `json:"From"`
	Select  []Selection    `json:"Select"`
}

// Visual is the single chart container of the page.
type Visual struct {
	ID            string
	ChartKind     string
	CategoryField string
	ValueField    string
	Geometry      Geometry
	Projections   Projections
	Query         PrototypeQuery
}

// Document is the report layout tree: one page, zero or one visual.
type Document struct {
	ReportID   string
	PageID     string
	PageWidth  int
	PageHeight int
	Visual     *Visual
}
