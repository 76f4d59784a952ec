package workbook

// Workbook is the record structure extracted from a Tableau document.
type Workbook struct {
	Name        string
	Datasources []Datasource
	Worksheets  []Worksheet
	Dashboards  []Dashboard
}

// Datasource is a named connection plus its column catalogue.
type Datasource struct {
	Name            string
	Caption         string
	ConnectionClass string
	Server          string
	Port            string
	DBName          string
	Username        string
	Schema          string
	Columns         []Column
}

// Column of a datasource. Name may carry bracket delimiters.
type Column struct {
	Name     string
	Caption  string
	Datatype string
	Role     string
}

// Worksheet is a single visualization definition.
type Worksheet struct {
	Name      string
	Marks     []Mark
	Encodings map[string]Encoding
}

// Mark is the visual geometry requested for a worksheet.
type Mark struct {
	Class string
}

// Encoding binds a visual channel to a data field.
type Encoding struct {
	Field string
	Type  string
}

// Dashboard is carried through unused by the conversion core.
type Dashboard struct {
	Name  string
	Zones []Zone
}

// Zone is a dashboard layout region.
type Zone struct {
	Name string
	Type string
	X    string
	Y    string
	W    string
	H    string
}
