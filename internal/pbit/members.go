package pbit

import (
	"github.com/twbconv/twb2pbit/internal/layout"
	"github.com/twbconv/twb2pbit/internal/schema"
	"github.com/twbconv/twb2pbit/internal/typemap"
)

// Member paths inside the package, in emission order. Separators are
// forward slashes regardless of host platform.
const (
	MemberDataModelSchema = "DataModelSchema"
	MemberReportLayout    = "Report/Layout"
	MemberVersion         = "Version"
	MemberSettings        = "Settings"
	MemberMetadata        = "Metadata"
)

var memberOrder = []string{
	MemberDataModelSchema,
	MemberReportLayout,
	MemberVersion,
	MemberSettings,
	MemberMetadata,
}

const (
	versionLiteral     = "4.0"
	culture            = "en-US"
	compatibilityLevel = 1567
	semanticModelName  = "SemanticModel"
	// Fixed so repeated runs stay byte-identical.
	modifiedTime = "2024-01-01T00:00:00.000Z"
)

// Analysis services data types per semantic tag.
var tomTypes = map[string]string{
	typemap.Text:      "string",
	typemap.Integer64: "int64",
	typemap.Double:    "double",
	typemap.DateTime:  "dateTime",
	typemap.Boolean:   "boolean",
}

type dataModelSchema struct {
	Version            string    `json:"version"`
	Name               string    `json:"name"`
	CompatibilityLevel int       `json:"compatibilityLevel"`
	Model              dataModel `json:"model"`
}

type dataModel struct {
	Culture     string       `json:"culture"`
	DataSources []dataSource `json:"dataSources"`
	Tables      []table      `json:"tables"`
}

type dataSource struct {
	Type              string            `json:"type"`
	Name              string            `json:"name"`
	ConnectionDetails connectionDetails `json:"connectionDetails"`
}

type connectionDetails struct {
	Protocol string  `json:"protocol"`
	Address  address `json:"address"`
}

type address struct {
	Server   string `json:"server"`
	Database string `json:"database"`
}

type table struct {
	Name       string      `json:"name"`
	Columns    []column    `json:"columns"`
	Partitions []partition `json:"partitions"`
}

type column struct {
	Name         string `json:"name"`
	DataType     string `json:"dataType"`
	SourceColumn string `json:"sourceColumn"`
	SummarizeBy  string `json:"summarizeBy"`
}

type partition struct {
	Name     string          `json:"name"`
	Mode     string          `json:"mode"`
	DataView string          `json:"dataView"`
	Source   partitionSource `json:"source"`
}

type partitionSource struct {
	Type       string `json:"type"`
	Expression string `json:"expression"`
}

type reportLayout struct {
	ID     string       `json:"id"`
	Pages  []reportPage `json:"pages"`
	Config reportConfig `json:"config"`
}

type reportPage struct {
	ID               string            `json:"id"`
	DisplayName      string            `json:"displayName"`
	Width            int               `json:"width"`
	Height           int               `json:"height"`
	DisplayOption    int               `json:"displayOption"`
	VisualContainers []visualContainer `json:"visualContainers"`
	Filters          []interface{}     `json:"filters"`
	Config           pageConfig        `json:"config"`
}

type pageConfig struct {
	Layouts []layoutEntry `json:"layouts"`
}

type layoutEntry struct {
	ID       int      `json:"id"`
	Position position `json:"position"`
}

type position struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Z      int `json:"z"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type visualContainer struct {
	ID     string       `json:"id"`
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Z      int          `json:"z"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Config visualConfig `json:"config"`
}

type visualConfig struct {
	Name         string        `json:"name"`
	Layouts      []layoutEntry `json:"layouts"`
	SingleVisual singleVisual  `json:"singleVisual"`
}

type singleVisual struct {
	VisualType     string                `json:"visualType"`
	Projections    layout.Projections    `json:"projections"`
	PrototypeQuery layout.PrototypeQuery `json:"prototypeQuery"`
}

type reportConfig struct {
	Theme      theme `json:"theme"`
	LayoutType int   `json:"layoutType"`
}

type theme struct {
	Name string `json:"name"`
}

type settings struct {
	UseStylableVisualContainerHeader bool `json:"useStylableVisualContainerHeader"`
	ExportDataMode                   int  `json:"exportDataMode"`
	UseNewFilterPaneExperience       bool `json:"useNewFilterPaneExperience"`
}

type metadata struct {
	Version      string `json:"version"`
	Culture      string `json:"culture"`
	ModifiedTime string `json:"modifiedTime"`
}

func newDataModelSchema(model schema.Model) dataModelSchema {
	columns := make([]column, 0, len(model.Columns))
	for _, col := range model.Columns {
		summarizeBy := "sum"
		if col.SemanticType == typemap.Text {
			summarizeBy = "none"
		}
		columns = append(columns, column{
			Name:         col.Name,
			DataType:     tomType(col.SemanticType),
			SourceColumn: col.Name,
			SummarizeBy:  summarizeBy,
		})
	}

	return dataModelSchema{
		Version:            "1.0",
		Name:               semanticModelName,
		CompatibilityLevel: compatibilityLevel,
		Model: dataModel{
			Culture: culture,
			DataSources: []dataSource{
				{
					Type: "structured",
					Name: "DataSource1",
					ConnectionDetails: connectionDetails{
						Protocol: "tds",
						Address:  address{Server: "localhost", Database: "SampleDB"},
					},
				},
			},
			Tables: []table{
				{
					Name:    model.TableName,
					Columns: columns,
					Partitions: []partition{
						{
							Name:     model.TableName + "-Partition",
							Mode:     "import",
							DataView: "full",
							Source: partitionSource{
								Type:       "m",
								Expression: model.QueryExpression,
							},
						},
					},
				},
			},
		},
	}
}

func newReportLayout(doc layout.Document) reportLayout {
	containers := []visualContainer{}
	if doc.Visual != nil {
		containers = append(containers, newVisualContainer(*doc.Visual))
	}

	return reportLayout{
		ID: doc.ReportID,
		Pages: []reportPage{
			{
				ID:               doc.PageID,
				DisplayName:      "Page 1",
				Width:            doc.PageWidth,
				Height:           doc.PageHeight,
				DisplayOption:    1,
				VisualContainers: containers,
				Filters:          []interface{}{},
				Config: pageConfig{
					Layouts: []layoutEntry{
						{
							ID: 0,
							Position: position{
								Width:  doc.PageWidth,
								Height: doc.PageHeight,
							},
						},
					},
				},
			},
		},
		Config: reportConfig{
			Theme:      theme{Name: "CityPark"},
			LayoutType: 0,
		},
	}
}

func newVisualContainer(visual layout.Visual) visualContainer {
	pos := position{
		X:      visual.Geometry.X,
		Y:      visual.Geometry.Y,
		Z:      visual.Geometry.Z,
		Width:  visual.Geometry.Width,
		Height: visual.Geometry.Height,
	}

	return visualContainer{
		ID:     visual.ID,
		X:      pos.X,
		Y:      pos.Y,
		Z:      pos.Z,
		Width:  pos.Width,
		Height: pos.Height,
		Config: visualConfig{
			Name: visual.ID,
			Layouts: []layoutEntry{
				{ID: 0, Position: pos},
			},
			SingleVisual: singleVisual{
				VisualType:     visual.ChartKind,
				Projections:    visual.Projections,
				PrototypeQuery: visual.Query,
			},
		},
	}
}

func newSettings() settings {
	return settings{
		UseStylableVisualContainerHeader: true,
		ExportDataMode:                   1,
		UseNewFilterPaneExperience:       true,
	}
}

func newMetadata() metadata {
	return metadata{
		Version:      versionLiteral,
		Culture:      culture,
		ModifiedTime: modifiedTime,
	}
}

func tomType(semantic string) string {
	if tom, isKnown := tomTypes[semantic]; isKnown {
		return tom
	}
	return "string"
}
