package workbook

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// zip local file header magic, a packaged workbook starts with it.
var zipMagic = []byte("PK")

// Extract reads a .twb or .twbx file into the workbook model.
func Extract(path string) (Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Workbook{}, fmt.Errorf("read workbook: %w", err)
	}
	return Parse(data)
}

// Parse decodes a workbook document. A packaged workbook is unwrapped
// to its inner .twb member first. Absent attributes degrade to zero
// values, a document without a workbook element is an error.
func Parse(data []byte) (Workbook, error) {
	if bytes.HasPrefix(data, zipMagic) {
		var err error
		if data, err = unwrap(data); err != nil {
			return Workbook{}, err
		}
	}
	return parseXML(data)
}

// unwrap finds the .twb member inside a .twbx archive.
func unwrap(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open packaged workbook: %w", err)
	}
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".twb") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, errNoWorkbookEntry
}

// parseXML walks the document tokens so that elements are found at any
// nesting depth, the way the source format buries marks and encodings
// inside table panes. Datasource and worksheet context is tracked to
// keep worksheet-local column references out of the catalogue.
func parseXML(data []byte) (Workbook, error) {
	wb := Workbook{}
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		seenRoot    bool
		inWorksheet bool
		inDashboard bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Workbook{}, fmt.Errorf("parse workbook: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "workbook":
				seenRoot = true
				wb.Name = attr(el, "name")
			case "datasource":
				if inWorksheet || inDashboard {
					continue
				}
				wb.Datasources = append(wb.Datasources, Datasource{
					Name:    attr(el, "name"),
					Caption: attr(el, "caption"),
				})
			case "connection":
				if ds := currentDatasource(&wb, inWorksheet || inDashboard); ds != nil {
					ds.ConnectionClass = attr(el, "class")
					ds.Server = attr(el, "server")
					ds.Port = attr(el, "port")
					ds.DBName = attr(el, "dbname")
					ds.Username = attr(el, "username")
					ds.Schema = attr(el, "schema")
				}
			case "column":
				if ds := currentDatasource(&wb, inWorksheet || inDashboard); ds != nil {
					ds.Columns = append(ds.Columns, Column{
						Name:     attr(el, "name"),
						Caption:  attr(el, "caption"),
						Datatype: attr(el, "datatype"),
						Role:     attr(el, "role"),
					})
				}
			case "worksheet":
				inWorksheet = true
				wb.Worksheets = append(wb.Worksheets, Worksheet{
					Name:      attr(el, "name"),
					Encodings: make(map[string]Encoding),
				})
			case "mark":
				if ws := currentWorksheet(&wb, inWorksheet); ws != nil {
					class := attr(el, "class")
					if class == "" {
						class = "Automatic"
					}
					ws.Marks = append(ws.Marks, Mark{Class: class})
				}
			case "encoding":
				if ws := currentWorksheet(&wb, inWorksheet); ws != nil {
					ws.Encodings[attr(el, "attr")] = Encoding{
						Field: attr(el, "field"),
						Type:  attr(el, "type"),
					}
				}
			case "dashboard":
				inDashboard = true
				wb.Dashboards = append(wb.Dashboards, Dashboard{Name: attr(el, "name")})
			case "zone":
				if inDashboard && len(wb.Dashboards) > 0 {
					db := &wb.Dashboards[len(wb.Dashboards)-1]
					db.Zones = append(db.Zones, Zone{
						Name: attr(el, "name"),
						Type: attr(el, "type"),
						X:    attr(el, "x"),
						Y:    attr(el, "y"),
						W:    attr(el, "w"),
						H:    attr(el, "h"),
					})
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "worksheet":
				inWorksheet = false
			case "dashboard":
				inDashboard = false
			}
		}
	}

	if !seenRoot {
		return Workbook{}, fmt.Errorf("parse workbook: %w", errNotWorkbook)
	}
	return wb, nil
}

func currentDatasource(wb *Workbook, outOfScope bool) *Datasource {
	if outOfScope || len(wb.Datasources) == 0 {
		return nil
	}
	return &wb.Datasources[len(wb.Datasources)-1]
}

func currentWorksheet(wb *Workbook, inWorksheet bool) *Worksheet {
	if !inWorksheet || len(wb.Worksheets) == 0 {
		return nil
	}
	return &wb.Worksheets[len(wb.Worksheets)-1]
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
