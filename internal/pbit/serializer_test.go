package pbit

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twbconv/twb2pbit/internal/layout"
	"github.com/twbconv/twb2pbit/internal/schema"
	"github.com/twbconv/twb2pbit/internal/typemap"
)

func testModel() schema.Model {
	return schema.Model{
		TableName: "sales",
		Columns: []schema.Column{
			{Name: "Region", SemanticType: typemap.Text},
			{Name: "Amount", SemanticType: typemap.Double},
		},
		QueryExpression: "let\n    Source = x\nin\n    Source",
		Chart: &schema.ChartSpec{
			Kind:          schema.ChartColumn,
			CategoryField: "Region",
			ValueField:    "Amount",
		},
	}
}

func testDocument(withVisual bool) layout.Document {
	doc := layout.Document{
		ReportID:   "report-1",
		PageID:     "page-1",
		PageWidth:  1280,
		PageHeight: 720,
	}
	if withVisual {
		doc.Visual = &layout.Visual{
			ID:            "visual-1",
			ChartKind:     schema.ChartColumn,
			CategoryField: "Region",
			ValueField:    "Amount",
			Geometry:      layout.Geometry{X: 50, Y: 50, Z: 1000, Width: 600, Height: 400},
			Projections: layout.Projections{
				Category: []layout.Projection{{QueryRef: "sales.Region", Active: true}},
				Y:        []layout.Projection{{QueryRef: "sales.Amount", Active: true}},
			},
		}
	}
	return doc
}

func unpack(t *testing.T, pkg []byte) ([]string, map[string][]byte) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	members := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		names = append(names, f.Name)
		members[f.Name] = raw
	}
	return names, members
}

func memberJSON(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()

	text, err := decodeMember(raw)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(text, &doc))
	return doc
}

func TestSerialize(t *testing.T) {
	serializer := NewSerializer()

	t.Run("exactly five members in mandated order", func(t *testing.T) {
		pkg, err := serializer.Serialize(testModel(), testDocument(true))
		require.NoError(t, err)

		names, _ := unpack(t, pkg)
		assert.Equal(t, []string{
			"DataModelSchema",
			"Report/Layout",
			"Version",
			"Settings",
			"Metadata",
		}, names)
	})

	t.Run("encodings per member", func(t *testing.T) {
		pkg, err := serializer.Serialize(testModel(), testDocument(true))
		require.NoError(t, err)

		_, members := unpack(t, pkg)
		for _, name := range []string{MemberDataModelSchema, MemberReportLayout, MemberSettings, MemberMetadata} {
			assert.Equal(t, []byte{0xff, 0xfe}, members[name][:2], name)
		}
		assert.Equal(t, []byte("4.0"), members[MemberVersion])
	})

	t.Run("data model schema content", func(t *testing.T) {
		pkg, err := serializer.Serialize(testModel(), testDocument(true))
		require.NoError(t, err)

		_, members := unpack(t, pkg)
		doc := memberJSON(t, members[MemberDataModelSchema])

		assert.Equal(t, "1.0", doc["version"])
		assert.Equal(t, "SemanticModel", doc["name"])
		assert.Equal(t, float64(1567), doc["compatibilityLevel"])

		model := doc["model"].(map[string]interface{})
		assert.Equal(t, "en-US", model["culture"])

		tables := model["tables"].([]interface{})
		require.Len(t, tables, 1)
		tbl := tables[0].(map[string]interface{})
		assert.Equal(t, "sales", tbl["name"])

		columns := tbl["columns"].([]interface{})
		require.Len(t, columns, 2)
		region := columns[0].(map[string]interface{})
		assert.Equal(t, "Region", region["name"])
		assert.Equal(t, "string", region["dataType"])
		assert.Equal(t, "none", region["summarizeBy"])
		amount := columns[1].(map[string]interface{})
		assert.Equal(t, "double", amount["dataType"])
		assert.Equal(t, "sum", amount["summarizeBy"])

		partitions := tbl["partitions"].([]interface{})
		require.Len(t, partitions, 1)
		source := partitions[0].(map[string]interface{})["source"].(map[string]interface{})
		assert.Equal(t, "m", source["type"])
		assert.Equal(t, "let\n    Source = x\nin\n    Source", source["expression"])
	})

	t.Run("layout carries the visual container", func(t *testing.T) {
		pkg, err := serializer.Serialize(testModel(), testDocument(true))
		require.NoError(t, err)

		_, members := unpack(t, pkg)
		doc := memberJSON(t, members[MemberReportLayout])

		assert.Equal(t, "report-1", doc["id"])
		pages := doc["pages"].([]interface{})
		require.Len(t, pages, 1)
		page := pages[0].(map[string]interface{})
		assert.Equal(t, "page-1", page["id"])
		assert.Equal(t, float64(1280), page["width"])
		assert.Equal(t, float64(720), page["height"])

		containers := page["visualContainers"].([]interface{})
		require.Len(t, containers, 1)
		container := containers[0].(map[string]interface{})
		assert.Equal(t, "visual-1", container["id"])
		assert.Equal(t, float64(50), container["x"])
		assert.Equal(t, float64(600), container["width"])

		config := container["config"].(map[string]interface{})
		visual := config["singleVisual"].(map[string]interface{})
		assert.Equal(t, "columnChart", visual["visualType"])
		projections := visual["projections"].(map[string]interface{})
		category := projections["Category"].([]interface{})
		require.Len(t, category, 1)
		assert.Equal(t, "sales.Region", category[0].(map[string]interface{})["queryRef"])
	})

	t.Run("no visual still emits the page", func(t *testing.T) {
		pkg, err := serializer.Serialize(testModel(), testDocument(false))
		require.NoError(t, err)

		_, members := unpack(t, pkg)
		doc := memberJSON(t, members[MemberReportLayout])

		pages := doc["pages"].([]interface{})
		require.Len(t, pages, 1)
		page := pages[0].(map[string]interface{})
		assert.Equal(t, float64(1280), page["width"])
		assert.Equal(t, float64(720), page["height"])

		containers, hasContainers := page["visualContainers"]
		require.True(t, hasContainers)
		assert.Empty(t, containers.([]interface{}))
	})

	t.Run("settings and metadata flags", func(t *testing.T) {
		pkg, err := serializer.Serialize(testModel(), testDocument(false))
		require.NoError(t, err)

		_, members := unpack(t, pkg)

		settingsDoc := memberJSON(t, members[MemberSettings])
		assert.Equal(t, true, settingsDoc["useStylableVisualContainerHeader"])
		assert.Equal(t, float64(1), settingsDoc["exportDataMode"])
		assert.Equal(t, true, settingsDoc["useNewFilterPaneExperience"])

		metadataDoc := memberJSON(t, members[MemberMetadata])
		assert.Equal(t, "4.0", metadataDoc["version"])
		assert.Equal(t, "en-US", metadataDoc["culture"])
		assert.Equal(t, "2024-01-01T00:00:00.000Z", metadataDoc["modifiedTime"])
	})

	t.Run("same input serializes byte-identically", func(t *testing.T) {
		first, err := serializer.Serialize(testModel(), testDocument(true))
		require.NoError(t, err)
		second, err := serializer.Serialize(testModel(), testDocument(true))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
