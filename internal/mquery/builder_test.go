package mquery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	t.Run("oracle with port", func(t *testing.T) {
		expression := Build("oracle", "oracle-server", "1521", "SALESDB", "SALES", "Orders")

		expected := `let
    Source = Oracle.Database("oracle-server:1521", "SALESDB"),
    SALES_Orders = Source{[Schema="SALES",Item="Orders"]}[Data]
in
    SALES_Orders`
		assert.Equal(t, expected, expression)
	})

	t.Run("oracle without port omits address suffix", func(t *testing.T) {
		expression := Build("Oracle", "oracle-server", "", "SALESDB", "SALES", "Orders")

		assert.Contains(t, expression, `Oracle.Database("oracle-server", "SALESDB")`)
		assert.NotContains(t, expression, ":1521")
	})

	t.Run("mysql references table by name", func(t *testing.T) {
		expression := Build("mysql", "mysql-server", "3306", "analytics", "", "revenue")

		expected := `let
    Source = MySQL.Database("mysql-server", "analytics"),
    revenue_Table = Source{[Name="revenue"]}[Data]
in
    revenue_Table`
		assert.Equal(t, expected, expression)
	})

	t.Run("postgresql uses schema qualified item", func(t *testing.T) {
		expression := Build("postgresql", "pg", "5432", "crm", "sales", "deals")

		assert.Contains(t, expression, `PostgreSQL.Database("pg", "crm")`)
		assert.Contains(t, expression, `Source{[Schema="sales",Item="deals"]}[Data]`)
	})

	t.Run("unknown class falls back to sql family", func(t *testing.T) {
		expression := Build("vertica", "warehouse", "", "dwh", "public", "facts")

		assert.Contains(t, expression, `Sql.Database("warehouse", "dwh")`)
		assert.Contains(t, expression, `Source{[Schema="public",Item="facts"]}[Data]`)
	})

	t.Run("empty connection degrades to defaults", func(t *testing.T) {
		expression := Build("", "", "", "", "", "SampleData")

		assert.Contains(t, expression, `Sql.Database("localhost", "SampleDB")`)
		assert.Contains(t, expression, `Source{[Schema="dbo",Item="SampleData"]}[Data]`)
	})

	t.Run("expression has three steps", func(t *testing.T) {
		expression := Build("oracle", "s", "", "db", "sc", "t")

		lines := strings.Split(expression, "\n")
		assert.Len(t, lines, 5)
		assert.Equal(t, "let", lines[0])
		assert.Equal(t, "in", lines[3])
	})
}
