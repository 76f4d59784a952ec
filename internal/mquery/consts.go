package mquery

// Connection fallbacks used when the workbook carries no value.
const (
	defaultServer   = "localhost"
	defaultDatabase = "SampleDB"
	defaultSchema   = "dbo"
)

// Expression templates per connector family. Each opens the source,
// references the table item and returns it.
const (
	oracleTemplate = `let
    Source = Oracle.Database("%s", "%s"),
    %s = Source{[Schema="%s",Item="%s"]}[Data]
in
    %s`

	mysqlTemplate = `let
    Source = MySQL.Database("%s", "%s"),
    %s = Source{[Name="%s"]}[Data]
in
    %s`

	postgresqlTemplate = `let
    Source = PostgreSQL.Database("%s", "%s"),
    %s = Source{[Schema="%s",Item="%s"]}[Data]
in
    %s`

	sqlTemplate = `let
    Source = Sql.Database("%s", "%s"),
    %s = Source{[Schema="%s",Item="%s"]}[Data]
in
    %s`
)
