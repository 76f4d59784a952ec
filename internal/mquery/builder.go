package mquery

import (
	"fmt"
	"strings"
)

// Build returns the query expression fetching rows of table for the
// given connection. The connector class is case-insensitive, anything
// unrecognized falls back to the Sql.Database family. An empty port is
// omitted from the server address entirely, no protocol default is
// substituted. Build never fails.
func Build(class, server, port, database, schema, table string) string {
	if server == "" {
		server = defaultServer
	}
	if database == "" {
		database = defaultDatabase
	}
	if schema == "" {
		schema = defaultSchema
	}

	switch strings.ToLower(class) {
	case "oracle":
		address := server
		if port != "" {
			address = server + ":" + port
		}
		step := schema + "_" + table
		return fmt.Sprintf(oracleTemplate, address, database, step, schema, table, step)
	case "mysql":
		step := table + "_Table"
		return fmt.Sprintf(mysqlTemplate, server, database, step, table, step)
	case "postgresql":
		step := schema + "_" + table
		return fmt.Sprintf(postgresqlTemplate, server, database, step, schema, table, step)
	default:
		step := schema + "_" + table
		return fmt.Sprintf(sqlTemplate, server, database, step, schema, table, step)
	}
}
