package typemap

import (
	"strings"
)

// Semantic type tags used across the conversion pipeline.
const (
	Text      = "text"
	Integer64 = "integer64"
	Double    = "double"
	DateTime  = "datetime"
	Boolean   = "boolean"
)

var tableauTypes = map[string]string{
	"string":   Text,
	"integer":  Integer64,
	"real":     Double,
	"date":     DateTime,
	"datetime": DateTime,
	"boolean":  Boolean,
}

// Map returns the semantic type for a Tableau datatype tag.
// Input is case-insensitive, anything unrecognized maps to Text.
func Map(datatype string) string {
	if semantic, isKnown := tableauTypes[strings.ToLower(datatype)]; isKnown {
		return semantic
	}
	return Text
}
