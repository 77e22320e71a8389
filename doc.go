// Package recordfmt projects loosely structured records through declared
// output definitions and renders them in a chosen format (base text, table,
// YAML, JSON, CSV, sanitised HTML or a pongo2 template).
//
// Field declarations live in pkg/fields, the projection in pkg/projector and
// the formats under pkg/adapters. This package wires the formats into a
// registry and offers one-call helpers:
//
//	defs := []recordfmt.Field{
//		fields.New(record.P("name"), "Name"),
//		fields.NewLabel(record.P("address"), "Address",
//			fields.WithFields(fields.New(record.P("city"), "City"))),
//	}
//	err := recordfmt.PrintCollection("yaml", recordfmt.Context{}, defs, record.NewCollection(host))
package recordfmt
