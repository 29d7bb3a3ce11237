// Package formatters renders wallet data as the console's JSON-like text
// blocks. Every function here is pure and total: a missing or unparsable
// field becomes a placeholder, never an error.
package formatters

import (
	"strings"
)

const indentUnit = "    "

// Placeholder tokens
const (
	nullToken      = "null"
	undefinedToken = "undefined"
	notAvailable   = "N/A"
)

type valueKind int

const (
	kindText valueKind = iota
	kindNull
	kindUndefined
	kindObject
	kindList
)

// Value is one node of a Document
type Value struct {
	kind   valueKind
	text   string
	fields []Field
	items  []Value
}

// Field is a key/value pair of an object
type Field struct {
	Key   string
	Value Value
}

// Text is a scalar rendered as-is, or quoted in a quoted document
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// TextOr is Text, or fallback when s is empty
func TextOr(s string, fallback Value) Value {
	if s == "" {
		return fallback
	}
	return Text(s)
}

// Null marks an absent optional sub-record
func Null() Value {
	return Value{kind: kindNull}
}

// Undefined marks a field that is missing or could not be parsed
func Undefined() Value {
	return Value{kind: kindUndefined}
}

// Object is a nested record with ordered fields
func Object(fields ...Field) Value {
	return Value{kind: kindObject, fields: fields}
}

// List is an ordered sequence of values
func List(items ...Value) Value {
	return Value{kind: kindList, items: items}
}

// F builds a field
func F(key string, v Value) Field {
	return Field{Key: key, Value: v}
}

// Document is a top-level record. Quoted documents wrap text scalars in
// double quotes; placeholders are never quoted.
type Document struct {
	Quoted bool
	Fields []Field
}

// NewDocument creates a document from ordered fields
func NewDocument(quoted bool, fields ...Field) Document {
	return Document{Quoted: quoted, Fields: fields}
}

// String renders the document with four-space indentation
func (d Document) String() string {
	var b strings.Builder
	d.writeValue(&b, Object(d.Fields...), 0)
	return b.String()
}

func (d Document) writeValue(b *strings.Builder, v Value, depth int) {
	switch v.kind {
	case kindNull:
		b.WriteString(nullToken)
	case kindUndefined:
		b.WriteString(undefinedToken)
	case kindText:
		if d.Quoted {
			b.WriteByte('"')
			b.WriteString(v.text)
			b.WriteByte('"')
		} else {
			b.WriteString(v.text)
		}
	case kindObject:
		if len(v.fields) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, f := range v.fields {
			writeIndent(b, depth+1)
			b.WriteByte('"')
			b.WriteString(f.Key)
			b.WriteString(`": `)
			d.writeValue(b, f.Value, depth+1)
			if i < len(v.fields)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte('}')
	case kindList:
		if len(v.items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range v.items {
			writeIndent(b, depth+1)
			d.writeValue(b, item, depth+1)
			if i < len(v.items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}
