package kernel

import (
	"fmt"
	"strconv"
)

// ValueKind tags the runtime type of a Value.
type ValueKind int

const (
	// ValueString is arbitrary string data.
	ValueString ValueKind = iota
	// ValueSymbol is an enumerated symbol from a closed set.
	ValueSymbol
	// ValueNumber is a numeric value.
	ValueNumber
)

// String returns the human-readable kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueSymbol:
		return "symbol"
	case ValueNumber:
		return "number"
	default:
		return fmt.Sprintf("valuekind(%d)", int(k))
	}
}

// Value is an immutable typed slot value. The zero value is the empty
// string value.
type Value struct {
	kind ValueKind
	text string
	num  float64
}

// String constructs a string value.
func String(s string) Value { return Value{kind: ValueString, text: s} }

// Symbol constructs a symbol value.
func Symbol(s string) Value { return Value{kind: ValueSymbol, text: s} }

// Number constructs a numeric value.
func Number(f float64) Value { return Value{kind: ValueNumber, num: f} }

// Kind returns the value's runtime type tag.
func (v Value) Kind() ValueKind { return v.kind }

// Text returns the string payload of a string or symbol value.
func (v Value) Text() string { return v.text }

// Num returns the numeric payload of a number value.
func (v Value) Num() float64 { return v.num }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == ValueNumber {
		return v.num == o.num
	}
	return v.text == o.text
}

// String renders the value in fact-notation: strings quoted, symbols
// bare, numbers via strconv.
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return strconv.Quote(v.text)
	case ValueSymbol:
		return v.text
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return fmt.Sprintf("value(%d)", int(v.kind))
	}
}
