package types

import (
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindInvalid is the zero Value's kind.
	KindInvalid Kind = iota
	// KindNumber holds a 64-bit float.
	KindNumber
	// KindText holds a literal string that did not parse as a number.
	KindText
	// KindList holds the items of a tilde-prefixed key.
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindInvalid:
		return "invalid"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single metadata value: a number, a text or a list of texts.
//
// The zero Value is invalid. Use the typed accessors to read it:
//
//	if rate, ok := v.Number(); ok {
//		fmt.Println(rate)
//	}
type Value struct {
	kind Kind
	num  float64
	text string
	list []string
}

// NumberValue returns a Value holding f.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// TextValue returns a Value holding s.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// ListValue returns a Value holding a copy of items.
func ListValue(items []string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v holds anything.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// Number returns the numeric value and true if v is a number.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Text returns the literal text and true if v is a text value.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// List returns a copy of the items and true if v is a list value.
func (v Value) List() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// String formats v roughly as it appeared in the metadata file.
// Lists are rendered back in their parenthesised form.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return v.text
	case KindList:
		return "(" + strings.Join(v.list, ")(") + ")"
	default:
		return ""
	}
}
