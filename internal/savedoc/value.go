// Package savedoc models the converter's JSON document form as a typed tree
// of tagged variants. Key order is preserved end to end: the container
// format is sensitive to property identity and ordering, so a round trip
// must not reorder anything the edit itself did not touch.
package savedoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a single node of the document tree.
type Value struct {
	kind    Kind
	members []Member
	elems   []*Value
	str     string
	num     json.Number
	boolean bool
}

// Kind returns the variant tag.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// NewObject returns an empty object value.
func NewObject() *Value { return &Value{kind: KindObject} }

// NewArray returns an array value holding the given elements.
func NewArray(elems ...*Value) *Value { return &Value{kind: KindArray, elems: elems} }

// NewString returns a string value.
func NewString(s string) *Value { return &Value{kind: KindString, str: s} }

// NewInt returns a number value holding an integer.
func NewInt(n int64) *Value { return &Value{kind: KindNumber, num: json.Number(strconv.FormatInt(n, 10))} }

// Members returns the object's members in document order. Nil for
// non-objects.
func (v *Value) Members() []Member {
	if v == nil || v.kind != KindObject {
		return nil
	}
	return v.members
}

// Elems returns the array's elements. Nil for non-arrays.
func (v *Value) Elems() []*Value {
	if v == nil || v.kind != KindArray {
		return nil
	}
	return v.elems
}

// Get returns the value of the named member, or nil when absent or when v
// is not an object.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Set replaces the named member's value in place, or appends a new member
// when the key is absent.
func (v *Value) Set(key string, value *Value) {
	if v == nil || v.kind != KindObject {
		return
	}
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = value
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: value})
}

// Append adds an element to an array value.
func (v *Value) Append(elem *Value) {
	if v == nil || v.kind != KindArray {
		return
	}
	v.elems = append(v.elems, elem)
}

// SetElems replaces an array's elements wholesale.
func (v *Value) SetElems(elems []*Value) {
	if v == nil || v.kind != KindArray {
		return
	}
	v.elems = elems
}

// String returns the string payload.
func (v *Value) String() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Int64 returns the number payload as an integer.
func (v *Value) Int64() (int64, bool) {
	if v == nil || v.kind != KindNumber {
		return 0, false
	}
	n, err := v.num.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetInt64 overwrites a number payload. Converts the value to a number
// variant if it was something else.
func (v *Value) SetInt64(n int64) {
	if v == nil {
		return
	}
	v.kind = KindNumber
	v.num = json.Number(strconv.FormatInt(n, 10))
	v.str = ""
	v.members = nil
	v.elems = nil
}

// Parse decodes a JSON document into a Value tree, preserving object member
// order and number formatting.
func Parse(r io.Reader) (*Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	value, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	// Anything after the first value is a malformed document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing content after document")
	}
	return value, nil
}

func parseValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseFromToken(dec, tok)
}

func parseFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				obj.members = append(obj.members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			return obj, nil
		case '[':
			arr := NewArray()
			for dec.More() {
				elem, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				arr.elems = append(arr.elems, elem)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return NewString(t), nil
	case json.Number:
		return &Value{kind: KindNumber, num: t}, nil
	case bool:
		return &Value{kind: KindBool, boolean: t}, nil
	case nil:
		return &Value{kind: KindNull}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// Serialize writes the tree as two-space indented JSON with members in
// document order and without HTML escaping.
func (v *Value) Serialize() []byte {
	var buf bytes.Buffer
	v.write(&buf, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func (v *Value) write(buf *bytes.Buffer, depth int) {
	if v == nil {
		buf.WriteString("null")
		return
	}
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(string(v.num))
	case KindString:
		writeString(buf, v.str)
	case KindObject:
		if len(v.members) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, m := range v.members {
			writeIndent(buf, depth+1)
			writeString(buf, m.Key)
			buf.WriteString(": ")
			m.Value.write(buf, depth+1)
			if i < len(v.members)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	case KindArray:
		if len(v.elems) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, elem := range v.elems {
			writeIndent(buf, depth+1)
			elem.write(buf, depth+1)
			if i < len(v.elems)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	}
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// Encode cannot fail for a plain string.
	_ = enc.Encode(s)
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
}
