// Package flatten turns nested sequences into flat rows of strings.
package flatten

import (
	"fmt"
	"strconv"
	"time"
)

// Kind discriminates a Value
type Kind int

const (
	KindLeaf Kind = iota + 1
	KindSeq
)

// Value is either an atomic leaf or a nested sequence of values
type Value struct {
	kind  Kind
	leaf  string
	items []Value
}

// Leaf returns an atomic value
func Leaf(s string) Value {
	return Value{kind: KindLeaf, leaf: s}
}

// Seq returns a nested sequence
func Seq(items ...Value) Value {
	return Value{kind: KindSeq, items: items}
}

// Leafs returns a sequence of string leaves
func Leafs(items ...string) Value {
	values := make([]Value, len(items))
	for i, s := range items {
		values[i] = Leaf(s)
	}
	return Seq(values...)
}

// Kind returns the discriminator
func (v Value) Kind() Kind {
	return v.kind
}

// Items returns the children of a sequence, nil for a leaf
func (v Value) Items() []Value {
	return v.items
}

// String returns the leaf text, or the flattened sequence joined in brackets
func (v Value) String() string {
	if v.kind == KindLeaf {
		return v.leaf
	}
	return fmt.Sprint(Flatten(v))
}

// Any converts common Go values into a Value. Strings are leaves, never
// sequences of runes.
func Any(x any) Value {
	switch t := x.(type) {
	case Value:
		return t
	case []Value:
		return Seq(t...)
	case string:
		return Leaf(t)
	case []string:
		return Leafs(t...)
	case time.Time:
		return Leaf(t.Format("2006-01-02"))
	case fmt.Stringer:
		return Leaf(t.String())
	case int:
		return Leaf(strconv.Itoa(t))
	case int64:
		return Leaf(strconv.FormatInt(t, 10))
	case float64:
		return Leaf(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		return Leaf(strconv.FormatBool(t))
	case []any:
		values := make([]Value, len(t))
		for i, item := range t {
			values[i] = Any(item)
		}
		return Seq(values...)
	case nil:
		return Leaf("")
	}
	return Leaf(fmt.Sprint(x))
}

// Walk visits leaves depth-first, left to right, until fn returns false.
// It reports whether the walk ran to completion.
func Walk(fn func(string) bool, values ...Value) bool {
	for _, v := range values {
		switch v.kind {
		case KindLeaf:
			if !fn(v.leaf) {
				return false
			}
		case KindSeq:
			if !Walk(fn, v.items...) {
				return false
			}
		}
	}
	return true
}

// Flatten returns all leaves in depth-first order
func Flatten(values ...Value) []string {
	out := []string{}
	Walk(func(s string) bool {
		out = append(out, s)
		return true
	}, values...)
	return out
}
