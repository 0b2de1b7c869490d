package compare

import (
	"encoding/json"
	"strconv"
)

type valueKind uint8

const (
	kindNull valueKind = iota
	kindNumber
	kindText
)

// Value is one cell of a comparison row: a number, a string or null.
type Value struct {
	kind valueKind
	num  int
	text string
}

// Number wraps a numeric cell.
func Number(n int) Value { return Value{kind: kindNumber, num: n} }

// Text wraps a string cell.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Null is the empty cell.
func Null() Value { return Value{} }

// IsNull reports whether the cell is empty.
func (v Value) IsNull() bool { return v.kind == kindNull }

// Int returns the numeric value, if any.
func (v Value) Int() (int, bool) { return v.num, v.kind == kindNumber }

// String renders the cell for text output.
func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.Itoa(v.num)
	case kindText:
		return v.text
	}
	return "-"
}

// MarshalJSON encodes the cell as a JSON number, string or null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNumber:
		return json.Marshal(v.num)
	case kindText:
		return json.Marshal(v.text)
	}
	return []byte("null"), nil
}

// Winner is the index of the best value in a row, or no winner at all.
// Index 0 is a real winner; absence is a separate state.
type Winner struct {
	index int
	ok    bool
}

// NoWinner is the row result when nothing wins.
var NoWinner = Winner{}

// WinnerAt marks position i as the winner.
func WinnerAt(i int) Winner { return Winner{index: i, ok: true} }

// Index returns the winning position and whether there is one.
func (w Winner) Index() (int, bool) { return w.index, w.ok }

// Is reports whether position i won.
func (w Winner) Is(i int) bool { return w.ok && w.index == i }

// MarshalJSON encodes the winner as an index or null.
func (w Winner) MarshalJSON() ([]byte, error) {
	if !w.ok {
		return []byte("null"), nil
	}
	return json.Marshal(w.index)
}
