package domain

import (
	"bytes"
	"encoding/json"
)

// Row is an ordered mapping from column name to a value. Builders insert
// columns in presentation order and every renderer replays that order, so
// the header of a delimited file or a workbook sheet always matches the
// order the row was assembled in.
type Row struct {
	keys   []string
	values map[string]any
}

func NewRow() *Row {
	return &Row{values: make(map[string]any)}
}

// Set inserts or replaces a column. Insertion order is preserved; replacing
// an existing column keeps its original position.
func (r *Row) Set(key string, value any) *Row {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

func (r *Row) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the column value, or nil when the column is absent.
func (r *Row) Value(key string) any {
	return r.values[key]
}

func (r *Row) Keys() []string {
	return r.keys
}

func (r *Row) Len() int {
	return len(r.keys)
}

// MarshalJSON emits the columns as a JSON object in insertion order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
