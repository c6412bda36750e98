// Package models defines the data structures used in the application.
package models

// FileEntry describes one CSV file discovered in a source directory.
type FileEntry struct {
	Name   string // file name with extension
	Path   string // absolute filesystem path
	Source string // base name of the containing directory
}

// Row is one parsed CSV record: an ordered mapping from column name to value.
// Keys keep the order in which they were first set.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow creates an empty row with room for n columns.
func NewRow(n int) Row {
	return Row{
		keys:   make([]string, 0, n),
		values: make(map[string]string, n),
	}
}

// Set assigns value to key. A repeated key keeps its first position.
func (r *Row) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key and whether the key is present.
func (r Row) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the column names in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Values returns the cell values in key order.
func (r Row) Values() []string {
	out := make([]string, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.values[k]
	}
	return out
}

// Len returns the number of columns in the row.
func (r Row) Len() int {
	return len(r.keys)
}
