// Package column defines the physical value containers the type system
// serializes. The logical-type layer treats columns as opaque: it only
// appends values and queries row counts and byte sizes.
package column

// Column is the base interface for all physical columns.
type Column interface {
	// Len returns the number of rows the column holds.
	Len() int
	// Get returns the value at row i.
	Get(i int) interface{}
	// Append adds a value, failing on a physical type mismatch.
	Append(value interface{}) error
	// AppendDefault adds the column's zero value.
	AppendDefault()
	// ByteSize returns the approximate memory held by the values.
	ByteSize() int64
	// Clear removes all rows, keeping capacity where possible.
	Clear()
}
