// Package datatype defines the logical-type contract of the Vireo storage
// engine: how a physical column type is named, decorated with domain
// semantics, serialized in text and binary form, and mapped onto its
// on-disk substreams.
//
// A Physical implementation supplies the byte-level behavior of one column
// family. A Logical wraps a Physical together with an optional chain of
// Domain decorators and dispatches every operation either to the domain
// or to the physical type. Logical instances are immutable once built and
// safe for concurrent use.
package datatype

import (
	"bufio"
	"io"

	"github.com/vireodata/vireo/pkg/column"
	"github.com/vireodata/vireo/pkg/config"
	"github.com/vireodata/vireo/pkg/errors"
)

// TextCodec is the per-row text serialization surface. One pair of
// methods exists per format family; a Physical must implement all of
// them, a Domain may implement them to override the textual form while
// leaving the binary layout untouched.
type TextCodec interface {
	SerializeTextEscaped(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error
	DeserializeTextEscaped(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error

	SerializeTextQuoted(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error
	DeserializeTextQuoted(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error

	SerializeTextCSV(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error
	DeserializeTextCSV(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error

	// SerializeText is the raw, unescaped form.
	SerializeText(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error
	DeserializeText(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error

	SerializeTextJSON(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error
	DeserializeTextJSON(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error

	SerializeTextXML(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error
	DeserializeTextXML(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error
}

// Physical is the contract every concrete column type implements.
type Physical interface {
	// FamilyName identifies the underlying physical representation,
	// e.g. "Int64" or "String".
	FamilyName() string
	// Name is the full type name. For non-parametric types it equals
	// FamilyName; parametric types compose it from their arguments.
	Name() string
	// CreateColumn returns an empty column of this type.
	CreateColumn() column.Column
	// Default returns the type's zero value.
	Default() interface{}

	TextCodec
}

// BulkCodec is implemented by physical types whose values live in a
// single stream. Types that need several substreams (nullable values,
// arrays, variable-length strings with a separate length stream) must
// not implement it; the dispatch facade then fails fast instead of
// silently writing a broken single-stream encoding.
type BulkCodec interface {
	// SerializeBinaryBulk writes rows [offset, offset+limit), clipped to
	// the column's end.
	SerializeBinaryBulk(col column.Column, w io.Writer, offset, limit int) error
	// DeserializeBinaryBulk appends up to limit decoded rows to col.
	// avgValueSizeHint is advisory and used only for preallocation.
	DeserializeBinaryBulk(col column.Column, r io.Reader, limit int, avgValueSizeHint float64) error
}

// FixedWidth is implemented by physical types whose values occupy a
// fixed number of bytes in memory.
type FixedWidth interface {
	SizeOfValueInMemory() int
}

// Promotable is implemented by numeric types that have a wider
// representation safe for overflow-avoiding arithmetic.
type Promotable interface {
	PromoteNumericType() Physical
}

// DefaultInserter lets a physical type customize how its default value
// is appended to a column. Without it the column's own zero value is used.
type DefaultInserter interface {
	InsertDefaultInto(col column.Column) error
}

// Logical is the dispatch facade over a physical type and its domain
// chain. It is immutable: construct it with New or through a Builder,
// then share it freely across readers and writers.
type Logical struct {
	phys   Physical
	domain Domain    // chain head, most recently appended; nil if none
	custom TextCodec // head domain's text capability, resolved once
	name   string    // composed display name, resolved once
}

// New wraps a physical type with no attached domain.
func New(phys Physical) *Logical {
	return &Logical{phys: phys, name: phys.Name()}
}

// FamilyName returns the name of the physical representation.
func (t *Logical) FamilyName() string {
	return t.phys.FamilyName()
}

// Name returns the display name: the head domain's composed name when a
// domain is attached, the physical type's own name otherwise.
func (t *Logical) Name() string {
	return t.name
}

// Physical returns the wrapped physical type.
func (t *Logical) Physical() Physical {
	return t.phys
}

// Domain returns the head of the domain chain, or nil.
func (t *Logical) Domain() Domain {
	return t.domain
}

// CreateColumn returns an empty column of the physical type.
func (t *Logical) CreateColumn() column.Column {
	return t.phys.CreateColumn()
}

// Default returns the physical type's zero value.
func (t *Logical) Default() interface{} {
	return t.phys.Default()
}

// InsertDefaultInto appends the type's default value to col.
func (t *Logical) InsertDefaultInto(col column.Column) error {
	if di, ok := t.phys.(DefaultInserter); ok {
		return di.InsertDefaultInto(col)
	}
	col.AppendDefault()
	return nil
}

// CreateColumnConst builds a one-row column holding value and returns a
// constant view that reports size logical rows.
func (t *Logical) CreateColumnConst(size int, value interface{}) (*column.Const, error) {
	col := t.phys.CreateColumn()
	if err := col.Append(value); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData,
			"cannot create const column of type "+t.Name())
	}
	return column.NewConst(col, size)
}

// CreateColumnConstWithDefaultValue builds a constant column holding the
// type's default value.
func (t *Logical) CreateColumnConstWithDefaultValue(size int) (*column.Const, error) {
	col := t.phys.CreateColumn()
	if err := t.InsertDefaultInto(col); err != nil {
		return nil, err
	}
	return column.NewConst(col, size)
}

// PromoteNumericType returns a logical type safe for overflow-avoiding
// arithmetic over this type. The result carries no domain. Types without
// a wider representation fail with ErrorTypeCannotBePromoted.
func (t *Logical) PromoteNumericType() (*Logical, error) {
	p, ok := t.phys.(Promotable)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeCannotBePromoted,
			"data type %s can't be promoted", t.Name())
	}
	return New(p.PromoteNumericType()), nil
}

// SizeOfValueInMemory returns the fixed in-memory footprint of one value.
// Calling it on a variable-width type is a programming error and fails
// with ErrorTypeLogical.
func (t *Logical) SizeOfValueInMemory() (int, error) {
	f, ok := t.phys.(FixedWidth)
	if !ok {
		return 0, errors.Newf(errors.ErrorTypeLogical,
			"value of type %s in memory is not of fixed size", t.Name())
	}
	return f.SizeOfValueInMemory(), nil
}

// SerializeBinaryBulk writes rows [offset, offset+limit) of col to w.
// Only single-stream physical types support it; anything else must be
// serialized substream by substream and fails here with
// ErrorTypeMultipleStreamsRequired.
func (t *Logical) SerializeBinaryBulk(col column.Column, w io.Writer, offset, limit int) error {
	c, ok := t.phys.(BulkCodec)
	if !ok {
		return errors.Newf(errors.ErrorTypeMultipleStreamsRequired,
			"data type %s must be serialized with multiple streams", t.Name())
	}
	return c.SerializeBinaryBulk(col, w, offset, limit)
}

// DeserializeBinaryBulk appends up to limit rows decoded from r to col.
// avgValueSizeHint is used only for preallocation, never for correctness.
func (t *Logical) DeserializeBinaryBulk(col column.Column, r io.Reader, limit int, avgValueSizeHint float64) error {
	c, ok := t.phys.(BulkCodec)
	if !ok {
		return errors.Newf(errors.ErrorTypeMultipleStreamsRequired,
			"data type %s must be deserialized with multiple streams", t.Name())
	}
	return c.DeserializeBinaryBulk(col, r, limit, avgValueSizeHint)
}

// The SerializeAsText*/DeserializeAsText* methods dispatch to the head
// domain's text capability when one was resolved at build time, and fall
// through to the physical type otherwise. The capability check is a nil
// comparison, not a type inspection, so it adds nothing to hot loops.

func (t *Logical) SerializeAsTextEscaped(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.SerializeTextEscaped(col, row, w, settings)
	}
	return t.phys.SerializeTextEscaped(col, row, w, settings)
}

func (t *Logical) DeserializeAsTextEscaped(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.DeserializeTextEscaped(col, r, settings)
	}
	return t.phys.DeserializeTextEscaped(col, r, settings)
}

func (t *Logical) SerializeAsTextQuoted(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.SerializeTextQuoted(col, row, w, settings)
	}
	return t.phys.SerializeTextQuoted(col, row, w, settings)
}

func (t *Logical) DeserializeAsTextQuoted(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.DeserializeTextQuoted(col, r, settings)
	}
	return t.phys.DeserializeTextQuoted(col, r, settings)
}

func (t *Logical) SerializeAsTextCSV(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.SerializeTextCSV(col, row, w, settings)
	}
	return t.phys.SerializeTextCSV(col, row, w, settings)
}

func (t *Logical) DeserializeAsTextCSV(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.DeserializeTextCSV(col, r, settings)
	}
	return t.phys.DeserializeTextCSV(col, r, settings)
}

func (t *Logical) SerializeAsText(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.SerializeText(col, row, w, settings)
	}
	return t.phys.SerializeText(col, row, w, settings)
}

func (t *Logical) DeserializeAsText(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.DeserializeText(col, r, settings)
	}
	return t.phys.DeserializeText(col, r, settings)
}

func (t *Logical) SerializeAsTextJSON(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.SerializeTextJSON(col, row, w, settings)
	}
	return t.phys.SerializeTextJSON(col, row, w, settings)
}

func (t *Logical) DeserializeAsTextJSON(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.DeserializeTextJSON(col, r, settings)
	}
	return t.phys.DeserializeTextJSON(col, r, settings)
}

func (t *Logical) SerializeAsTextXML(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.SerializeTextXML(col, row, w, settings)
	}
	return t.phys.SerializeTextXML(col, row, w, settings)
}

func (t *Logical) DeserializeAsTextXML(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error {
	if t.custom != nil {
		return t.custom.DeserializeTextXML(col, r, settings)
	}
	return t.phys.DeserializeTextXML(col, r, settings)
}
