package column

import (
	"github.com/vireodata/vireo/pkg/errors"
)

// Const presents a single physical value as if repeated across many
// logical rows. The wrapped column holds exactly one row; Len reports the
// logical size instead of materializing copies.
type Const struct {
	data Column
	size int
}

// NewConst wraps a one-row column as a constant of the given logical size.
func NewConst(data Column, size int) (*Const, error) {
	if data.Len() != 1 {
		return nil, errors.Newf(errors.ErrorTypeLogical,
			"const column requires exactly one physical row, got %d", data.Len())
	}
	if size < 0 {
		return nil, errors.Newf(errors.ErrorTypeLogical,
			"const column size must be non-negative, got %d", size)
	}
	return &Const{data: data, size: size}, nil
}

// Data returns the one-row column holding the repeated value.
func (c *Const) Data() Column {
	return c.data
}

// Value returns the repeated value.
func (c *Const) Value() interface{} {
	return c.data.Get(0)
}

func (c *Const) Len() int {
	return c.size
}

func (c *Const) Get(_ int) interface{} {
	return c.data.Get(0)
}

func (c *Const) Append(interface{}) error {
	return errors.New(errors.ErrorTypeLogical, "cannot append to a const column")
}

// AppendDefault grows the logical size without touching the physical value.
func (c *Const) AppendDefault() {
	c.size++
}

func (c *Const) ByteSize() int64 {
	return c.data.ByteSize() + 8
}

func (c *Const) Clear() {
	c.size = 0
}
