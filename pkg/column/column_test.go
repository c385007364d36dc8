package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireodata/vireo/pkg/errors"
)

func TestValuesColumn(t *testing.T) {
	col := NewValues(int64(0))

	require.NoError(t, col.Append(int64(1)))
	require.NoError(t, col.Append(int64(2)))
	col.AppendDefault()

	assert.Equal(t, 3, col.Len())
	assert.Equal(t, int64(1), col.Get(0))
	assert.Equal(t, int64(0), col.Get(2))
	assert.Equal(t, int64(24), col.ByteSize())

	col.Clear()
	assert.Equal(t, 0, col.Len())
}

func TestValuesColumnStringByteSize(t *testing.T) {
	col := NewValues("")
	require.NoError(t, col.Append("hello"))
	assert.Equal(t, int64(5+16), col.ByteSize())
}

func TestConstColumn(t *testing.T) {
	data := NewValues("")
	require.NoError(t, data.Append("widget"))

	c, err := NewConst(data, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, c.Len())
	for i := 0; i < c.Len(); i++ {
		assert.Equal(t, "widget", c.Get(i))
	}
	assert.Equal(t, "widget", c.Value())
	assert.Same(t, data, c.Data().(*Values))
}

func TestConstColumnRejectsWrongRowCount(t *testing.T) {
	empty := NewValues("")
	_, err := NewConst(empty, 3)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeLogical))

	two := NewValues("")
	require.NoError(t, two.Append("a"))
	require.NoError(t, two.Append("b"))
	_, err = NewConst(two, 3)
	assert.Error(t, err)
}

func TestConstColumnAppend(t *testing.T) {
	data := NewValues(int64(0))
	require.NoError(t, data.Append(int64(7)))

	c, err := NewConst(data, 2)
	require.NoError(t, err)

	err = c.Append(int64(8))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeLogical))

	c.AppendDefault()
	assert.Equal(t, 3, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
