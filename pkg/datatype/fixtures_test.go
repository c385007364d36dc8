package datatype

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/vireodata/vireo/pkg/column"
	"github.com/vireodata/vireo/pkg/config"
	"github.com/vireodata/vireo/pkg/errors"
	"github.com/vireodata/vireo/pkg/textio"
)

// scalarType is a minimal Physical for tests: full text codec, no bulk,
// fixed-width or promotion capabilities. Its text form is produced and
// consumed by the format/parse pair.
type scalarType struct {
	family string
	def    interface{}
	format func(v interface{}) string
	parse  func(s string) (interface{}, error)
}

func (t *scalarType) FamilyName() string { return t.family }
func (t *scalarType) Name() string       { return t.family }

func (t *scalarType) CreateColumn() column.Column {
	return column.NewValues(t.def)
}

func (t *scalarType) Default() interface{} { return t.def }

func (t *scalarType) writeValue(col column.Column, row int, w io.Writer) error {
	_, err := io.WriteString(w, t.format(col.Get(row)))
	return err
}

func (t *scalarType) appendParsed(col column.Column, s string) error {
	v, err := t.parse(s)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "cannot parse "+t.family)
	}
	return col.Append(v)
}

func (t *scalarType) SerializeTextEscaped(col column.Column, row int, w io.Writer, _ *config.FormatSettings) error {
	return textio.WriteEscaped(w, t.format(col.Get(row)))
}

func (t *scalarType) DeserializeTextEscaped(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	s, err := textio.ReadEscaped(r)
	if err != nil {
		return err
	}
	return t.appendParsed(col, s)
}

func (t *scalarType) SerializeTextQuoted(col column.Column, row int, w io.Writer, _ *config.FormatSettings) error {
	return textio.WriteQuoted(w, t.format(col.Get(row)))
}

func (t *scalarType) DeserializeTextQuoted(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	s, err := textio.ReadQuoted(r)
	if err != nil {
		return err
	}
	return t.appendParsed(col, s)
}

func (t *scalarType) SerializeTextCSV(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	return textio.WriteCSV(w, t.format(col.Get(row)), settings)
}

func (t *scalarType) DeserializeTextCSV(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error {
	s, err := textio.ReadCSV(r, settings)
	if err != nil {
		return err
	}
	return t.appendParsed(col, s)
}

func (t *scalarType) SerializeText(col column.Column, row int, w io.Writer, _ *config.FormatSettings) error {
	return t.writeValue(col, row, w)
}

func (t *scalarType) DeserializeText(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	s, err := textio.ReadEscaped(r)
	if err != nil {
		return err
	}
	return t.appendParsed(col, s)
}

func (t *scalarType) SerializeTextJSON(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	return textio.WriteJSON(w, t.format(col.Get(row)), settings)
}

func (t *scalarType) DeserializeTextJSON(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	var s string
	if err := textio.ReadJSON(r, &s); err != nil {
		return err
	}
	return t.appendParsed(col, s)
}

func (t *scalarType) SerializeTextXML(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	return textio.WriteXML(w, t.format(col.Get(row)), settings)
}

func (t *scalarType) DeserializeTextXML(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	s, err := textio.ReadEscaped(r)
	if err != nil {
		return err
	}
	return t.appendParsed(col, s)
}

// newStringType builds a variable-width physical type. It deliberately
// lacks BulkCodec and FixedWidth: a real string needs a separate length
// substream, so it must go down the multi-stream path.
func newStringType() *scalarType {
	return &scalarType{
		family: "String",
		def:    "",
		format: func(v interface{}) string { return v.(string) },
		parse:  func(s string) (interface{}, error) { return s, nil },
	}
}

// fixedIntType is a single-stream fixed-width integer: it adds BulkCodec
// and FixedWidth on top of scalarType.
type fixedIntType struct {
	scalarType
	width int
}

func newInt64Type() *fixedIntType {
	return &fixedIntType{
		scalarType: scalarType{
			family: "Int64",
			def:    int64(0),
			format: func(v interface{}) string { return strconv.FormatInt(v.(int64), 10) },
			parse: func(s string) (interface{}, error) {
				return strconv.ParseInt(s, 10, 64)
			},
		},
		width: 8,
	}
}

func (t *fixedIntType) SizeOfValueInMemory() int { return t.width }

func (t *fixedIntType) SerializeBinaryBulk(col column.Column, w io.Writer, offset, limit int) error {
	end := offset + limit
	if end > col.Len() {
		end = col.Len()
	}
	var buf [8]byte
	for i := offset; i < end; i++ {
		binary.LittleEndian.PutUint64(buf[:], uint64(col.Get(i).(int64)))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

func (t *fixedIntType) DeserializeBinaryBulk(col column.Column, r io.Reader, limit int, _ float64) error {
	var buf [8]byte
	for i := 0; i < limit; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := col.Append(int64(binary.LittleEndian.Uint64(buf[:]))); err != nil {
			return err
		}
	}
	return nil
}

// promotableIntType promotes to a wider integer family.
type promotableIntType struct {
	fixedIntType
	wider Physical
}

func newInt32Type() *promotableIntType {
	t := &promotableIntType{
		fixedIntType: fixedIntType{
			scalarType: scalarType{
				family: "Int32",
				def:    int64(0),
				format: func(v interface{}) string { return strconv.FormatInt(v.(int64), 10) },
				parse: func(s string) (interface{}, error) {
					return strconv.ParseInt(s, 10, 32)
				},
			},
			width: 4,
		},
		wider: newInt64Type(),
	}
	return t
}

func (t *promotableIntType) PromoteNumericType() Physical { return t.wider }

// hexDomain renames an integer type and overrides every text format to a
// 0x-prefixed hexadecimal representation. Binary layout is untouched.
type hexDomain struct{}

func (hexDomain) Name(string) string { return "Hex" }

func (hexDomain) formatHex(v interface{}) string {
	return fmt.Sprintf("0x%X", v.(int64))
}

func (hexDomain) parseHex(s string) (interface{}, error) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "cannot parse Hex value")
	}
	return n, nil
}

func (d hexDomain) SerializeTextEscaped(col column.Column, row int, w io.Writer, _ *config.FormatSettings) error {
	return textio.WriteEscaped(w, d.formatHex(col.Get(row)))
}

func (d hexDomain) DeserializeTextEscaped(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	s, err := textio.ReadEscaped(r)
	if err != nil {
		return err
	}
	v, err := d.parseHex(s)
	if err != nil {
		return err
	}
	return col.Append(v)
}

func (d hexDomain) SerializeTextQuoted(col column.Column, row int, w io.Writer, _ *config.FormatSettings) error {
	return textio.WriteQuoted(w, d.formatHex(col.Get(row)))
}

func (d hexDomain) DeserializeTextQuoted(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	s, err := textio.ReadQuoted(r)
	if err != nil {
		return err
	}
	v, err := d.parseHex(s)
	if err != nil {
		return err
	}
	return col.Append(v)
}

func (d hexDomain) SerializeTextCSV(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	return textio.WriteCSV(w, d.formatHex(col.Get(row)), settings)
}

func (d hexDomain) DeserializeTextCSV(col column.Column, r *bufio.Reader, settings *config.FormatSettings) error {
	s, err := textio.ReadCSV(r, settings)
	if err != nil {
		return err
	}
	v, err := d.parseHex(s)
	if err != nil {
		return err
	}
	return col.Append(v)
}

func (d hexDomain) SerializeText(col column.Column, row int, w io.Writer, _ *config.FormatSettings) error {
	_, err := io.WriteString(w, d.formatHex(col.Get(row)))
	return err
}

func (d hexDomain) DeserializeText(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	s, err := textio.ReadEscaped(r)
	if err != nil {
		return err
	}
	v, err := d.parseHex(s)
	if err != nil {
		return err
	}
	return col.Append(v)
}

func (d hexDomain) SerializeTextJSON(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	return textio.WriteJSON(w, d.formatHex(col.Get(row)), settings)
}

func (d hexDomain) DeserializeTextJSON(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	var s string
	if err := textio.ReadJSON(r, &s); err != nil {
		return err
	}
	v, err := d.parseHex(s)
	if err != nil {
		return err
	}
	return col.Append(v)
}

func (d hexDomain) SerializeTextXML(col column.Column, row int, w io.Writer, settings *config.FormatSettings) error {
	return textio.WriteXML(w, d.formatHex(col.Get(row)), settings)
}

func (d hexDomain) DeserializeTextXML(col column.Column, r *bufio.Reader, _ *config.FormatSettings) error {
	s, err := textio.ReadEscaped(r)
	if err != nil {
		return err
	}
	v, err := d.parseHex(s)
	if err != nil {
		return err
	}
	return col.Append(v)
}

// wrappingDomain composes a label around the inner name, used to observe
// chain ordering.
type wrappingDomain struct {
	label string
}

func (d wrappingDomain) Name(inner string) string {
	return d.label + "(" + inner + ")"
}
