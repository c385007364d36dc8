// Package textio provides the low-level read/write primitives used by
// text format codecs: escaped, quoted, CSV, JSON and XML value framing.
// Data type and domain codecs compose these; the dispatch layer never
// calls them directly.
package textio

import (
	"bufio"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/vireodata/vireo/pkg/config"
	"github.com/vireodata/vireo/pkg/errors"
)

// WriteEscaped writes s in tab-separated escaping: tab, newline,
// carriage return and backslash are backslash-escaped, everything else
// passes through.
func WriteEscaped(w io.Writer, s string) error {
	var buf []byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\t':
			buf = append(buf, '\\', 't')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\\':
			buf = append(buf, '\\', '\\')
		default:
			buf = append(buf, c)
		}
	}
	_, err := w.Write(buf)
	return err
}

// ReadEscaped reads an escaped string up to an unescaped tab, newline or
// EOF. The terminating delimiter is left unconsumed.
func ReadEscaped(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		c, err := r.ReadByte()
		if err == io.EOF {
			return string(buf), nil
		}
		if err != nil {
			return "", err
		}
		switch c {
		case '\t', '\n':
			if err := r.UnreadByte(); err != nil {
				return "", err
			}
			return string(buf), nil
		case '\\':
			esc, err := r.ReadByte()
			if err != nil {
				return "", errors.Wrap(err, errors.ErrorTypeData, "truncated escape sequence")
			}
			buf = append(buf, unescapeByte(esc))
		default:
			buf = append(buf, c)
		}
	}
}

func unescapeByte(c byte) byte {
	switch c {
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return c
	}
}

// WriteQuoted writes s single-quoted with backslash escapes.
func WriteQuoted(w io.Writer, s string) error {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'':
			buf = append(buf, '\\', '\'')
		case '\\':
			buf = append(buf, '\\', '\\')
		case '\t':
			buf = append(buf, '\\', 't')
		case '\n':
			buf = append(buf, '\\', 'n')
		default:
			buf = append(buf, c)
		}
	}
	buf = append(buf, '\'')
	_, err := w.Write(buf)
	return err
}

// ReadQuoted reads a single-quoted string including both quotes.
func ReadQuoted(r *bufio.Reader) (string, error) {
	c, err := r.ReadByte()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeData, "cannot read quoted string")
	}
	if c != '\'' {
		return "", errors.Newf(errors.ErrorTypeData, "expected opening quote, got %q", c)
	}

	var buf []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrorTypeData, "unterminated quoted string")
		}
		switch c {
		case '\'':
			return string(buf), nil
		case '\\':
			esc, err := r.ReadByte()
			if err != nil {
				return "", errors.Wrap(err, errors.ErrorTypeData, "truncated escape sequence")
			}
			if esc == '\'' {
				buf = append(buf, '\'')
			} else {
				buf = append(buf, unescapeByte(esc))
			}
		default:
			buf = append(buf, c)
		}
	}
}

// WriteCSV writes s quoted per the CSV settings, doubling embedded
// quote characters.
func WriteCSV(w io.Writer, s string, settings *config.FormatSettings) error {
	quote := settings.CSV.Quote[0]
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, quote)
	for i := 0; i < len(s); i++ {
		if s[i] == quote {
			buf = append(buf, quote, quote)
		} else {
			buf = append(buf, s[i])
		}
	}
	buf = append(buf, quote)
	_, err := w.Write(buf)
	return err
}

// ReadCSV reads one CSV field: quoted with doubled-quote unescaping, or
// bare up to the delimiter or end of line. For bare fields the
// terminating delimiter is left unconsumed.
func ReadCSV(r *bufio.Reader, settings *config.FormatSettings) (string, error) {
	quote := settings.CSV.Quote[0]
	delim := settings.CSV.Delimiter[0]

	first, err := r.ReadByte()
	if err == io.EOF {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var buf []byte
	if first == quote {
		for {
			c, err := r.ReadByte()
			if err != nil {
				return "", errors.Wrap(err, errors.ErrorTypeData, "unterminated CSV field")
			}
			if c != quote {
				buf = append(buf, c)
				continue
			}
			next, err := r.ReadByte()
			if err == io.EOF {
				return string(buf), nil
			}
			if err != nil {
				return "", err
			}
			if next == quote {
				buf = append(buf, quote)
				continue
			}
			if err := r.UnreadByte(); err != nil {
				return "", err
			}
			return string(buf), nil
		}
	}

	buf = append(buf, first)
	for {
		c, err := r.ReadByte()
		if err == io.EOF {
			return string(buf), nil
		}
		if err != nil {
			return "", err
		}
		if c == delim || c == '\n' || (c == '\r' && settings.CSV.AllowCRLF) {
			if err := r.UnreadByte(); err != nil {
				return "", err
			}
			return string(buf), nil
		}
		buf = append(buf, c)
	}
}

// WriteJSON writes v as a JSON value. Int64 and UInt64 values are
// written as quoted strings when the settings request it, so consumers
// with 53-bit number precision do not corrupt them.
func WriteJSON(w io.Writer, v interface{}, settings *config.FormatSettings) error {
	if settings.JSON.Quote64BitIntegers {
		switch n := v.(type) {
		case int64:
			_, err := w.Write([]byte(`"` + strconv.FormatInt(n, 10) + `"`))
			return err
		case uint64:
			_, err := w.Write([]byte(`"` + strconv.FormatUint(n, 10) + `"`))
			return err
		}
	}

	data, err := gojson.Marshal(v)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "JSON serialization failed")
	}
	_, err = w.Write(data)
	return err
}

// ReadJSON decodes one JSON value from r into v.
func ReadJSON(r *bufio.Reader, v interface{}) error {
	dec := gojson.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "JSON deserialization failed")
	}
	return nil
}

// WriteXML writes s as XML character data, escaping markup characters
// when the settings request it.
func WriteXML(w io.Writer, s string, settings *config.FormatSettings) error {
	if !settings.XML.EscapeText {
		_, err := io.WriteString(w, s)
		return err
	}

	var buf []byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			buf = append(buf, "&amp;"...)
		case '<':
			buf = append(buf, "&lt;"...)
		case '>':
			buf = append(buf, "&gt;"...)
		default:
			buf = append(buf, c)
		}
	}
	_, err := w.Write(buf)
	return err
}
