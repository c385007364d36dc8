package datatype

import (
	"strconv"
	"strings"

	"github.com/vireodata/vireo/pkg/errors"
	vstrings "github.com/vireodata/vireo/pkg/strings"
)

// SubstreamKind marks one step in a column's decomposition into physical
// streams.
type SubstreamKind uint8

const (
	// NullMap is the null bitmap of a nullable column.
	NullMap SubstreamKind = iota
	// ArraySizes is the per-row size stream of an array level.
	ArraySizes
	// ArrayElements descends into array element data. It contributes no
	// name suffix but raises the nesting level for later markers.
	ArrayElements
	// TupleElement descends into a named tuple field.
	TupleElement
	// DictionaryKeys is the key stream of a dictionary-encoded column.
	DictionaryKeys
)

func (k SubstreamKind) String() string {
	switch k {
	case NullMap:
		return "NullMap"
	case ArraySizes:
		return "ArraySizes"
	case ArrayElements:
		return "ArrayElements"
	case TupleElement:
		return "TupleElement"
	case DictionaryKeys:
		return "DictionaryKeys"
	}
	return "Unknown"
}

// Substream is one marker of a substream path. TupleElementName is set
// only for TupleElement markers.
type Substream struct {
	Kind             SubstreamKind
	TupleElementName string
}

// SubstreamPath locates one physical stream within a possibly nested
// column, interpreted left to right.
type SubstreamPath []Substream

// With returns a new path extended by a marker, leaving the receiver
// untouched so sibling streams can branch from a shared prefix.
func (p SubstreamPath) With(kind SubstreamKind) SubstreamPath {
	out := make(SubstreamPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, Substream{Kind: kind})
}

// WithTupleElement returns a new path extended by a TupleElement marker.
func (p SubstreamPath) WithTupleElement(field string) SubstreamPath {
	out := make(SubstreamPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, Substream{Kind: TupleElement, TupleElementName: field})
}

// NestedTableName returns the nested group a column belongs to: the part
// of the name before the first dot. A column outside any nested group
// yields its own name.
func NestedTableName(columnName string) string {
	if i := strings.IndexByte(columnName, '.'); i >= 0 {
		return columnName[:i]
	}
	return columnName
}

// StreamName resolves the canonical stream identifier for one substream
// of a column. The suffix grammar (".null", ".size<N>", "%2E<field>",
// ".dict") and its ordering are part of the on-disk format: changing
// either breaks compatibility with previously written data.
func StreamName(columnName string, path SubstreamPath) string {
	// Array sizes of a nested structure are shared by its sibling
	// columns, so they live under the group name rather than under each
	// member. Sharing applies only at the first level: deeper size
	// streams carry a path longer than one.
	nestedTableName := NestedTableName(columnName)
	isSizesOfNested := len(path) == 1 &&
		path[0].Kind == ArraySizes &&
		nestedTableName != columnName

	base := columnName
	if isSizesOfNested {
		base = nestedTableName
	}

	b := vstrings.NewBuilder(len(base) + 8*len(path))
	b.WriteString(vstrings.EscapeForFileName(base))

	arrayLevel := 0
	for _, elem := range path {
		switch elem.Kind {
		case NullMap:
			b.WriteString(".null")
		case ArraySizes:
			b.WriteString(".size")
			b.WriteString(strconv.Itoa(arrayLevel))
		case ArrayElements:
			arrayLevel++
		case TupleElement:
			// %2E instead of a plain dot, deliberately identical to the
			// escaped form of a dot in a flat column name: a tuple
			// element t.e and a legacy top-level column named "t.e"
			// must land on the same stream.
			b.WriteString("%2E")
			b.WriteString(vstrings.EscapeForFileName(elem.TupleElementName))
		case DictionaryKeys:
			b.WriteString(".dict")
		}
	}
	return b.String()
}

// ParsePath converts a comma-separated marker list into a SubstreamPath.
// Markers: "null", "sizes", "elements", "tuple:<field>", "dict". Used by
// the CLI and by layout tooling; the storage paths themselves are built
// programmatically.
func ParsePath(spec string) (SubstreamPath, error) {
	if spec == "" {
		return nil, nil
	}
	var path SubstreamPath
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		switch {
		case tok == "null":
			path = append(path, Substream{Kind: NullMap})
		case tok == "sizes":
			path = append(path, Substream{Kind: ArraySizes})
		case tok == "elements":
			path = append(path, Substream{Kind: ArrayElements})
		case tok == "dict":
			path = append(path, Substream{Kind: DictionaryKeys})
		case strings.HasPrefix(tok, "tuple:"):
			path = append(path, Substream{
				Kind:             TupleElement,
				TupleElementName: strings.TrimPrefix(tok, "tuple:"),
			})
		default:
			return nil, errors.Newf(errors.ErrorTypeValidation, "unknown substream marker %q", tok)
		}
	}
	return path, nil
}
