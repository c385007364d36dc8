// Package vireo is a columnar analytic storage engine. This module holds
// its logical-type core: the contract every physical column type
// satisfies to be named, serialized in binary and text form, decorated
// with domain semantics, and mapped onto canonical on-disk substreams.
//
// The core sits at the seam between physical storage and logical
// meaning. A physical type owns the byte layout of a column family; a
// logical type wraps it with optional domain decorators that change how
// the column is named and rendered as text without touching its binary
// form.
//
// # Packages
//
//   - pkg/datatype: the logical-type contract, domain chain, substream
//     path resolver, size-hint estimator and type registry
//   - pkg/column: the opaque physical value containers, including the
//     constant-column wrapper
//   - pkg/stream: named substream sinks and sources with per-stream
//     compression
//   - pkg/textio: byte-level primitives behind the text format families
//   - pkg/config: the FormatSettings bag passed through text
//     serialization
//
// # Stream naming
//
// The substream resolver produces the stable identifiers under which a
// column's physical streams are stored:
//
//	var p datatype.SubstreamPath
//	datatype.StreamName("hits", nil)                              // "hits"
//	datatype.StreamName("visits.goals", p.With(datatype.ArraySizes)) // "visits.size0"
//	datatype.StreamName("point", p.WithTupleElement("x"))         // "point%2Ex"
//
// These names are an on-disk compatibility contract; see pkg/datatype
// for the full grammar.
package vireo
