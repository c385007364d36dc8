// Package stream maps resolved substream names to byte sinks and
// sources, with optional block compression on each stream. Bulk codecs
// write their encoding through these; the naming itself comes from the
// datatype substream resolver.
package stream

import (
	"bytes"
	"io"
	"sort"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/vireodata/vireo/pkg/errors"
)

// Compression selects the per-stream compression algorithm.
type Compression string

const (
	// None writes raw bytes
	None Compression = "none"
	// LZ4 favors speed over ratio
	LZ4 Compression = "lz4"
	// Zstd favors ratio at good speed
	Zstd Compression = "zstd"
	// S2 is the Snappy-compatible middle ground
	S2 Compression = "s2"
)

// NewWriter wraps w with the chosen compression. The returned writer
// must be closed to flush compressed frames; for None the close is a
// no-op and w is left open.
func NewWriter(w io.Writer, comp Compression) (io.WriteCloser, error) {
	switch comp {
	case None, "":
		return nopWriteCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create zstd writer")
		}
		return zw, nil
	case S2:
		return s2.NewWriter(w), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeValidation, "unsupported compression %q", comp)
	}
}

// NewReader wraps r with the matching decompressor.
func NewReader(r io.Reader, comp Compression) (io.ReadCloser, error) {
	switch comp {
	case None, "":
		return io.NopCloser(r), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create zstd reader")
		}
		return zr.IOReadCloser(), nil
	case S2:
		return io.NopCloser(s2.NewReader(r)), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeValidation, "unsupported compression %q", comp)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// MemorySet holds a group of named substreams in memory. Readers and
// writers may be opened concurrently for different streams; a stream
// must be fully written and its writer closed before it is read.
type MemorySet struct {
	mu      sync.RWMutex
	streams map[string]*bytes.Buffer
	comp    Compression
}

// NewMemorySet creates an empty stream set with one compression setting
// applied to every stream.
func NewMemorySet(comp Compression) *MemorySet {
	return &MemorySet{
		streams: make(map[string]*bytes.Buffer),
		comp:    comp,
	}
}

// Writer opens the named substream for writing, creating it if needed.
func (s *MemorySet) Writer(name string) (io.WriteCloser, error) {
	s.mu.Lock()
	buf, ok := s.streams[name]
	if !ok {
		buf = &bytes.Buffer{}
		s.streams[name] = buf
	}
	s.mu.Unlock()

	return NewWriter(buf, s.comp)
}

// Reader opens the named substream for reading.
func (s *MemorySet) Reader(name string) (io.ReadCloser, error) {
	s.mu.RLock()
	buf, ok := s.streams[name]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "no substream named %s", name)
	}
	return NewReader(bytes.NewReader(buf.Bytes()), s.comp)
}

// Names returns the existing substream names in sorted order.
func (s *MemorySet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.streams))
	for name := range s.streams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
