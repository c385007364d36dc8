package datatype

// Domain decorates a physical type with display semantics without
// changing its binary layout. A domain that also implements TextCodec
// overrides the textual representation of every format family; the
// binary form always remains the physical type's.
//
// Domains form an append-only chain: the first attached domain decorates
// the physical type, each later one decorates the name produced by the
// chain so far. The most recently appended domain is the head and the
// one the dispatch facade consults.
type Domain interface {
	// Name composes the domain's display name over the name of what it
	// decorates. A domain that fully renames its type ignores inner.
	Name(inner string) string
}

// SimpleDomain renames a type without touching serialization, e.g. an
// address-like domain stored as a plain integer.
type SimpleDomain struct {
	DisplayName string
}

func (d SimpleDomain) Name(string) string {
	return d.DisplayName
}

// Builder assembles a Logical in two phases: append domains, then Build.
// Building resolves the composed name and the head domain's optional
// text capability once, so no per-call chain walking or type inspection
// happens afterwards. Builders are not safe for concurrent use; complete
// all AppendDomain calls before publishing the built type.
type Builder struct {
	phys  Physical
	chain []Domain
}

// NewBuilder starts building a logical type over phys.
func NewBuilder(phys Physical) *Builder {
	return &Builder{phys: phys}
}

// AppendDomain extends the domain chain. The new domain becomes the head;
// the previously appended domains stay innermost in attach order.
func (b *Builder) AppendDomain(d Domain) *Builder {
	b.chain = append(b.chain, d)
	return b
}

// Build publishes an immutable Logical. The composed name folds the chain
// from the physical type outward; the head domain's TextCodec, if it has
// one, is captured as the custom serialization handle.
func (b *Builder) Build() *Logical {
	t := &Logical{phys: b.phys}

	name := b.phys.Name()
	for _, d := range b.chain {
		name = d.Name(name)
	}
	t.name = name

	if n := len(b.chain); n > 0 {
		t.domain = b.chain[n-1]
		if codec, ok := t.domain.(TextCodec); ok {
			t.custom = codec
		}
	}
	return t
}
