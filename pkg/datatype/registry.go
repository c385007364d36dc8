package datatype

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/vireodata/vireo/pkg/errors"
	"github.com/vireodata/vireo/pkg/logger"
)

// Factory builds a fresh logical type instance for a family. Factories
// attach domains through a Builder before publishing, so the instances
// they return are already frozen.
type Factory func() *Logical

// Registry maps family names to type factories. Registration happens at
// startup; lookups afterwards are read-only and safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *zap.Logger
}

// NewRegistry creates an empty registry logging through the given logger.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = logger.Get()
	}
	return &Registry{
		factories: make(map[string]Factory),
		logger:    log,
	}
}

// Register adds a factory under a family name. Re-registering a family
// is a startup defect and fails with ErrorTypeConflict.
func (r *Registry) Register(family string, factory Factory) error {
	if family == "" {
		return errors.New(errors.ErrorTypeValidation, "family name must not be empty")
	}
	if factory == nil {
		return errors.Newf(errors.ErrorTypeValidation, "nil factory for family %s", family)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[family]; exists {
		return errors.Newf(errors.ErrorTypeConflict,
			"data type family %s is already registered", family)
	}
	r.factories[family] = factory

	r.logger.Debug("registered data type family", zap.String("family", family))
	return nil
}

// MustRegister panics on registration failure. Intended for package init
// of concrete type families, where a conflict means a broken build.
func (r *Registry) MustRegister(family string, factory Factory) {
	if err := r.Register(family, factory); err != nil {
		panic(err)
	}
}

// Get instantiates a logical type by family name.
func (r *Registry) Get(family string) (*Logical, error) {
	r.mu.RLock()
	factory, ok := r.factories[family]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.Newf(errors.ErrorTypeNotFound,
			"unknown data type family %s", family)
	}
	return factory(), nil
}

// Families returns the registered family names in sorted order.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry backs the package-level registration helpers.
var defaultRegistry = NewRegistry(nil)

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a factory to the default registry.
func Register(family string, factory Factory) error {
	return defaultRegistry.Register(family, factory)
}

// Get instantiates a type from the default registry.
func Get(family string) (*Logical, error) {
	return defaultRegistry.Get(family)
}
