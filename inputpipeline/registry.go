package inputpipeline

import (
	"sort"
	"sync"

	"github.com/kbukum/seqinput/errors"
)

// Factory builds a pipeline from definition args.
type Factory func(args map[string]any) (InputPipeline, error)

// Registry maps pipeline class names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// RegisterFactory registers or replaces the factory for class.
func (r *Registry) RegisterFactory(class string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[class] = factory
}

// Create builds a pipeline of the named class.
func (r *Registry) Create(class string, args map[string]any) (InputPipeline, error) {
	r.mu.RLock()
	factory, ok := r.factories[class]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.UnknownPipelineClass(class, r.List())
	}
	if args == nil {
		args = map[string]any{}
	}
	return factory(args)
}

// Build builds the pipeline a definition describes.
func (r *Registry) Build(def Definition) (InputPipeline, error) {
	return r.Create(def.Class, def.Args)
}

// List returns the sorted names of all registered classes.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterBuiltins registers the built-in classes, building them with opts.
func RegisterBuiltins(r *Registry, opts ...Option) {
	r.RegisterFactory(ClassParallelText, ParallelTextFactory(opts...))
	r.RegisterFactory(ClassTFRecord, RecordFileFactory(opts...))
	r.RegisterFactory(ClassRecordFile, RecordFileFactory(opts...))
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry holding the built-in
// classes.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		RegisterBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// Register adds a class to the default registry.
func Register(class string, factory Factory) {
	DefaultRegistry().RegisterFactory(class, factory)
}
