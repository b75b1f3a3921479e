package capture

import (
	"log/slog"
	"os"
	"reflect"

	"invocation-capture/identity"
)

// Classification splits types into those whose calls can be intercepted and
// those that can only be represented by a distinguishable value.
type Classification int

const (
	Sealed Classification = iota
	Interceptable
)

func (c Classification) String() string {
	switch c {
	case Sealed:
		return "Sealed"
	case Interceptable:
		return "Interceptable"
	default:
		return "Classification(?)"
	}
}

// Classify returns Interceptable for interface and func types.
func Classify(t reflect.Type) Classification {
	if t == nil {
		return Sealed
	}

	switch t.Kind() {
	case reflect.Interface, reflect.Func:
		return Interceptable
	default:
		return Sealed
	}
}

var (
	reflectTypeType = reflect.TypeFor[reflect.Type]()
	factoryType     = reflect.TypeFor[*Factory]()
)

// Config holds the settings of a Factory.
type Config struct {
	// Capacity bounds the number of placeholders the factory can convert
	// back to chains.
	Capacity int
	Logger   *slog.Logger
	// Allocator issues identities. A fresh one is used when nil.
	Allocator *identity.Allocator
}

// DefaultConfig returns the configuration of Default.
func DefaultConfig() Config {
	return Config{
		Capacity: DefaultCapacity,
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
}

// Factory creates placeholders and turns them back into the chains they
// stand for. All methods are safe for concurrent use.
type Factory struct {
	ids      *identity.Allocator
	registry *Registry
	creators *Creators
	enums    *Enums
	synth    *Synthesizer
	logger   *slog.Logger
}

// Default is the process-wide factory used by the package-level helpers
// when they are given a nil factory.
var Default = mustFactory(DefaultConfig())

func mustFactory(cfg Config) *Factory {
	f, err := NewFactory(cfg)
	if err != nil {
		panic(err)
	}

	return f
}

// NewFactory builds a factory from cfg.
func NewFactory(cfg Config) (*Factory, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	registry, err := NewRegistry(cfg.Capacity, logger)
	if err != nil {
		return nil, err
	}

	ids := cfg.Allocator
	if ids == nil {
		ids = identity.NewAllocator()
	}

	creators := NewCreators()
	enums := NewEnums()

	return &Factory{
		ids:      ids,
		registry: registry,
		creators: creators,
		enums:    enums,
		synth:    NewSynthesizer(creators, enums),
		logger:   logger,
	}, nil
}

// CreateArgument returns a placeholder of type t whose chain is empty.
func (f *Factory) CreateArgument(t reflect.Type) (any, error) {
	if t == nil {
		return nil, &PlaceholderCreationError{Err: ErrNilType}
	}

	return f.createArgument(t, NewArgument(t))
}

func (f *Factory) createArgument(t reflect.Type, arg *Argument) (any, error) {
	var (
		p   any
		err error
	)

	if Classify(t) == Interceptable {
		p, err = f.standIn(t, arg)
	} else {
		p, err = f.synth.Synthesize(t, f.ids.Next)
	}

	if err != nil {
		f.logger.Debug("placeholder not created", slog.String("type", t.String()), slog.Any("error", err))
		return nil, err
	}

	f.registry.Bind(p, arg)

	f.logger.Debug("placeholder created",
		slog.String("type", t.String()),
		slog.String("argument", arg.String()))

	return p, nil
}

// ActualArgument returns the chain p stands for. A *Argument is returned
// as is.
func (f *Factory) ActualArgument(p any) (*Argument, error) {
	if arg, ok := f.toArgument(p); ok {
		return arg, nil
	}

	return nil, &ArgumentConversionError{Placeholder: p}
}

func (f *Factory) toArgument(p any) (*Argument, bool) {
	switch v := p.(type) {
	case *Argument:
		if v != nil {
			return v, true
		}
	case standIn:
		if arg := v.capturedArgument(); arg != nil {
			return arg, true
		}
	}

	return f.registry.Lookup(p)
}

// resolveArgs replaces placeholders among the arguments of a recorded call
// with their chains. Other values are kept literally, and so are closed and
// zero values, which many chains share.
func (f *Factory) resolveArgs(args []any) []any {
	out := make([]any, len(args))

	for i, a := range args {
		out[i] = a

		switch v := a.(type) {
		case *Argument:
		case standIn:
			if arg := v.capturedArgument(); arg != nil {
				out[i] = arg
			}
		default:
			if f.ambiguous(a) {
				continue
			}

			if arg, ok := f.registry.resolve(a); ok {
				out[i] = arg
			}
		}
	}

	return out
}

// ambiguous reports whether a may stand for more than one chain.
func (f *Factory) ambiguous(a any) bool {
	if a == nil {
		return true
	}

	rv := reflect.ValueOf(a)
	if rv.IsZero() {
		return true
	}

	_, closed := f.synth.Closed(rv.Type())

	return closed
}

// CreateClosureArgumentPlaceholder returns the value handed to a closure
// parameter of type t. Requests for reflect.Type are answered with the
// factory's own type; proxable types get a recording stand-in; anything
// else gets a fixed value that is never bound to a chain.
func (f *Factory) CreateClosureArgumentPlaceholder(t reflect.Type) (any, error) {
	if t == nil {
		return nil, &PlaceholderCreationError{Err: ErrNilType}
	}

	if t == reflectTypeType {
		return factoryType, nil
	}

	if proxable(t) {
		return f.CreateArgument(t)
	}

	return f.synth.Synthesize(t, func() int32 { return identity.Seed })
}

// PlaceholderToClosureArgument returns the chain p stands for, reporting
// false instead of an error when p is unknown.
func (f *Factory) PlaceholderToClosureArgument(p any) (*Argument, bool) {
	return f.toArgument(p)
}

// IsProxable reports whether t gets a recording stand-in.
func (f *Factory) IsProxable(t reflect.Type) bool {
	return proxable(t)
}

// RegisterFinalTypeCreator installs creator for the sealed type t. It is
// consulted before any built-in strategy.
func (f *Factory) RegisterFinalTypeCreator(t reflect.Type, creator Creator) error {
	if err := f.creators.Register(t, creator); err != nil {
		return err
	}

	f.logger.Debug("creator registered", slog.String("type", t.String()))

	return nil
}

// DeregisterFinalTypeCreator removes the creator of t, if any.
func (f *Factory) DeregisterFinalTypeCreator(t reflect.Type) {
	f.creators.Deregister(t)
}

// RegisterEnum declares t as an enumeration. Placeholders of t are then
// always members[0].
func (f *Factory) RegisterEnum(t reflect.Type, members ...any) error {
	return f.enums.Register(t, members...)
}

// Stats returns the registry counters.
func (f *Factory) Stats() RegistryStats {
	return f.registry.Stats()
}
