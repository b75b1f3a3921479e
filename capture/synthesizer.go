package capture

import (
	"database/sql"
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"invocation-capture/internal/bare"
	"invocation-capture/primitive"
)

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	scannerType         = reflect.TypeFor[sql.Scanner]()
)

// Synthesizer produces concrete placeholders for sealed types. The value it
// returns encodes the identity it was given whenever the type can hold one.
type Synthesizer struct {
	creators *Creators
	enums    *Enums
}

// NewSynthesizer returns a synthesizer consulting creators and enums.
func NewSynthesizer(creators *Creators, enums *Enums) *Synthesizer {
	return &Synthesizer{creators: creators, enums: enums}
}

// Closed returns the single representative value of a closed-value type:
// false for booleans, the first member for enumerations.
func (s *Synthesizer) Closed(t reflect.Type) (any, bool) {
	if t == nil {
		return nil, false
	}

	if t.Kind() == reflect.Bool {
		return reflect.Zero(t).Interface(), true
	}

	if first, ok := s.enums.First(t); ok {
		return first.Interface(), true
	}

	return nil, false
}

// Synthesize returns a placeholder of type t. next is called at most once,
// only when the chosen strategy needs an identity.
func (s *Synthesizer) Synthesize(t reflect.Type, next func() int32) (any, error) {
	if t == nil {
		return nil, &PlaceholderCreationError{Err: ErrNilType}
	}

	if creator, ok := s.creators.Lookup(t); ok {
		return fromCreator(t, creator, next())
	}

	if v, ok := s.Closed(t); ok {
		return v, nil
	}

	v, err := s.synthesize(t, next())
	if err != nil {
		return nil, &PlaceholderCreationError{Type: t, Err: err}
	}

	return v.Interface(), nil
}

func fromCreator(t reflect.Type, creator Creator, id int32) (any, error) {
	v := creator(id)
	if v == nil {
		return nil, &PlaceholderCreationError{Type: t, Err: fmt.Errorf("%w: nil", ErrCreatorOutput)}
	}

	vt := reflect.TypeOf(v)
	if vt == t {
		return v, nil
	}

	if !vt.AssignableTo(t) {
		return nil, &PlaceholderCreationError{Type: t, Err: fmt.Errorf("%w: %s", ErrCreatorOutput, vt)}
	}

	rv := reflect.New(t).Elem()
	rv.Set(reflect.ValueOf(v))

	return rv.Interface(), nil
}

func (s *Synthesizer) synthesize(t reflect.Type, id int32) (reflect.Value, error) {
	if v, ok := fromPrimitive(t, id); ok {
		return v, nil
	}

	switch t.Kind() {
	case reflect.Slice:
		return reflect.MakeSlice(t, 1, 1), nil

	case reflect.Map:
		return reflect.MakeMapWithSize(t, 1), nil

	case reflect.Chan:
		if t.ChanDir() == reflect.BothDir {
			return reflect.MakeChan(t, 0), nil
		}

		return reflect.MakeChan(reflect.ChanOf(reflect.BothDir, t.Elem()), 0).Convert(t), nil

	case reflect.Array:
		v := reflect.New(t).Elem()
		if t.Len() > 0 {
			if first, ok := fromPrimitive(t.Elem(), id); ok {
				v.Index(0).Set(first)
			}
		}

		return v, nil

	case reflect.Pointer:
		// *T is where UnmarshalText and Scan usually live.
		if elem, ok := fromText(t.Elem(), id); ok {
			return elem.Addr(), nil
		}

		if elem, ok := fromScanner(t.Elem(), id); ok {
			return elem.Addr(), nil
		}

		elem, err := bare.New(t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		return elem.Addr(), nil

	case reflect.Interface:
		return reflect.Value{}, ErrNoStandIn

	case reflect.Func:
		return reflect.Value{}, ErrInterceptable
	}

	if v, ok := fromText(t, id); ok {
		return v, nil
	}

	if v, ok := fromScanner(t, id); ok {
		return v, nil
	}

	return bare.New(t)
}

// fromPrimitive encodes id into numeric, text and time types, truncating it
// to the range of the target kind.
func fromPrimitive(t reflect.Type, id int32) (reflect.Value, bool) {
	kind := primitive.FromReflectType(t)
	if kind == 0 || kind == primitive.KindBool {
		return reflect.Value{}, false
	}

	if kind == primitive.KindTime {
		return reflect.ValueOf(time.UnixMilli(int64(id))), true
	}

	v := reflect.New(t).Elem()

	switch {
	case kind.IsSigned():
		v.SetInt(int64(id))
	case kind.IsUnsigned():
		v.SetUint(uint64(int64(id)))
	case kind == primitive.KindFloat32:
		v.SetFloat(float64(id % 1_000_000))
	case kind.IsFloat():
		v.SetFloat(float64(id))
	case kind.IsComplex():
		v.SetComplex(complex(float64(id), 0))
	case kind == primitive.KindString:
		v.SetString(strconv.Itoa(int(id)))
	default:
		return reflect.Value{}, false
	}

	return v, true
}

// fromText plays the role of a constructor taking text: the decimal identity
// is handed to UnmarshalText. Failures fall through to the next strategy.
func fromText(t reflect.Type, id int32) (v reflect.Value, ok bool) {
	if !reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return reflect.Value{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			v, ok = reflect.Value{}, false
		}
	}()

	p := reflect.New(t)
	if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(strconv.Itoa(int(id)))); err != nil {
		return reflect.Value{}, false
	}

	return p.Elem(), true
}

// fromScanner plays the role of a numeric constructor through sql.Scanner.
func fromScanner(t reflect.Type, id int32) (v reflect.Value, ok bool) {
	if !reflect.PointerTo(t).Implements(scannerType) {
		return reflect.Value{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			v, ok = reflect.Value{}, false
		}
	}()

	p := reflect.New(t)
	if err := p.Interface().(sql.Scanner).Scan(int64(id)); err != nil {
		return reflect.Value{}, false
	}

	return p.Elem(), true
}
