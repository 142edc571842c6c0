package concretize

import (
	"errors"
	"fmt"

	"github.com/inoxlang/witness/internal/abstract"
	"github.com/inoxlang/witness/internal/diagnostic"
	"github.com/inoxlang/witness/internal/realm"
	"github.com/inoxlang/witness/internal/utils"
	"github.com/inoxlang/witness/internal/value"
	"github.com/rs/zerolog"
)

const (
	// Sentinels are conspicuous so that a witness leaking into the output is recognizable.
	SENTINEL_STRING = "__concreteModel"
	SENTINEL_NUMBER = 42

	UNSUPPORTED_ARRAY_MODEL = "emitting a concrete model for an abstract array value is not supported"
	UNSUPPORTED_MODEL       = "emitting a concrete model for this abstract value is not supported"
	MAX_DEPTH_REACHED       = UNSUPPORTED_MODEL + ": maximum nesting depth reached"

	LOG_SRC = "concretize"
)

var (
	// ErrInvariantViolation is the error panicked with when an abstract value has a shape
	// the producing engine should never create.
	ErrInvariantViolation = errors.New("concretization invariant violation")
	ErrNotImplementedYet  = fmt.Errorf("%w: not implemented yet", ErrInvariantViolation)
)

// Concretize returns a concrete witness for v: v itself if it is concrete, otherwise a newly
// allocated value. Unsupported shapes are reported to the realm's diagnostic sink and yield
// undefined. Concretize panics with an error wrapping ErrInvariantViolation if v has a shape the
// abstract interpreter should not produce.
func Concretize(r *realm.Realm, v value.Value) value.Concrete {
	return New(r).Concretize(v)
}

// TryConcretize is like Concretize but returns the invariant violations as errors.
func TryConcretize(r *realm.Realm, v value.Value) (result value.Concrete, finalErr error) {
	defer func() {
		if e := recover(); e != nil {
			finalErr = utils.ConvertPanicValueToError(e)
			if !errors.Is(finalErr, ErrInvariantViolation) {
				finalErr = fmt.Errorf("%w: %w", ErrInvariantViolation, finalErr)
			}
			result = nil
		}
	}()

	return Concretize(r, v), nil
}

// ConcretizeAll concretizes each value with the same Concretizer.
func ConcretizeAll(r *realm.Realm, values ...value.Value) []value.Concrete {
	c := New(r)
	return utils.MapSlice(values, c.Concretize)
}

// A Concretizer converts abstract values to concrete witnesses in a realm. It keeps track of
// the abstract objects being converted in order to handle cyclic templates, nothing is cached
// between two top-level calls. A Concretizer should not be used by several goroutines at once.
type Concretizer struct {
	realm  *realm.Realm
	logger zerolog.Logger

	depth    int
	maxDepth int

	//abstract objects whose template is being enumerated -> object under construction
	inProgress map[*abstract.Value]*value.Object
}

func New(r *realm.Realm) *Concretizer {
	return &Concretizer{
		realm:      r,
		logger:     realm.ChildLoggerForSource(r.Logger(), LOG_SRC),
		maxDepth:   r.Config().MaxDepth,
		inProgress: map[*abstract.Value]*value.Object{},
	}
}

// Concretize returns a concrete witness for v, see the package-level Concretize function.
func (c *Concretizer) Concretize(v value.Value) value.Concrete {
	if concrete, ok := v.(value.Concrete); ok {
		return concrete
	}

	abstractVal, ok := v.(*abstract.Value)
	if !ok {
		panic(fmt.Errorf("%w: unexpected value of type %T", ErrInvariantViolation, v))
	}
	if abstractVal == nil {
		panic(fmt.Errorf("%w: nil abstract value", ErrInvariantViolation))
	}

	if c.depth >= c.maxDepth {
		return c.reportUnsupported(abstractVal, MAX_DEPTH_REACHED)
	}
	c.depth++
	defer func() {
		c.depth--
	}()

	switch abstractVal.Shape() {
	case abstract.UnionShape:
		//the first branch is the preferred witness, the other branches are never inspected.
		return c.Concretize(abstractVal.Branch(0))
	case abstract.UnknownTypeShape:
		return c.realm.Undefined()
	case abstract.PrimitiveShape:
		return c.concretizePrimitive(abstractVal)
	case abstract.FunctionShape:
		return c.synthesizeFunction()
	case abstract.ArrayShape:
		return c.reportUnsupported(abstractVal, UNSUPPORTED_ARRAY_MODEL)
	case abstract.ObjectShape:
		return c.concretizeObject(abstractVal)
	default:
		return c.reportUnsupported(abstractVal, UNSUPPORTED_MODEL)
	}
}

func (c *Concretizer) concretizePrimitive(v *abstract.Value) value.Concrete {
	kind, _ := v.GetType()

	if v.IsValueTop() {
		switch kind {
		case value.StringKind:
			return c.realm.NewString(SENTINEL_STRING)
		case value.NumberKind:
			return c.realm.NewNumber(SENTINEL_NUMBER)
		case value.SymbolKind:
			return c.realm.NewSymbol(c.realm.NewString(SENTINEL_STRING))
		case value.BooleanKind:
			return c.realm.NewBoolean(true)
		case value.NullKind:
			return c.realm.Null()
		case value.UndefinedKind:
			return c.realm.Undefined()
		default:
			panic(fmt.Errorf("%w: concrete model of a value of kind %s", ErrNotImplementedYet, kind))
		}
	}

	elements := v.GetValueElements()
	if len(elements) != 1 {
		panic(fmt.Errorf("%w: concrete model should only have one value, the value domain has %d",
			ErrInvariantViolation, len(elements)))
	}
	return elements[0]
}

// synthesizeFunction creates a function with no parameters and an empty body.
func (c *Concretizer) synthesizeFunction() value.Concrete {
	body := &value.FunctionBody{
		OrderingTag: c.realm.NextFunctionBodyTag(),
	}

	c.logger.Debug().Int64("tag", body.OrderingTag).Msg("synthesized function body")
	return c.realm.NewFunction(nil, body)
}

func (c *Concretizer) concretizeObject(v *abstract.Value) value.Concrete {
	if v.IsValueTop() {
		return c.realm.NewObject(nil)
	}

	template, ok := v.Template()
	if !ok {
		return c.reportUnsupported(v, UNSUPPORTED_MODEL)
	}

	//the template references the object being built
	if obj, ok := c.inProgress[v]; ok {
		return obj
	}

	if v.IsPartial() {
		v.MakeNotPartial()
		defer v.MakePartial()
	}

	obj := c.realm.NewObjectWithPrototype(template.Prototype())

	c.inProgress[v] = obj
	defer delete(c.inProgress, v)

	for _, key := range template.OwnEnumerableStringKeys() {
		propValue, ok := v.Get(key)
		if !ok {
			panic(fmt.Errorf("%w: property %q of the template is missing", ErrInvariantViolation, key))
		}
		obj.CreateDataPropertyOrPanic(value.StringKey(key), c.Concretize(propValue))
	}

	return obj
}

func (c *Concretizer) reportUnsupported(v *abstract.Value, message string) value.Concrete {
	loc, _ := v.Location()

	c.logger.Debug().Stringer("value", v).Msg(message)
	c.realm.ReportCompileError(diagnostic.UNSUPPORTED_CONCRETE_MODEL, message, loc)
	return c.realm.Undefined()
}
