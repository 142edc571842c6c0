package value

import (
	"math"
)

var (
	_ = []Concrete{
		(*Undefined)(nil), (*Null)(nil), (*Boolean)(nil), (*Number)(nil), (*String)(nil), (*Symbol)(nil),
		(*Object)(nil), (*Array)(nil), (*Function)(nil),
	}
)

// A Value is either a concrete value (this package) or an abstract value produced
// by the abstract interpreter.
type Value interface {
	IsConcrete() bool
}

// A Concrete value is a fully resolved runtime value, it is immutable except for the
// contents of objects that are modified through the object protocol.
type Concrete interface {
	Value
	Kind() Kind
}

func IsConcrete(v Value) bool {
	return v != nil && v.IsConcrete()
}

// KindOf returns the kind of v if v is concrete.
func KindOf(v Value) (Kind, bool) {
	concrete, ok := v.(Concrete)
	if !ok {
		return 0, false
	}
	return concrete.Kind(), true
}

//value types with no data have a dummy field to avoid same address for empty structs

type Undefined struct {
	_ int
}

// NewUndefined should only be called when creating the intrinsics of an execution context.
func NewUndefined() *Undefined {
	return &Undefined{}
}

func (*Undefined) IsConcrete() bool { return true }
func (*Undefined) Kind() Kind { return UndefinedKind }

type Null struct {
	_ int
}

// NewNull should only be called when creating the intrinsics of an execution context.
func NewNull() *Null {
	return &Null{}
}

func (*Null) IsConcrete() bool { return true }
func (*Null) Kind() Kind { return NullKind }

type Boolean struct {
	value bool
}

func NewBoolean(b bool) *Boolean {
	return &Boolean{value: b}
}

func (*Boolean) IsConcrete() bool { return true }
func (*Boolean) Kind() Kind { return BooleanKind }
func (b *Boolean) Value() bool { return b.value }

type Number struct {
	value    float64
	integral bool
}

func NewNumber(f float64) *Number {
	return &Number{value: f}
}

// NewIntegral creates a number of kind IntegralKind, the value is truncated.
func NewIntegral(i int64) *Number {
	return &Number{value: float64(i), integral: true}
}

func (*Number) IsConcrete() bool { return true }

func (n *Number) Kind() Kind {
	if n.integral {
		return IntegralKind
	}
	return NumberKind
}

func (n *Number) Value() float64 { return n.value }

func (n *Number) IsNaN() bool { return math.IsNaN(n.value) }

type String struct {
	value string
}

func NewString(s string) *String {
	return &String{value: s}
}

func (*String) IsConcrete() bool { return true }
func (*String) Kind() Kind { return StringKind }
func (s *String) Value() string { return s.value }
func (s *String) String() string { return s.value }

// A Symbol is a unique value, two symbols with the same description are distinct.
type Symbol struct {
	description *String //can be nil
}

func NewSymbol(description *String) *Symbol {
	return &Symbol{description: description}
}

func (*Symbol) IsConcrete() bool { return true }
func (*Symbol) Kind() Kind { return SymbolKind }

func (s *Symbol) Description() (*String, bool) {
	return s.description, s.description != nil
}

// SameValue implements the SameValue comparison: primitives are compared by value (NaN is the
// same value as NaN, +0 and -0 are distinct), objects and symbols by identity.
func SameValue(a, b Concrete) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *Undefined, *Null:
		return true
	case *Boolean:
		return x.value == b.(*Boolean).value
	case *Number:
		y := b.(*Number)
		if x.IsNaN() && y.IsNaN() {
			return true
		}
		return x.value == y.value && math.Signbit(x.value) == math.Signbit(y.value)
	case *String:
		return x.value == b.(*String).value
	default:
		return a == b
	}
}
