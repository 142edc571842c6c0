package abstract

import "github.com/inoxlang/witness/internal/value"

// Shape is the closed classification of abstract values used to dispatch concretization.
type Shape uint8

const (
	UnionShape Shape = iota + 1
	UnknownTypeShape
	PrimitiveShape
	FunctionShape
	ArrayShape
	ObjectShape
	OtherShape
)

func (s Shape) String() string {
	switch s {
	case UnionShape:
		return "union"
	case UnknownTypeShape:
		return "unknown-type"
	case PrimitiveShape:
		return "primitive"
	case FunctionShape:
		return "function"
	case ArrayShape:
		return "array"
	case ObjectShape:
		return "object"
	case OtherShape:
		return "other"
	}
	return "invalid shape"
}

// Shape classifies v. The checks are done in this order: concrete union, top type domain,
// primitive kind, function, array, abstract object. Everything else, including an object-typed
// value that is not an abstract object, is OtherShape.
func (v *Value) Shape() Shape {
	if v.IsConcreteUnion() {
		return UnionShape
	}

	kind, ok := v.GetType()
	if !ok {
		return UnknownTypeShape
	}

	switch {
	case kind.IsPrimitive():
		return PrimitiveShape
	case kind == value.FunctionKind:
		return FunctionShape
	case kind == value.ArrayKind:
		return ArrayShape
	case kind == value.ObjectKind && v.object != nil:
		return ObjectShape
	default:
		return OtherShape
	}
}
