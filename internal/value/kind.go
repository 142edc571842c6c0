package value

import "strconv"

// Kind is the closed classification of runtime values.
type Kind uint8

const (
	UndefinedKind Kind = iota + 1
	NullKind
	BooleanKind
	NumberKind
	// IntegralKind is the integer-only refinement of NumberKind some engines produce.
	IntegralKind
	StringKind
	SymbolKind
	ObjectKind
	ArrayKind
	FunctionKind

	lastKind = FunctionKind
)

var kindNames = [...]string{
	UndefinedKind: "undefined",
	NullKind:      "null",
	BooleanKind:   "boolean",
	NumberKind:    "number",
	IntegralKind:  "integral",
	StringKind:    "string",
	SymbolKind:    "symbol",
	ObjectKind:    "object",
	ArrayKind:     "array",
	FunctionKind:  "function",
}

func (k Kind) String() string {
	if !k.IsKnown() {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsKnown reports whether k is one of the kinds listed above.
func (k Kind) IsKnown() bool {
	return k >= UndefinedKind && k <= lastKind
}

func (k Kind) IsPrimitive() bool {
	switch k {
	case UndefinedKind, NullKind, BooleanKind, NumberKind, IntegralKind, StringKind, SymbolKind:
		return true
	}
	return false
}

// IsObjectLike reports whether values of kind k support the object protocol.
func (k Kind) IsObjectLike() bool {
	switch k {
	case ObjectKind, ArrayKind, FunctionKind:
		return true
	}
	return false
}
