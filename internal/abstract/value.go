package abstract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inoxlang/witness/internal/sourcecode"
	"github.com/inoxlang/witness/internal/value"
)

const (
	// CONCRETE_UNION_KIND is the kind of the values built by NewConcreteUnion.
	CONCRETE_UNION_KIND Kind = "abstractConcreteUnion"
)

var (
	ErrEmptyUnion   = errors.New("a concrete union should have at least one branch")
	ErrNotAnObject  = errors.New("abstract value is not an abstract object")
	ErrNoSuchBranch = errors.New("no such branch")
	ErrNilBranch    = errors.New("a union branch should not be nil")

	_ value.Value = (*Value)(nil)
)

// Kind describes how an abstract value has been built by the abstract interpreter
// (e.g. "widened property", "sentinel member expression"). Only CONCRETE_UNION_KIND
// has a meaning for concretization.
type Kind string

// A Value is a symbolic placeholder for "some value matching constraints":
// a type domain, a value domain and, for abstract objects, a template.
type Value struct {
	kind     Kind
	types    TypeDomain
	values   ValueDomain
	args     []value.Value //branches of a concrete union
	location *sourcecode.PositionRange

	object *objectPayload //nil if the value is not an abstract object
}

// objectPayload is the part specific to abstract objects.
type objectPayload struct {
	template *value.Object //nil if the object is not template-bearing
	partial  bool
}

// New creates a non-object abstract value, loc can be nil.
func New(kind Kind, types TypeDomain, values ValueDomain, loc *sourcecode.PositionRange) *Value {
	return &Value{
		kind:     kind,
		types:    types,
		values:   values,
		location: loc,
	}
}

// NewOfType creates an abstract value of the given kind with a top value domain.
func NewOfType(kind value.Kind, loc *sourcecode.PositionRange) *Value {
	return New("", TypeDomainOf(kind), TOP_VALUE_DOMAIN, loc)
}

// NewTop creates an abstract value that can be any value.
func NewTop(loc *sourcecode.PositionRange) *Value {
	return New("", TOP_TYPE_DOMAIN, TOP_VALUE_DOMAIN, loc)
}

// NewOneOf creates an abstract value that is one of the passed values, the values should all
// have the same kind.
func NewOneOf(loc *sourcecode.PositionRange, first value.Concrete, others ...value.Concrete) *Value {
	types := TypeDomainOf(first.Kind())
	for _, other := range others {
		types = types.Join(TypeDomainOf(other.Kind()))
	}
	return New("", types, NewValueDomain(append([]value.Concrete{first}, others...)...), loc)
}

// NewConcreteUnion creates a union whose first branch is the preferred concrete witness,
// the other branches are an unconstrained tail. The caller is responsible for the order
// of the branches, NewConcreteUnion only checks there is at least one.
func NewConcreteUnion(loc *sourcecode.PositionRange, branches ...value.Value) *Value {
	if len(branches) == 0 {
		panic(ErrEmptyUnion)
	}

	types := typeDomainOfValue(branches[0])
	for _, branch := range branches {
		if branch == nil {
			panic(ErrNilBranch)
		}
		types = types.Join(typeDomainOfValue(branch))
	}

	return &Value{
		kind:     CONCRETE_UNION_KIND,
		types:    types,
		values:   TOP_VALUE_DOMAIN,
		args:     branches,
		location: loc,
	}
}

func typeDomainOfValue(v value.Value) TypeDomain {
	switch val := v.(type) {
	case value.Concrete:
		return TypeDomainOf(val.Kind())
	case *Value:
		return val.types
	default:
		return TOP_TYPE_DOMAIN
	}
}

// NewObject creates an abstract object whose known properties are the properties of template.
// If partial is true the object may have properties that are not in the template.
func NewObject(template *value.Object, partial bool, loc *sourcecode.PositionRange) *Value {
	if template == nil {
		panic(errors.New("template should not be nil"))
	}
	return &Value{
		types:    TypeDomainOf(value.ObjectKind),
		values:   NewValueDomain(template),
		location: loc,
		object:   &objectPayload{template: template, partial: partial},
	}
}

// NewTopObject creates an abstract object about which nothing is known.
func NewTopObject(loc *sourcecode.PositionRange) *Value {
	return &Value{
		types:    TypeDomainOf(value.ObjectKind),
		values:   TOP_VALUE_DOMAIN,
		location: loc,
		object:   &objectPayload{},
	}
}

// NewObjectOf creates an abstract object that is one of the candidates. The result has a template
// only if there is a single candidate.
func NewObjectOf(loc *sourcecode.PositionRange, candidates ...*value.Object) *Value {
	elements := make([]value.Concrete, len(candidates))
	for i, c := range candidates {
		elements[i] = c
	}

	payload := &objectPayload{}
	if len(candidates) == 1 {
		payload.template = candidates[0]
	}

	return &Value{
		types:    TypeDomainOf(value.ObjectKind),
		values:   NewValueDomain(elements...),
		location: loc,
		object:   payload,
	}
}

func (*Value) IsConcrete() bool {
	return false
}

func (v *Value) Kind() Kind {
	return v.kind
}

func (v *Value) Types() TypeDomain {
	return v.types
}

func (v *Value) Values() ValueDomain {
	return v.values
}

// Location returns the location of the expression that produced the value, if known.
func (v *Value) Location() (*sourcecode.PositionRange, bool) {
	return v.location, v.location != nil
}

func (v *Value) GetType() (value.Kind, bool) {
	return v.types.GetType()
}

func (v *Value) IsTypeTop() bool {
	return v.types.IsTop()
}

func (v *Value) IsValueTop() bool {
	return v.values.IsTop()
}

// GetValueElements returns the elements of the value domain, it panics if the domain is top.
func (v *Value) GetValueElements() []value.Concrete {
	return v.values.GetElements()
}

func (v *Value) IsConcreteUnion() bool {
	return v.kind == CONCRETE_UNION_KIND
}

// Branch returns the branch at index i of a concrete union.
func (v *Value) Branch(i int) value.Value {
	if i < 0 || i >= len(v.args) {
		panic(fmt.Errorf("%w: %d", ErrNoSuchBranch, i))
	}
	return v.args[i]
}

// Branches returns the branches of a concrete union, the result should not be modified.
func (v *Value) Branches() []value.Value {
	return v.args
}

// IsObject reports whether v is an abstract object (template-bearing or not).
func (v *Value) IsObject() bool {
	return v.object != nil
}

// Template returns the template of a template-bearing abstract object.
func (v *Value) Template() (*value.Object, bool) {
	if v.object == nil || v.object.template == nil {
		return nil, false
	}
	return v.object.template, true
}

func (v *Value) IsPartial() bool {
	return v.object != nil && v.object.partial
}

func (v *Value) MakePartial() {
	v.assertObject()
	v.object.partial = true
}

func (v *Value) MakeNotPartial() {
	v.assertObject()
	v.object.partial = false
}

// Get returns the current value of the property name of the template, the result
// can be an abstract value.
func (v *Value) Get(name string) (value.Value, bool) {
	template, ok := v.Template()
	if !ok {
		return nil, false
	}
	return template.GetString(name)
}

func (v *Value) assertObject() {
	if v.object == nil {
		panic(ErrNotAnObject)
	}
}

func (v *Value) String() string {
	buf := &strings.Builder{}
	buf.WriteString("abstract(")
	if v.kind != "" {
		buf.WriteString(string(v.kind))
		buf.WriteString(", ")
	}
	buf.WriteString("type: ")
	buf.WriteString(v.types.String())
	switch {
	case v.IsConcreteUnion():
		fmt.Fprintf(buf, ", branches: %d", len(v.args))
	case v.object != nil && v.object.template != nil:
		//the template is not stringified because it can reference v.
		buf.WriteString(", template keys: [")
		buf.WriteString(strings.Join(v.object.template.OwnEnumerableStringKeys(), ", "))
		buf.WriteByte(']')
	default:
		buf.WriteString(", values: ")
		buf.WriteString(v.values.String())
	}
	if v.IsPartial() {
		buf.WriteString(", partial")
	}
	buf.WriteByte(')')
	return buf.String()
}
