package value

import (
	"errors"
	"fmt"
)

var (
	ErrNonConfigurableProperty = errors.New("cannot redefine a non-configurable property")
	ErrNotExtensible           = errors.New("cannot add a property to a non-extensible object")
	ErrNilPropertyValue        = errors.New("property value should not be nil")

	_ = []ObjectLike{(*Object)(nil), (*Array)(nil), (*Function)(nil)}
)

// A PropertyKey is either a string or a symbol.
type PropertyKey struct {
	name   string
	symbol *Symbol
}

func StringKey(name string) PropertyKey {
	return PropertyKey{name: name}
}

func SymbolKey(symbol *Symbol) PropertyKey {
	if symbol == nil {
		panic(errors.New("symbol key should not be created from a nil symbol"))
	}
	return PropertyKey{symbol: symbol}
}

func (k PropertyKey) IsString() bool { return k.symbol == nil }

func (k PropertyKey) IsSymbol() bool { return k.symbol != nil }

// Name returns the name of a string key, it returns "" for symbol keys.
func (k PropertyKey) Name() string { return k.name }

func (k PropertyKey) Symbol() (*Symbol, bool) { return k.symbol, k.symbol != nil }

func (k PropertyKey) String() string {
	if k.symbol == nil {
		return k.name
	}
	if desc, ok := k.symbol.Description(); ok {
		return "[Symbol(" + desc.Value() + ")]"
	}
	return "[Symbol()]"
}

// A PropertyDescriptor describes a data property, the value can be an abstract value
// when the object is the template of an abstract object.
type PropertyDescriptor struct {
	Value        Value
	Writable     bool
	Enumerable   bool
	Configurable bool
}

type property struct {
	key PropertyKey
	PropertyDescriptor
}

// ObjectLike is implemented by all values that support the object protocol.
type ObjectLike interface {
	Concrete
	AsObject() *Object
}

// An Object is an ordinary object: a prototype and an insertion-ordered table of own properties.
type Object struct {
	kind          Kind
	proto         *Object //nil if the object has no prototype
	properties    []property
	index         map[PropertyKey]int
	nonExtensible bool
}

// NewObject creates an object with no own properties, proto can be nil.
func NewObject(proto *Object) *Object {
	return &Object{kind: ObjectKind, proto: proto}
}

func (*Object) IsConcrete() bool { return true }

func (o *Object) Kind() Kind { return o.kind }

func (o *Object) AsObject() *Object { return o }

// Prototype returns the prototype of the object, the result is nil if the object has no prototype.
func (o *Object) Prototype() *Object {
	return o.proto
}

func (o *Object) SetPrototype(proto *Object) error {
	for p := proto; p != nil; p = p.proto {
		if p == o {
			return errors.New("cyclic prototype chain")
		}
	}
	o.proto = proto
	return nil
}

func (o *Object) PreventExtensions() {
	o.nonExtensible = true
}

func (o *Object) IsExtensible() bool {
	return !o.nonExtensible
}

func (o *Object) PropertyCount() int {
	return len(o.properties)
}

func (o *Object) GetOwnProperty(key PropertyKey) (PropertyDescriptor, bool) {
	i, ok := o.index[key]
	if !ok {
		return PropertyDescriptor{}, false
	}
	return o.properties[i].PropertyDescriptor, true
}

func (o *Object) HasOwnProperty(key PropertyKey) bool {
	_, ok := o.index[key]
	return ok
}

// Get returns the value of the property key, the prototype chain is searched if the object
// has no such own property.
func (o *Object) Get(key PropertyKey) (Value, bool) {
	for obj := o; obj != nil; obj = obj.proto {
		if i, ok := obj.index[key]; ok {
			return obj.properties[i].Value, true
		}
	}
	return nil, false
}

// GetString is a shorthand for Get(StringKey(name)).
func (o *Object) GetString(name string) (Value, bool) {
	return o.Get(StringKey(name))
}

// DefineOwnProperty creates or replaces the own property key. An existing non-configurable
// property cannot be redefined, a new property cannot be added to a non-extensible object.
func (o *Object) DefineOwnProperty(key PropertyKey, desc PropertyDescriptor) error {
	if desc.Value == nil {
		return ErrNilPropertyValue
	}

	if i, ok := o.index[key]; ok {
		current := o.properties[i]
		if !current.Configurable {
			return fmt.Errorf("%w: %s", ErrNonConfigurableProperty, key)
		}
		o.properties[i].PropertyDescriptor = desc
		return nil
	}

	if o.nonExtensible {
		return fmt.Errorf("%w: %s", ErrNotExtensible, key)
	}

	if o.index == nil {
		o.index = make(map[PropertyKey]int)
	}
	o.index[key] = len(o.properties)
	o.properties = append(o.properties, property{key: key, PropertyDescriptor: desc})
	return nil
}

// CreateDataProperty creates an enumerable, writable and configurable own property.
func (o *Object) CreateDataProperty(key PropertyKey, v Value) error {
	return o.DefineOwnProperty(key, PropertyDescriptor{
		Value:        v,
		Writable:     true,
		Enumerable:   true,
		Configurable: true,
	})
}

// CreateDataPropertyOrPanic is like CreateDataProperty but panics on failure.
func (o *Object) CreateDataPropertyOrPanic(key PropertyKey, v Value) {
	if err := o.CreateDataProperty(key, v); err != nil {
		panic(err)
	}
}

// Delete removes an own property, it returns false if the property is not configurable.
func (o *Object) Delete(key PropertyKey) bool {
	i, ok := o.index[key]
	if !ok {
		return true
	}
	if !o.properties[i].Configurable {
		return false
	}

	o.properties = append(o.properties[:i], o.properties[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.properties); j++ {
		o.index[o.properties[j].key] = j
	}
	return true
}

// OwnKeys returns all own property keys in creation order.
func (o *Object) OwnKeys() []PropertyKey {
	keys := make([]PropertyKey, len(o.properties))
	for i, prop := range o.properties {
		keys[i] = prop.key
	}
	return keys
}

// OwnEnumerableStringKeys returns the names of the own enumerable string-keyed properties
// in creation order.
func (o *Object) OwnEnumerableStringKeys() []string {
	var keys []string
	for _, prop := range o.properties {
		if prop.Enumerable && prop.key.IsString() {
			keys = append(keys, prop.key.name)
		}
	}
	return keys
}

// An Array is an exotic object, only its object part is modeled.
type Array struct {
	Object
}

func NewArray(proto *Object) *Array {
	return &Array{Object: Object{kind: ArrayKind, proto: proto}}
}

// A Function is a callable object with a list of formal parameters and a body.
type Function struct {
	Object
	parameters []string
	body       *FunctionBody
}

// A FunctionBody is the executable part of a function, OrderingTag gives a stable position to
// the body when the code generator sorts the functions it emits.
type FunctionBody struct {
	Statements  []string
	OrderingTag int64
}

func (b *FunctionBody) IsEmpty() bool {
	return len(b.Statements) == 0
}

func NewFunction(proto *Object, parameters []string, body *FunctionBody) *Function {
	if body == nil {
		body = &FunctionBody{}
	}
	return &Function{
		Object:     Object{kind: FunctionKind, proto: proto},
		parameters: parameters,
		body:       body,
	}
}

// Parameters returns the names of the formal parameters, the result should not be modified.
func (f *Function) Parameters() []string {
	return f.parameters
}

func (f *Function) Body() *FunctionBody {
	return f.body
}
