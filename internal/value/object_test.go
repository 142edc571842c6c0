package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectProperties(t *testing.T) {
	t.Run("creation order is preserved", func(t *testing.T) {
		obj := NewObject(nil)
		obj.CreateDataPropertyOrPanic(StringKey("b"), NewNumber(1))
		obj.CreateDataPropertyOrPanic(StringKey("a"), NewNumber(2))
		obj.CreateDataPropertyOrPanic(StringKey("c"), NewNumber(3))

		assert.Equal(t, []string{"b", "a", "c"}, obj.OwnEnumerableStringKeys())
		assert.Equal(t, 3, obj.PropertyCount())
	})

	t.Run("redefining a property keeps its position", func(t *testing.T) {
		obj := NewObject(nil)
		obj.CreateDataPropertyOrPanic(StringKey("a"), NewNumber(1))
		obj.CreateDataPropertyOrPanic(StringKey("b"), NewNumber(2))

		three := NewNumber(3)
		require.NoError(t, obj.CreateDataProperty(StringKey("a"), three))

		assert.Equal(t, []string{"a", "b"}, obj.OwnEnumerableStringKeys())
		v, ok := obj.GetString("a")
		require.True(t, ok)
		assert.Same(t, three, v)
	})

	t.Run("symbol-keyed and non-enumerable properties are not enumerated", func(t *testing.T) {
		obj := NewObject(nil)
		sym := NewSymbol(NewString("s"))

		obj.CreateDataPropertyOrPanic(StringKey("a"), NewNumber(1))
		obj.CreateDataPropertyOrPanic(SymbolKey(sym), NewNumber(2))
		require.NoError(t, obj.DefineOwnProperty(StringKey("hidden"), PropertyDescriptor{
			Value: NewNumber(3),
		}))
		obj.CreateDataPropertyOrPanic(StringKey("b"), NewNumber(4))

		assert.Equal(t, []string{"a", "b"}, obj.OwnEnumerableStringKeys())
		assert.Equal(t, []PropertyKey{StringKey("a"), SymbolKey(sym), StringKey("hidden"), StringKey("b")}, obj.OwnKeys())
	})

	t.Run("two symbols with the same description are distinct keys", func(t *testing.T) {
		obj := NewObject(nil)
		sym1 := NewSymbol(NewString("s"))
		sym2 := NewSymbol(NewString("s"))

		obj.CreateDataPropertyOrPanic(SymbolKey(sym1), NewNumber(1))
		assert.True(t, obj.HasOwnProperty(SymbolKey(sym1)))
		assert.False(t, obj.HasOwnProperty(SymbolKey(sym2)))
	})

	t.Run("non-configurable property", func(t *testing.T) {
		obj := NewObject(nil)
		require.NoError(t, obj.DefineOwnProperty(StringKey("a"), PropertyDescriptor{
			Value:      NewNumber(1),
			Enumerable: true,
		}))

		err := obj.CreateDataProperty(StringKey("a"), NewNumber(2))
		assert.ErrorIs(t, err, ErrNonConfigurableProperty)
		assert.False(t, obj.Delete(StringKey("a")))
	})

	t.Run("non-extensible object", func(t *testing.T) {
		obj := NewObject(nil)
		obj.PreventExtensions()

		err := obj.CreateDataProperty(StringKey("a"), NewNumber(2))
		assert.ErrorIs(t, err, ErrNotExtensible)
		assert.Panics(t, func() {
			obj.CreateDataPropertyOrPanic(StringKey("a"), NewNumber(2))
		})
	})

	t.Run("nil value", func(t *testing.T) {
		obj := NewObject(nil)
		assert.ErrorIs(t, obj.CreateDataProperty(StringKey("a"), nil), ErrNilPropertyValue)
	})

	t.Run("delete", func(t *testing.T) {
		obj := NewObject(nil)
		obj.CreateDataPropertyOrPanic(StringKey("a"), NewNumber(1))
		obj.CreateDataPropertyOrPanic(StringKey("b"), NewNumber(2))
		obj.CreateDataPropertyOrPanic(StringKey("c"), NewNumber(3))

		assert.True(t, obj.Delete(StringKey("a")))
		assert.True(t, obj.Delete(StringKey("missing")))
		assert.Equal(t, []string{"b", "c"}, obj.OwnEnumerableStringKeys())

		v, ok := obj.GetString("c")
		require.True(t, ok)
		assert.Equal(t, 3.0, v.(*Number).Value())
	})
}

func TestObjectPrototype(t *testing.T) {
	proto := NewObject(nil)
	inherited := NewString("inherited")
	proto.CreateDataPropertyOrPanic(StringKey("p"), inherited)

	obj := NewObject(proto)
	assert.Same(t, proto, obj.Prototype())

	v, ok := obj.GetString("p")
	require.True(t, ok)
	assert.Same(t, inherited, v)

	assert.False(t, obj.HasOwnProperty(StringKey("p")))
	assert.Empty(t, obj.OwnEnumerableStringKeys())

	_, ok = obj.GetString("missing")
	assert.False(t, ok)

	t.Run("cyclic prototype chain", func(t *testing.T) {
		assert.Error(t, proto.SetPrototype(obj))
		assert.Nil(t, proto.Prototype())
	})
}

func TestFunction(t *testing.T) {
	proto := NewObject(nil)
	fn := NewFunction(proto, nil, nil)

	assert.Equal(t, FunctionKind, fn.Kind())
	assert.Same(t, proto, fn.Prototype())
	assert.Empty(t, fn.Parameters())
	assert.True(t, fn.Body().IsEmpty())

	fn.CreateDataPropertyOrPanic(StringKey("name"), NewString("f"))
	assert.Equal(t, []string{"name"}, fn.AsObject().OwnEnumerableStringKeys())
}

func TestArray(t *testing.T) {
	arr := NewArray(nil)
	assert.Equal(t, ArrayKind, arr.Kind())
	assert.True(t, arr.Kind().IsObjectLike())
}
