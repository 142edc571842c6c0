package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertPanicValueToError(t *testing.T) {
	err := errors.New("e")
	assert.Same(t, err, ConvertPanicValueToError(err))
	assert.EqualError(t, ConvertPanicValueToError("message"), `"message"`)
}

func TestCombineErrors(t *testing.T) {
	assert.NoError(t, CombineErrors())
	assert.NoError(t, CombineErrors(nil, nil))
	assert.EqualError(t, CombineErrors(errors.New("a"), nil, errors.New("b")), "a\nb")

	assert.NoError(t, CombineErrorsWithPrefixMessage("prefix"))
	assert.EqualError(t, CombineErrorsWithPrefixMessage("prefix", errors.New("a")), "prefix: a")
}

func TestMust(t *testing.T) {
	assert.Equal(t, 1, Must(1, nil))
	assert.Panics(t, func() {
		Must(1, errors.New("e"))
	})
}

func TestSlices(t *testing.T) {
	assert.Nil(t, CopySlice[int](nil))
	assert.Equal(t, []int{1, 2}, CopySlice([]int{1, 2}))
	assert.Equal(t, []int{2, 4}, MapSlice([]int{1, 2}, func(e int) int { return 2 * e }))
	assert.Equal(t, []int{2}, FilterSlice([]int{1, 2, 3}, func(e int) bool { return e%2 == 0 }))
}
