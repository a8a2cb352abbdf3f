package typeutil

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStringType(t *testing.T) {
	assert.True(t, IsStringType(types.Typ[types.String]))
	assert.False(t, IsStringType(types.Typ[types.Int]))
	assert.False(t, IsStringType(types.NewSlice(types.Typ[types.Byte])))

	named := types.NewNamed(
		types.NewTypeName(token.NoPos, nil, "Path", nil),
		types.Typ[types.String], nil)
	assert.True(t, IsStringType(named))
}

func TestIsPointerLike(t *testing.T) {
	assert.True(t, IsPointerLike(types.NewPointer(types.Typ[types.Int])))
	assert.True(t, IsPointerLike(types.Typ[types.UnsafePointer]))
	assert.False(t, IsPointerLike(types.Typ[types.Uintptr]))
	assert.False(t, IsPointerLike(types.Typ[types.Int]))
}

func TestIsUnsafeConversionType(t *testing.T) {
	assert.True(t, IsUnsafeConversionType(types.Typ[types.UnsafePointer]))
	assert.True(t, IsUnsafeConversionType(types.Typ[types.Uintptr]))
	assert.False(t, IsUnsafeConversionType(types.NewPointer(types.Typ[types.Int])))
}
