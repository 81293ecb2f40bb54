package validation

import (
	"testing"

	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Size  string `json:"size" validate:"omitempty,oneof=1K 2K 4K"`
	Delta int    `json:"delta" validate:"ne=0"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(&sample{Size: "8K"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be one of 1K 2K 4K", details["size"])
	assert.Equal(t, "must not be 0", details["delta"])
}

func TestStructPasses(t *testing.T) {
	assert.NoError(t, Struct(&sample{Name: "Jane", Delta: -1}))
}
