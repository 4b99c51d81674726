package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientName_Normalize(t *testing.T) {
	assert.Equal(t, IngredientName("Milk"), IngredientName(" Milk\t").Normalize())
	assert.ErrorIs(t, IngredientName("   ").Validate(), ErrValidation)
	assert.NoError(t, IngredientName(" Milk ").Validate())
}

func TestRecipe_Normalized(t *testing.T) {
	in := Recipe{Name: " Mocha ", Price: 60, Requirements: Requirements{"Milk ": 1, "Chocolate": 2}}

	out, err := in.Normalized()
	require.NoError(t, err)
	assert.Equal(t, "Mocha", out.Name)
	assert.Equal(t, Requirements{"Milk": 1, "Chocolate": 2}, out.Requirements)
	assert.Contains(t, in.Requirements, IngredientName("Milk "), "the input is left untouched")

	_, err = Recipe{Name: "Mocha", Price: 60, Requirements: Requirements{"Milk": 1, " Milk": 1}}.Normalized()
	assert.ErrorIs(t, err, ErrValidation)
}
