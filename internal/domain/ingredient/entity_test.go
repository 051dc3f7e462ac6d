package ingredient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ing, err := New("tomato", CategoryVegetable)
	require.NoError(t, err)
	assert.Equal(t, CategoryVegetable, ing.Category)

	// unknown categories fall back to other
	ing, err = New("mystery", Category("weird"))
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, ing.Category)

	_, err = New("", CategoryVegetable)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNutritionFor(t *testing.T) {
	ing := &Ingredient{
		Calories:     52,
		Protein:      0.3,
		Fat:          0.2,
		Carbohydrate: 13.8,
		Fiber:        2.4,
	}

	scaled, err := ing.NutritionFor(250)
	require.NoError(t, err)
	assert.InDelta(t, 130, scaled.Calories, 0.001)
	assert.InDelta(t, 0.75, scaled.Protein, 0.001)
	assert.InDelta(t, 34.5, scaled.Carbohydrate, 0.001)
	assert.InDelta(t, 6, scaled.Fiber, 0.001)

	_, err = ing.NutritionFor(0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = ing.NutritionFor(-10)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestIsSeasonal(t *testing.T) {
	ing := &Ingredient{Season: []int{6, 7, 8}}
	assert.True(t, ing.IsSeasonal(time.July))
	assert.False(t, ing.IsSeasonal(time.December))

	yearRound := &Ingredient{}
	assert.False(t, yearRound.IsSeasonal(time.July))
}

func TestTopItem(t *testing.T) {
	rec := &Recognition{
		Result: RecognitionResult{
			Ingredients: []RecognizedItem{
				{Name: "tomato", Confidence: 0.95},
				{Name: "egg", Confidence: 0.89},
				{Name: "scallion", Confidence: 0.72},
			},
		},
	}

	top := rec.TopItem()
	require.NotNil(t, top)
	assert.Equal(t, "tomato", top.Name)

	empty := &Recognition{}
	assert.Nil(t, empty.TopItem())
}

func TestRecognizedNames(t *testing.T) {
	rec := &Recognition{
		Result: RecognitionResult{
			Ingredients: []RecognizedItem{
				{Name: "tomato"},
				{Name: "egg"},
			},
		},
	}
	assert.Equal(t, []string{"tomato", "egg"}, rec.RecognizedNames())
}
