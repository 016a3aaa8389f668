package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/vastra/app/models"
)

func TestColorPalette(t *testing.T) {
	assert.Equal(t, []string{"Red", "Blue", "Green", "Yellow", "Black", "White"}, models.Colors)

	for _, c := range models.Colors {
		assert.True(t, models.ValidColor(c), c)
	}
	assert.False(t, models.ValidColor("Pink"))
	assert.False(t, models.ValidColor("Purple"))
	assert.False(t, models.ValidColor("Gray"))
}

func TestValidSize(t *testing.T) {
	for _, s := range models.Sizes {
		assert.True(t, models.ValidSize(s), s)
	}
	assert.False(t, models.ValidSize("XXL"))
}
