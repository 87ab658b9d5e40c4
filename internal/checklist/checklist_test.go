package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_WhenAllItemsDetected_ThenReturnsEmpty(t *testing.T) {
	// Arrange
	required := []string{"person", "helmet", "gloves"}
	detected := []string{"gloves", "person", "helmet", "boots"}

	// Act
	missing := Evaluate(required, detected)

	// Assert
	assert.Empty(t, missing)
}

func TestEvaluate_WhenSomeItemsMissing_ThenReturnsThemInRequiredOrder(t *testing.T) {
	// Arrange
	required := []string{"person", "helmet", "gloves", "vest"}
	detected := []string{"person", "gloves"}

	// Act
	missing := Evaluate(required, detected)

	// Assert
	assert.Equal(t, []string{"helmet", "vest"}, missing)
}

func TestEvaluate_WhenNothingDetected_ThenReturnsAllRequired(t *testing.T) {
	// Arrange
	required := []string{"person", "helmet"}

	// Act
	missing := Evaluate(required, nil)

	// Assert
	assert.Equal(t, required, missing)
}

func TestEvaluate_WhenNoRequiredItems_ThenReturnsEmpty(t *testing.T) {
	// Act
	missing := Evaluate(nil, []string{"person"})

	// Assert
	assert.Empty(t, missing)
}

func TestEvaluate_WhenDuplicateDetections_ThenStillExact(t *testing.T) {
	// Arrange
	required := []string{"person", "helmet"}
	detected := []string{"person", "person", "person"}

	// Act
	missing := Evaluate(required, detected)

	// Assert
	assert.Equal(t, []string{"helmet"}, missing)
}

func TestEvaluate_WhenCalledTwice_ThenIdempotent(t *testing.T) {
	// Arrange
	required := []string{"person", "helmet", "gloves"}
	detected := []string{"helmet"}

	// Act
	first := Evaluate(required, detected)
	second := Evaluate(required, detected)

	// Assert
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"person", "gloves"}, first)
}

func TestContains_WhenItemPresent_ThenTrue(t *testing.T) {
	assert.True(t, Contains([]string{"person", "helmet"}, "person"))
	assert.False(t, Contains([]string{"helmet"}, "person"))
	assert.False(t, Contains(nil, "person"))
}
