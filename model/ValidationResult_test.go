package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationResult(t *testing.T) {
	ok := NewValidResult()
	assert.True(t, ok.OK())
	assert.Equal(t, "valid", ok.String())

	failed := NewInvalidResult("block %s does not meet difficulty target", "00ff")
	assert.False(t, failed.OK())
	assert.Equal(t, "block 00ff does not meet difficulty target", failed.Reason)
	assert.Equal(t, "invalid: block 00ff does not meet difficulty target", failed.String())

	var missing *ValidationResult
	assert.False(t, missing.OK())
	assert.Equal(t, "invalid", missing.String())
}
