package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionWindow_Validate(t *testing.T) {
	assert.NoError(t, OptionWindow{From: "18:00", To: "19:00"}.Validate())
	assert.Error(t, OptionWindow{From: "19:00", To: "18:00"}.Validate())
	assert.Error(t, OptionWindow{From: "18:00", To: "18:00"}.Validate())
	assert.Error(t, OptionWindow{From: "18", To: "19:00"}.Validate())
}

func TestOptionTarget_IsValid(t *testing.T) {
	assert.True(t, OptionTargetPairedDay.IsValid())
	assert.True(t, OptionTargetBoth.IsValid())
	assert.False(t, OptionTarget("day").IsValid())
}
