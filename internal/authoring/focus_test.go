package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusState(t *testing.T) {
	var f FocusState

	f.Focus("stem")
	assert.True(t, f.ToolbarVisible("stem"))

	// Focus moves to the sentence before the stem's blur arrives.
	f.Focus("sentence")
	f.Blur("stem")
	assert.True(t, f.ToolbarVisible("sentence"))
	assert.False(t, f.ToolbarVisible("stem"))

	f.Blur("sentence")
	assert.False(t, f.ToolbarVisible("sentence"))
	assert.False(t, f.ToolbarVisible(""))
}
