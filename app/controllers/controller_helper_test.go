package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectiveFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		clear, replace, hasNew bool
		want                   mediaDirective
	}{
		{"nothing", false, false, false, directiveKeep},
		{"uploads only", false, false, true, directiveAppend},
		{"replace without uploads", false, true, false, directiveKeep},
		{"replace with uploads", false, true, true, directiveReplace},
		{"clear only", true, false, false, directiveClear},
		{"clear with uploads becomes replace", true, false, true, directiveReplace},
		{"clear and replace with uploads", true, true, true, directiveReplace},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, directiveFor(tc.clear, tc.replace, tc.hasNew))
		})
	}
}

func TestApplyDirective(t *testing.T) {
	t.Parallel()

	existing := []string{"a", "b"}
	incoming := []string{"c"}

	assert.Equal(t, existing, applyDirective(existing, incoming, directiveKeep))
	assert.Equal(t, []string{"a", "b", "c"}, applyDirective(existing, incoming, directiveAppend))
	assert.Equal(t, incoming, applyDirective(existing, incoming, directiveReplace))
	assert.Nil(t, applyDirective(existing, incoming, directiveClear))
	// Append must not alias the existing slice.
	appended := applyDirective(existing, incoming, directiveAppend)
	appended[0] = "changed"
	assert.Equal(t, "a", existing[0])
}
