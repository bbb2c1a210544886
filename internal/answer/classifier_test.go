package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiresFallback(t *testing.T) {
	set := DefaultIndicators()

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"plain factual answer", "Paris is the capital of France.", false},
		{"last update disclaimer", "As of my last update, I don't know.", true},
		{"generic unsure", "Hmm, I'm not sure about that.", true},
		{"rephrase request", "Could you rephrase? The question is unclear.", true},
		{"real-time disclaimer", "I can't provide real-time data, sorry.", true},
		{"fragment in the middle", "Well... check the current date on your device.", true},
		{"case differs", "as of my last update, Paris.", false},
		{"curly apostrophe differs", "I’m not sure", false},
		{"empty answer", "", false},
		{"partial fragment", "As of my last", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.RequiresFallback(tt.answer))
		})
	}
}

func TestNewIndicatorSet_Extends(t *testing.T) {
	set := NewIndicatorSet([]string{"my knowledge cutoff", ""}, []string{"I cannot help"})

	assert.True(t, set.RequiresFallback("Beyond my knowledge cutoff, unknown."))
	assert.True(t, set.RequiresFallback("I cannot help with that."))
	assert.True(t, set.RequiresFallback("As of my last update"), "built-in fragments are kept")
	assert.False(t, set.RequiresFallback("Paris."), "empty extras must not match everything")
	assert.Len(t, set.RealTime(), len(defaultRealTimeIndicators)+1)
	assert.Len(t, set.Generic(), len(defaultGenericIndicators)+1)
}

func TestIndicatorSet_CopiesAreIsolated(t *testing.T) {
	set := DefaultIndicators()
	rt := set.RealTime()
	rt[0] = "mutated"

	assert.Equal(t, "As of my last update", set.RealTime()[0])
	assert.Equal(t, "As of my last update", defaultRealTimeIndicators[0])
}
