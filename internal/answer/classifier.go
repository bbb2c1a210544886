package answer

import "strings"

// Fragments whose presence means the model disclaims real-time knowledge.
var defaultRealTimeIndicators = []string{
	"As of my last update",
	"I'm not able to provide real-time",
	"I'd love to help! However, I'm a large language model, I don't have real-time access",
	"I am an AI and do not have real-time access",
	"check the current date",
	"I can't provide real-time data",
	"I'm not currently able to share the time.",
}

// Fragments that mark an answer as generic or unhelpful.
var defaultGenericIndicators = []string{
	"I'm not sure",
	"I don't know",
	"Could you rephrase?",
}

// IndicatorSet is the ordered list of fragments checked by RequiresFallback.
// It is never mutated after construction and is safe for concurrent use.
type IndicatorSet struct {
	realTime []string
	generic  []string
}

// DefaultIndicators returns the built-in indicator set.
func DefaultIndicators() IndicatorSet {
	return NewIndicatorSet(nil, nil)
}

// NewIndicatorSet returns the built-in fragments followed by the extra ones.
// Empty extras are ignored since they would match every answer.
func NewIndicatorSet(extraRealTime, extraGeneric []string) IndicatorSet {
	return IndicatorSet{
		realTime: appendNonEmpty(clone(defaultRealTimeIndicators), extraRealTime),
		generic:  appendNonEmpty(clone(defaultGenericIndicators), extraGeneric),
	}
}

// RealTime returns a copy of the real-time-unavailable fragments.
func (s IndicatorSet) RealTime() []string { return clone(s.realTime) }

// Generic returns a copy of the generic-response fragments.
func (s IndicatorSet) Generic() []string { return clone(s.generic) }

// RequiresFallback reports whether answer contains any indicator fragment.
// Matching is a plain case-sensitive substring test.
func (s IndicatorSet) RequiresFallback(answer string) bool {
	for _, fragment := range s.realTime {
		if strings.Contains(answer, fragment) {
			return true
		}
	}
	for _, fragment := range s.generic {
		if strings.Contains(answer, fragment) {
			return true
		}
	}
	return false
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func appendNonEmpty(dst, extra []string) []string {
	for _, s := range extra {
		if s != "" {
			dst = append(dst, s)
		}
	}
	return dst
}
