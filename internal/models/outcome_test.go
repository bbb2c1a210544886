package models

import "testing"

func TestResolutionOutcome_IsFallback(t *testing.T) {
	tests := []struct {
		name     string
		outcome  string
		expected bool
	}{
		{"model answer", OutcomeModel, false},
		{"search answer", OutcomeSearch, true},
		{"empty search", OutcomeSearchEmpty, true},
		{"search status error", OutcomeSearchStatusError, true},
		{"search transport error", OutcomeSearchTransportError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &ResolutionOutcome{Outcome: tt.outcome}
			if got := o.IsFallback(); got != tt.expected {
				t.Errorf("IsFallback() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOutcomesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, o := range Outcomes {
		if seen[o] {
			t.Errorf("duplicate outcome %q", o)
		}
		seen[o] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 outcomes, got %d", len(seen))
	}
}
