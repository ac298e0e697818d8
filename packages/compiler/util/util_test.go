package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitAtColon(t *testing.T) {
	tests := []struct {
		input    string
		defaults []string
		want     []string
	}{
		{"value: alias", nil, []string{"value", "alias"}},
		{"window:resize", nil, []string{"window", "resize"}},
		{"a:b:c", nil, []string{"a", "b:c"}},
		{"value", []string{"value", "value"}, []string{"value", "value"}},
		{"value", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitAtColon(tt.input, tt.defaults)); diff != "" {
				t.Errorf("SplitAtColon(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := map[string]string{
		"Cmp_click_listener": "Cmp_click_listener",
		"Cmp_keydown.enter":  "Cmp_keydown_enter",
		"$event-handler":     "$event_handler",
		"é":                  "_",
	}
	for input, want := range tests {
		if got := SanitizeIdentifier(input); got != want {
			t.Errorf("SanitizeIdentifier(%q) = %q, want %q", input, got, want)
		}
	}
}
