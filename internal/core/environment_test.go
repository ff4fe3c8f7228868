package core

import "testing"

func TestParseEnvironment(t *testing.T) {
	tests := map[string]Environment{
		"production": Production,
		" PROD ":     Production,
		"staging":    Staging,
		"test":       Testing,
		"":           Development,
		"whatever":   Development,
	}
	for in, want := range tests {
		if got := ParseEnvironment(in); got != want {
			t.Errorf("ParseEnvironment(%q) = %q, want %q", in, got, want)
		}
	}
	if !Production.IsProduction() || Staging.IsProduction() {
		t.Error("IsProduction mismatch")
	}
}
