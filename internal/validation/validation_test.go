package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
		wantMsg string
	}{
		{name: "plain", raw: "I feel happy", want: "I feel happy"},
		{name: "trimmed", raw: "  calm today \n", want: "calm today"},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: " \t\n ", wantErr: true},
		{name: "exactly max", raw: strings.Repeat("a", 1000), want: strings.Repeat("a", 1000)},
		{name: "too long", raw: strings.Repeat("a", 1001), wantErr: true},
		{name: "multibyte counts runes", raw: strings.Repeat("é", 1000), want: strings.Repeat("é", 1000)},
		{name: "crisis keyword", raw: "I want to end it all", wantErr: true, wantMsg: CrisisMessage},
		{name: "crisis keyword any case", raw: "Thinking about SUICIDE", wantErr: true, wantMsg: CrisisMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.raw, DefaultRules())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Text() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("errors.Is(err, ErrInvalidInput) = false for %v", err)
				}
				if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestText_CustomRules(t *testing.T) {
	rules := Rules{MaxLength: 5, CrisisKeywords: []string{"  Danger "}}

	if _, err := Text("abcdef", rules); err == nil {
		t.Error("expected length error")
	}
	if _, err := Text("danger", rules); err == nil {
		t.Error("expected keyword error")
	}
	if got, err := Text("fine", rules); err != nil || got != "fine" {
		t.Errorf("Text(fine) = %q, %v", got, err)
	}
	if _, err := Text("suicide", rules); err != nil {
		t.Errorf("default keywords should not apply with custom rules: %v", err)
	}
}

func TestText_ZeroRulesUseDefaultLength(t *testing.T) {
	if _, err := Text(strings.Repeat("x", 1000), Rules{}); err != nil {
		t.Errorf("Text() error = %v", err)
	}
	if _, err := Text(strings.Repeat("x", 1001), Rules{}); err == nil {
		t.Error("expected length error")
	}
}
