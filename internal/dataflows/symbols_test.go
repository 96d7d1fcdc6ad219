package dataflows

import "testing"

func TestResolveSymbol(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"apple", "AAPL", false},
		{"Apple", "AAPL", false},
		{"TSLA", "TSLA", false},
		{"msft", "MSFT", false},
		{"700.HK", "700.HK", false},
		{"", "", true},
		{"   ", "", true},
		{"not a ticker", "", true},
		{"waytoolongsymbolname", "", true},
	}

	for _, tt := range tests {
		got, err := ResolveSymbol(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ResolveSymbol(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveSymbol(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveSymbol(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateSymbol(t *testing.T) {
	for _, valid := range []string{"AAPL", "brk.b", "9988.HK"} {
		if err := ValidateSymbol(valid); err != nil {
			t.Errorf("ValidateSymbol(%q) failed: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "with space", "waytoolongsymbolname"} {
		if err := ValidateSymbol(invalid); err == nil {
			t.Errorf("ValidateSymbol(%q): expected error", invalid)
		}
	}
}
