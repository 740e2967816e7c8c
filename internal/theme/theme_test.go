package theme

import (
	"strings"
	"testing"
)

func TestBadges(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"admin", RoleBadge(true), "[Admin]"},
		{"user", RoleBadge(false), "[User]"},
		{"disabled", StatusBadge(true), "[Disabled]"},
		{"active", StatusBadge(false), "[Active]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.got, tt.want) {
				t.Errorf("badge = %q, want it to contain %q", tt.got, tt.want)
			}
		})
	}
}

func TestVariantColorDefaultsToDanger(t *testing.T) {
	if VariantColor("") != VariantColor(VariantDanger) {
		t.Error("unknown variant should fall back to danger")
	}
	if VariantColor(VariantSuccess) == VariantColor(VariantDanger) {
		t.Error("success and danger should differ")
	}
}
