package width

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "AB", 2},
		{"kanji", "山田", 4},
		{"mixed", "A1 山田太郎", 11},
		{"hangul", "한국", 4},
		{"fullwidth letter", "Ａ", 2},
		{"halfwidth katakana", "ｱ", 1},
		{"accented latin", "café", 4},
		{"escaped pipe", `a\|b`, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.in); got != tt.want {
				t.Errorf("String(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestRune(t *testing.T) {
	if got := Rune('山'); got != 2 {
		t.Errorf("Rune('山') = %d, want 2", got)
	}
	if got := Rune('x'); got != 1 {
		t.Errorf("Rune('x') = %d, want 1", got)
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		target int
		want   string
	}{
		{"pads ascii", "ab", 4, "ab  "},
		{"pads wide", "山", 4, "山  "},
		{"exact", "abcd", 4, "abcd"},
		{"never truncates", "abcdef", 4, "abcdef"},
		{"zero target", "", 0, ""},
		{"empty to width", "", 3, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pad(tt.in, tt.target)
			if got != tt.want {
				t.Errorf("Pad(%q, %d) = %q, want %q", tt.in, tt.target, got, tt.want)
			}
			if tt.target > 0 && String(got) < tt.target {
				t.Errorf("Pad(%q, %d) width %d below target", tt.in, tt.target, String(got))
			}
		})
	}
}
