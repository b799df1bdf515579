package gallery

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Kittens", "kittens"},
		{"spaces", "Summer Trip 2026", "summer-trip-2026"},
		{"punctuation", "Juhlat: iltabileet!", "juhlat-iltabileet"},
		{"finnish characters", "Kesämökki", "kesamokki"},
		{"multiple separators", "a -- b", "a-b"},
		{"leading separator", "  hello", "hello"},
		{"trailing separator", "hello!!", "hello"},
		{"empty", "", ""},
		{"only separators", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
