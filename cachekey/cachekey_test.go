package cachekey

import "testing"

func TestJoin(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{
			name:     "three segments",
			segments: []string{"store", "glow", "centro"},
			want:     "store/glow/centro",
		},
		{
			name:     "skips empty segments",
			segments: []string{"brand", "", "glow"},
			want:     "brand/glow",
		},
		{
			name:     "single segment",
			segments: []string{"brand"},
			want:     "brand",
		},
		{
			name:     "all empty",
			segments: []string{"", ""},
			want:     "",
		},
		{
			name:     "no segments",
			segments: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.segments...); got != tt.want {
				t.Errorf("Join(%v) = %q, want %q", tt.segments, got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		key     string
		want    bool
	}{
		{
			name:    "exact match",
			pattern: "store/glow/centro",
			key:     "store/glow/centro",
			want:    true,
		},
		{
			name:    "wildcard middle segment",
			pattern: "store/*/centro",
			key:     "store/glow/centro",
			want:    true,
		},
		{
			name:    "wildcard last segment",
			pattern: "professional/*",
			key:     "professional/maria-silva",
			want:    true,
		},
		{
			name:    "all wildcards",
			pattern: "*/*/*",
			key:     "store/glow/centro",
			want:    true,
		},
		{
			name:    "segment count mismatch",
			pattern: "store/*",
			key:     "store/glow/centro",
			want:    false,
		},
		{
			name:    "literal segment mismatch",
			pattern: "brand/*",
			key:     "store/glow",
			want:    false,
		},
		{
			name:    "empty pattern and key",
			pattern: "",
			key:     "",
			want:    true,
		},
		{
			name:    "empty pattern non-empty key",
			pattern: "",
			key:     "brand/glow",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.pattern, tt.key); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.key, got, tt.want)
			}
		})
	}
}
