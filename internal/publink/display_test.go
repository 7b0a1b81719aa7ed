package publink

import "testing"

func TestBuildDisplay(t *testing.T) {
	t.Run("uses stored name when present", func(t *testing.T) {
		link := PublicLink{
			Name:   "Glow Beauty Centro",
			Slug:   "centro",
			Status: StatusActive,
			Logo:   "https://cdn.example.com/glow.png",
		}
		d := BuildDisplay(link)
		if d.Name != "Glow Beauty Centro" {
			t.Errorf("Name = %q, want stored name", d.Name)
		}
		if d.Logo != link.Logo {
			t.Errorf("Logo = %q, want %q", d.Logo, link.Logo)
		}
	})

	t.Run("falls back to title-cased slug", func(t *testing.T) {
		link := PublicLink{Slug: "maria-silva", Status: StatusActive}
		d := BuildDisplay(link)
		if d.Name != "Maria Silva" {
			t.Errorf("Name = %q, want %q", d.Name, "Maria Silva")
		}
	})

	t.Run("keeps status and slug", func(t *testing.T) {
		link := PublicLink{Slug: "centro", Status: StatusDisabled}
		d := BuildDisplay(link)
		if d.Slug != "centro" {
			t.Errorf("Slug = %q, want %q", d.Slug, "centro")
		}
		if d.Status != StatusDisabled {
			t.Errorf("Status = %q, want %q", d.Status, StatusDisabled)
		}
	})
}

func TestTitleFromSlug(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"maria-silva", "Maria Silva"},
		{"glow", "Glow"},
		{"porto-alegre", "Porto Alegre"},
		{"", ""},
		{"a--b", "A  B"},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := TitleFromSlug(tt.slug); got != tt.want {
				t.Errorf("TitleFromSlug(%q) = %q, want %q", tt.slug, got, tt.want)
			}
		})
	}
}
