package publink

import (
	"strings"
	"unicode"
)

// BuildDisplay projects a PublicLink into its DisplayModel. A missing name
// falls back to a title-cased form of the slug ("maria-silva" becomes
// "Maria Silva"), so every resolved entity has something renderable.
func BuildDisplay(link PublicLink) DisplayModel {
	name := link.Name
	if name == "" {
		name = TitleFromSlug(link.Slug)
	}

	return DisplayModel{
		Name:        name,
		Slug:        link.Slug,
		Status:      link.Status,
		Logo:        link.Logo,
		Avatar:      link.Avatar,
		Description: link.Description,
	}
}

// TitleFromSlug turns a hyphenated slug into a human-readable title.
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
