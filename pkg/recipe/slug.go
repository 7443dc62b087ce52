package recipe

import (
	"strings"

	"github.com/gosimple/slug"

	"recipe-hub/entities"
)

// maxSlugLength matches the varchar(60) slug columns on tags and categories.
const maxSlugLength = 60

// Slugify derives the url-safe identifier used for tags and categories.
// "&" is treated as a separator so "Quick & Easy" becomes "quick-easy".
// Transliteration can expand a short name several times over, so the
// result is cut to maxSlugLength.
func Slugify(name string) string {
	s := slug.Make(strings.ReplaceAll(name, "&", " "))
	if len(s) > maxSlugLength {
		// slug output is ASCII, a byte cut never splits a rune
		s = strings.TrimRight(s[:maxSlugLength], "-")
	}
	return s
}

// tagsFromNames trims the names, drops blanks, and keeps the first name
// seen for each slug.
func tagsFromNames(names []string) []entities.Tag {
	seen := make(map[string]struct{}, len(names))
	tags := make([]entities.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		s := Slugify(name)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		tags = append(tags, entities.Tag{Name: name, Slug: s})
	}
	return tags
}
