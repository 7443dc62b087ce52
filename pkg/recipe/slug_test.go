package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Vegan", "vegan"},
		{"Quick & Easy", "quick-easy"},
		{"  Gluten   Free ", "gluten-free"},
		{"Crème Brûlée", "creme-brulee"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestTagsFromNames(t *testing.T) {
	tags := tagsFromNames([]string{"Vegan", " vegan ", "Quick & Easy", "", "  "})

	if assert.Len(t, tags, 2) {
		assert.Equal(t, "Vegan", tags[0].Name)
		assert.Equal(t, "vegan", tags[0].Slug)
		assert.Equal(t, "Quick & Easy", tags[1].Name)
		assert.Equal(t, "quick-easy", tags[1].Slug)
	}
}

func TestSlugifyFitsColumn(t *testing.T) {
	// each of these is a valid 50 character tag name
	names := []string{
		strings.Repeat("中", 50),
		strings.Repeat("ß", 50),
		strings.Repeat("@", 50),
		strings.Repeat("a ", 25),
	}
	for _, name := range names {
		got := Slugify(name)
		assert.NotEmpty(t, got, name)
		assert.LessOrEqual(t, len(got), maxSlugLength, name)
		assert.False(t, strings.HasSuffix(got, "-"), got)
		assert.Equal(t, got, Slugify(name))
	}
}
