package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageText(t *testing.T) {
	page := `<!doctype html>
<html>
<head><title>Tomato Soup</title><style>body { color: red }</style></head>
<body>
  <header><a href="/">My Food Blog</a></header>
  <nav><ul><li>Home</li><li>About</li></ul></nav>
  <main>
    <h1>Tomato   Soup</h1>
    <!-- ad slot -->
    <p>Roast the tomatoes.
       Blend until smooth.</p>
    <svg><text>icon</text></svg>
  </main>
  <aside>Subscribe!</aside>
  <script>trackVisitor()</script>
  <footer>Copyright</footer>
</body>
</html>`

	text, err := PageText(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Tomato Soup Tomato Soup Roast the tomatoes. Blend until smooth.", text)
}

func TestPageTextTruncates(t *testing.T) {
	page := "<p>" + strings.Repeat("é", maxPromptRunes+500) + "</p>"

	text, err := PageText(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, maxPromptRunes, utf8.RuneCountInString(text))
}
