package trafilatura_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tickerlens/tickerlens"
	"github.com/tickerlens/tickerlens/trafilatura"
)

func articleHTML(paragraphs int) string {
	var sb strings.Builder
	sb.WriteString(`<html lang="en"><head>
<title>Tech Stocks Extend Rally</title>
<meta property="article:published_time" content="2026-08-20T09:30:00Z">
</head><body><nav><a href="/">Home</a></nav><article>
<h1>Tech Stocks Extend Rally</h1>`)
	for i := 0; i < paragraphs; i++ {
		fmt.Fprintf(&sb, "<p>Paragraph %d: large technology shares climbed again as investors weighed earnings reports against interest rate expectations.</p>\n", i)
	}
	sb.WriteString(`</article><footer>Copyright</footer></body></html>`)
	return sb.String()
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content and metadata", func(t *testing.T) {
		t.Parallel()

		n := trafilatura.NewNormalizer()
		doc, err := n.Normalize(articleHTML(5), "https://news.example.com/tech-rally")
		require.NoError(t, err)

		assert.Equal(t, "https://news.example.com/tech-rally", doc.URL)
		assert.Equal(t, "news.example.com", doc.Host)
		assert.Contains(t, doc.Title, "Tech Stocks Extend Rally")
		assert.Contains(t, doc.BodyText, "technology shares climbed")
		assert.NotContains(t, doc.BodyText, "\n")
	})

	t.Run("rejects pages with too little content", func(t *testing.T) {
		t.Parallel()

		n := trafilatura.NewNormalizer()
		_, err := n.Normalize("<html><body><p>hi</p></body></html>", "https://a.com/x")
		require.Error(t, err)
		assert.Equal(t, tickerlens.EREJECTED, tickerlens.ErrorCode(err))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		n := trafilatura.NewNormalizer()
		_, err := n.Normalize("", "https://a.com/x")
		require.Error(t, err)
		assert.Equal(t, tickerlens.EINVALID, tickerlens.ErrorCode(err))
	})

	t.Run("rejects a source URL without host", func(t *testing.T) {
		t.Parallel()

		n := trafilatura.NewNormalizer()
		_, err := n.Normalize(articleHTML(5), "///nohost")
		require.Error(t, err)
		assert.Equal(t, tickerlens.EINVALID, tickerlens.ErrorCode(err))
	})

	t.Run("custom minimum length", func(t *testing.T) {
		t.Parallel()

		n := trafilatura.NewNormalizer()
		n.MinLength = 10_000
		_, err := n.Normalize(articleHTML(5), "https://a.com/x")
		require.Error(t, err)
		assert.Equal(t, tickerlens.EREJECTED, tickerlens.ErrorCode(err))
	})
}
