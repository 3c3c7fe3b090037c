package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkryger/commentary/internal/document"
)

func renderString(t *testing.T, markdown string) *Block {
	t.Helper()
	doc := document.Parse("README.md", []byte(markdown))
	block, err := Commentary(doc, DefaultConfig())
	require.NoError(t, err)
	return block
}

func TestCommentary_StripsTitle(t *testing.T) {
	block := renderString(t, "# Foo\n\nHello world.\n")

	assert.Equal(t, []string{";; Hello world."}, block.Lines())
	assert.NotContains(t, block.Text(), "Foo")
}

func TestCommentary_Deterministic(t *testing.T) {
	src := "# Title\n\nSome prose here.\n\n```lisp\n(provide 'foo)\n```\n\nMore prose.\n"
	doc := document.Parse("README.md", []byte(src))

	first, err := Commentary(doc, DefaultConfig())
	require.NoError(t, err)
	second, err := Commentary(doc, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, first.Text(), second.Text())
}

func TestCommentary_BlankLinesUseBareMarker(t *testing.T) {
	block := renderString(t, "# T\n\nOne.\n\nTwo.\n")

	assert.Equal(t, []string{";; One.", ";;", ";; Two."}, block.Lines())
	for _, line := range block.Lines() {
		assert.False(t, strings.HasSuffix(line, " "), "no trailing whitespace: %q", line)
	}
}

func TestCommentary_EveryLineCarriesMarker(t *testing.T) {
	block := renderString(t, "# T\n\nIntro.\n\n## Usage\n\n- one\n- two\n\n```\ncode\n```\n")

	for _, line := range block.Lines() {
		assert.True(t, strings.HasPrefix(line, ";;"), "line %q must start with the marker", line)
	}
}

func TestCommentary_CodeBlockVerbatim(t *testing.T) {
	src := "# T\n\nBefore.\n\n```elisp\n(setq x 1)\n\n    (indented   spaces)\n```\n\nAfter.\n"
	block := renderString(t, src)

	want := []string{
		";; Before.",
		";;",
		";; (setq x 1)",
		";;",
		";;     (indented   spaces)",
		";;",
		";; After.",
	}
	assert.Equal(t, want, block.Lines())
}

func TestCommentary_ReflowsProseToWidth(t *testing.T) {
	long := strings.Repeat("word ", 60)
	block := renderString(t, "# T\n\n"+long+"\n")

	lines := block.Lines()
	require.Greater(t, len(lines), 1, "long prose must wrap")
	for _, line := range lines {
		// 75 columns of prose plus the ";; " prefix
		assert.LessOrEqual(t, len(line), 78, "line too long: %q", line)
	}
}

func TestCommentary_HeadingsBelowTitleKept(t *testing.T) {
	block := renderString(t, "# Title\n\nIntro.\n\n## Usage\n\nRun it.\n")

	text := block.Text()
	assert.NotContains(t, text, "Title")
	assert.Contains(t, text, ";; Usage")
	assert.Contains(t, text, ";; Run it.")
}

func TestCommentary_Lists(t *testing.T) {
	block := renderString(t, "# T\n\n- alpha\n- beta\n\n1. first\n2. second\n")

	text := block.Text()
	assert.Contains(t, text, ";; - alpha")
	assert.Contains(t, text, ";; - beta")
	assert.Contains(t, text, ";; 1. first")
	assert.Contains(t, text, ";; 2. second")
}

func TestCommentary_InlineMarkupFlattened(t *testing.T) {
	block := renderString(t, "# T\n\nUse `M-x foo` and *not* that.\n")

	assert.Equal(t, []string{";; Use M-x foo and not that."}, block.Lines())
}

func TestCommentary_TitleOnlyDocumentFails(t *testing.T) {
	doc := document.Parse("README.md", []byte("# Only A Title\n"))

	_, err := Commentary(doc, DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExportFailure)
}

func TestCommentary_CustomPrefix(t *testing.T) {
	doc := document.Parse("README.md", []byte("# T\n\nHi.\n"))

	block, err := Commentary(doc, Config{Prefix: "//", Width: 75})
	require.NoError(t, err)
	assert.Equal(t, []string{"// Hi."}, block.Lines())
}

func TestWrap(t *testing.T) {
	t.Run("fills greedily", func(t *testing.T) {
		lines := wrap("aa bb cc dd", 5)
		assert.Equal(t, []string{"aa bb", "cc dd"}, lines)
	})

	t.Run("keeps overlong words whole", func(t *testing.T) {
		lines := wrap("tiny enormousenormousword tiny", 8)
		assert.Equal(t, []string{"tiny", "enormousenormousword", "tiny"}, lines)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, wrap("   ", 10))
	})
}
