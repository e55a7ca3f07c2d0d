package docs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSource_Section(t *testing.T) {
	src := NewDirSource("testdata")

	text, err := src.Section(context.Background(), "n4950", "expr", "expr.prim.lambda")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "### Lambda expressions"))
	assert.Contains(t, text, "Closure types", "deeper headings stay inside the section")
	assert.NotContains(t, text, "id-expression")
}

func TestDirSource_Unavailable(t *testing.T) {
	src := NewDirSource("testdata")
	ctx := context.Background()

	_, err := src.Section(ctx, "n3337", "expr", "expr")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = src.Section(ctx, "n4950", "../n4950/expr", "expr")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = src.Section(ctx, "n4950", "", "expr")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDirSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDirSource("testdata").Section(ctx, "n4950", "expr", "expr")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractSection(t *testing.T) {
	md := "# A <a id=\"a\"></a>\nintro\n## B <a id=\"a.b\"></a>\nbody b\n## C <a id=\"a.c\"></a>\nbody c\n"

	assert.Equal(t, "## B <a id=\"a.b\"></a>\nbody b", ExtractSection(md, "a.b"))
	assert.Equal(t, "## C <a id=\"a.c\"></a>\nbody c", ExtractSection(md, "a.c"))
	assert.Equal(t, strings.TrimSpace(md), ExtractSection(md, "a"))
	assert.Equal(t, md, ExtractSection(md, "missing"))
}

func TestLinks(t *testing.T) {
	text := "See [[class.copy]] and [[expr.prim.id]]."
	assert.Equal(t, []string{"class.copy", "expr.prim.id"}, Links(text))
	assert.Equal(t, "See [class.copy] and [expr.prim.id].", PlainLinks(text))
	assert.Nil(t, Links("no links"))
}
