package wordindex

import (
	"strings"
	"testing"

	"github.com/npillmayer/isam"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fox = "The quick brown fox jumps over the lazy dog. The dog sleeps."

func TestNormalize(t *testing.T) {
	w, lead := Normalize("(Hello, ")
	assert.Equal(t, "hello", w)
	assert.Equal(t, 1, lead)
	w, _ = Normalize("-- ")
	assert.Empty(t, w)
	w, _ = Normalize("Straße.")
	assert.Equal(t, "straße", w)
}

func TestTokenizeOffsets(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	text := "Hello world again"
	var words []string
	Tokenize(strings.NewReader(text), func(word string, offset int) {
		words = append(words, word)
		assert.True(t, strings.HasPrefix(strings.ToLower(text[offset:]), word),
			"word %q not found at offset %d", word, offset)
	})
	assert.Equal(t, []string{"hello", "world", "again"}, words)
}

func TestIndexLookup(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	ix, err := New(0)
	require.NoError(t, err)
	n, err := ix.AddString("fox", fox)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	_, err = ix.AddString("dogs", "Dogs and a dog.")
	require.NoError(t, err)

	occ, err := ix.Lookup("Dog")
	require.NoError(t, err)
	require.Len(t, occ, 3)
	assert.Equal(t, "fox", occ[0].Doc)
	assert.Equal(t, "fox", occ[1].Doc)
	assert.Equal(t, "dogs", occ[2].Doc)
	assert.Less(t, occ[0].Offset, occ[1].Offset)

	count, err := ix.Count("the")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	count, err = ix.Count("cat")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = ix.AddString("fox", "again")
	assert.ErrorIs(t, err, isam.ErrDuplicate)
}

func TestIndexPrefixAndTop(t *testing.T) {
	ix, err := New(0)
	require.NoError(t, err)
	_, err = ix.AddString("a", "dog doggy dogma cat dog door")
	require.NoError(t, err)

	words, err := ix.Prefix("dog")
	require.NoError(t, err)
	assert.Equal(t, []WordCount{{"dog", 2}, {"doggy", 1}, {"dogma", 1}}, words)

	words, err = ix.Prefix("x")
	require.NoError(t, err)
	assert.Empty(t, words)

	top, err := ix.Top(2)
	require.NoError(t, err)
	assert.Equal(t, []WordCount{{"dog", 2}, {"cat", 1}}, top)
}

func TestIndexRemoveDocument(t *testing.T) {
	ix, err := New(0)
	require.NoError(t, err)
	for _, doc := range []string{"one", "two", "three"} {
		_, err := ix.AddString(doc, strings.Repeat(doc+" shared ", 10))
		require.NoError(t, err)
	}
	removed, err := ix.Remove("two")
	require.NoError(t, err)
	assert.Equal(t, 20, removed)

	count, _ := ix.Count("shared")
	assert.Equal(t, 20, count)
	count, _ = ix.Count("two")
	assert.Zero(t, count)
	docs, _ := ix.Docs()
	assert.Equal(t, []string{"one", "three"}, docs)
	assert.NoError(t, ix.Collection().Check())

	_, err = ix.Remove("two")
	assert.ErrorIs(t, err, isam.ErrNotFound)
}

func TestAddHTML(t *testing.T) {
	ix, err := New(0)
	require.NoError(t, err)
	page := `<p>Hello <b>bold</b> world</p><script>var hidden = 1;</script>`
	n, err := ix.AddHTML("page", strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	count, _ := ix.Count("hidden")
	assert.Zero(t, count)
	count, _ = ix.Count("bold")
	assert.Equal(t, 1, count)
}
