package wordindex

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/npillmayer/isam"
	"github.com/npillmayer/isam/rwlock"
)

// Occurrence locates a word in a document.
type Occurrence struct {
	Doc    string // document name
	Offset int    // byte offset of the word in the document's text
}

// WordCount is a word together with the number of its occurrences.
type WordCount struct {
	Word  string
	Count int
}

// Index is a concordance over named documents. It is safe for concurrent
// use.
type Index struct {
	lock  *rwlock.Lock
	words *isam.MultiMap[string, Occurrence]
	docs  *isam.Set[string]
}

// New creates an empty index. Operations wait at most timeout for other
// operations to finish; timeout = 0 waits forever.
func New(timeout time.Duration, opts ...isam.Option) (*Index, error) {
	words, err := isam.NewMultiMap[string, Occurrence](append([]isam.Option{isam.WithName("words")}, opts...)...)
	if err != nil {
		return nil, err
	}
	docs, err := isam.NewSet[string](isam.WithName("documents"))
	if err != nil {
		return nil, err
	}
	return &Index{
		lock:  rwlock.New(timeout),
		words: words,
		docs:  docs,
	}, nil
}

// Collection gives access to the underlying word collection, e.g. for statistics.
func (ix *Index) Collection() *isam.MultiMap[string, Occurrence] {
	return ix.words
}

// Add indexes the text read from r as document doc and returns the number of
// words found. Adding a document name twice fails with isam.ErrDuplicate.
func (ix *Index) Add(doc string, r io.Reader) (int, error) {
	if err := ix.lock.AcquireWrite(context.Background()); err != nil {
		return 0, err
	}
	defer ix.lock.Release()
	if err := ix.docs.Add(doc); err != nil {
		return 0, fmt.Errorf("document %q: %w", doc, err)
	}
	n := 0
	var err error
	Tokenize(r, func(word string, offset int) {
		if err != nil {
			return
		}
		_, err = ix.words.Add(word, Occurrence{Doc: doc, Offset: offset})
		n++
	})
	if err != nil {
		return n, err
	}
	tracer().Debugf("isam: indexed %d words of %q", n, doc)
	return n, nil
}

// AddString indexes text as document doc.
func (ix *Index) AddString(doc, text string) (int, error) {
	return ix.Add(doc, strings.NewReader(text))
}

// Lookup returns all occurrences of word, in order of document insertion.
// The word is normalized before lookup.
func (ix *Index) Lookup(word string) ([]Occurrence, error) {
	if err := ix.lock.AcquireRead(context.Background()); err != nil {
		return nil, err
	}
	defer ix.lock.Release()
	w, _ := Normalize(word)
	return ix.words.GetAll(w)
}

// Count returns the number of occurrences of word.
func (ix *Index) Count(word string) (int, error) {
	if err := ix.lock.AcquireRead(context.Background()); err != nil {
		return 0, err
	}
	defer ix.lock.Release()
	w, _ := Normalize(word)
	return ix.words.Count(w)
}

// Words returns all distinct words in ascending order, with their counts.
func (ix *Index) Words() ([]WordCount, error) {
	return ix.prefixed("")
}

// Prefix returns the distinct words starting with prefix, in ascending
// order, with their counts.
func (ix *Index) Prefix(prefix string) ([]WordCount, error) {
	return ix.prefixed(strings.ToLower(prefix))
}

func (ix *Index) prefixed(prefix string) ([]WordCount, error) {
	if err := ix.lock.AcquireRead(context.Background()); err != nil {
		return nil, err
	}
	defer ix.lock.Release()
	from, err := ix.words.Seek(prefix)
	if err != nil {
		return nil, err
	}
	var counts []WordCount
	for w := range ix.words.From(from) {
		if !strings.HasPrefix(w, prefix) {
			break
		}
		if k := len(counts); k > 0 && counts[k-1].Word == w {
			counts[k-1].Count++
		} else {
			counts = append(counts, WordCount{Word: w, Count: 1})
		}
	}
	return counts, nil
}

// Top returns the n most frequent words, ties broken by word order.
func (ix *Index) Top(n int) ([]WordCount, error) {
	counts, err := ix.Words()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(counts, func(a, b WordCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n >= 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts, nil
}

// Docs returns the names of all indexed documents in ascending order.
func (ix *Index) Docs() ([]string, error) {
	if err := ix.lock.AcquireRead(context.Background()); err != nil {
		return nil, err
	}
	defer ix.lock.Release()
	return slices.Collect(ix.docs.All()), nil
}

// Remove drops document doc from the index and returns the number of word
// occurrences removed.
func (ix *Index) Remove(doc string) (int, error) {
	if err := ix.lock.AcquireWrite(context.Background()); err != nil {
		return 0, err
	}
	defer ix.lock.Release()
	if err := ix.docs.Remove(doc); err != nil {
		return 0, fmt.Errorf("document %q: %w", doc, err)
	}
	var ranks []int
	i := 0
	for _, occ := range ix.words.All() {
		if occ.Doc == doc {
			ranks = append(ranks, i)
		}
		i++
	}
	for j := len(ranks) - 1; j >= 0; j-- {
		if _, _, err := ix.words.RemoveAt(ranks[j]); err != nil {
			return len(ranks) - 1 - j, err
		}
	}
	tracer().Debugf("isam: removed %d words of %q", len(ranks), doc)
	return len(ranks), nil
}
