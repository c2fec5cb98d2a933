package wordindex

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
)

// Tokenize splits text into words and calls fn for each of them with the
// byte offset of the word in the text. Words are the segments between line
// break opportunities, stripped of surrounding punctuation and white space
// and mapped to lower case. Segments without letters or digits are skipped.
func Tokenize(r io.Reader, fn func(word string, offset int)) {
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(r))
	pos := 0
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		if word, lead := Normalize(frag); word != "" {
			fn(word, pos+lead)
		}
		pos += len(frag)
	}
}

// Normalize strips a text fragment to the word it contains and returns it in
// lower case, together with the number of bytes stripped at the front.
func Normalize(frag string) (string, int) {
	isWordRune := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	start := strings.IndexFunc(frag, isWordRune)
	if start < 0 {
		return "", 0
	}
	end := strings.LastIndexFunc(frag, isWordRune)
	_, size := utf8.DecodeRuneInString(frag[end:])
	return strings.ToLower(frag[start : end+size]), start
}
