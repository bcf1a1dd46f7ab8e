package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

// DefaultDimension matches the all-MiniLM-L6-v2 sentence embedding size.
const DefaultDimension = 384

// HashingModelName identifies the local hashing model in cache keys.
const HashingModelName = "hashing-v1"

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a an the and or but in on at to for of with by from is are was were be
		been being have has had do does did will would could should may might can this that these those
		it its as if when where why how what which who whom i you he she we they me him her us them my
		your his our their`) {
		stopwords[w] = struct{}{}
	}
}

// HashingEmbedder is a deterministic bag-of-words model using signed feature
// hashing. It needs no model files and is safe for concurrent use.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder returns a hashing embedder producing dim-length vectors.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashingEmbedder{dim: dim}
}

// Embed implements TextEmbedder. Text with no indexable tokens yields an
// empty vector.
func (e *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return []float32{}, nil
	}

	vec := make([]float32, e.dim)
	for _, tok := range tokens {
		h := fnv.New64a()
		h.Write([]byte(tok))
		sum := h.Sum64()
		idx := int(sum % uint64(e.dim))
		if sum>>63 == 1 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	Normalize(vec)
	for _, x := range vec {
		if x != 0 {
			return vec, nil
		}
	}
	// every token cancelled out
	return []float32{}, nil
}

// Tokenize lowercases text, splits on non-alphanumerics and drops stopwords
// and single-character tokens.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := words[:0]
	for _, w := range words {
		if len([]rune(w)) < 2 {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		out = append(out, w)
	}
	return out
}
