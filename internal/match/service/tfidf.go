package service

import (
	"math"
	"sort"

	"pharma-match/internal/match/model"
)

// Vector is a sparse L2-normalized feature vector keyed by vocabulary index.
type Vector map[int]float64

// Vectorizer holds a character n-gram (n=1..3) TF-IDF vocabulary, frozen at
// fit time. Fields are exported for gob persistence.
type Vectorizer struct {
	MinN  int
	MaxN  int
	Vocab map[string]int
	IDF   []float64
}

func NewVectorizer() *Vectorizer {
	return &Vectorizer{MinN: 1, MaxN: 3}
}

// charNGrams slides a window over the raw string including spaces, since
// inter-word boundaries carry signal for short pharma names.
func (v *Vectorizer) charNGrams(s string) []string {
	r := []rune(s)
	var out []string
	for n := v.MinN; n <= v.MaxN; n++ {
		for i := 0; i+n <= len(r); i++ {
			out = append(out, string(r[i:i+n]))
		}
	}
	return out
}

// Fit builds the vocabulary and smoothed IDF weights from the corpus.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return model.ErrEmptyCorpus
	}
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, g := range v.charNGrams(doc) {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			df[g]++
		}
	}
	if len(df) == 0 {
		return model.ErrEmptyCorpus
	}

	// stable vocabulary ordering
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	v.Vocab = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, t := range terms {
		v.Vocab[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1.0
	}
	return nil
}

// Dim is the vocabulary size, 0 before Fit.
func (v *Vectorizer) Dim() int { return len(v.IDF) }

// Transform maps a string onto the frozen vocabulary. N-grams unseen at fit
// time contribute nothing; an empty or fully out-of-vocabulary input yields
// an empty vector, never an error.
func (v *Vectorizer) Transform(s string) Vector {
	vec := make(Vector)
	if v.Vocab == nil {
		return vec
	}
	for _, g := range v.charNGrams(s) {
		if idx, ok := v.Vocab[g]; ok {
			vec[idx]++
		}
	}
	for idx := range vec {
		vec[idx] *= v.IDF[idx]
	}
	normalizeL2(vec)
	return vec
}

func normalizeL2(vec Vector) {
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
}

// Cosine similarity of two sparse vectors. Both sides are L2-normalized by
// Transform, so this is a plain dot product with a safety net for vectors
// built elsewhere.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot, na, nb float64
	for i, x := range a {
		if y, ok := b[i]; ok {
			dot += x * y
		}
		na += x * x
	}
	for _, y := range b {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
