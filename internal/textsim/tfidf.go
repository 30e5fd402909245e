// Package textsim computes text similarity between a candidate document and
// a job document using a TF-IDF vector space fit over exactly those two
// documents. Because the space is refit per call, the score is a function of
// the pair alone: no cross-call vocabulary leaks between requests, and batch
// scoring can run in parallel without shared state.
package textsim

import (
	"math"
	"sort"

	"github.com/talentmatch/go-match-engine/internal/tokenizer"
)

// Vectorizer builds per-pair TF-IDF vectors and compares them with cosine
// similarity. The zero value is not usable; use NewVectorizer.
type Vectorizer struct {
	maxFeatures int
}

// NewVectorizer creates a vectorizer with the given feature cap. A
// non-positive cap disables capping.
func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{maxFeatures: maxFeatures}
}

// CosineSimilarity tokenizes both documents (stopword-filtered), fits a
// TF-IDF space over the two of them, and returns the cosine of the two
// vectors clamped to [0.0, 1.0]. Either document tokenizing to nothing
// yields 0.0; the caller decides what "no signal" means.
func (v *Vectorizer) CosineSimilarity(docA, docB string) float64 {
	tokensA := tokenizer.TokenizeContent(docA)
	tokensB := tokenizer.TokenizeContent(docB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	countsA := termCounts(tokensA)
	countsB := termCounts(tokensB)
	vocab := v.buildVocabulary(countsA, countsB)

	vecA := v.tfidfVector(countsA, countsB, vocab)
	vecB := v.tfidfVector(countsB, countsA, vocab)

	sim := dot(vecA, vecB)
	return math.Min(1.0, math.Max(0.0, sim))
}

// buildVocabulary merges both documents' terms, keeping at most maxFeatures
// of them. When capping, the most frequent terms across the pair win; ties
// break alphabetically so the result does not depend on map iteration order.
func (v *Vectorizer) buildVocabulary(countsA, countsB map[string]int) []string {
	merged := make(map[string]int, len(countsA)+len(countsB))
	for term, n := range countsA {
		merged[term] += n
	}
	for term, n := range countsB {
		merged[term] += n
	}

	terms := make([]string, 0, len(merged))
	for term := range merged {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if merged[terms[i]] != merged[terms[j]] {
			return merged[terms[i]] > merged[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}
	return terms
}

// tfidfVector computes the L2-normalized TF-IDF vector for the document with
// counts `own`, where `other` is the second document of the pair.
//
// IDF uses the smoothed form idf = ln((1 + n) / (1 + df)) + 1 with n = 2.
// Plain ln(n/df) would zero out every term the two documents share, which in
// a two-document corpus makes the cosine identically zero; smoothing keeps
// shared terms weighted.
func (v *Vectorizer) tfidfVector(own, other map[string]int, vocab []string) []float64 {
	const numDocs = 2.0

	vec := make([]float64, len(vocab))
	for i, term := range vocab {
		tf := float64(own[term])
		if tf == 0 {
			continue
		}

		df := 0.0
		if own[term] > 0 {
			df++
		}
		if other[term] > 0 {
			df++
		}

		idf := math.Log((1+numDocs)/(1+df)) + 1
		vec[i] = tf * idf
	}

	normalize(vec)
	return vec
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}

func normalize(vec []float64) {
	var sumSquares float64
	for _, x := range vec {
		sumSquares += x * x
	}
	if sumSquares == 0 {
		return
	}
	norm := math.Sqrt(sumSquares)
	for i := range vec {
		vec[i] /= norm
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
