// Package tfidf converts free-text ingredient lists into comparable sparse
// numeric vectors using term-frequency/inverse-document-frequency weighting,
// and ranks catalog vectors by cosine similarity against query vectors.
package tfidf

import "math"

// Vectorizer holds the vocabulary and IDF weights fixed at fit time.
// Vectors produced by different Vectorizer instances are not comparable.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// Fit builds a Vectorizer over the given corpus.
// Parameters:
//   - corpus: full set of known documents; an empty corpus yields an
//     empty-vocabulary vectorizer rather than an error.
//
// Returns:
//   - *Vectorizer: fitted vocabulary and IDF statistics.
func Fit(corpus []string) *Vectorizer {
	vocab := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, token := range Tokenize(doc) {
			if !seen[token] {
				docFreq[token]++
				seen[token] = true
			}
			if _, ok := vocab[token]; !ok {
				vocab[token] = len(vocab)
			}
		}
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1, keeps unseen-term weight finite.
	idf := make([]float64, len(vocab))
	n := float64(len(corpus))
	for term, idx := range vocab {
		idf[idx] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return &Vectorizer{Vocabulary: vocab, IDF: idf}
}

// Size returns the vector dimensionality (vocabulary size).
func (v *Vectorizer) Size() int {
	return len(v.Vocabulary)
}

// TransformOne maps a single text to a sparse vector over the fitted
// vocabulary. Out-of-vocabulary terms are silently dropped, so unseen or
// empty text yields a valid zero vector.
func (v *Vectorizer) TransformOne(text string) Vector {
	tokens := Tokenize(text)
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}

	vec := make(Vector)
	for term, count := range counts {
		idx, ok := v.Vocabulary[term]
		if !ok {
			continue
		}
		tf := float64(count) / float64(len(tokens))
		vec[idx] = tf * v.IDF[idx]
	}
	return vec
}

// Transform maps a batch of texts to sparse vectors, one per input, in order.
func (v *Vectorizer) Transform(texts []string) []Vector {
	vectors := make([]Vector, len(texts))
	for i, t := range texts {
		vectors[i] = v.TransformOne(t)
	}
	return vectors
}
