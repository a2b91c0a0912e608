package tfidf

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercase and split",
			text: "Tomato, Basil & Mozzarella",
			want: []string{"tomato", "basil", "mozzarella"},
		},
		{
			name: "stop words dropped",
			text: "chicken with a hint of curry",
			want: []string{"chicken", "hint", "curry"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "punctuation only",
			text: "--- ,,, !!!",
			want: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("token count mismatch: got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("token %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestFitBuildsVocabularyAndIDF(t *testing.T) {
	corpus := []string{
		"tomato basil",
		"chicken curry",
		"tomato mozzarella",
	}

	v := Fit(corpus)

	if v.Size() != 5 {
		t.Fatalf("vocabulary size: got %d, want 5", v.Size())
	}
	if len(v.IDF) != v.Size() {
		t.Fatalf("IDF length %d does not match vocabulary size %d", len(v.IDF), v.Size())
	}

	// "tomato" appears in two documents, "basil" in one: the rarer term
	// must carry the higher IDF weight.
	tomato := v.IDF[v.Vocabulary["tomato"]]
	basil := v.IDF[v.Vocabulary["basil"]]
	if tomato >= basil {
		t.Errorf("expected IDF(tomato)=%f < IDF(basil)=%f", tomato, basil)
	}
}

func TestFitEmptyCorpus(t *testing.T) {
	v := Fit(nil)

	if v.Size() != 0 {
		t.Errorf("expected empty vocabulary, got size %d", v.Size())
	}

	vec := v.TransformOne("anything at all")
	if len(vec) != 0 {
		t.Errorf("expected zero vector from empty vocabulary, got %v", vec)
	}
}

func TestTransformOutOfVocabulary(t *testing.T) {
	v := Fit([]string{"tomato basil"})

	vec := v.TransformOne("durian jackfruit")
	if len(vec) != 0 {
		t.Errorf("OOV terms should be dropped, got %v", vec)
	}

	// Mixed known/unknown: only known terms contribute.
	vec = v.TransformOne("tomato durian")
	if len(vec) != 1 {
		t.Fatalf("expected single component, got %v", vec)
	}
	if _, ok := vec[v.Vocabulary["tomato"]]; !ok {
		t.Error("expected tomato component to survive transform")
	}
}

func TestTransformBatchOrder(t *testing.T) {
	v := Fit([]string{"tomato basil", "chicken curry"})

	vectors := v.Transform([]string{"chicken", "", "tomato"})
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}
	if len(vectors[1]) != 0 {
		t.Errorf("empty text must map to a zero vector, got %v", vectors[1])
	}
	if _, ok := vectors[0][v.Vocabulary["chicken"]]; !ok {
		t.Error("vector 0 should carry the chicken term")
	}
	if _, ok := vectors[2][v.Vocabulary["tomato"]]; !ok {
		t.Error("vector 2 should carry the tomato term")
	}
}

func TestCosine(t *testing.T) {
	testCases := []struct {
		name string
		a    Vector
		b    Vector
		want float64
	}{
		{
			name: "identical direction",
			a:    Vector{0: 1, 1: 2},
			b:    Vector{0: 2, 1: 4},
			want: 1,
		},
		{
			name: "orthogonal",
			a:    Vector{0: 1},
			b:    Vector{1: 1},
			want: 0,
		},
		{
			name: "zero query",
			a:    Vector{},
			b:    Vector{0: 3, 2: 1},
			want: 0,
		},
		{
			name: "both zero",
			a:    Vector{},
			b:    Vector{},
			want: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Cosine(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Cosine: got %f, want %f", got, tc.want)
			}
			if math.IsNaN(got) {
				t.Error("Cosine must never return NaN")
			}
		})
	}
}

func TestMean(t *testing.T) {
	got := Mean([]Vector{{0: 1, 1: 2}, {0: 3}})
	if math.Abs(got[0]-2) > 1e-9 || math.Abs(got[1]-1) > 1e-9 {
		t.Errorf("Mean: got %v, want {0:2, 1:1}", got)
	}

	if len(Mean(nil)) != 0 {
		t.Error("Mean of no vectors should be empty")
	}
}
