package tfidf

import (
	"errors"
	"math"
	"testing"

	"github.com/hyperjump/gluco/internal/vector"
)

func TestFit_VocabularySortedAndIDF(t *testing.T) {
	v, err := Fit([]string{"apa itu diabetes", "apa gejala diabetes"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"apa", "diabetes", "gejala", "itu"}
	got := v.Terms()
	if len(got) != len(want) {
		t.Fatalf("terms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("terms[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if idf, _ := v.IDF("apa"); math.Abs(idf-1) > 1e-12 {
		t.Errorf("idf(apa) = %g, want 1", idf)
	}
	wantItu := math.Log(3.0/2.0) + 1
	if idf, _ := v.IDF("itu"); math.Abs(idf-wantItu) > 1e-12 {
		t.Errorf("idf(itu) = %g, want %g", idf, wantItu)
	}
	if _, ok := v.IDF("unknown"); ok {
		t.Error("unknown term should not be in vocabulary")
	}
	if v.NumDocs() != 2 || v.Dimensions() != 4 {
		t.Errorf("NumDocs=%d Dimensions=%d", v.NumDocs(), v.Dimensions())
	}
}

func TestTransform_Weights(t *testing.T) {
	v, _ := Fit([]string{"apa itu diabetes", "apa gejala diabetes"})
	vec := v.Transform("Apa itu diabetes?")
	if vec.Len() != 3 {
		t.Fatalf("expected 3 non-zero features, got %d", vec.Len())
	}
	itu := math.Log(1.5) + 1
	norm := math.Sqrt(2 + itu*itu)
	wantValues := []float64{1 / norm, 1 / norm, itu / norm} // apa, diabetes, itu
	wantIndices := []int{0, 1, 3}
	for i := range wantIndices {
		if vec.Indices[i] != wantIndices[i] {
			t.Errorf("index[%d] = %d, want %d", i, vec.Indices[i], wantIndices[i])
		}
		if math.Abs(vec.Values[i]-wantValues[i]) > 1e-12 {
			t.Errorf("value[%d] = %g, want %g", i, vec.Values[i], wantValues[i])
		}
	}
	if math.Abs(vector.L2Norm(vec)-1) > 1e-12 {
		t.Errorf("vector not normalized: %g", vector.L2Norm(vec))
	}
}

func TestTransform_RepeatedTermsCounted(t *testing.T) {
	v, _ := Fit([]string{"gula darah", "gula"})
	once := v.Transform("gula darah")
	twice := v.Transform("gula gula darah")
	if vector.Dot(once, twice) >= 1-1e-9 {
		t.Error("raw counts should change the direction of the vector")
	}
}

func TestTransform_UnknownTermsGiveZero(t *testing.T) {
	v, _ := Fit([]string{"apa itu diabetes"})
	if vec := v.Transform("zzxxqq unrelated gibberish"); !vec.IsZero() {
		t.Errorf("expected zero vector, got %+v", vec)
	}
	if vec := v.Transform(""); !vec.IsZero() {
		t.Error("empty text should project to zero")
	}
}

func TestTransform_DoesNotRefit(t *testing.T) {
	v, _ := Fit([]string{"apa itu diabetes"})
	before := v.Dimensions()
	_ = v.Transform("kata baru sama sekali")
	if v.Dimensions() != before {
		t.Errorf("vocabulary changed after Transform: %d -> %d", before, v.Dimensions())
	}
}

func TestFit_EmptyVocabulary(t *testing.T) {
	if _, err := Fit([]string{"", "? !", "a"}); !errors.Is(err, ErrEmptyVocabulary) {
		t.Errorf("expected ErrEmptyVocabulary, got %v", err)
	}
	if _, err := Fit(nil); !errors.Is(err, ErrEmptyVocabulary) {
		t.Errorf("nil docs: expected ErrEmptyVocabulary, got %v", err)
	}
}
