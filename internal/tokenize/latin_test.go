package tokenize

import (
	"reflect"
	"testing"
)

func TestLatinCut(t *testing.T) {
	l := NewLatin(nil)

	got := l.Cut("OpenAI releases GPT-5, a new model.")
	want := []string{"openai", "releases", "gpt", "5", "a", "new", "model"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cut = %v, want %v", got, want)
	}
}

func TestLatinCutMixedScript(t *testing.T) {
	l := NewLatin(nil)

	got := l.Cut("GPT模型发布")
	want := []string{"gpt", "模", "型", "发", "布"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cut = %v, want %v", got, want)
	}
}

func TestLatinTopKeywordsRankedByFrequency(t *testing.T) {
	l := NewLatin(nil)

	text := "model model model training training data"
	got := l.TopKeywords(text, 2)
	want := []string{"model", "training"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords = %v, want %v", got, want)
	}
}

func TestLatinTopKeywordsSkipsStopwords(t *testing.T) {
	l := NewLatin(nil)

	got := l.TopKeywords("the the the transformer is here", 10)
	for _, w := range got {
		if w == "the" || w == "is" {
			t.Errorf("stopword %q leaked into keywords %v", w, got)
		}
	}
}

func TestLatinTopKeywordsDeterministicTies(t *testing.T) {
	l := NewLatin(nil)

	text := "alpha beta gamma"
	first := l.TopKeywords(text, 3)
	for i := 0; i < 10; i++ {
		if got := l.TopKeywords(text, 3); !reflect.DeepEqual(got, first) {
			t.Fatalf("unstable keyword order: %v vs %v", got, first)
		}
	}
	want := []string{"alpha", "beta", "gamma"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("equal-frequency terms should sort lexically: %v", first)
	}
}
