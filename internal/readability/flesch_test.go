package readability

import (
	"errors"
	"testing"
)

func TestFleschSimpleTextScoresHigh(t *testing.T) {
	score, err := Flesch{}.Score("The cat sat on the mat. The dog ran to the park.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score < 70 {
		t.Errorf("simple text should score high, got %v", score)
	}
}

func TestFleschDenseTextScoresLower(t *testing.T) {
	simple, _ := Flesch{}.Score("The cat sat on the mat. The dog ran off.")
	dense, err := Flesch{}.Score(
		"Contemporary methodological considerations necessitate comprehensive " +
			"interdisciplinary collaboration regarding computational infrastructure organization.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dense >= simple {
		t.Errorf("dense text (%v) should score below simple text (%v)", dense, simple)
	}
}

func TestFleschCJKUnsupported(t *testing.T) {
	_, err := Flesch{}.Score("人工智能正在改变软件开发。大模型让代码生成变得简单。")
	if !errors.Is(err, ErrUnsupportedScript) {
		t.Errorf("expected ErrUnsupportedScript, got %v", err)
	}
}

func TestFleschEmptyText(t *testing.T) {
	_, err := Flesch{}.Score("")
	if !errors.Is(err, ErrUnsupportedScript) {
		t.Errorf("expected ErrUnsupportedScript for empty text, got %v", err)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"data", 2},
		{"machine", 2},
		{"intelligence", 4},
		{"x", 1},
	}
	for _, tt := range tests {
		if got := countSyllables(tt.word); got != tt.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}
