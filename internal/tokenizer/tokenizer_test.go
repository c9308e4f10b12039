package tokenizer

import "testing"

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

func TestCountText(t *testing.T) {
	tokens, err := CountText(testCounter{}, "└── a\n")
	if err != nil {
		t.Fatalf("CountText error: %v", err)
	}
	if tokens != len([]rune("└── a\n")) {
		t.Fatalf("expected %d tokens, got %d", len([]rune("└── a\n")), tokens)
	}
}

func TestCountTextNilCounter(t *testing.T) {
	if _, err := CountText(nil, "x"); err == nil {
		t.Fatalf("expected an error for a nil counter")
	}
}

func TestNewCounterDefault(t *testing.T) {
	if testing.Short() {
		t.Skip("tiktoken downloads its encoding on first use")
	}
	counter, model, err := NewCounter("")
	if err != nil {
		t.Fatalf("NewCounter error: %v", err)
	}
	if model != DefaultModel {
		t.Fatalf("expected model %s, got %q", DefaultModel, model)
	}
	tokens, err := counter.CountString("├── a.txt\n└── b\n")
	if err != nil {
		t.Fatalf("CountString error: %v", err)
	}
	if tokens <= 0 {
		t.Fatalf("expected positive token count, got %d", tokens)
	}
}
