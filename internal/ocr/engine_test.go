package ocr

import "testing"

func TestAggregate(t *testing.T) {
	tokens := []Token{
		{Text: "TIDE", Confidence: 90},
		{Text: "Detergent", Confidence: 70},
	}

	res := Aggregate(tokens)
	if res.Text != "TIDE Detergent" {
		t.Errorf("text: got %q, want %q", res.Text, "TIDE Detergent")
	}
	if res.Confidence != 80 {
		t.Errorf("confidence: got %g, want 80", res.Confidence)
	}
}

func TestAggregate_FiltersTokens(t *testing.T) {
	tokens := []Token{
		{Text: "label", Confidence: 60},
		{Text: "x", Confidence: 95},      // single character
		{Text: "|", Confidence: 80},      // single character noise
		{Text: "ghost", Confidence: 0},   // no confidence
		{Text: "neg", Confidence: -5},    // negative confidence
		{Text: "  spaced  ", Confidence: 40},
	}

	res := Aggregate(tokens)
	if res.Text != "label spaced" {
		t.Errorf("text: got %q, want %q", res.Text, "label spaced")
	}
	if res.Confidence != 50 {
		t.Errorf("confidence: got %g, want 50", res.Confidence)
	}
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil)
	if res.Text != "" || res.Confidence != 0 {
		t.Errorf("empty aggregate: got %+v, want zero result", res)
	}

	res = Aggregate([]Token{{Text: ".", Confidence: 90}})
	if res.Text != "" || res.Confidence != 0 {
		t.Errorf("all-filtered aggregate: got %+v, want zero result", res)
	}
}
