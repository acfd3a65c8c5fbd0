package span

import (
	"errors"
	"testing"

	"github.com/revelaction/tdsent/target"
)

func TestExactAllOccurrences(t *testing.T) {
	spans := Exact("the cat sat on the cat mat", "cat")

	expected := []target.Span{{Start: 4, End: 7}, {Start: 19, End: 22}}
	if len(spans) != len(expected) {
		t.Fatalf("expected %d spans, got %d: %v", len(expected), len(spans), spans)
	}
	for i, s := range expected {
		if spans[i] != s {
			t.Errorf("span %d: expected %v, got %v", i, s, spans[i])
		}
	}
}

func TestExactCaseInsensitive(t *testing.T) {
	spans := Exact("The Cat sat", "cat")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0] != (target.Span{Start: 4, End: 7}) {
		t.Errorf("unexpected span: %v", spans[0])
	}
}

func TestExactJoinedMultiword(t *testing.T) {
	// A multi-word surface is also searched with its whitespace removed.
	spans := Exact("i love a hotdog now", "hot dog")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %v", len(spans), spans)
	}
	if spans[0] != (target.Span{Start: 9, End: 15}) {
		t.Errorf("unexpected span: %v", spans[0])
	}
}

func TestExactNoMatchIsEmpty(t *testing.T) {
	if spans := Exact("nothing here", "absent"); len(spans) != 0 {
		t.Errorf("expected no spans, got %v", spans)
	}
}

func TestShiftOffByOne(t *testing.T) {
	// hint 8 is off by one from the true offset 7; the -1 shift recovers it
	s, err := Shift("I like kippers", "kippers", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (target.Span{Start: 7, End: 14}) {
		t.Errorf("unexpected span: %v", s)
	}
}

func TestShiftExact(t *testing.T) {
	s, err := Shift("I like kippers", "kippers", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (target.Span{Start: 7, End: 14}) {
		t.Errorf("unexpected span: %v", s)
	}
}

func TestShiftMismatch(t *testing.T) {
	_, err := Shift("I like kippers", "kippers", 3)
	if err == nil {
		t.Fatalf("expected mismatch error")
	}

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *MismatchError, got %T", err)
	}
	if mismatch.Offset != 3 {
		t.Errorf("expected offset 3 in error, got %d", mismatch.Offset)
	}
	if mismatch.Surface != "kippers" {
		t.Errorf("expected surface in error, got %q", mismatch.Surface)
	}
}

func TestFuzzySingleLiteralMatch(t *testing.T) {
	s, err := Fuzzy("I hate the new tax plan", "tax")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (target.Span{Start: 15, End: 18}) {
		t.Errorf("unexpected span: %v", s)
	}
}

func TestFuzzyBoundaryDisambiguation(t *testing.T) {
	// "tax" occurs literally twice (inside "taxi" and standalone); only the
	// boundary-bounded pattern yields exactly one match, and the reported
	// span must not include the boundary character.
	s, err := Fuzzy("taxi needs new tax rules", "tax")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (target.Span{Start: 15, End: 18}) {
		t.Errorf("unexpected span: %v", s)
	}
}

func TestFuzzySpacesRemoved(t *testing.T) {
	s, err := Fuzzy("best hotdog ever", "hot dog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (target.Span{Start: 5, End: 11}) {
		t.Errorf("unexpected span: %v", s)
	}
}

func TestFuzzyAmbiguousExhaustsPatterns(t *testing.T) {
	// Every pattern matches both occurrences, so resolution must fail
	// rather than guess.
	_, err := Fuzzy("the cat sat on the cat mat", "cat")
	if err == nil {
		t.Fatalf("expected mismatch error")
	}

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *MismatchError, got %T", err)
	}
	if mismatch.Offset != -1 {
		t.Errorf("expected offset -1, got %d", mismatch.Offset)
	}
}

func TestFuzzyNoMatch(t *testing.T) {
	_, err := Fuzzy("nothing relevant here", "kippers")
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestFuzzyRuneOffsets(t *testing.T) {
	s, err := Fuzzy("café tax bar", "tax")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (target.Span{Start: 5, End: 8}) {
		t.Errorf("unexpected span: %v", s)
	}
}

func TestFuzzyRegexMetaInSurface(t *testing.T) {
	// Surfaces are matched literally even when they contain regex
	// metacharacters.
	s, err := Fuzzy("vote for lab. this time", "lab.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (target.Span{Start: 9, End: 13}) {
		t.Errorf("unexpected span: %v", s)
	}
}
