package grading

import "testing"

func TestCompare_ErrorPriority(t *testing.T) {
	cases := []struct {
		raw  string
		want ErrorType
	}{
		{"dog", ErrorFormat},
		{"dot, x, x, x, dot", ErrorStartWord},
		{"dog, d, o, x, dot", ErrorLetters},
		{"dog, d, o, g, dot", ErrorEndWord},
		{"dog, d, o, g, dog", ErrorNone},
	}
	for _, tc := range cases {
		c := Compare(Parse(tc.raw), "DOG")
		if c.ErrorType != tc.want {
			t.Errorf("%q: error type %q, want %q", tc.raw, c.ErrorType, tc.want)
		}
		if (tc.want == ErrorNone) != c.AllCorrect {
			t.Errorf("%q: AllCorrect=%v", tc.raw, c.AllCorrect)
		}
	}
}

func TestCompare_FusedTokensSpellingVsPositions(t *testing.T) {
	c := Compare(Parse("dog, do, g, dog"), "DOG")
	if !c.SpellingCorrect || !c.AllCorrect {
		t.Fatal("concatenation should make the spelling correct")
	}
	if len(c.Letters) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(c.Letters))
	}
	if c.Letters[0].Correct {
		t.Error("multi-character token must not match a single letter")
	}
	if c.Letters[1].Correct {
		t.Error("position 1 holds G, target is O")
	}
	if c.Letters[2].Present {
		t.Error("position 2 has no token")
	}
}

func TestCompare_ExtraTokens(t *testing.T) {
	c := Compare(Parse("cat, c, a, t, s, cat"), "CAT")
	if len(c.Letters) != 4 {
		t.Fatalf("expected 4 positions, got %d", len(c.Letters))
	}
	last := c.Letters[3]
	if !last.Present || last.Correct || last.Expected != "" {
		t.Fatalf("extra token: %+v", last)
	}
	if c.ErrorType != ErrorLetters {
		t.Fatalf("error type %q", c.ErrorType)
	}
}
