// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"terminal punctuation",
			"First sentence. Second one! Third? Trailing fragment",
			[]string{"First sentence.", "Second one!", "Third?", "Trailing fragment"},
		},
		{
			"no boundary without whitespace",
			"Version 2.5 ships today.",
			[]string{"Version 2.5 ships today."},
		},
		{"empty", "", nil},
		{"single", "One sentence only.", []string{"One sentence only."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitSentences(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("CKD Stage-3: SGLT2, inhibitors!")
	want := []string{"ckd", "stage", "3", "sglt2", "inhibitors"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

const kidneyText = "Aspirin is unrelated to this topic. " +
	"SGLT2 inhibitors slow chronic kidney disease progression. " +
	"The weather was mild in March. " +
	"Kidney outcomes improved with SGLT2 therapy in large trials. " +
	"Lunch was served at noon."

func TestTopKRanksRelevantSentencesFirst(t *testing.T) {
	got := TopK("SGLT2 kidney disease", kidneyText, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, s := range got {
		if !strings.Contains(s, "SGLT2") {
			t.Errorf("irrelevant sentence ranked in top 2: %q", s)
		}
	}
}

func TestTopKSentencesVerbatim(t *testing.T) {
	for _, s := range TopK("kidney", kidneyText, 5) {
		if !strings.Contains(kidneyText, s) {
			t.Errorf("sentence %q not present verbatim in input", s)
		}
	}
}

func TestTopKNeverExceedsK(t *testing.T) {
	if got := TopK("kidney", kidneyText, 2); len(got) > 2 {
		t.Errorf("len = %d, want <= 2", len(got))
	}
	// k larger than the sentence count returns everything.
	if got := TopK("kidney", "One. Two.", 10); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestTopKEmptyInput(t *testing.T) {
	if got := TopK("query", "", 5); got != nil {
		t.Errorf("TopK(empty text) = %v, want nil", got)
	}
	if got := TopK("query", "text here.", 0); got != nil {
		t.Errorf("TopK(k=0) = %v, want nil", got)
	}
}

func TestTopKTieBreaksByOriginalOrder(t *testing.T) {
	// Identical sentences score identically; the earlier one must win.
	text := "zebra alpha beta. zebra alpha beta. unrelated filler sentence."
	got := TopK("zebra", text, 1)
	if len(got) != 1 || got[0] != "zebra alpha beta." {
		t.Fatalf("TopK() = %v, want first tied sentence", got)
	}

	// With k=2 both tied sentences appear, earlier first.
	got = TopK("zebra", text, 2)
	want := []string{"zebra alpha beta.", "zebra alpha beta."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopK() = %v, want %v", got, want)
	}
}

func TestTopKQueryWithNoOverlap(t *testing.T) {
	got := TopK("xylophone", "One sentence. Another sentence.", 1)
	// All scores are zero; order falls back to original position.
	if len(got) != 1 || got[0] != "One sentence." {
		t.Errorf("TopK() = %v, want first sentence on all-zero scores", got)
	}
}
