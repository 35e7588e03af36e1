// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"math"
	"testing"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

func TestOverlap(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  float64
	}{
		{"full coverage", "ckd stage 3", "Patients with CKD stage 3 require care.", 1.0},
		{"partial coverage", "ckd dialysis", "CKD management overview", 0.5},
		{"no coverage", "aspirin", "unrelated text entirely", 0.0},
		{"empty query", "", "some text", 0.0},
		{"empty text", "ckd", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlap(tt.query, tt.text)
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("Overlap() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRecency(t *testing.T) {
	tests := []struct {
		published string
		want      float64
	}{
		{"2023", 0.8},
		{"2023-06-15", 0.8},
		{"March 2019", 0.4},
		{"2025-01-01T00:00:00Z", 1.0},
		{"2030", 1.0},      // clamped above
		{"2010", 0.0},      // clamped below
		{"", 0.0},          // missing date contributes nothing
		{"last week", 0.0}, // no extractable year
		{"published 2021 online", 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.published, func(t *testing.T) {
			got := Recency(tt.published)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Recency(%q) = %f, want %f", tt.published, got, tt.want)
			}
		})
	}
}

func TestDomainPrior(t *testing.T) {
	tests := []struct {
		name string
		url  string
		mode types.Mode
		want float64
	}{
		{"trusted clinical", "https://pubmed.ncbi.nlm.nih.gov/12345/", types.ModeClinical, 1.0},
		{"trusted subdomain clinical", "https://www.who.int/news/item/x", types.ModeClinical, 1.0},
		{"untrusted clinical", "https://example.com/post", types.ModeClinical, DefaultUntrustedPrior},
		{"trusted scholar mode", "https://nih.gov/page", types.ModeScholar, DefaultUntrustedPrior},
		{"garbage url", "::bad::", types.ModeClinical, DefaultUntrustedPrior},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DomainPrior(tt.url, tt.mode); got != tt.want {
				t.Errorf("DomainPrior() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://pubmed.ncbi.nlm.nih.gov/1/", "nih.gov"},
		{"https://www.nature.com/articles/x", "nature.com"},
		{"https://sub.example.co.uk/path", "example.co.uk"},
		{"not a url at all", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := RegistrableDomain(tt.url); got != tt.want {
				t.Errorf("RegistrableDomain(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestConfidenceBounds(t *testing.T) {
	// Extremes of every signal stay inside [0, 1] after rounding.
	cases := []struct {
		query, text, url, published string
		mode                        types.Mode
	}{
		{"ckd stage 3", "CKD stage 3 text.", "https://nih.gov/a", "2025", types.ModeClinical},
		{"", "", "", "", types.ModeScholar},
		{"q", "q", "https://example.com", "1990", types.ModeScholar},
	}
	for _, c := range cases {
		got := Confidence(c.query, c.text, c.url, c.published, c.mode)
		if got < 0 || got > 1 {
			t.Errorf("Confidence(%q, ...) = %f, out of [0,1]", c.query, got)
		}
	}

	// Maximum blend: full overlap, newest year, trusted domain in clinical mode.
	max := Confidence("ckd", "ckd", "https://nih.gov/x", "2025", types.ModeClinical)
	if max != 1.0 {
		t.Errorf("max Confidence = %f, want 1.0", max)
	}
}

func TestConfidenceScenario(t *testing.T) {
	// query="CKD stage 3 guideline" against the 2023 KDIGO guideline.
	query := "CKD stage 3 guideline"
	text := "Patients with CKD stage 3 require guideline-based management of blood pressure."
	url := "https://kdigo.org/guidelines/ckd"
	published := "2023"

	overlap := Overlap(query, text)
	if overlap <= 0 {
		t.Errorf("overlap = %f, want > 0", overlap)
	}
	if rec := Recency(published); math.Abs(rec-0.8) > 1e-9 {
		t.Errorf("recency = %f, want 0.8", rec)
	}

	got := Confidence(query, text, url, published, types.ModeClinical)
	want := math.Round((WeightOverlap*overlap+WeightRecency*0.8+WeightDomain*DefaultUntrustedPrior)*1000) / 1000
	if got != want {
		t.Errorf("Confidence = %f, want %f", got, want)
	}
}

func TestConfidenceRounding(t *testing.T) {
	got := Confidence("alpha beta gamma", "alpha only here.", "https://example.com", "", types.ModeScholar)
	if got != math.Round(got*1000)/1000 {
		t.Errorf("Confidence = %v, not rounded to 3 decimals", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		url   string
		want  types.EvidenceType
	}{
		{"guideline", "2023 KDIGO Clinical Practice Guideline for CKD", "https://kdigo.org/g", types.EvidenceGuideline},
		{"consensus", "Expert consensus on statin use", "https://example.com", types.EvidenceGuideline},
		{"systematic review", "A systematic review of SGLT2 inhibitors", "https://bmj.com/x", types.EvidenceSystematicReview},
		{"cochrane in url", "Interventions for hypertension", "https://cochranelibrary.com/cdsr/1", types.EvidenceSystematicReview},
		{"randomized", "A randomized trial of apixaban", "https://nejm.org/x", types.EvidenceTrialRegistry},
		{"registry host", "NCT01234567 record", "https://clinicaltrials.gov/study/NCT01234567", types.EvidenceTrialRegistry},
		{"phase ii", "Phase II study of a novel agent", "https://example.com", types.EvidenceTrialRegistry},
		{"plain article", "Living with diabetes", "https://example.com/blog", types.EvidenceArticleOther},
		{"empty", "", "", types.EvidenceArticleOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.title, tt.url); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	// Guideline beats trial when both terms appear.
	got := Classify("Guideline based on a randomized controlled trial", "https://example.com")
	if got != types.EvidenceGuideline {
		t.Errorf("Classify() = %q, want Guideline (rule 1 wins)", got)
	}
	// Systematic review beats trial.
	got = Classify("Systematic review of randomized trials", "https://example.com")
	if got != types.EvidenceSystematicReview {
		t.Errorf("Classify() = %q, want Systematic Review (rule 2 wins)", got)
	}
}
