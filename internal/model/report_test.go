package model

import "testing"

func resultWith(status VerificationStatus) VerificationResult {
	return VerificationResult{
		Citation: Citation{Raw: "x"},
		Status:   status,
	}
}

func TestNewReport_CountsSumToTotal(t *testing.T) {
	results := []VerificationResult{
		resultWith(StatusVerified),
		resultWith(StatusVerified),
		resultWith(StatusNotFound),
		resultWith(StatusPartialMatch),
		resultWith(StatusFormatError),
		resultWith(StatusAPIError),
	}

	report := NewReport("brief.txt", results)

	if report.TotalCitations != 6 {
		t.Errorf("expected 6 total, got %d", report.TotalCitations)
	}
	sum := report.Verified + report.NotFound + report.PartialMatches +
		report.FormatErrors + report.APIErrors
	if sum != report.TotalCitations {
		t.Errorf("status counts sum to %d, want %d", sum, report.TotalCitations)
	}
	if report.Verified != 2 || report.NotFound != 1 || report.PartialMatches != 1 ||
		report.FormatErrors != 1 || report.APIErrors != 1 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if report.ID == "" {
		t.Error("expected a report ID")
	}
	if len(report.Results) != 6 {
		t.Error("results must be carried in full")
	}
}

func TestNewReport_EmptyDocument(t *testing.T) {
	report := NewReport("empty.txt", nil)
	if report.TotalCitations != 0 {
		t.Errorf("expected 0 citations, got %d", report.TotalCitations)
	}
	if report.RiskScore != 0 || report.RiskLevel != "low" {
		t.Errorf("no citations means no risk: %d %s", report.RiskScore, report.RiskLevel)
	}
	if report.NeedsReview() {
		t.Error("empty report must not need review")
	}
}

func TestNewReport_RiskScore(t *testing.T) {
	tests := []struct {
		name      string
		results   []VerificationResult
		wantScore int
		wantLevel string
	}{
		{
			name:      "all verified",
			results:   []VerificationResult{resultWith(StatusVerified), resultWith(StatusVerified)},
			wantScore: 0,
			wantLevel: "low",
		},
		{
			name:      "all not found",
			results:   []VerificationResult{resultWith(StatusNotFound), resultWith(StatusNotFound)},
			wantScore: 100,
			wantLevel: "high",
		},
		{
			// (1.0 + 0) / 2 * 100 = 50
			name:      "half not found",
			results:   []VerificationResult{resultWith(StatusNotFound), resultWith(StatusVerified)},
			wantScore: 50,
			wantLevel: "high",
		},
		{
			// 0.5 / 2 * 100 = 25
			name:      "one partial of two",
			results:   []VerificationResult{resultWith(StatusPartialMatch), resultWith(StatusVerified)},
			wantScore: 25,
			wantLevel: "medium",
		},
		{
			// 0.3 / 2 * 100 = 15
			name:      "one api error of two",
			results:   []VerificationResult{resultWith(StatusAPIError), resultWith(StatusVerified)},
			wantScore: 15,
			wantLevel: "low",
		},
		{
			// 0.8 / 1 * 100 = 80
			name:      "format error alone",
			results:   []VerificationResult{resultWith(StatusFormatError)},
			wantScore: 80,
			wantLevel: "high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewReport("doc", tt.results)
			if report.RiskScore != tt.wantScore {
				t.Errorf("expected risk %d, got %d", tt.wantScore, report.RiskScore)
			}
			if report.RiskLevel != tt.wantLevel {
				t.Errorf("expected level %s, got %s", tt.wantLevel, report.RiskLevel)
			}
		})
	}
}

func TestNeedsReview(t *testing.T) {
	verified := NewReport("doc", []VerificationResult{resultWith(StatusVerified)})
	if verified.NeedsReview() {
		t.Error("fully verified report must not need review")
	}

	notFound := NewReport("doc", []VerificationResult{resultWith(StatusNotFound)})
	if !notFound.NeedsReview() {
		t.Error("not_found must flag review")
	}

	formatErr := NewReport("doc", []VerificationResult{resultWith(StatusFormatError)})
	if !formatErr.NeedsReview() {
		t.Error("format_error must flag review")
	}

	apiErr := NewReport("doc", []VerificationResult{resultWith(StatusAPIError)})
	if apiErr.NeedsReview() {
		t.Error("api_error alone is retryable, not review")
	}

	partial := resultWith(StatusPartialMatch)
	if partial.NeedsReview() {
		t.Error("partial_match result alone does not force review")
	}
}
