package model

// Citation represents one detected citation occurrence in a document
type Citation struct {
	Raw        string `json:"raw"`                 // Exact substring matched in the source text
	CaseName   string `json:"case_name,omitempty"` // "X v. Y" party names, absent for short-form citations
	Volume     string `json:"volume"`              // Reporter volume number
	Reporter   string `json:"reporter"`            // Normalized reporter abbreviation (e.g. "F.3d")
	Page       string `json:"page"`                // First page of the decision
	Year       string `json:"year,omitempty"`      // 4-digit year from a trailing parenthetical
	Court      string `json:"court,omitempty"`     // Court name from a trailing parenthetical
	StartIndex int    `json:"start_index"`         // Offset of Raw in the source text (half-open [start,end))
	EndIndex   int    `json:"end_index"`
}

// VerificationStatus classifies the outcome of verifying one citation
type VerificationStatus string

const (
	StatusVerified     VerificationStatus = "verified"      // High-confidence match in the case database
	StatusNotFound     VerificationStatus = "not_found"     // No plausible match; possibly fabricated
	StatusPartialMatch VerificationStatus = "partial_match" // Uncertain match; manual review advised
	StatusFormatError  VerificationStatus = "format_error"  // Failed local format checks; never queried
	StatusAPIError     VerificationStatus = "api_error"     // Lookup service unreachable or errored
)

// MatchedCase is a snapshot of the external record the citation matched
type MatchedCase struct {
	CaseName     string   `json:"case_name"`
	Citations    []string `json:"citations,omitempty"` // Parallel citation strings from the database
	Court        string   `json:"court,omitempty"`
	DateFiled    string   `json:"date_filed,omitempty"`
	DocketNumber string   `json:"docket_number,omitempty"`
	URL          string   `json:"url,omitempty"` // Detail page for the matched decision
}

// VerificationResult is the terminal outcome for one citation
type VerificationResult struct {
	Citation    Citation           `json:"citation"`
	Status      VerificationStatus `json:"status"`
	Confidence  int                `json:"confidence"` // 0-100 heuristic score, not a probability
	Details     string             `json:"details"`
	MatchedCase *MatchedCase       `json:"matched_case,omitempty"` // Only for verified and partial_match
	Warnings    []string           `json:"warnings,omitempty"`     // May be non-empty even when verified
}

// NeedsReview reports whether the result should flag the document for review
func (r *VerificationResult) NeedsReview() bool {
	return r.Status == StatusNotFound || r.Status == StatusFormatError
}
