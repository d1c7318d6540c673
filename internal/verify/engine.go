package verify

import (
	"context"
	"fmt"

	"github.com/citecheck/citecheck/internal/lookup"
	"github.com/citecheck/citecheck/internal/model"
	"github.com/citecheck/citecheck/internal/validate"
)

// Classification boundaries on the candidate confidence score
const (
	verifiedThreshold = 70
	partialThreshold  = 40
)

// Engine checks citations against the case-law database and classifies
// each into exactly one verification status.
type Engine struct {
	searcher  lookup.Searcher
	validator *validate.Validator
}

// New creates a verification engine
func New(searcher lookup.Searcher, validator *validate.Validator) *Engine {
	return &Engine{
		searcher:  searcher,
		validator: validator,
	}
}

// VerifyAll verifies citations one at a time, in input order. Request
// spacing comes from the limiter inside the searcher, so sequential
// processing here is what keeps outbound requests non-overlapping.
func (e *Engine) VerifyAll(ctx context.Context, citations []model.Citation) []model.VerificationResult {
	results := make([]model.VerificationResult, 0, len(citations))
	for _, c := range citations {
		results = append(results, e.VerifyOne(ctx, c))
	}
	return results
}

// VerifyOne verifies a single citation. It always returns a result;
// lookup failures become api_error rather than an error return, so a
// batch never loses a citation.
func (e *Engine) VerifyOne(ctx context.Context, c model.Citation) model.VerificationResult {
	result := model.VerificationResult{Citation: c}

	// Hard gate: malformed citations never reach the network
	if v := e.validator.Validate(c); !v.Valid {
		result.Status = model.StatusFormatError
		result.Details = "citation failed format validation"
		result.Warnings = v.Issues
		return result
	}

	citationToken := c.Volume + " " + c.Reporter + " " + c.Page

	// Structured search first, then a broader free-text query when the
	// structured one errors or comes back empty.
	structured, structuredErr := e.searcher.SearchCitation(ctx, citationToken, simplifiedNameToken(c.CaseName))

	var chosen *lookup.SearchResult
	if structuredErr == nil && structured.Count > 0 && len(structured.Results) > 0 {
		chosen = structured
	} else {
		fallback, fallbackErr := e.searcher.SearchFreeText(ctx, citationToken)
		switch {
		case fallbackErr == nil:
			chosen = fallback
		case structuredErr != nil:
			result.Status = model.StatusAPIError
			result.Details = fmt.Sprintf("lookup failed: %v (fallback: %v)", structuredErr, fallbackErr)
			return result
		default:
			// Structured query succeeded with zero hits and only the
			// fallback errored; an empty answer is still an answer.
			chosen = structured
		}
	}

	if len(chosen.Results) == 0 {
		result.Status = model.StatusNotFound
		result.Details = "no matching case found; the citation may be fabricated, outside database coverage, or misformatted"
		return result
	}

	best, confidence := bestCandidate(c, chosen.Results)
	if confidence == 0 {
		result.Status = model.StatusNotFound
		result.Details = "no returned case plausibly matches this citation"
		return result
	}

	result.Confidence = confidence
	if c.CaseName != "" && namesDisagree(c.CaseName, best.CaseName) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("case name mismatch: cited %q, database has %q", c.CaseName, best.CaseName))
	}

	switch {
	case confidence >= verifiedThreshold:
		result.Status = model.StatusVerified
		result.Details = fmt.Sprintf("matched %q", best.CaseName)
		result.MatchedCase = matchedCase(best)
	case confidence >= partialThreshold:
		result.Status = model.StatusPartialMatch
		result.Details = fmt.Sprintf("possible match %q", best.CaseName)
		result.MatchedCase = matchedCase(best)
		result.Warnings = append(result.Warnings, "uncertain match, verify manually")
	default:
		// A low-confidence hit is not asserted as a real match, so the
		// record snapshot and URL are withheld.
		result.Status = model.StatusNotFound
		result.Details = fmt.Sprintf("best candidate %q scored too low to accept", best.CaseName)
	}

	return result
}

// bestCandidate scores every candidate and keeps the highest; ties keep
// the first seen.
func bestCandidate(c model.Citation, candidates []lookup.Candidate) (lookup.Candidate, int) {
	best := candidates[0]
	bestScore := scoreCandidate(c, best)
	for _, cand := range candidates[1:] {
		if score := scoreCandidate(c, cand); score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return best, bestScore
}

func matchedCase(cand lookup.Candidate) *model.MatchedCase {
	return &model.MatchedCase{
		CaseName:     cand.CaseName,
		Citations:    cand.Citations,
		Court:        cand.Court,
		DateFiled:    cand.DateFiled,
		DocketNumber: cand.DocketNumber,
		URL:          cand.AbsoluteURL,
	}
}
