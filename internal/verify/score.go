package verify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/citecheck/citecheck/internal/lookup"
	"github.com/citecheck/citecheck/internal/model"
)

var (
	partySeparatorRe = regexp.MustCompile(`\s+vs?\.\s+`)
	nonWordRe        = regexp.MustCompile(`[^a-z0-9]+`)
)

// scoreCandidate rates how well a database record matches a citation.
// Additive across three independent categories, capped at 100. The
// score is a heuristic, not a probability.
func scoreCandidate(c model.Citation, cand lookup.Candidate) int {
	score := 0

	// Citation string agreement. The first qualifying candidate string
	// decides the category contribution; no further accumulation.
	token := strings.ToLower(c.Volume + " " + c.Reporter + " " + c.Page)
	exact := false
	loose := false
	for _, cs := range cand.Citations {
		lower := strings.ToLower(cs)
		if strings.Contains(lower, token) {
			exact = true
			break
		}
		if !loose && strings.Contains(lower, c.Volume) && strings.Contains(lower, c.Page) {
			loose = true
		}
	}
	if exact {
		score += 50
	} else if loose {
		score += 30
	}

	// Case-name agreement: count citation party tokens appearing as
	// substrings of the candidate's full name.
	matches := 0
	candidateName := strings.ToLower(cand.CaseName)
	for _, tok := range partyTokens(c.CaseName) {
		if strings.Contains(candidateName, tok) {
			matches++
		}
	}
	switch {
	case matches >= 2:
		score += 30
	case matches == 1:
		score += 15
	}

	// Year agreement, tolerating the common off-by-one between the
	// cited year and the filing year.
	if citYear, ok := parseYear(c.Year); ok {
		if candYear, ok := parseYear(candidateYear(cand)); ok {
			switch diff := citYear - candYear; {
			case diff == 0:
				score += 20
			case diff == 1 || diff == -1:
				score += 10
			}
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// partyTokens splits a case name on the v./vs. separator and returns
// the punctuation-stripped lowercase words of every party.
func partyTokens(caseName string) []string {
	if caseName == "" {
		return nil
	}

	var tokens []string
	for _, party := range partySeparatorRe.Split(caseName, -1) {
		for _, word := range strings.Fields(party) {
			tok := nonWordRe.ReplaceAllString(strings.ToLower(word), "")
			if tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

// namesDisagree reports whether no party token of the citation matches
// any party token of the candidate, in either substring direction.
func namesDisagree(citationName, candidateName string) bool {
	citTokens := partyTokens(citationName)
	candTokens := partyTokens(candidateName)
	if len(citTokens) == 0 || len(candTokens) == 0 {
		return false
	}

	for _, ct := range citTokens {
		for _, kt := range candTokens {
			if strings.Contains(kt, ct) || strings.Contains(ct, kt) {
				return false
			}
		}
	}
	return true
}

// simplifiedNameToken returns the search term derived from a case name,
// the last word of the first party with punctuation stripped. Empty for
// short-form citations without a recovered name.
func simplifiedNameToken(caseName string) string {
	if caseName == "" {
		return ""
	}

	parties := partySeparatorRe.Split(caseName, -1)
	words := strings.Fields(parties[0])
	if len(words) == 0 {
		return ""
	}
	return nonWordRe.ReplaceAllString(strings.ToLower(words[len(words)-1]), "")
}

// candidateYear extracts the filing year from a record's dateFiled
func candidateYear(cand lookup.Candidate) string {
	if len(cand.DateFiled) < 4 {
		return ""
	}
	return cand.DateFiled[:4]
}

func parseYear(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}
