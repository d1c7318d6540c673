// Package extract finds legal case citations in plain text.
//
// Extraction runs two passes over a compiled alternation of every known
// reporter abbreviation: first full citations carrying a case name, then
// short-form citations without one. Full citations claim their text spans
// before the short pass runs, so a short candidate inside a claimed span
// is always dropped.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/citecheck/citecheck/internal/model"
	"github.com/citecheck/citecheck/internal/reporters"
)

// backscanWindow is how far before a short citation we look for a
// "Name v. Name" case name.
const backscanWindow = 200

// partyToken matches one word of a party name. Dots and apostrophes stay
// in so "Inc." and "O'Brien" survive.
const partyToken = `[A-Z][A-Za-z0-9.&'\-]*`

// partyTail extends a party with further tokens; lowercase words are
// limited to common connectors so the match cannot run across sentence
// text.
const partyTail = `(?:\s+(?:of|the|and|for|ex|rel\.|et|al\.|` + partyToken + `))*?`

const party = partyToken + partyTail

// Extractor scans text for citations using patterns compiled once from a
// reporter table.
type Extractor struct {
	table   reporters.Table
	fullRe  *regexp.Regexp
	shortRe *regexp.Regexp
	nameRe  *regexp.Regexp
}

// New creates an extractor for the given reporter table
func New(table reporters.Table) *Extractor {
	alt := table.Alternation()

	// CaseName, Volume Reporter Page[, Pinpoint][ (Court Year)]
	full := `(` + party + `\s+vs?\.\s+` + party + `)` +
		`\s*,\s*(\d{1,4})\s+(` + alt + `)\s+(\d{1,6})` +
		`(?:\s*,\s*\d+(?:[-–]\d+)?)?` +
		`(?:\s+\((?:([^()]*?)\s+)?(\d{4})\))?`

	// Volume Reporter Page[, Pinpoint][ (Court Year)], guarded so the
	// volume is not the tail of a longer number or word.
	short := `(^|[^0-9A-Za-z_])(\d{1,4})\s+(` + alt + `)\s+(\d{1,6})` +
		`(?:\s*,\s*\d+(?:[-–]\d+)?)?` +
		`(?:\s+\((?:([^()]*?)\s+)?(\d{4})\))?`

	// Preceding-text case name, optionally introduced by "See" or "in"
	name := `(?:\b(?:See|see|In|in)\s+)?` +
		`(` + partyToken + `(?:\s+(?:of|` + partyToken + `))*` +
		`\s+vs?\.\s+` +
		partyToken + `(?:\s+(?:of|` + partyToken + `))*)`

	return &Extractor{
		table:   table,
		fullRe:  regexp.MustCompile(full),
		shortRe: regexp.MustCompile(short),
		nameRe:  regexp.MustCompile(name),
	}
}

// NewDefault creates an extractor over the default reporter table
func NewDefault() *Extractor {
	return New(reporters.Default())
}

type interval struct {
	start, end int
}

// Extract returns every citation found in text, deduplicated, with
// overlaps resolved, ordered by start offset. It is deterministic for a
// given text and table and never fails: text with no candidates (or no
// text at all) yields an empty result.
func (e *Extractor) Extract(text string) []model.Citation {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var citations []model.Citation
	seen := make(map[string]bool)
	var claimed []interval

	// Pass 1: full citations. These claim their spans unconditionally.
	for _, m := range e.fullRe.FindAllStringSubmatchIndex(text, -1) {
		raw := text[m[0]:m[1]]
		key := dedupKey(raw)
		if seen[key] {
			continue
		}
		seen[key] = true

		citations = append(citations, model.Citation{
			Raw:        raw,
			CaseName:   trimName(text[m[2]:m[3]]),
			Volume:     text[m[4]:m[5]],
			Reporter:   reporters.Normalize(text[m[6]:m[7]]),
			Page:       text[m[8]:m[9]],
			Court:      groupOrEmpty(text, m, 5),
			Year:       groupOrEmpty(text, m, 6),
			StartIndex: m[0],
			EndIndex:   m[1],
		})
		claimed = append(claimed, interval{m[0], m[1]})
	}

	// Pass 2: short-form citations. Skip anything already seen by key or
	// starting inside a claimed span; full citations always win.
	for _, m := range e.shortRe.FindAllStringSubmatchIndex(text, -1) {
		start := m[4] // citation begins at the volume, after the guard
		end := m[1]
		raw := text[start:end]
		key := dedupKey(raw)
		if seen[key] {
			continue
		}
		if insideClaimed(claimed, start) {
			continue
		}
		seen[key] = true

		citations = append(citations, model.Citation{
			Raw:        raw,
			CaseName:   e.precedingCaseName(text, start),
			Volume:     text[m[4]:m[5]],
			Reporter:   reporters.Normalize(text[m[6]:m[7]]),
			Page:       text[m[8]:m[9]],
			Court:      groupOrEmpty(text, m, 5),
			Year:       groupOrEmpty(text, m, 6),
			StartIndex: start,
			EndIndex:   end,
		})
	}

	sort.Slice(citations, func(i, j int) bool {
		return citations[i].StartIndex < citations[j].StartIndex
	})

	return citations
}

// precedingCaseName scans up to backscanWindow characters before a short
// citation for the nearest "Name v. Name" pattern.
func (e *Extractor) precedingCaseName(text string, start int) string {
	lo := start - backscanWindow
	if lo < 0 {
		lo = 0
	}
	matches := e.nameRe.FindAllStringSubmatch(text[lo:start], -1)
	if len(matches) == 0 {
		return ""
	}
	return trimName(matches[len(matches)-1][1])
}

// insideClaimed reports whether offset falls inside any claimed interval.
// Intervals are sorted by start (regex matches arrive in order), so a
// binary search over interval ends finds the only candidate.
func insideClaimed(claimed []interval, offset int) bool {
	idx := sort.Search(len(claimed), func(i int) bool {
		return claimed[i].end > offset
	})
	return idx < len(claimed) && claimed[idx].start <= offset
}

var keySpace = regexp.MustCompile(`\s+`)

// dedupKey folds case and whitespace so re-wrapped or re-cased repeats of
// the same citation collapse to one.
func dedupKey(raw string) string {
	return strings.ToLower(keySpace.ReplaceAllString(strings.TrimSpace(raw), " "))
}

// signalWords are introductory words the case-name pattern can pick up
// from preceding sentence text.
var signalWords = []string{"See also ", "See ", "see ", "Cf. ", "cf. ", "In ", "in "}

// trimName strips stray punctuation the regex drags in at the edges of a
// case name, plus a leading signal word. Internal dots ("Inc.") are kept.
func trimName(name string) string {
	name = strings.Trim(name, " \t\n\r,;:()\"'")
	for _, w := range signalWords {
		if strings.HasPrefix(name, w) {
			name = strings.TrimPrefix(name, w)
			break
		}
	}
	return name
}

// groupOrEmpty returns the trimmed text of capture group n, or "" when
// the group did not participate in the match.
func groupOrEmpty(text string, m []int, n int) string {
	lo, hi := m[2*n], m[2*n+1]
	if lo < 0 {
		return ""
	}
	return strings.TrimSpace(text[lo:hi])
}
