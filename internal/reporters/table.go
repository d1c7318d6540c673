// Package reporters holds the static table of case-reporter abbreviations
// used by both citation extraction and format validation.
//
// The table is a closed world: the extractor's alternation pattern is built
// from these keys, so a reporter absent from the table cannot be matched at
// all. Adding coverage means adding entries here.
package reporters

import (
	"regexp"
	"sort"
	"strings"
)

// federal maps federal reporter abbreviations to canonical names
var federal = map[string]string{
	"U.S.":        "United States Reports",
	"S. Ct.":      "Supreme Court Reporter",
	"L. Ed.":      "Lawyers' Edition",
	"L. Ed. 2d":   "Lawyers' Edition, Second Series",
	"F.":          "Federal Reporter",
	"F.2d":        "Federal Reporter, Second Series",
	"F.3d":        "Federal Reporter, Third Series",
	"F.4th":       "Federal Reporter, Fourth Series",
	"F. Supp.":    "Federal Supplement",
	"F. Supp. 2d": "Federal Supplement, Second Series",
	"F. Supp. 3d": "Federal Supplement, Third Series",
	"F.R.D.":      "Federal Rules Decisions",
	"B.R.":        "Bankruptcy Reporter",
	"Fed. Cl.":    "Federal Claims Reporter",
	"Fed. Appx.":  "Federal Appendix",
	"T.C.":        "Tax Court Reports",
}

// state maps state reporter abbreviations to canonical names
var state = map[string]string{
	"Cal.":            "California Reports",
	"Cal. 2d":         "California Reports, Second Series",
	"Cal. 3d":         "California Reports, Third Series",
	"Cal. 4th":        "California Reports, Fourth Series",
	"Cal. 5th":        "California Reports, Fifth Series",
	"Cal. App.":       "California Appellate Reports",
	"Cal. App. 2d":    "California Appellate Reports, Second Series",
	"Cal. App. 3d":    "California Appellate Reports, Third Series",
	"Cal. App. 4th":   "California Appellate Reports, Fourth Series",
	"Cal. App. 5th":   "California Appellate Reports, Fifth Series",
	"Cal. Rptr.":      "California Reporter",
	"Cal. Rptr. 2d":   "California Reporter, Second Series",
	"Cal. Rptr. 3d":   "California Reporter, Third Series",
	"N.Y.":            "New York Reports",
	"N.Y.2d":          "New York Reports, Second Series",
	"N.Y.3d":          "New York Reports, Third Series",
	"N.Y.S.":          "New York Supplement",
	"N.Y.S.2d":        "New York Supplement, Second Series",
	"N.Y.S.3d":        "New York Supplement, Third Series",
	"A.D.":            "Appellate Division Reports",
	"A.D.2d":          "Appellate Division Reports, Second Series",
	"A.D.3d":          "Appellate Division Reports, Third Series",
	"Misc.":           "New York Miscellaneous Reports",
	"Misc. 2d":        "New York Miscellaneous Reports, Second Series",
	"Misc. 3d":        "New York Miscellaneous Reports, Third Series",
	"Ill.":            "Illinois Reports",
	"Ill. 2d":         "Illinois Reports, Second Series",
	"Ill. App.":       "Illinois Appellate Court Reports",
	"Ill. App. 2d":    "Illinois Appellate Court Reports, Second Series",
	"Ill. App. 3d":    "Illinois Appellate Court Reports, Third Series",
	"Tex.":            "Texas Reports",
	"Tex. Crim.":      "Texas Criminal Reports",
	"Mass.":           "Massachusetts Reports",
	"Mass. App. Ct.":  "Massachusetts Appeals Court Reports",
	"Ohio St.":        "Ohio State Reports",
	"Ohio St. 2d":     "Ohio State Reports, Second Series",
	"Ohio St. 3d":     "Ohio State Reports, Third Series",
	"Pa.":             "Pennsylvania State Reports",
	"Wash.":           "Washington Reports",
	"Wash. 2d":        "Washington Reports, Second Series",
	"Mich.":           "Michigan Reports",
	"Mich. App.":      "Michigan Appeals Reports",
	"N.J.":            "New Jersey Reports",
	"N.J. Super.":     "New Jersey Superior Court Reports",
	"Fla.":            "Florida Reports",
	"Ga.":             "Georgia Reports",
	"Ga. App.":        "Georgia Appeals Reports",
	"Va.":             "Virginia Reports",
	"Wis. 2d":         "Wisconsin Reports, Second Series",
	"Colo.":           "Colorado Reports",
	"Conn.":           "Connecticut Reports",
	"Md.":             "Maryland Reports",
	"Md. App.":        "Maryland Appellate Reports",
	"Minn.":           "Minnesota Reports",
}

// regional maps regional reporter abbreviations to canonical names
var regional = map[string]string{
	"A.":      "Atlantic Reporter",
	"A.2d":    "Atlantic Reporter, Second Series",
	"A.3d":    "Atlantic Reporter, Third Series",
	"N.E.":    "North Eastern Reporter",
	"N.E.2d":  "North Eastern Reporter, Second Series",
	"N.E.3d":  "North Eastern Reporter, Third Series",
	"N.W.":    "North Western Reporter",
	"N.W.2d":  "North Western Reporter, Second Series",
	"P.":      "Pacific Reporter",
	"P.2d":    "Pacific Reporter, Second Series",
	"P.3d":    "Pacific Reporter, Third Series",
	"S.E.":    "South Eastern Reporter",
	"S.E.2d":  "South Eastern Reporter, Second Series",
	"S.W.":    "South Western Reporter",
	"S.W.2d":  "South Western Reporter, Second Series",
	"S.W.3d":  "South Western Reporter, Third Series",
	"So.":     "Southern Reporter",
	"So. 2d":  "Southern Reporter, Second Series",
	"So. 3d":  "Southern Reporter, Third Series",
}

// Table is the merged reporter lookup, keyed by abbreviation
type Table map[string]string

// tableOnce holds the merged table; built once at package init since the
// underlying maps are static.
var merged = buildTable()

func buildTable() Table {
	t := make(Table, len(federal)+len(state)+len(regional))
	for _, m := range []map[string]string{federal, state, regional} {
		for abbr, name := range m {
			t[abbr] = name
		}
	}
	return t
}

// Default returns the merged federal/state/regional reporter table
func Default() Table {
	return merged
}

// Lookup returns the canonical name for a reporter abbreviation.
// The abbreviation is whitespace-normalized before the lookup.
func (t Table) Lookup(abbr string) (string, bool) {
	name, ok := t[Normalize(abbr)]
	return name, ok
}

// Known reports whether the abbreviation is in the table
func (t Table) Known(abbr string) bool {
	_, ok := t.Lookup(abbr)
	return ok
}

// Keys returns the abbreviations sorted longest-first so that a longer
// abbreviation (e.g. "Cal. App. 2d") is never shadowed by a shorter
// prefix ("Cal.") in an alternation pattern. Equal lengths sort
// lexicographically for determinism.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for abbr := range t {
		keys = append(keys, abbr)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Alternation builds a regular-expression alternation over every known
// abbreviation. Literal punctuation is escaped and internal whitespace
// becomes a variable-width separator, so "F. Supp. 2d" also matches
// "F.  Supp. 2d" across a line wrap.
func (t Table) Alternation() string {
	keys := t.Keys()
	parts := make([]string, len(keys))
	for i, abbr := range keys {
		quoted := regexp.QuoteMeta(abbr)
		parts[i] = strings.ReplaceAll(quoted, ` `, `\s+`)
	}
	return strings.Join(parts, "|")
}

var spaceRun = regexp.MustCompile(`\s+`)

// Normalize collapses internal whitespace runs in a reporter string so
// matched text maps back onto table keys.
func Normalize(abbr string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(abbr), " ")
}
