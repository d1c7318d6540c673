package extract

import (
	"strings"
	"testing"
)

func TestExtract_FullCitation(t *testing.T) {
	extractor := NewDefault()

	citations := extractor.Extract("Roe v. Wade, 410 U.S. 113 (1973)")

	if len(citations) != 1 {
		t.Fatalf("expected exactly 1 citation, got %d", len(citations))
	}

	c := citations[0]
	if c.CaseName != "Roe v. Wade" {
		t.Errorf("case name = %q, want %q", c.CaseName, "Roe v. Wade")
	}
	if c.Volume != "410" {
		t.Errorf("volume = %q, want %q", c.Volume, "410")
	}
	if c.Reporter != "U.S." {
		t.Errorf("reporter = %q, want %q", c.Reporter, "U.S.")
	}
	if c.Page != "113" {
		t.Errorf("page = %q, want %q", c.Page, "113")
	}
	if c.Year != "1973" {
		t.Errorf("year = %q, want %q", c.Year, "1973")
	}
	if c.Court != "" {
		t.Errorf("court = %q, want empty", c.Court)
	}
}

func TestExtract_CourtParenthetical(t *testing.T) {
	extractor := NewDefault()

	citations := extractor.Extract("See Smith v. Jones, 123 F.3d 456 (9th Cir. 1997) for details.")

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}

	c := citations[0]
	if c.CaseName != "Smith v. Jones" {
		t.Errorf("case name = %q, want %q", c.CaseName, "Smith v. Jones")
	}
	if c.Court != "9th Cir." {
		t.Errorf("court = %q, want %q", c.Court, "9th Cir.")
	}
	if c.Year != "1997" {
		t.Errorf("year = %q, want %q", c.Year, "1997")
	}
}

func TestExtract_MultiWordParties(t *testing.T) {
	extractor := NewDefault()

	citations := extractor.Extract("Brown v. Board of Education, 347 U.S. 483 (1954)")

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if citations[0].CaseName != "Brown v. Board of Education" {
		t.Errorf("case name = %q, want %q", citations[0].CaseName, "Brown v. Board of Education")
	}
}

func TestExtract_ShortCitation(t *testing.T) {
	extractor := NewDefault()

	citations := extractor.Extract("see 999 F.3d 999999")

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}

	c := citations[0]
	if c.Volume != "999" {
		t.Errorf("volume = %q, want %q", c.Volume, "999")
	}
	if c.Page != "999999" {
		t.Errorf("page = %q, want %q", c.Page, "999999")
	}
	if c.CaseName != "" {
		t.Errorf("case name = %q, want empty", c.CaseName)
	}
}

func TestExtract_ShortCitationNumberGuard(t *testing.T) {
	extractor := NewDefault()

	// "12410" must not yield a short citation with volume "410"
	citations := extractor.Extract("docket number 12410 U.S. 113 is not a citation volume")

	for _, c := range citations {
		if c.Volume == "410" {
			t.Errorf("matched inside a longer number: %q", c.Raw)
		}
	}
}

func TestExtract_ShortCitationBackscan(t *testing.T) {
	extractor := NewDefault()

	text := "In Miranda v. Arizona the Court established warnings. See 384 U.S. 436, 444."
	citations := extractor.Extract(text)

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if citations[0].CaseName != "Miranda v. Arizona" {
		t.Errorf("recovered case name = %q, want %q", citations[0].CaseName, "Miranda v. Arizona")
	}
}

func TestExtract_BackscanOutOfRange(t *testing.T) {
	extractor := NewDefault()

	// Case name is more than 200 characters before the citation
	text := "Miranda v. Arizona was decided long ago. " + strings.Repeat("Padding sentence here. ", 12) + "See 384 U.S. 436."
	citations := extractor.Extract(text)

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if citations[0].CaseName != "" {
		t.Errorf("case name = %q, want empty (outside back-scan window)", citations[0].CaseName)
	}
}

func TestExtract_FullBeatsShortOnOverlap(t *testing.T) {
	extractor := NewDefault()

	text := "Roe v. Wade, 410 U.S. 113 (1973) changed the landscape."
	citations := extractor.Extract(text)

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation (short suppressed by full), got %d", len(citations))
	}
	if citations[0].CaseName != "Roe v. Wade" {
		t.Errorf("expected the full citation to survive, got %q", citations[0].Raw)
	}
}

func TestExtract_NoOverlappingIntervals(t *testing.T) {
	extractor := NewDefault()

	text := `Roe v. Wade, 410 U.S. 113 (1973). Brown v. Board of Education,
347 U.S. 483 (1954). See also 123 F.3d 456 and Smith v. Jones, 5 Cal. App. 2d 100
(1935), plus 410 U.S. 113 again.`

	citations := extractor.Extract(text)
	if len(citations) < 3 {
		t.Fatalf("expected several citations, got %d", len(citations))
	}

	for i := 1; i < len(citations); i++ {
		prev, cur := citations[i-1], citations[i]
		if cur.StartIndex < prev.EndIndex {
			t.Errorf("overlap between %q [%d,%d) and %q [%d,%d)",
				prev.Raw, prev.StartIndex, prev.EndIndex,
				cur.Raw, cur.StartIndex, cur.EndIndex)
		}
	}
}

func TestExtract_Deduplication(t *testing.T) {
	extractor := NewDefault()

	// Same full citation twice with different spacing: the second full
	// match collapses onto the first by dedup key. Its volume/page span
	// is then unclaimed, so it resurfaces as a short-form citation.
	text := "Roe v. Wade, 410 U.S. 113 (1973). Compare Roe  v.  Wade,   410 U.S. 113 (1973)."
	citations := extractor.Extract(text)

	fullCount := 0
	for _, c := range citations {
		if strings.Contains(strings.ToLower(c.Raw), "roe") {
			fullCount++
		}
	}
	if fullCount != 1 {
		t.Errorf("expected dedup to keep 1 full citation, got %d", fullCount)
	}
	if len(citations) != 2 {
		t.Errorf("expected 1 full + 1 short citation, got %d", len(citations))
	}
}

func TestExtract_Idempotent(t *testing.T) {
	extractor := NewDefault()

	text := "Roe v. Wade, 410 U.S. 113 (1973); see 123 F.3d 456; Smith v. Jones, 5 Cal. App. 2d 100."

	first := extractor.Extract(text)
	second := extractor.Extract(text)

	if len(first) != len(second) {
		t.Fatalf("runs disagree: %d vs %d citations", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("citation %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestExtract_SortedByStart(t *testing.T) {
	extractor := NewDefault()

	text := "See 500 P.2d 900. Earlier, Roe v. Wade, 410 U.S. 113 (1973) held otherwise."
	citations := extractor.Extract(text)

	for i := 1; i < len(citations); i++ {
		if citations[i].StartIndex < citations[i-1].StartIndex {
			t.Errorf("citations not sorted by start index: %d before %d",
				citations[i-1].StartIndex, citations[i].StartIndex)
		}
	}
}

func TestExtract_LongReporterNotShadowed(t *testing.T) {
	extractor := NewDefault()

	citations := extractor.Extract("People v. Smith, 5 Cal. App. 2d 100 (1935)")

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if citations[0].Reporter != "Cal. App. 2d" {
		t.Errorf("reporter = %q, want %q (prefix shadowing)", citations[0].Reporter, "Cal. App. 2d")
	}
	if citations[0].Page != "100" {
		t.Errorf("page = %q, want %q", citations[0].Page, "100")
	}
}

func TestExtract_Pinpoint(t *testing.T) {
	extractor := NewDefault()

	citations := extractor.Extract("Roe v. Wade, 410 U.S. 113, 115 (1973)")

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if citations[0].Page != "113" {
		t.Errorf("page = %q, want %q (pinpoint must not replace the page)", citations[0].Page, "113")
	}
	if citations[0].Year != "1973" {
		t.Errorf("year = %q, want %q", citations[0].Year, "1973")
	}
}

func TestExtract_EmptyAndPlainText(t *testing.T) {
	extractor := NewDefault()

	for _, text := range []string{"", "   \n\t  ", "No citations in this text at all."} {
		citations := extractor.Extract(text)
		if len(citations) != 0 {
			t.Errorf("Extract(%q) = %d citations, want 0", text, len(citations))
		}
	}
}

func TestExtract_RawOffsetsMatchText(t *testing.T) {
	extractor := NewDefault()

	text := "Intro text. Roe v. Wade, 410 U.S. 113 (1973). Closing text."
	citations := extractor.Extract(text)

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	c := citations[0]
	if text[c.StartIndex:c.EndIndex] != c.Raw {
		t.Errorf("offsets [%d,%d) yield %q, want raw %q",
			c.StartIndex, c.EndIndex, text[c.StartIndex:c.EndIndex], c.Raw)
	}
}

func TestExtract_WhitespaceInReporter(t *testing.T) {
	extractor := NewDefault()

	citations := extractor.Extract("Doe v. Roe, 100 F. Supp.\n2d 200 (S.D.N.Y. 1999)")

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if citations[0].Reporter != "F. Supp. 2d" {
		t.Errorf("reporter = %q, want normalized %q", citations[0].Reporter, "F. Supp. 2d")
	}
}

func TestInsideClaimed(t *testing.T) {
	claimed := []interval{{10, 20}, {30, 40}}

	tests := []struct {
		offset int
		want   bool
	}{
		{5, false},
		{10, true},
		{19, true},
		{20, false},
		{25, false},
		{30, true},
		{39, true},
		{40, false},
	}
	for _, tt := range tests {
		if got := insideClaimed(claimed, tt.offset); got != tt.want {
			t.Errorf("insideClaimed(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestDedupKey(t *testing.T) {
	a := dedupKey("Roe v. Wade,  410 U.S. 113")
	b := dedupKey("ROE V. WADE, 410\tU.S. 113")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
}
