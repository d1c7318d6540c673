// Package validate applies local sanity checks to extracted citations.
// Validation is pure: no I/O, no network. The verification engine uses it
// as a hard gate so malformed citations never reach the lookup service.
package validate

import (
	"fmt"
	"strconv"
	"time"

	"github.com/citecheck/citecheck/internal/model"
	"github.com/citecheck/citecheck/internal/reporters"
)

const (
	minVolume = 1
	maxVolume = 2000
	minPage   = 1
	maxPage   = 10000
	// No US case law predates the federal judiciary
	minYear = 1789
)

// Result holds the outcome of format validation for one citation
type Result struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

// Validator checks citation fields against known ranges and the reporter
// table. The zero time for now means "use wall clock"; tests inject a
// fixed time.
type Validator struct {
	table reporters.Table
	now   func() time.Time
}

// New creates a validator over the given reporter table
func New(table reporters.Table) *Validator {
	return &Validator{table: table, now: time.Now}
}

// NewDefault creates a validator over the default reporter table
func NewDefault() *Validator {
	return New(reporters.Default())
}

// Validate checks a single citation. Every check fires independently, so
// one citation can carry several issues. Valid is true iff there are none.
func (v *Validator) Validate(c model.Citation) Result {
	var issues []string

	if vol, err := strconv.Atoi(c.Volume); err != nil || vol < minVolume || vol > maxVolume {
		issues = append(issues, fmt.Sprintf("volume %q outside valid range [%d, %d]", c.Volume, minVolume, maxVolume))
	}

	if page, err := strconv.Atoi(c.Page); err != nil || page < minPage || page > maxPage {
		issues = append(issues, fmt.Sprintf("page %q outside valid range [%d, %d]", c.Page, minPage, maxPage))
	}

	if c.Year != "" {
		maxYear := v.now().Year()
		if year, err := strconv.Atoi(c.Year); err != nil || year < minYear || year > maxYear {
			issues = append(issues, fmt.Sprintf("year %q outside valid range [%d, %d]", c.Year, minYear, maxYear))
		}
	}

	if !v.table.Known(c.Reporter) {
		issues = append(issues, fmt.Sprintf("unknown reporter abbreviation %q", c.Reporter))
	}

	return Result{
		Valid:  len(issues) == 0,
		Issues: issues,
	}
}
