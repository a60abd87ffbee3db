package edgar

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaideeprtx/nj-trades/pkg/utils"
)

// Form13FHR is the holdings report form type.
const Form13FHR = "13F-HR"

// Submissions is the subset of data.sec.gov/submissions/CIK##########.json we use.
type Submissions struct {
	CIK     string   `json:"cik"`
	Name    string   `json:"name"`
	Tickers []string `json:"tickers"`
	Filings struct {
		Recent FilingSet `json:"recent"`
	} `json:"filings"`
}

// FilingSet holds the column-oriented arrays of recent filings.
type FilingSet struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// Filing is one row of a FilingSet.
type Filing struct {
	AccessionNumber string
	FilingDate      string
	ReportDate      string
	Form            string
	PrimaryDocument string
}

// AccessionPath returns the accession number without dashes, as used in
// archive URLs.
func (f Filing) AccessionPath() string {
	return strings.ReplaceAll(f.AccessionNumber, "-", "")
}

// Latest returns the first (most recent) filing of the exact form type.
func (fs FilingSet) Latest(form string) (Filing, bool) {
	for i, f := range fs.Form {
		if f != form || i >= len(fs.AccessionNumber) {
			continue
		}
		return Filing{
			AccessionNumber: fs.AccessionNumber[i],
			FilingDate:      at(fs.FilingDate, i),
			ReportDate:      at(fs.ReportDate, i),
			Form:            f,
			PrimaryDocument: at(fs.PrimaryDocument, i),
		}, true
	}
	return Filing{}, false
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// Submissions fetches the filer's submissions document.
func (c *Client) Submissions(ctx context.Context, cik string) (*Submissions, error) {
	u := fmt.Sprintf("%s/submissions/CIK%s.json", c.cfg.DataURL, utils.PadCIK(cik))
	var sub Submissions
	if err := c.getJSON(ctx, u, &sub); err != nil {
		return nil, fmt.Errorf("sec submissions %s: %w", cik, err)
	}
	return &sub, nil
}

// LatestFiling returns the most recent filing of the given form for cik.
func (c *Client) LatestFiling(ctx context.Context, cik, form string) (*Submissions, Filing, error) {
	sub, err := c.Submissions(ctx, cik)
	if err != nil {
		return nil, Filing{}, err
	}
	f, ok := sub.Filings.Recent.Latest(form)
	if !ok {
		return sub, Filing{}, fmt.Errorf("%s for CIK %s: %w", form, cik, ErrNoFiling)
	}
	return sub, f, nil
}
