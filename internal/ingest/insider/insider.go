// Package insider ingests SEC Form-4 filings from the EDGAR "getcurrent" feed.
package insider

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jaideeprtx/nj-trades/internal/edgar"
	"github.com/jaideeprtx/nj-trades/internal/ingest"
	"github.com/jaideeprtx/nj-trades/pkg/models"
	"github.com/jaideeprtx/nj-trades/pkg/utils"
)

// DefaultTitle is used when a filing does not state the insider's role.
const DefaultTitle = "Officer/Director"

// Feed supplies current Form-4 entries.
type Feed interface {
	CurrentForm4(ctx context.Context) ([]edgar.FeedEntry, error)
}

// TickerResolver supplies the issuer CIK to ticker index.
type TickerResolver interface {
	Tickers(ctx context.Context) (edgar.TickerIndex, error)
}

// Store is the write side the adapter needs.
type Store interface {
	InsertInsiderTrade(ctx context.Context, t *models.InsiderTrade) (bool, error)
}

// Adapter turns feed entries into insider trades.
type Adapter struct {
	feed     Feed
	resolver TickerResolver // optional
	store    Store
	log      *zap.Logger
}

var _ ingest.Adapter = (*Adapter)(nil)

// New creates the adapter. resolver may be nil, in which case tickers are
// always derived from the company name.
func New(feed Feed, resolver TickerResolver, store Store, log *zap.Logger) *Adapter {
	return &Adapter{
		feed:     feed,
		resolver: resolver,
		store:    store,
		log:      log.With(zap.String("source", string(ingest.SourceInsider))),
	}
}

func (a *Adapter) Source() ingest.Source { return ingest.SourceInsider }

// Fetch polls the feed once and stores every entry it can parse.
func (a *Adapter) Fetch(ctx context.Context) (ingest.Result, error) {
	res := ingest.Result{Source: ingest.SourceInsider}
	created := make([]models.InsiderTrade, 0)
	res.Records = created

	entries, err := a.feed.CurrentForm4(ctx)
	if err != nil {
		return res, ingest.Unavailable(ingest.SourceInsider, err)
	}
	res.Fetched = len(entries)

	var index edgar.TickerIndex
	if a.resolver != nil && len(entries) > 0 {
		if index, err = a.resolver.Tickers(ctx); err != nil {
			a.log.Warn("ticker index unavailable, using company names", zap.Error(err))
		}
	}

	for _, e := range entries {
		trade, ok := normalize(e, index)
		if !ok {
			res.Dropped++
			continue
		}
		isNew, err := a.store.InsertInsiderTrade(ctx, trade)
		if err != nil {
			a.log.Warn("storing insider trade", zap.String("ticker", trade.Ticker), zap.Error(err))
			res.Dropped++
			continue
		}
		if isNew {
			created = append(created, *trade)
		}
	}

	res.Created = len(created)
	res.Records = created
	a.log.Info("fetched form 4 filings", zap.Int("entries", res.Fetched), zap.Int("new", res.Created))
	return res, nil
}

func normalize(e edgar.FeedEntry, index edgar.TickerIndex) (*models.InsiderTrade, bool) {
	parsed, ok := ParseEntry(e)
	if !ok {
		return nil, false
	}

	ticker, found := index.Lookup(parsed.CIK)
	if !found {
		ticker, found = TickerFromCompanyName(parsed.CompanyName)
	}
	if !found {
		return nil, false
	}

	parsed.Trade.Ticker = utils.NormalizeTicker(ticker)
	return &parsed.Trade, true
}

// Entry is a feed entry broken into its parts.
type Entry struct {
	CompanyName string
	CIK         string
	Trade       models.InsiderTrade // Ticker not yet resolved
}

var titleRe = regexp.MustCompile(`4\s*-\s*(.+?)\s*\((\d+)\)\s*\((.+?)\)`)

// ParseEntry reads "4 - Company Name (0001234567) (Filer Name)" titles and the
// entry summary. ok is false when the title does not match or the entry has
// no timestamp.
func ParseEntry(e edgar.FeedEntry) (Entry, bool) {
	m := titleRe.FindStringSubmatch(e.Title)
	if m == nil || e.Updated.IsZero() {
		return Entry{}, false
	}

	filed := utils.FormatDateEastern(e.Updated)
	sum := ParseTransactionSummary(e.Summary)

	trade := models.InsiderTrade{
		CompanyName:     strings.TrimSpace(m[1]),
		InsiderName:     strings.TrimSpace(m[3]),
		InsiderTitle:    DefaultTitle,
		TransactionType: sum.Type,
		Shares:          sum.Shares,
		TransactionDate: filed,
		FilingDate:      filed,
		FilingURL:       e.Link,
	}
	if sum.HasDate {
		trade.TransactionDate = sum.Date
	}
	if sum.HasPrice {
		trade.PricePerShare = decimal.NewNullDecimal(sum.Price)
		if sum.HasShares {
			trade.TotalValue = decimal.NewNullDecimal(sum.Price.Mul(decimal.NewFromInt(sum.Shares)))
		}
	}
	return Entry{CompanyName: trade.CompanyName, CIK: m[2], Trade: trade}, true
}

var corporateSuffixes = map[string]bool{
	"INC": true, "CORP": true, "CORPORATION": true, "LLC": true, "LTD": true,
	"CO": true, "COMPANY": true, "HOLDINGS": true, "GROUP": true, "PLC": true,
}

// TickerFromCompanyName guesses a ticker: drop corporate suffixes, use the
// first remaining word when it is at most five letters, otherwise the
// initials of up to four words.
func TickerFromCompanyName(name string) (string, bool) {
	words := strings.Fields(strings.ToUpper(name))
	cleaned := words[:0]
	for _, w := range words {
		w = strings.Trim(w, ".,")
		if w != "" && !corporateSuffixes[w] {
			cleaned = append(cleaned, w)
		}
	}
	if len(cleaned) == 0 {
		return "", false
	}
	if utf8.RuneCountInString(cleaned[0]) <= 5 {
		return cleaned[0], true
	}

	var b strings.Builder
	for i, w := range cleaned {
		if i == 4 {
			break
		}
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
	}
	return b.String(), true
}

// Summary holds the fields pattern matching found in a filing summary.
type Summary struct {
	Type      string
	Shares    int64
	HasShares bool
	Price     decimal.Decimal
	HasPrice  bool
	Date      string
	HasDate   bool
}

var (
	saleRe     = regexp.MustCompile(`(?i)sale|sold|sell`)
	purchaseRe = regexp.MustCompile(`(?i)purchase|bought|buy|acquire`)
	sharesRe   = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*shares`)
	priceRe    = regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*(?:per|/)\s*share`)
	dateRe     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// ParseTransactionSummary extracts what it can from free text. Type defaults
// to a purchase.
func ParseTransactionSummary(s string) Summary {
	out := Summary{Type: models.InsiderPurchase}
	switch {
	case saleRe.MatchString(s):
		out.Type = models.InsiderSale
	case purchaseRe.MatchString(s):
		out.Type = models.InsiderPurchase
	}

	if m := sharesRe.FindStringSubmatch(s); m != nil {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			out.Shares, out.HasShares = int64(f), true
		}
	}
	if m := priceRe.FindStringSubmatch(s); m != nil {
		if d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "")); err == nil {
			out.Price, out.HasPrice = d, true
		}
	}
	if m := dateRe.FindString(s); m != "" {
		if _, err := time.Parse(utils.DateLayout, m); err == nil {
			out.Date, out.HasDate = m, true
		}
	}
	return out
}
