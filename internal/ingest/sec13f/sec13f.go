// Package sec13f ingests institutional holdings from 13F-HR filings.
package sec13f

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jaideeprtx/nj-trades/internal/edgar"
	"github.com/jaideeprtx/nj-trades/internal/ingest"
	"github.com/jaideeprtx/nj-trades/pkg/models"
	"github.com/jaideeprtx/nj-trades/pkg/utils"
)

// Filings reads 13F filings from EDGAR.
type Filings interface {
	LatestFiling(ctx context.Context, cik, form string) (*edgar.Submissions, edgar.Filing, error)
	InfoTable(ctx context.Context, cik string, f edgar.Filing) ([]edgar.InfoTableRow, error)
}

// Store is the part of the store the adapter writes to.
type Store interface {
	UpsertInstitution(ctx context.Context, cik, name string) (*models.Institution, error)
	TouchInstitution(ctx context.Context, cik string) error
	ListInstitutions(ctx context.Context) ([]models.Institution, error)
	ReplaceHolding(ctx context.Context, h *models.Holding) error
}

// Adapter refreshes the holdings of every tracked institution.
type Adapter struct {
	filings Filings
	store   Store
	tracked []DemoPortfolio
	cusips  map[string]string
	log     *zap.Logger
}

var _ ingest.Adapter = (*Adapter)(nil)

// New creates the adapter. The institutions in fx.Portfolios are tracked.
func New(filings Filings, store Store, fx Fixtures, log *zap.Logger) *Adapter {
	return &Adapter{
		filings: filings,
		store:   store,
		tracked: fx.Portfolios,
		cusips:  fx.CUSIPTickers,
		log:     log.With(zap.String("source", string(ingest.Source13F))),
	}
}

func (a *Adapter) Source() ingest.Source { return ingest.Source13F }

// Fetch loads the latest 13F-HR of every institution in the store. One
// institution failing does not stop the others; an error is returned only
// when none succeeded.
func (a *Adapter) Fetch(ctx context.Context) (ingest.Result, error) {
	res := ingest.Result{Source: ingest.Source13F}
	stored := make([]models.Holding, 0)
	res.Records = stored

	for _, p := range a.tracked {
		if _, err := a.store.UpsertInstitution(ctx, p.CIK, p.Name); err != nil {
			return res, ingest.Unavailable(ingest.Source13F, err)
		}
	}
	institutions, err := a.store.ListInstitutions(ctx)
	if err != nil {
		return res, ingest.Unavailable(ingest.Source13F, err)
	}

	var failed int
	var lastErr error
	for i := range institutions {
		inst := &institutions[i]
		holdings, err := a.fetchInstitution(ctx, inst)
		switch {
		case errors.Is(err, edgar.ErrNoFiling):
			a.log.Info("no 13F-HR filing", zap.String("cik", inst.CIK), zap.String("institution", inst.Name))
		case err != nil:
			a.log.Warn("fetching holdings", zap.String("cik", inst.CIK), zap.String("institution", inst.Name), zap.Error(err))
			failed++
			lastErr = err
		default:
			a.log.Info("fetched holdings", zap.String("cik", inst.CIK), zap.Int("holdings", len(holdings)))
		}
		if ctx.Err() != nil {
			return res, ingest.Unavailable(ingest.Source13F, ctx.Err())
		}
		stored = append(stored, holdings...)
		res.Fetched += len(holdings)
	}

	res.Created = len(stored)
	res.Records = stored
	if len(institutions) > 0 && failed == len(institutions) {
		return res, ingest.Unavailable(ingest.Source13F, lastErr)
	}
	return res, nil
}

func (a *Adapter) fetchInstitution(ctx context.Context, inst *models.Institution) ([]models.Holding, error) {
	_, filing, err := a.filings.LatestFiling(ctx, inst.CIK, edgar.Form13FHR)
	if err != nil {
		return nil, err
	}
	filed := utils.ParseSECDate(filing.FilingDate)
	if filed.IsZero() {
		return nil, fmt.Errorf("invalid filing date %q", filing.FilingDate)
	}

	rows, err := a.filings.InfoTable(ctx, inst.CIK, filing)
	if err != nil {
		return nil, err
	}

	quarter := QuarterForFilingDate(filed)
	holdings := make([]models.Holding, 0, len(rows))
	for _, row := range rows {
		h, ok := a.HoldingFromRow(row)
		if !ok {
			continue
		}
		h.InstitutionID = inst.ID
		h.Quarter = quarter
		h.FilingDate = utils.FormatDate(filed)
		if err := a.store.ReplaceHolding(ctx, &h); err != nil {
			a.log.Warn("storing holding", zap.String("cik", inst.CIK), zap.String("cusip", h.CUSIP), zap.Error(err))
			continue
		}
		h.InstitutionName = inst.Name
		holdings = append(holdings, h)
	}

	if err := a.store.TouchInstitution(ctx, inst.CIK); err != nil {
		return holdings, err
	}
	return holdings, nil
}

// HoldingFromRow maps an information table row. ok is false for rows without
// a CUSIP. Values are filed in thousands of dollars.
func (a *Adapter) HoldingFromRow(row edgar.InfoTableRow) (models.Holding, bool) {
	cusip := strings.ToUpper(strings.TrimSpace(row.CUSIP))
	if cusip == "" {
		return models.Holding{}, false
	}
	ticker := a.TickerForCUSIP(cusip)
	return models.Holding{
		Ticker:      utils.StringPtr(ticker),
		CUSIP:       cusip,
		CompanyName: strings.TrimSpace(row.NameOfIssuer),
		Shares:      row.Shares,
		Value:       row.Value * 1000,
	}, true
}

// TickerForCUSIP returns the known ticker for cusip, or its first four
// characters when the CUSIP is not mapped.
func (a *Adapter) TickerForCUSIP(cusip string) string {
	if t, ok := a.cusips[cusip]; ok {
		return t
	}
	if len(cusip) > 4 {
		return cusip[:4]
	}
	return cusip
}

// QuarterForFilingDate names the calendar quarter a 13F filed on t reports.
// Filings are due 45 days after quarter end.
func QuarterForFilingDate(t time.Time) string {
	year, month, day := t.Date()
	var q int
	switch {
	case month <= time.February || (month == time.March && day <= 15):
		return fmt.Sprintf("%d-Q4", year-1)
	case month <= time.May || (month == time.June && day <= 14):
		q = 1
	case month <= time.August || (month == time.September && day <= 14):
		q = 2
	case month <= time.November || (month == time.December && day <= 14):
		q = 3
	default:
		q = 4
	}
	return fmt.Sprintf("%d-Q%d", year, q)
}

// Seed writes the sample portfolios. It returns the number of holdings
// written.
func Seed(ctx context.Context, store Store, portfolios []DemoPortfolio) (int, error) {
	var n int
	for _, p := range portfolios {
		inst, err := store.UpsertInstitution(ctx, p.CIK, p.Name)
		if err != nil {
			return n, fmt.Errorf("seed %s: %w", p.Name, err)
		}
		for _, dh := range p.Holdings {
			h := models.Holding{
				InstitutionID: inst.ID,
				Ticker:        utils.StringPtr(dh.Ticker),
				CUSIP:         dh.Ticker,
				CompanyName:   dh.Company,
				Shares:        dh.Shares,
				Value:         dh.Value,
				Quarter:       DemoQuarter,
				FilingDate:    DemoFilingDate,
			}
			if err := store.ReplaceHolding(ctx, &h); err != nil {
				return n, fmt.Errorf("seed %s %s: %w", p.Name, dh.Ticker, err)
			}
			n++
		}
	}
	return n, nil
}
