package sec13f

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jaideeprtx/nj-trades/internal/config"
	"github.com/jaideeprtx/nj-trades/internal/edgar"
	"github.com/jaideeprtx/nj-trades/internal/ingest"
	"github.com/jaideeprtx/nj-trades/internal/store"
	"github.com/jaideeprtx/nj-trades/pkg/models"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "holdings.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// fakeFilings serves one 13F per CIK; CIKs not listed have no filing.
type fakeFilings struct {
	filings map[string]edgar.Filing
	rows    map[string][]edgar.InfoTableRow
	err     error
}

func (f *fakeFilings) LatestFiling(_ context.Context, cik, form string) (*edgar.Submissions, edgar.Filing, error) {
	if f.err != nil {
		return nil, edgar.Filing{}, f.err
	}
	fl, ok := f.filings[cik]
	if !ok {
		return nil, edgar.Filing{}, fmt.Errorf("cik %s: %w", cik, edgar.ErrNoFiling)
	}
	return &edgar.Submissions{CIK: cik}, fl, nil
}

func (f *fakeFilings) InfoTable(_ context.Context, cik string, _ edgar.Filing) ([]edgar.InfoTableRow, error) {
	return f.rows[cik], nil
}

func berkshireFilings(filed string) *fakeFilings {
	return &fakeFilings{
		filings: map[string]edgar.Filing{
			"0001067983": {AccessionNumber: "0000950123-24-011775", FilingDate: filed, Form: edgar.Form13FHR},
		},
		rows: map[string][]edgar.InfoTableRow{
			"0001067983": {
				{NameOfIssuer: "APPLE INC", CUSIP: "037833100", Value: 84248, Shares: 400000},
				{NameOfIssuer: "ALLY FINL INC", CUSIP: "02005N100", Value: 1035, Shares: 29000},
				{NameOfIssuer: "NO CUSIP", CUSIP: " ", Value: 1, Shares: 1},
			},
		},
	}
}

// ════════════════════════════════════════════════════════════════════
// Quarter derivation
// ════════════════════════════════════════════════════════════════════

func TestQuarterForFilingDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-10", "2023-Q4"},
		{"2024-03-15", "2023-Q4"},
		{"2024-03-16", "2024-Q1"},
		{"2024-05-15", "2024-Q1"},
		{"2024-06-14", "2024-Q1"},
		{"2024-06-16", "2024-Q2"},
		{"2024-08-14", "2024-Q2"},
		{"2024-09-14", "2024-Q2"},
		{"2024-09-15", "2024-Q3"},
		{"2024-11-14", "2024-Q3"},
		{"2024-12-14", "2024-Q3"},
		{"2024-12-15", "2024-Q4"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse("2006-01-02", tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, QuarterForFilingDate(d))
		})
	}
}

func TestHoldingFromRow(t *testing.T) {
	a := New(&fakeFilings{}, nil, DefaultFixtures(), zap.NewNop())

	h, ok := a.HoldingFromRow(edgar.InfoTableRow{NameOfIssuer: " APPLE INC ", CUSIP: "037833100", Value: 84248, Shares: 400000})
	require.True(t, ok)
	assert.Equal(t, "AAPL", *h.Ticker)
	assert.Equal(t, int64(84248000), h.Value)
	assert.Equal(t, "APPLE INC", h.CompanyName)

	h, ok = a.HoldingFromRow(edgar.InfoTableRow{CUSIP: "02005n100"})
	require.True(t, ok)
	assert.Equal(t, "02005N100", h.CUSIP)
	assert.Equal(t, "0200", *h.Ticker)

	_, ok = a.HoldingFromRow(edgar.InfoTableRow{NameOfIssuer: "blank"})
	assert.False(t, ok)
}

func TestTickerForCUSIPUsesInjectedMap(t *testing.T) {
	fx := DefaultFixtures()
	fx.CUSIPTickers = map[string]string{"02005N100": "ALLY"}
	a := New(&fakeFilings{}, nil, fx, zap.NewNop())

	assert.Equal(t, "ALLY", a.TickerForCUSIP("02005N100"))
	assert.Equal(t, "0378", a.TickerForCUSIP("037833100"))
}

func TestDefaultFixturesAreCopies(t *testing.T) {
	first := DefaultFixtures()
	first.Portfolios[0].Holdings[0].Value = 1
	first.Portfolios[0].Name = "changed"
	first.CUSIPTickers["037833100"] = "XXXX"

	second := DefaultFixtures()
	assert.Equal(t, int64(157400000000), second.Portfolios[0].Holdings[0].Value)
	assert.Equal(t, "Berkshire Hathaway", second.Portfolios[0].Name)
	assert.Equal(t, "AAPL", second.CUSIPTickers["037833100"])
}

// ════════════════════════════════════════════════════════════════════
// Fetch
// ════════════════════════════════════════════════════════════════════

func TestFetchStoresLatestFiling(t *testing.T) {
	st := openStore(t)
	a := New(berkshireFilings("2024-08-14"), st, DefaultFixtures(), zap.NewNop())
	ctx := context.Background()

	res, err := a.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, ingest.Source13F, res.Source)
	require.Equal(t, 2, res.Created)

	institutions, err := st.ListInstitutions(ctx)
	require.NoError(t, err)
	assert.Len(t, institutions, len(DefaultFixtures().Portfolios))

	holdings, err := st.LatestHoldings(ctx, "1067983")
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "AAPL", *holdings[0].Ticker)
	assert.Equal(t, "2024-Q2", holdings[0].Quarter)
	assert.Equal(t, "2024-08-14", holdings[0].FilingDate)

	// a second run replaces rather than duplicates
	_, err = a.Fetch(ctx)
	require.NoError(t, err)
	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.HoldingCount)
}

func TestFetchAllFailing(t *testing.T) {
	boom := errors.New("connection reset")
	a := New(&fakeFilings{err: boom}, openStore(t), DefaultFixtures(), zap.NewNop())

	res, err := a.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrSourceUnavailable)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, res.Created)
}

func TestFetchNoFilingsIsNotFailure(t *testing.T) {
	a := New(&fakeFilings{}, openStore(t), DefaultFixtures(), zap.NewNop())
	res, err := a.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Records.([]models.Holding))
}

func TestSeed(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	portfolios := DefaultFixtures().Portfolios
	n, err := Seed(ctx, st, portfolios)
	require.NoError(t, err)
	var want int
	for _, p := range portfolios {
		want += len(p.Holdings)
	}
	assert.Equal(t, want, n)

	// seeding twice keeps one row per position
	_, err = Seed(ctx, st, portfolios)
	require.NoError(t, err)
	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(want), stats.HoldingCount)
	assert.Equal(t, int64(len(portfolios)), stats.InstitutionCount)

	holdings, err := st.LatestHoldings(ctx, "0001067983")
	require.NoError(t, err)
	require.NotEmpty(t, holdings)
	assert.Equal(t, "AAPL", *holdings[0].Ticker)
	assert.Equal(t, DemoQuarter, holdings[0].Quarter)
	assert.Equal(t, "Berkshire Hathaway", holdings[0].InstitutionName)
}

func TestSeedWritesGivenPortfolios(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	portfolios := []DemoPortfolio{{
		CIK:      "0000000042",
		Name:     "Test Capital",
		Holdings: []DemoHolding{{Ticker: "AAPL", Company: "Apple Inc", Shares: 10, Value: 1}},
	}}
	n, err := Seed(ctx, st, portfolios)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	holdings, err := st.LatestHoldings(ctx, "0000000042")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, int64(1), holdings[0].Value)

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.InstitutionCount)
}
