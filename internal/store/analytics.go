package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jaideeprtx/nj-trades/pkg/models"
	"github.com/jaideeprtx/nj-trades/pkg/utils"
)

// Trending windows and limits.
const (
	CongressTrendingDays = 30
	InsiderTrendingDays  = 7
	trendingMentionRows  = 20
	TrendingTickerLimit  = 10
	searchLimit          = 10
)

// TickerMention is the number of recent rows for a ticker in one source.
type TickerMention struct {
	Ticker   string
	Source   string
	Mentions int64
}

// Stats returns a count per entity table.
func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	var st models.Stats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM institutions) AS institution_count,
			(SELECT COUNT(*) FROM holdings) AS holding_count,
			(SELECT COUNT(*) FROM congress_trades) AS congress_trade_count,
			(SELECT COUNT(*) FROM insider_trades) AS insider_trade_count
	`).Scan(&st).Error
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &st, nil
}

// TrendingMentions returns per-source mention counts for congress trades
// transacted within 30 days of now and insider trades filed within 7 days,
// highest first, at most 20 rows.
func (s *Store) TrendingMentions(ctx context.Context, now time.Time) ([]TickerMention, error) {
	congressCutoff := utils.DaysAgo(now.UTC(), CongressTrendingDays)
	insiderCutoff := utils.DaysAgo(now.UTC(), InsiderTrendingDays)

	var out []TickerMention
	err := s.db.WithContext(ctx).Raw(`
		SELECT ticker, source, mentions FROM (
			SELECT ticker, 'congress' AS source, COUNT(*) AS mentions
			FROM congress_trades
			WHERE ticker IS NOT NULL AND transaction_date > ?
			GROUP BY ticker
			UNION ALL
			SELECT ticker, 'insider' AS source, COUNT(*) AS mentions
			FROM insider_trades
			WHERE filing_date > ?
			GROUP BY ticker
		) m
		ORDER BY mentions DESC, ticker ASC, source ASC
		LIMIT ?
	`, congressCutoff, insiderCutoff, trendingMentionRows).Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("trending mentions: %w", err)
	}
	return out, nil
}

// Trending merges recent mentions per ticker and returns the top tickers by
// total mentions.
func (s *Store) Trending(ctx context.Context, now time.Time) ([]models.TrendingTicker, error) {
	mentions, err := s.TrendingMentions(ctx, now)
	if err != nil {
		return nil, err
	}
	return MergeMentions(mentions, TrendingTickerLimit), nil
}

// MergeMentions folds per-source rows into one entry per ticker, ordered by
// total mentions. Ties keep the order in which tickers first appear.
func MergeMentions(mentions []TickerMention, limit int) []models.TrendingTicker {
	index := make(map[string]int)
	out := make([]models.TrendingTicker, 0, len(mentions))
	for _, m := range mentions {
		i, ok := index[m.Ticker]
		if !ok {
			i = len(out)
			index[m.Ticker] = i
			out = append(out, models.TrendingTicker{Ticker: m.Ticker, Sources: []string{}})
		}
		out[i].Sources = append(out[i].Sources, m.Source)
		out[i].TotalMentions += m.Mentions
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].TotalMentions > out[b].TotalMentions })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Search matches q as a case-insensitive substring against tickers, company
// names, members and insiders, returning up to 10 hits per source.
func (s *Store) Search(ctx context.Context, q string) (*models.SearchResults, error) {
	pattern := likePattern(q)
	res := &models.SearchResults{
		Holdings: []models.SearchHit{},
		Congress: []models.SearchHit{},
		Insider:  []models.SearchHit{},
	}

	db := s.db.WithContext(ctx)
	err := db.Raw(`
		SELECT 'holding' AS type, COALESCE(h.ticker, '') AS ticker, h.company_name AS name,
		       i.name AS source, CAST(h.value AS TEXT) AS value, h.quarter AS date
		FROM holdings h
		JOIN institutions i ON h.institution_id = i.id
		WHERE `+likeExpr("h.ticker")+` OR `+likeExpr("h.company_name")+`
		ORDER BY h.value DESC LIMIT ?
	`, pattern, pattern, searchLimit).Scan(&res.Holdings).Error
	if err != nil {
		return nil, fmt.Errorf("search holdings: %w", err)
	}

	err = db.Raw(`
		SELECT 'congress' AS type, COALESCE(ticker, '') AS ticker, member AS name,
		       transaction_type AS source, amount_range AS value, transaction_date AS date
		FROM congress_trades
		WHERE `+likeExpr("ticker")+` OR `+likeExpr("member")+`
		ORDER BY transaction_date DESC LIMIT ?
	`, pattern, pattern, searchLimit).Scan(&res.Congress).Error
	if err != nil {
		return nil, fmt.Errorf("search congress: %w", err)
	}

	err = db.Raw(`
		SELECT 'insider' AS type, ticker, insider_name AS name,
		       transaction_type AS source, COALESCE(CAST(total_value AS TEXT), '') AS value, filing_date AS date
		FROM insider_trades
		WHERE `+likeExpr("ticker")+` OR `+likeExpr("company_name")+` OR `+likeExpr("insider_name")+`
		ORDER BY filing_date DESC LIMIT ?
	`, pattern, pattern, pattern, searchLimit).Scan(&res.Insider).Error
	if err != nil {
		return nil, fmt.Errorf("search insider: %w", err)
	}
	return res, nil
}
