package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/jaideeprtx/nj-trades/pkg/models"
)

// InsertCongressTrade stores the trade unless an identical row exists.
// created is false for a duplicate, which is not an error.
func (s *Store) InsertCongressTrade(ctx context.Context, t *models.CongressTrade) (created bool, err error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(t)
	if res.Error != nil {
		return false, fmt.Errorf("insert congress trade: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// InsertInsiderTrade stores the trade unless an identical row exists.
func (s *Store) InsertInsiderTrade(ctx context.Context, t *models.InsiderTrade) (created bool, err error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(t)
	if res.Error != nil {
		return false, fmt.Errorf("insert insider trade: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RecentCongressTrades pages through congress trades, latest disclosure first.
func (s *Store) RecentCongressTrades(ctx context.Context, limit, offset int) ([]models.CongressTrade, error) {
	var out []models.CongressTrade
	err := s.db.WithContext(ctx).
		Order("disclosure_date DESC, transaction_date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("recent congress trades: %w", err)
	}
	return out, nil
}

// CongressByMember returns trades whose member name contains name.
func (s *Store) CongressByMember(ctx context.Context, name string) ([]models.CongressTrade, error) {
	var out []models.CongressTrade
	err := s.db.WithContext(ctx).
		Where(likeExpr("member"), likePattern(name)).
		Order("transaction_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("congress trades for member %q: %w", name, err)
	}
	return out, nil
}

// CongressByTicker returns trades in the given ticker. Lookup is case-insensitive.
func (s *Store) CongressByTicker(ctx context.Context, ticker string) ([]models.CongressTrade, error) {
	var out []models.CongressTrade
	err := s.db.WithContext(ctx).
		Where("ticker = ?", strings.ToUpper(strings.TrimSpace(ticker))).
		Order("transaction_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("congress trades for %s: %w", ticker, err)
	}
	return out, nil
}

// CongressMembers lists distinct members with their trade counts, most active first.
func (s *Store) CongressMembers(ctx context.Context) ([]models.MemberActivity, error) {
	var out []models.MemberActivity
	err := s.db.WithContext(ctx).
		Model(&models.CongressTrade{}).
		Select("member, MAX(chamber) AS chamber, MAX(party) AS party, MAX(state) AS state, COUNT(*) AS trade_count").
		Group("member").
		Order("trade_count DESC, member ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("congress members: %w", err)
	}
	return out, nil
}

// RecentInsiderTrades pages through Form-4 trades, latest filing first.
func (s *Store) RecentInsiderTrades(ctx context.Context, limit, offset int) ([]models.InsiderTrade, error) {
	var out []models.InsiderTrade
	err := s.db.WithContext(ctx).
		Order("filing_date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("recent insider trades: %w", err)
	}
	return out, nil
}

// InsiderBuys returns the most recent open-market purchases.
func (s *Store) InsiderBuys(ctx context.Context, limit int) ([]models.InsiderTrade, error) {
	var out []models.InsiderTrade
	err := s.db.WithContext(ctx).
		Where("transaction_type = ?", models.InsiderPurchase).
		Order("filing_date DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("insider buys: %w", err)
	}
	return out, nil
}

// InsiderByTicker returns Form-4 trades for a ticker. Lookup is case-insensitive.
func (s *Store) InsiderByTicker(ctx context.Context, ticker string) ([]models.InsiderTrade, error) {
	var out []models.InsiderTrade
	err := s.db.WithContext(ctx).
		Where("ticker = ?", strings.ToUpper(strings.TrimSpace(ticker))).
		Order("filing_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("insider trades for %s: %w", ticker, err)
	}
	return out, nil
}

// likeExpr is a case-insensitive LIKE on col with backslash escapes.
func likeExpr(col string) string {
	return "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
}

// likePattern builds a lowercase substring pattern with LIKE wildcards escaped.
func likePattern(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}
