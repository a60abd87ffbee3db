package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaideeprtx/nj-trades/pkg/models"
	"github.com/jaideeprtx/nj-trades/pkg/utils"
)

// UpsertInstitution creates the institution if absent and returns the stored
// row. An existing row is left untouched.
func (s *Store) UpsertInstitution(ctx context.Context, cik, name string) (*models.Institution, error) {
	cik = utils.PadCIK(cik)
	inst := models.Institution{CIK: cik, Name: name, UpdatedAt: s.now().UTC()}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "cik"}}, DoNothing: true}).
		Create(&inst).Error
	if err != nil {
		return nil, fmt.Errorf("upsert institution %s: %w", cik, err)
	}
	return s.GetInstitution(ctx, cik)
}

// TouchInstitution refreshes updated_at after a successful holdings fetch.
func (s *Store) TouchInstitution(ctx context.Context, cik string) error {
	res := s.db.WithContext(ctx).Model(&models.Institution{}).
		Where("cik = ?", utils.PadCIK(cik)).
		Update("updated_at", s.now().UTC())
	if res.Error != nil {
		return fmt.Errorf("touch institution %s: %w", cik, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListInstitutions returns every institution ordered by name.
func (s *Store) ListInstitutions(ctx context.Context) ([]models.Institution, error) {
	var out []models.Institution
	if err := s.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	return out, nil
}

// GetInstitution looks an institution up by CIK. Unpadded CIKs are accepted.
func (s *Store) GetInstitution(ctx context.Context, cik string) (*models.Institution, error) {
	var inst models.Institution
	err := s.db.WithContext(ctx).Where("cik = ?", utils.PadCIK(cik)).First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get institution %s: %w", cik, err)
	}
	return &inst, nil
}

// ReplaceHolding writes a holding, overwriting any existing row with the same
// (institution, cusip, quarter) key.
func (s *Store) ReplaceHolding(ctx context.Context, h *models.Holding) error {
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "institution_id"}, {Name: "cusip"}, {Name: "quarter"}},
			DoUpdates: clause.AssignmentColumns([]string{"ticker", "company_name", "shares", "value", "filing_date"}),
		}).
		Create(h).Error
	if err != nil {
		return fmt.Errorf("replace holding %s/%s: %w", h.CUSIP, h.Quarter, err)
	}
	return nil
}

func (s *Store) holdingsQuery(ctx context.Context, cik string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("holdings AS h").
		Select("h.*, i.name AS institution_name").
		Joins("JOIN institutions i ON h.institution_id = i.id").
		Where("i.cik = ?", utils.PadCIK(cik))
}

// LatestHoldings returns the holdings of the institution's most recent
// quarter, largest position first.
func (s *Store) LatestHoldings(ctx context.Context, cik string) ([]models.Holding, error) {
	var out []models.Holding
	err := s.holdingsQuery(ctx, cik).
		Where("h.quarter = (SELECT MAX(quarter) FROM holdings WHERE institution_id = i.id)").
		Order("h.value DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("latest holdings %s: %w", cik, err)
	}
	return out, nil
}

// HoldingsHistory returns holdings across all quarters, newest quarter first.
func (s *Store) HoldingsHistory(ctx context.Context, cik string) ([]models.Holding, error) {
	var out []models.Holding
	err := s.holdingsQuery(ctx, cik).
		Order("h.quarter DESC, h.value DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("holdings history %s: %w", cik, err)
	}
	return out, nil
}
