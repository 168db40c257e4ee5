package individuals

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

const upsertIndividualSQL = `INSERT INTO individuals (id, enrollment, name, created_at, updated_at)
VALUES (?, ?, ?, NOW(), NOW())
ON CONFLICT (enrollment) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
RETURNING id`

func (r *repository) SyncCompany(ctx context.Context, company *models.Company) error {
	db := r.db.WithContext(ctx)
	for enrollment, ref := range models.RefsFromCompany(company) {
		cand, _ := company.FindCandidate(ref.CandidateID)

		var id uuid.UUID
		if err := db.Raw(upsertIndividualSQL, uuid.New(), enrollment, cand.Name).Row().Scan(&id); err != nil {
			return err
		}

		ref.IndividualID = id
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "individual_id"}, {Name: "company_ref"}},
			UpdateAll: true,
		}).Create(&ref).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Search(ctx context.Context, query string, limit int) ([]models.Individual, error) {
	pattern := "%" + escapeLike(query) + "%"

	var out []models.Individual
	err := r.db.WithContext(ctx).
		Preload("References", func(db *gorm.DB) *gorm.DB {
			return db.Order("company_id DESC")
		}).
		Where("enrollment ILIKE ? OR name ILIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) GetByEnrollment(ctx context.Context, enrollment string) (*models.Individual, error) {
	var ind models.Individual
	err := r.db.WithContext(ctx).
		Preload("References", func(db *gorm.DB) *gorm.DB {
			return db.Order("company_id DESC")
		}).
		Where("enrollment = ?", enrollment).
		First(&ind).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrIndividualNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ind, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
