package individuals

import (
	"context"

	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
)

// Repository defines data access for the individual directory
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// SyncCompany upserts one directory entry and one reference per
	// candidate of the company.
	SyncCompany(ctx context.Context, company *models.Company) error
	Search(ctx context.Context, query string, limit int) ([]models.Individual, error)
	GetByEnrollment(ctx context.Context, enrollment string) (*models.Individual, error)
}

// Service defines the read side of the directory
type Service interface {
	Search(ctx context.Context, query string) ([]Response, error)
	GetByEnrollment(ctx context.Context, enrollment string) (*Response, error)
}
