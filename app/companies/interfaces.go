package companies

import (
	"context"

	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
)

// Repository defines data access for companies and their candidates
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, company *models.Company) error
	GetByKey(ctx context.Context, key models.CompanyKey) (*models.Company, error)
	List(ctx context.Context, filters ListFilters) ([]models.Company, int64, error)
}

// Service defines company management
type Service interface {
	CreateCompany(ctx context.Context, req *CreateCompanyRequest) (*CompanyResponse, error)
	GetCompany(ctx context.Context, key models.CompanyKey) (*CompanyResponse, error)
	ListCompanies(ctx context.Context, filters ListFilters) ([]CompanyResponse, int64, error)
}
