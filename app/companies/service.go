package companies

import (
	"context"
	"fmt"

	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/app/individuals"
	"github.com/joefazee/placement/app/stakes"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
)

type service struct {
	tx        database.Transactor
	repo      Repository
	directory individuals.Repository
	log       logger.Logger
}

func NewService(tx database.Transactor, repo Repository, directory individuals.Repository, log logger.Logger) Service {
	return &service{tx: tx, repo: repo, directory: directory, log: log}
}

// CreateCompany stores the company with opening stakes computed from the
// seeded pools and registers every candidate in the directory.
func (s *service) CreateCompany(ctx context.Context, req *CreateCompanyRequest) (*CompanyResponse, error) {
	company := req.ToModel()
	for i := range company.Candidates {
		stakes.Refresh(&company.Candidates[i])
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, company); err != nil {
			return fmt.Errorf("create company: %w", err)
		}
		if err := s.directory.WithTx(tx).SyncCompany(ctx, company); err != nil {
			return fmt.Errorf("sync individuals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("company created", map[string]interface{}{
		"company_id": company.CompanyID,
		"candidates": len(company.Candidates),
	})
	resp := ToResponse(company)
	return &resp, nil
}

func (s *service) GetCompany(ctx context.Context, key models.CompanyKey) (*CompanyResponse, error) {
	company, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(company)
	return &resp, nil
}

func (s *service) ListCompanies(ctx context.Context, filters ListFilters) ([]CompanyResponse, int64, error) {
	list, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	out := make([]CompanyResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i]))
	}
	return out, total, nil
}
