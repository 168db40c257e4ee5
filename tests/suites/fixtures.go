package suites

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/stakes"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
)

// SeedUser inserts a bettor holding tokens.
func (suite *RepositoryTestSuite) SeedUser(name string, tokens int64) *models.User {
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "hashed",
		Role:         models.RoleUser,
		Tokens:       tokens,
	}
	if err := suite.DB.Create(user).Error; err != nil {
		suite.T().Fatalf("Failed to seed user: %v", err)
	}
	// A zero balance is skipped on insert and would pick up the column default.
	if tokens == 0 {
		suite.DB.Model(user).Update("tokens", 0)
	}
	return user
}

// SeedCompany inserts an active company with candidates in the given order.
// Stakes are derived from the seeded pools.
func (suite *RepositoryTestSuite) SeedCompany(name string, candidates ...models.Candidate) *models.Company {
	company := &models.Company{
		Name:       name,
		Status:     models.CompanyStatusActive,
		Candidates: candidates,
	}
	for i := range company.Candidates {
		cand := &company.Candidates[i]
		cand.Position = i
		if cand.Result == "" {
			cand.Result = models.ResultAwaited
		}
		stakes.Refresh(cand)
	}
	if err := suite.DB.Create(company).Error; err != nil {
		suite.T().Fatalf("Failed to seed company: %v", err)
	}
	return company
}

// ReloadUser reads the current row for id.
func (suite *RepositoryTestSuite) ReloadUser(id uuid.UUID) *models.User {
	var user models.User
	if err := suite.DB.First(&user, "id = ?", id).Error; err != nil {
		suite.T().Fatalf("Failed to reload user: %v", err)
	}
	return &user
}

// ReloadCompany reads the company and its ordered candidates.
func (suite *RepositoryTestSuite) ReloadCompany(id uuid.UUID) *models.Company {
	var company models.Company
	err := suite.DB.
		Preload("Candidates", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&company, "id = ?", id).Error
	if err != nil {
		suite.T().Fatalf("Failed to reload company: %v", err)
	}
	return &company
}
