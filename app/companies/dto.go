package companies

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/stakes"
	"github.com/joefazee/placement/internal/formatter"
	"github.com/joefazee/placement/internal/sanitizer"
	"github.com/joefazee/placement/internal/validator"
	"github.com/joefazee/placement/models"
	"github.com/shopspring/decimal"
)

// CreateCompanyRequest creates a hiring drive with its candidates.
type CreateCompanyRequest struct {
	Name        string                 `json:"name" binding:"required,max=200"`
	Description string                 `json:"description" binding:"max=2000"`
	Status      models.CompanyStatus   `json:"status" binding:"omitempty,oneof=active expired pending"`
	Individuals []CandidateSeedRequest `json:"individuals" binding:"required,min=1,dive"`
}

// CandidateSeedRequest seeds one candidate and its opening pools.
type CandidateSeedRequest struct {
	ID            int    `json:"id" binding:"required,min=1"`
	Name          string `json:"name" binding:"required,max=150"`
	Enrollment    string `json:"enrollment" binding:"required,max=50"`
	ForTokens     int64  `json:"forTokens" binding:"min=0"`
	AgainstTokens int64  `json:"againstTokens" binding:"min=0"`
}

// Validate cleans the free-text fields and checks what binding tags cannot.
func (r *CreateCompanyRequest) Validate(v *validator.Validator, s sanitizer.HTMLStripperer) bool {
	r.Name = formatter.Name(s.StripHTML(r.Name))
	r.Description = s.StripHTML(r.Description)
	v.Check(validator.NotBlank(r.Name), "name", "name is required")

	ids := make([]int, 0, len(r.Individuals))
	for i := range r.Individuals {
		cand := &r.Individuals[i]
		key := "individuals[" + strconv.Itoa(i) + "]"

		cand.Name = formatter.Name(s.StripHTML(cand.Name))
		cand.Enrollment = formatter.Enrollment(cand.Enrollment)
		v.Check(validator.NotBlank(cand.Name), key+".name", "name is required")
		v.Check(validator.IsEnrollment(cand.Enrollment), key+".enrollment", "enrollment is invalid")
		ids = append(ids, cand.ID)
	}
	v.Check(validator.NoDuplicates(ids), "individuals", "candidate ids must be unique")

	return v.Valid()
}

// ToModel builds the company with candidates in request order.
func (r *CreateCompanyRequest) ToModel() *models.Company {
	status := r.Status
	if status == "" {
		status = models.CompanyStatusActive
	}
	company := &models.Company{
		Name:        r.Name,
		Description: r.Description,
		Status:      status,
		Candidates:  make([]models.Candidate, 0, len(r.Individuals)),
	}
	for i, seed := range r.Individuals {
		company.Candidates = append(company.Candidates, models.Candidate{
			CandidateID:   seed.ID,
			Position:      i,
			Name:          seed.Name,
			Enrollment:    seed.Enrollment,
			ForTokens:     seed.ForTokens,
			AgainstTokens: seed.AgainstTokens,
			Result:        models.ResultAwaited,
		})
	}
	return company
}

// ListFilters narrows and pages the company list.
type ListFilters struct {
	Status  models.CompanyStatus `form:"status" binding:"omitempty,oneof=active expired pending"`
	Page    int                  `form:"page" binding:"omitempty,min=1"`
	PerPage int                  `form:"perPage" binding:"omitempty,min=1,max=100"`
}

func (f *ListFilters) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}
}

// CompanyResponse is the public shape of a company.
type CompanyResponse struct {
	ID            uuid.UUID            `json:"id"`
	CompanyID     int64                `json:"companyId"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Status        models.CompanyStatus `json:"status"`
	TotalTokenBet int64                `json:"totalTokenBet"`
	Individuals   []CandidateResponse  `json:"individuals"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type CandidateResponse struct {
	ID            int                    `json:"id"`
	Name          string                 `json:"name"`
	Enrollment    string                 `json:"enrollment"`
	ForTokens     int64                  `json:"forTokens"`
	AgainstTokens int64                  `json:"againstTokens"`
	ForStake      decimal.Decimal        `json:"forStake"`
	AgainstStake  decimal.Decimal        `json:"againstStake"`
	HouseSkim     decimal.Decimal        `json:"houseSkim"`
	Result        models.CandidateResult `json:"result"`
}

func ToResponse(c *models.Company) CompanyResponse {
	resp := CompanyResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		Name:          c.Name,
		Description:   c.Description,
		Status:        c.Status,
		TotalTokenBet: c.TotalTokenBet,
		Individuals:   make([]CandidateResponse, 0, len(c.Candidates)),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for i := range c.Candidates {
		cand := &c.Candidates[i]
		resp.Individuals = append(resp.Individuals, CandidateResponse{
			ID:            cand.CandidateID,
			Name:          cand.Name,
			Enrollment:    cand.Enrollment,
			ForTokens:     cand.ForTokens,
			AgainstTokens: cand.AgainstTokens,
			ForStake:      cand.ForStake,
			AgainstStake:  cand.AgainstStake,
			HouseSkim:     stakes.HouseSkim(cand.ForTokens, cand.AgainstTokens),
			Result:        cand.Result,
		})
	}
	return resp
}
