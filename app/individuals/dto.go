package individuals

import (
	"github.com/google/uuid"
	"github.com/joefazee/placement/models"
)

// Response is one directory entry with every company it appears in.
type Response struct {
	ID         uuid.UUID       `json:"id"`
	Enrollment string          `json:"enrollment"`
	Name       string          `json:"name"`
	Companies  []ReferenceItem `json:"companies"`
}

type ReferenceItem struct {
	CompanyRef  uuid.UUID              `json:"companyRef"`
	CompanyID   int64                  `json:"companyId"`
	CompanyName string                 `json:"companyName"`
	CandidateID int                    `json:"candidateId"`
	Status      models.CompanyStatus   `json:"status"`
	Result      models.CandidateResult `json:"result"`
}

func ToResponse(ind *models.Individual) Response {
	resp := Response{
		ID:         ind.ID,
		Enrollment: ind.Enrollment,
		Name:       ind.Name,
		Companies:  make([]ReferenceItem, 0, len(ind.References)),
	}
	for _, ref := range ind.References {
		resp.Companies = append(resp.Companies, ReferenceItem{
			CompanyRef:  ref.CompanyRef,
			CompanyID:   ref.CompanyID,
			CompanyName: ref.CompanyName,
			CandidateID: ref.CandidateID,
			Status:      ref.CompanyStatus,
			Result:      ref.Result,
		})
	}
	return resp
}
