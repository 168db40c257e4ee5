package admin

import (
	"github.com/joefazee/placement/app/companies"
	"github.com/joefazee/placement/app/settlement"
	"github.com/joefazee/placement/models"
)

type StatusRequest struct {
	Status models.CompanyStatus `json:"status" binding:"required,oneof=active expired pending"`
}

type ResultRequest struct {
	Result models.CandidateResult `json:"result" binding:"required,oneof=won lost"`
}

// ResolutionResponse carries the updated company and the settlement report
// of the fan-out it triggered.
type ResolutionResponse struct {
	Company    companies.CompanyResponse `json:"company"`
	Settlement *settlement.Report        `json:"settlement"`
}
