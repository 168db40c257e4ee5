package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Individual is the global directory entry for one enrollment number. It
// lists every company drive the enrollment appears in.
type Individual struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Enrollment string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"enrollment"`
	Name       string          `gorm:"type:varchar(150);not null" json:"name"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	References []IndividualRef `gorm:"foreignKey:IndividualID;constraint:OnDelete:CASCADE" json:"companies"`
}

// TableName specifies the table name for Individual model
func (*Individual) TableName() string {
	return "individuals"
}

// BeforeCreate sets up the model before creation
func (i *Individual) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IndividualRef is one appearance of an individual in a company, with the
// company status and candidate result copied for display.
type IndividualRef struct {
	IndividualID  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	CompanyRef    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"companyRef"`
	CompanyID     int64           `gorm:"not null" json:"companyId"`
	CompanyName   string          `gorm:"type:varchar(200);not null" json:"companyName"`
	CandidateID   int             `gorm:"not null" json:"candidateId"`
	CompanyStatus CompanyStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Result        CandidateResult `gorm:"type:varchar(20);not null" json:"result"`
}

// TableName specifies the table name for IndividualRef model
func (*IndividualRef) TableName() string {
	return "individual_refs"
}

// RefsFromCompany builds one directory reference per candidate of c, keyed
// by enrollment.
func RefsFromCompany(c *Company) map[string]IndividualRef {
	refs := make(map[string]IndividualRef, len(c.Candidates))
	for i := range c.Candidates {
		cand := &c.Candidates[i]
		refs[cand.Enrollment] = IndividualRef{
			CompanyRef:    c.ID,
			CompanyID:     c.CompanyID,
			CompanyName:   c.Name,
			CandidateID:   cand.CandidateID,
			CompanyStatus: c.Status,
			Result:        cand.Result,
		}
	}
	return refs
}
