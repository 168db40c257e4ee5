package models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompanyStatus is the lifecycle state of a hiring drive.
type CompanyStatus string

const (
	CompanyStatusActive  CompanyStatus = "active"
	CompanyStatusExpired CompanyStatus = "expired"
	CompanyStatusPending CompanyStatus = "pending"
)

// IsValid reports whether s is a known company status.
func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyStatusActive, CompanyStatusExpired, CompanyStatusPending:
		return true
	}
	return false
}

// Company is a hiring drive whose candidates are the subjects of bets.
type Company struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CompanyID     int64         `gorm:"not null;uniqueIndex;default:nextval('companies_company_id_seq')" json:"companyId"`
	Name          string        `gorm:"type:varchar(200);not null" json:"name"`
	Description   string        `gorm:"type:text" json:"description"`
	Status        CompanyStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	TotalTokenBet int64         `gorm:"not null;default:0" json:"totalTokenBet"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`

	Candidates []Candidate `gorm:"foreignKey:CompanyRef;references:ID;constraint:OnDelete:CASCADE" json:"individuals"`
}

// TableName specifies the table name for Company model
func (*Company) TableName() string {
	return "companies"
}

// BeforeCreate sets up the model before creation
func (c *Company) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CompanyStatusActive
	}
	return nil
}

// IsOpen reports whether the company accepts new bets.
func (c *Company) IsOpen() bool {
	return c.Status == CompanyStatusActive
}

// IsExpired reports whether the hiring drive is over.
func (c *Company) IsExpired() bool {
	return c.Status == CompanyStatusExpired
}

// FindCandidate returns the embedded candidate with the given id.
func (c *Company) FindCandidate(candidateID int) (*Candidate, bool) {
	for i := range c.Candidates {
		if c.Candidates[i].CandidateID == candidateID {
			return &c.Candidates[i], true
		}
	}
	return nil, false
}

// Validate performs validation on the company model
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidCompanyName
	}
	if c.Status != "" && !c.Status.IsValid() {
		return ErrInvalidCompanyStatus
	}
	if len(c.Candidates) == 0 {
		return ErrNoCandidates
	}
	seen := make(map[int]struct{}, len(c.Candidates))
	for i := range c.Candidates {
		if err := c.Candidates[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[c.Candidates[i].CandidateID]; dup {
			return ErrDuplicateCandidate
		}
		seen[c.Candidates[i].CandidateID] = struct{}{}
	}
	return nil
}

// CompanyKey identifies a company either by uuid or by its sequential number.
type CompanyKey struct {
	ID     uuid.UUID
	Number int64
}

// ParseCompanyKey accepts a uuid or a positive sequential company number.
func ParseCompanyKey(s string) (CompanyKey, error) {
	s = strings.TrimSpace(s)
	if id, err := uuid.Parse(s); err == nil && id != uuid.Nil {
		return CompanyKey{ID: id}, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return CompanyKey{}, ErrInvalidCompanyID
	}
	return CompanyKey{Number: n}, nil
}

// Scope restricts a companies query to the keyed row.
func (k CompanyKey) Scope(db *gorm.DB) *gorm.DB {
	if k.ID != uuid.Nil {
		return db.Where("companies.id = ?", k.ID)
	}
	return db.Where("companies.company_id = ?", k.Number)
}

func (k CompanyKey) String() string {
	if k.ID != uuid.Nil {
		return k.ID.String()
	}
	return strconv.FormatInt(k.Number, 10)
}

// CandidateResult is the placement outcome of a candidate.
type CandidateResult string

const (
	ResultAwaited CandidateResult = "awaited"
	ResultWon     CandidateResult = "won"
	ResultLost    CandidateResult = "lost"

	// ResultForfeit settles a bet as lost whichever side it backs. It is
	// never stored on a candidate.
	ResultForfeit CandidateResult = "forfeit"
)

// IsValid reports whether r is a known result.
func (r CandidateResult) IsValid() bool {
	switch r {
	case ResultAwaited, ResultWon, ResultLost:
		return true
	}
	return false
}

// IsTerminal reports whether r is a final outcome.
func (r CandidateResult) IsTerminal() bool {
	return r == ResultWon || r == ResultLost
}

// Settles reports whether a bet can be settled against r.
func (r CandidateResult) Settles() bool {
	return r.IsTerminal() || r == ResultForfeit
}

// Candidate is one individual tracked inside a company, with the for/against
// token pools and the stakes currently published for each side.
type Candidate struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"-"`
	CompanyRef    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_candidates_company_candidate" json:"-"`
	CandidateID   int             `gorm:"not null;uniqueIndex:idx_candidates_company_candidate" json:"id"`
	Position      int             `gorm:"not null;default:0" json:"-"`
	Name          string          `gorm:"type:varchar(150);not null" json:"name"`
	Enrollment    string          `gorm:"type:varchar(50);not null;index" json:"enrollment"`
	ForTokens     int64           `gorm:"not null;default:0;check:for_tokens >= 0" json:"forTokens"`
	AgainstTokens int64           `gorm:"not null;default:0;check:against_tokens >= 0" json:"againstTokens"`
	ForStake      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:1" json:"forStake"`
	AgainstStake  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:1" json:"againstStake"`
	Result        CandidateResult `gorm:"type:varchar(20);not null;default:'awaited'" json:"result"`
}

// TableName specifies the table name for Candidate model
func (*Candidate) TableName() string {
	return "candidates"
}

// BeforeCreate sets up the model before creation
func (c *Candidate) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Result == "" {
		c.Result = ResultAwaited
	}
	return nil
}

// Validate performs validation on the candidate model
func (c *Candidate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(c.Enrollment) == "" {
		return ErrInvalidEnrollment
	}
	if c.ForTokens < 0 || c.AgainstTokens < 0 {
		return ErrInvalidPoolSeed
	}
	if c.Result != "" && !c.Result.IsValid() {
		return ErrInvalidResult
	}
	return nil
}

// IsResolved reports whether an administrator has set a final result.
func (c *Candidate) IsResolved() bool {
	return c.Result.IsTerminal()
}

// AddToPool grows the pool on the chosen side.
func (c *Candidate) AddToPool(betType BetType, amount int64) error {
	if amount < 1 {
		return ErrInvalidBetAmount
	}
	if !c.CanAbsorb(betType, amount) {
		return ErrPoolOverflow
	}
	switch betType {
	case BetTypeFor:
		c.ForTokens += amount
	case BetTypeAgainst:
		c.AgainstTokens += amount
	default:
		return ErrInvalidBetType
	}
	return nil
}

// CanAbsorb reports whether the pool of betType can grow by amount without
// overflowing.
func (c *Candidate) CanAbsorb(betType BetType, amount int64) bool {
	pool := c.ForTokens
	if betType == BetTypeAgainst {
		pool = c.AgainstTokens
	}
	return amount >= 0 && pool <= math.MaxInt64-amount
}

// SetStakes publishes a new pair of stakes.
func (c *Candidate) SetStakes(forStake, againstStake decimal.Decimal) {
	c.ForStake = forStake
	c.AgainstStake = againstStake
}

// StakeFor returns the stake currently published for the given side.
func (c *Candidate) StakeFor(betType BetType) decimal.Decimal {
	if betType == BetTypeAgainst {
		return c.AgainstStake
	}
	return c.ForStake
}

// SetResult records a terminal result. Setting the same value again is
// allowed; switching between won and lost is not.
func (c *Candidate) SetResult(result CandidateResult) (changed bool, err error) {
	if !result.IsTerminal() {
		return false, ErrInvalidResult
	}
	if c.Result == result {
		return false, nil
	}
	if c.Result.IsTerminal() {
		return false, ErrResultConflict
	}
	c.Result = result
	return true, nil
}
