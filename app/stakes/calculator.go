// Package stakes prices the for/against sides of a candidate from the
// tokens wagered on each side.
package stakes

import (
	"github.com/joefazee/placement/models"
	"github.com/shopspring/decimal"
)

var (
	// skimRate is taken from the smaller pool before pricing.
	skimRate = decimal.New(1, -1)

	// DefaultStake is published while either pool is empty.
	DefaultStake = decimal.NewFromInt(1)
)

// Stakes is the pair of payout multipliers published for a candidate.
type Stakes struct {
	For     decimal.Decimal `json:"forStake"`
	Against decimal.Decimal `json:"againstStake"`
}

// Compute returns the stakes for the given pools. With total = for + against
// and skim = 10% of the smaller pool, each side pays (total - skim) / pool,
// rounded half-up to two places. Both stakes are 1.00 while either pool is
// empty or nothing is left after the skim.
func Compute(forTokens, againstTokens int64) Stakes {
	if forTokens <= 0 || againstTokens <= 0 {
		return Stakes{For: DefaultStake, Against: DefaultStake}
	}

	forPool := decimal.NewFromInt(forTokens)
	againstPool := decimal.NewFromInt(againstTokens)

	decider := forPool.Add(againstPool).Sub(HouseSkim(forTokens, againstTokens))
	if !decider.IsPositive() {
		return Stakes{For: DefaultStake, Against: DefaultStake}
	}

	return Stakes{
		For:     decider.Div(forPool).Round(2),
		Against: decider.Div(againstPool).Round(2),
	}
}

// HouseSkim is the deduction taken from the smaller pool. It is not
// credited to any account.
func HouseSkim(forTokens, againstTokens int64) decimal.Decimal {
	smaller := forTokens
	if againstTokens < smaller {
		smaller = againstTokens
	}
	if smaller <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(smaller).Mul(skimRate)
}

// Refresh recomputes and publishes the stakes of c from its current pools.
func Refresh(c *models.Candidate) Stakes {
	s := Compute(c.ForTokens, c.AgainstTokens)
	c.SetStakes(s.For, s.Against)
	return s
}
