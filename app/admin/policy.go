package admin

import "github.com/joefazee/placement/models"

// ExpiredAwaitedResult is the result used to settle bets on a candidate
// that was still awaited when its company expired: every such bet is lost,
// whichever side it backs. The candidate row keeps its awaited result.
const ExpiredAwaitedResult = models.ResultForfeit

// effectiveResult returns the result bets on cand settle against, and
// whether they can be settled at all.
func effectiveResult(company *models.Company, cand *models.Candidate) (models.CandidateResult, bool) {
	if cand.Result.IsTerminal() {
		return cand.Result, true
	}
	if company.IsExpired() {
		return ExpiredAwaitedResult, true
	}
	return models.ResultAwaited, false
}
