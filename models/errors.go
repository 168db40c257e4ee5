package models

import "errors"

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidRole      = errors.New("invalid role")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidLogin     = errors.New("invalid credentials")
	ErrNegativeTokens   = errors.New("token balance cannot be negative")

	ErrInvalidCompanyName   = errors.New("invalid company name")
	ErrInvalidCompanyStatus = errors.New("invalid company status")
	ErrInvalidCompanyID     = errors.New("invalid company ID")
	ErrNoCandidates         = errors.New("company must have at least one candidate")
	ErrDuplicateCandidate   = errors.New("duplicate candidate ID within company")
	ErrInvalidPoolSeed      = errors.New("pool seed cannot be negative")
	ErrInvalidEnrollment    = errors.New("invalid enrollment number")

	ErrInvalidResult     = errors.New("invalid candidate result")
	ErrResultConflict    = errors.New("candidate result already set to a different value")
	ErrCandidateResolved = errors.New("candidate result already resolved")
	ErrCandidateAwaited  = errors.New("candidate result not yet known")

	ErrInvalidBetType     = errors.New("invalid bet type")
	ErrInvalidBetAmount   = errors.New("invalid bet amount")
	ErrPoolOverflow       = errors.New("bet pool cannot absorb the amount")
	ErrInvalidStake       = errors.New("invalid stake")
	ErrEmptyBetBatch      = errors.New("bet batch is empty")
	ErrBetBatchTooLarge   = errors.New("bet batch exceeds the allowed size")
	ErrInsufficientTokens = errors.New("insufficient tokens")
	ErrCompanyNotOpen     = errors.New("company is not open for betting")
	ErrBetNotActive       = errors.New("bet is not active")
	ErrBettorNotFound     = errors.New("bettor not found for bet")

	ErrCompanyNotFound    = errors.New("company not found")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrBetNotFound        = errors.New("bet not found")
	ErrIndividualNotFound = errors.New("individual not found")

	ErrTxConflict = errors.New("transaction conflict, retries exhausted")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")
	ErrInvalidRetryLimit               = errors.New("invalid transaction retry limit")
	ErrInvalidConcurrency              = errors.New("invalid settlement concurrency")
	ErrInvalidInitialTokens            = errors.New("invalid initial token grant")
	ErrInvalidBatchLimit               = errors.New("invalid bet batch limit")
	ErrInvalidSymmetricKey             = errors.New("symmetric key must be exactly 32 bytes")
	ErrInvalidTokenTTL                 = errors.New("token ttl must be positive")
	ErrInvalidLeaderboardSize          = errors.New("invalid leaderboard size")

	ErrRecordNotFound = errors.New("record not found")
)
