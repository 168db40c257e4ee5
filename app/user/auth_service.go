package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/placement/internal/cache"
)

type authService struct {
	repo  Repository
	cache cache.Cache[[]string]
	ttl   time.Duration
}

func NewAuthService(repo Repository, c cache.Cache[[]string], ttl time.Duration) AuthService {
	return &authService{repo: repo, cache: c, ttl: ttl}
}

// GetUserPermissions returns the permissions granted by the user's role.
// Lookups go through the cache; a cache failure falls back to the store.
func (s *authService) GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	cacheKey := "user:" + userID.String() + ":permissions"

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && len(cached) > 0 {
		return cached, nil
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	permissions := user.Role.Permissions()
	// A failed write only costs a store lookup on the next request.
	_ = s.cache.Set(ctx, cacheKey, permissions, s.ttl)
	return permissions, nil
}
