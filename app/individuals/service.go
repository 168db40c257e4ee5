package individuals

import (
	"context"
	"fmt"

	"github.com/joefazee/placement/internal/formatter"
	"github.com/joefazee/placement/internal/validator"
)

const searchLimit = 20

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Search matches enrollment or name. Queries shorter than two characters
// return nothing.
func (s *service) Search(ctx context.Context, query string) ([]Response, error) {
	query = formatter.Name(query)
	if !validator.MinRunes(query, 2) {
		return []Response{}, nil
	}

	found, err := s.repo.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search individuals: %w", err)
	}

	out := make([]Response, 0, len(found))
	for i := range found {
		out = append(out, ToResponse(&found[i]))
	}
	return out, nil
}

func (s *service) GetByEnrollment(ctx context.Context, enrollment string) (*Response, error) {
	ind, err := s.repo.GetByEnrollment(ctx, formatter.Enrollment(enrollment))
	if err != nil {
		return nil, err
	}
	resp := ToResponse(ind)
	return &resp, nil
}
