package membership

import (
	"context"
)

// AccessService answers whether a user may operate inside a company.
type AccessService struct {
	Store Store
}

func NewAccessService(store Store) *AccessService {
	return &AccessService{Store: store}
}

// HasAccess requires an active membership in a company that is not deleted.
func (s *AccessService) HasAccess(ctx context.Context, userID, companyID int64) (bool, error) {
	if userID <= 0 || companyID <= 0 {
		return false, nil
	}

	assignment, err := s.Store.FindAssignment(ctx, userID, companyID)
	if err != nil {
		return false, err
	}
	if assignment == nil || !assignment.IsActive {
		return false, nil
	}
	return s.Store.CompanyExists(ctx, companyID)
}

func (s *AccessService) ListCompanies(ctx context.Context, userID int64) ([]CompanyMembership, error) {
	if userID <= 0 {
		return []CompanyMembership{}, nil
	}
	return s.Store.ListCompanies(ctx, userID)
}
