package application

import (
	"context"
	"fmt"
	"strings"

	"bannerbot/internal/domain"
	"bannerbot/internal/ports/input"
	"bannerbot/internal/ports/output"
)

var _ input.AdminUseCase = (*AdminService)(nil)

// AdminService guards the admin roster. Only the owner may change it and the
// owner can never be removed.
type AdminService struct {
	adminRepo output.AdminRepository
	ownerID   string
}

func NewAdminService(adminRepo output.AdminRepository, ownerID string) *AdminService {
	return &AdminService{adminRepo: adminRepo, ownerID: ownerID}
}

// Bootstrap makes sure the owner is in the roster.
func (s *AdminService) Bootstrap(ctx context.Context) error {
	if err := s.adminRepo.Add(ctx, s.ownerID); err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}
	return nil
}

func (s *AdminService) OwnerID() string {
	return s.ownerID
}

func (s *AdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == s.ownerID {
		return true, nil
	}
	return s.adminRepo.Exists(ctx, userID)
}

func (s *AdminService) AddAdmin(ctx context.Context, callerID, userID string) error {
	if callerID != s.ownerID {
		return domain.ErrPermissionDenied
	}
	userID, err := parseUserID(userID)
	if err != nil {
		return err
	}
	if err := s.adminRepo.Add(ctx, userID); err != nil {
		return fmt.Errorf("add admin: %w", err)
	}
	return nil
}

func (s *AdminService) RemoveAdmin(ctx context.Context, callerID, userID string) error {
	if callerID != s.ownerID {
		return domain.ErrPermissionDenied
	}
	userID, err := parseUserID(userID)
	if err != nil {
		return err
	}
	if userID == s.ownerID {
		return domain.ErrOwnerProtected
	}
	if err := s.adminRepo.Remove(ctx, userID); err != nil {
		return fmt.Errorf("remove admin: %w", err)
	}
	return nil
}

// parseUserID accepts a platform snowflake: decimal digits only.
func parseUserID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: empty user id", domain.ErrValidation)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: user id %q is not numeric", domain.ErrValidation, raw)
		}
	}
	return id, nil
}
