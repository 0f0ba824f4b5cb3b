package input

import "context"

type AdminUseCase interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	AddAdmin(ctx context.Context, callerID, userID string) error
	RemoveAdmin(ctx context.Context, callerID, userID string) error
}
