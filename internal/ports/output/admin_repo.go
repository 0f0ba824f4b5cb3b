package output

import "context"

type AdminRepository interface {
	Exists(ctx context.Context, userID string) (bool, error)
	Add(ctx context.Context, userID string) error
	Remove(ctx context.Context, userID string) error
	List(ctx context.Context) ([]string, error)
}
