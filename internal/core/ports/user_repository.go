package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
)

type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// ListByRole returns active users with the role in a stable order.
	ListByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}
