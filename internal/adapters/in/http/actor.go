package http

import (
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// actor is the caller identity forwarded by the gateway in front of the service.
type actor struct {
	id   *kernel.UUID
	role user.Role
}

func actorFrom(c echo.Context) (actor, error) {
	var a actor
	if raw := strings.TrimSpace(c.Request().Header.Get(HeaderActorID)); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderActorID, err)
		}
		a.id = &id
	}
	if raw := strings.TrimSpace(c.Request().Header.Get(HeaderActorRole)); raw != "" {
		role, err := user.ParseRole(raw)
		if err != nil {
			return actor{}, err
		}
		a.role = role
	}
	return a, nil
}

// dispatcherFrom requires a caller allowed to dispatch and reassign.
func dispatcherFrom(c echo.Context) (actor, error) {
	a, err := actorFrom(c)
	if err != nil {
		return actor{}, err
	}
	if a.id == nil || !a.role.CanDispatch() {
		return actor{}, errs.ErrUnauthorized
	}
	return a, nil
}
