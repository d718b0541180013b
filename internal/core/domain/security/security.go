package security

import (
	"context"
	c "gatekeeper/internal/core/domain/common"
	"gatekeeper/internal/core/domain/user"
	"time"
)

type EventType string

const (
	EventUserSignedUp    EventType = "user.signed_up"
	EventPasswordChanged EventType = "password.changed"
	EventPasswordReset   EventType = "password.reset"
)

// Event describes a credential lifecycle change worth auditing. Events are
// published best effort, a delivery failure never fails the operation that
// produced it.
type Event struct {
	Type       EventType
	UserID     user.ID
	Email      c.Email
	OccurredAt time.Time
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
