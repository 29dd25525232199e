package contract

import (
	"context"
	"time"
)

// CooldownStore enforces the resend lockout for OTP emails. Arm starts a
// cooldown for the key; Remaining reports how long until resend is allowed
// again (zero when the key is cold).
type CooldownStore interface {
	Arm(ctx context.Context, key string, d time.Duration) error
	Remaining(ctx context.Context, key string) (time.Duration, error)
}
