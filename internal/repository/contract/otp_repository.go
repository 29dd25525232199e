package contract

import (
	"context"

	"github.com/google/uuid"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/specification"
)

type OtpRepository interface {
	// Upsert replaces any existing record for the same email, keeping the
	// one-active-record-per-email invariant at the storage layer.
	Upsert(ctx context.Context, record *entity.PasswordResetOTP) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetOTP, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
