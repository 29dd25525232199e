package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordResetOTPActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		record PasswordResetOTP
		want   bool
	}{
		{
			name:   "fresh and unused",
			record: PasswordResetOTP{ExpiresAt: now.Add(10 * time.Minute)},
			want:   true,
		},
		{
			name:   "expired",
			record: PasswordResetOTP{ExpiresAt: now.Add(-time.Second)},
			want:   false,
		},
		{
			name:   "expiring exactly now",
			record: PasswordResetOTP{ExpiresAt: now},
			want:   false,
		},
		{
			name:   "already used",
			record: PasswordResetOTP{ExpiresAt: now.Add(10 * time.Minute), Used: true},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Active(now))
		})
	}
}
