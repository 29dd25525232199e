package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"travelmate-be/internal/apperr"
	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
)

type resetFixture struct {
	svc  *passwordResetService
	uow  *fakeUow
	mail *fakeMailPublisher
	cool *fakeCooldownStore
	now  time.Time
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	uow := newFakeUow()
	mail := &fakeMailPublisher{}
	cool := newFakeCooldownStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := NewPasswordResetService(&fakeFactory{uow: uow}, mail, cool, nil, nopLogger{}).(*passwordResetService)
	svc.now = func() time.Time { return now }

	return &resetFixture{svc: svc, uow: uow, mail: mail, cool: cool, now: now}
}

func (f *resetFixture) addUser(t *testing.T, email, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
		IsActive:     true,
		CreatedAt:    f.now,
	}
	f.uow.users.users = append(f.uow.users.users, user)
	return user
}

func (f *resetFixture) lastMailedOtp(t *testing.T) dto.PublishOtpEmailMessage {
	t.Helper()
	require.NotEmpty(t, f.mail.published)
	var msg dto.PublishOtpEmailMessage
	require.NoError(t, json.Unmarshal(f.mail.published[len(f.mail.published)-1], &msg))
	return msg
}

func TestRequestOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects malformed email", func(t *testing.T) {
		f := newResetFixture(t)
		_, err := f.svc.RequestOTP(ctx, &dto.ForgotPasswordRequest{Email: "not-an-email"})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("rejects unknown account", func(t *testing.T) {
		f := newResetFixture(t)
		_, err := f.svc.RequestOTP(ctx, &dto.ForgotPasswordRequest{Email: "ghost@example.com"})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("issues a six digit code valid for ten minutes", func(t *testing.T) {
		f := newResetFixture(t)
		f.addUser(t, "jane@example.com", "oldpass")

		res, err := f.svc.RequestOTP(ctx, &dto.ForgotPasswordRequest{Email: "jane@example.com"})
		require.NoError(t, err)
		assert.Equal(t, 60, res.ResendInSeconds)
		assert.Equal(t, "otp", res.Step)

		require.Len(t, f.uow.otps.records, 1)
		record := f.uow.otps.records[0]
		assert.Len(t, record.Otp, 6)
		assert.Equal(t, f.now.Add(10*time.Minute), record.ExpiresAt)
		assert.False(t, record.Used)

		msg := f.lastMailedOtp(t)
		assert.Equal(t, "jane@example.com", msg.Email)
		assert.Equal(t, record.Otp, msg.Otp)

		assert.Equal(t, 60*time.Second, f.cool.armed[cooldownKey("jane@example.com")])
	})

	t.Run("second request replaces the previous code", func(t *testing.T) {
		f := newResetFixture(t)
		f.addUser(t, "jane@example.com", "oldpass")

		_, err := f.svc.RequestOTP(ctx, &dto.ForgotPasswordRequest{Email: "jane@example.com"})
		require.NoError(t, err)
		first := f.uow.otps.records[0].Otp

		_, err = f.svc.RequestOTP(ctx, &dto.ForgotPasswordRequest{Email: "jane@example.com"})
		require.NoError(t, err)

		require.Len(t, f.uow.otps.records, 1, "only one record per email may exist")
		second := f.uow.otps.records[0].Otp

		_, err = f.svc.VerifyOTP(ctx, &dto.VerifyOtpRequest{Email: "jane@example.com", Otp: second})
		assert.NoError(t, err)
		if first != second {
			_, err = f.svc.VerifyOTP(ctx, &dto.VerifyOtpRequest{Email: "jane@example.com", Otp: first})
			assert.Equal(t, apperr.KindInvalidOrExpired, apperr.KindOf(err), "replaced code must stop working")
		}
	})
}

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()

	issue := func(t *testing.T, f *resetFixture, email string) string {
		f.addUser(t, email, "oldpass")
		_, err := f.svc.RequestOTP(ctx, &dto.ForgotPasswordRequest{Email: email})
		require.NoError(t, err)
		return f.uow.otps.records[0].Otp
	}

	t.Run("rejects non numeric input", func(t *testing.T) {
		f := newResetFixture(t)
		_, err := f.svc.VerifyOTP(ctx, &dto.VerifyOtpRequest{Email: "jane@example.com", Otp: "12a456"})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("rejects wrong code", func(t *testing.T) {
		f := newResetFixture(t)
		code := issue(t, f, "jane@example.com")
		wrong := "000000"
		if code == wrong {
			wrong = "000001"
		}
		_, err := f.svc.VerifyOTP(ctx, &dto.VerifyOtpRequest{Email: "jane@example.com", Otp: wrong})
		assert.Equal(t, apperr.KindInvalidOrExpired, apperr.KindOf(err))
	})

	t.Run("rejects expired code", func(t *testing.T) {
		f := newResetFixture(t)
		code := issue(t, f, "jane@example.com")

		f.svc.now = func() time.Time { return f.now.Add(10*time.Minute + time.Second) }
		_, err := f.svc.VerifyOTP(ctx, &dto.VerifyOtpRequest{Email: "jane@example.com", Otp: code})
		assert.Equal(t, apperr.KindInvalidOrExpired, apperr.KindOf(err))
	})

	t.Run("accepts valid code without consuming it", func(t *testing.T) {
		f := newResetFixture(t)
		code := issue(t, f, "jane@example.com")

		res, err := f.svc.VerifyOTP(ctx, &dto.VerifyOtpRequest{Email: "jane@example.com", Otp: code})
		require.NoError(t, err)
		assert.True(t, res.Verified)
		assert.Equal(t, "newPassword", res.Step)
		assert.False(t, f.uow.otps.records[0].Used, "verification must not consume the code")

		// Verifying twice is fine; only the final reset consumes it.
		_, err = f.svc.VerifyOTP(ctx, &dto.VerifyOtpRequest{Email: "jane@example.com", Otp: code})
		assert.NoError(t, err)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*resetFixture, *entity.User, string) {
		f := newResetFixture(t)
		user := f.addUser(t, "jane@example.com", "oldpass")
		_, err := f.svc.RequestOTP(ctx, &dto.ForgotPasswordRequest{Email: "jane@example.com"})
		require.NoError(t, err)
		return f, user, f.uow.otps.records[0].Otp
	}

	t.Run("rejects short password", func(t *testing.T) {
		f, _, code := setup(t)
		err := f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Email: "jane@example.com", Otp: code, NewPassword: "abc", ConfirmPassword: "abc",
		})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		f, _, code := setup(t)
		err := f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Email: "jane@example.com", Otp: code, NewPassword: "newpass1", ConfirmPassword: "newpass2",
		})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("re-validates the code even after a prior verify", func(t *testing.T) {
		f, _, code := setup(t)

		_, err := f.svc.VerifyOTP(ctx, &dto.VerifyOtpRequest{Email: "jane@example.com", Otp: code})
		require.NoError(t, err)

		// Code expires between the verify step and the final submit.
		f.svc.now = func() time.Time { return f.now.Add(11 * time.Minute) }
		err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Email: "jane@example.com", Otp: code, NewPassword: "newpass1", ConfirmPassword: "newpass1",
		})
		assert.Equal(t, apperr.KindInvalidOrExpired, apperr.KindOf(err))
	})

	t.Run("updates the password and consumes the code", func(t *testing.T) {
		f, user, code := setup(t)

		err := f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Email: "jane@example.com", Otp: code, NewPassword: "newpass1", ConfirmPassword: "newpass1",
		})
		require.NoError(t, err)

		assert.True(t, f.uow.otps.records[0].Used)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass1")))

		// Replay with the same code must fail.
		err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Email: "jane@example.com", Otp: code, NewPassword: "another1", ConfirmPassword: "another1",
		})
		assert.Equal(t, apperr.KindInvalidOrExpired, apperr.KindOf(err))
	})

	t.Run("code is consumed even when the password update fails", func(t *testing.T) {
		f, _, code := setup(t)
		f.uow.users.updatePasswordErr = errors.New("db down")

		err := f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Email: "jane@example.com", Otp: code, NewPassword: "newpass1", ConfirmPassword: "newpass1",
		})
		require.Error(t, err)
		assert.True(t, f.uow.otps.records[0].Used, "single use holds on the failure path too")
	})
}

func TestResendOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked while the cooldown is armed", func(t *testing.T) {
		f := newResetFixture(t)
		f.addUser(t, "jane@example.com", "oldpass")
		_, err := f.svc.RequestOTP(ctx, &dto.ForgotPasswordRequest{Email: "jane@example.com"})
		require.NoError(t, err)

		_, err = f.svc.ResendOTP(ctx, &dto.ResendOtpRequest{Email: "jane@example.com"})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("issues a fresh code once the window passes", func(t *testing.T) {
		f := newResetFixture(t)
		f.addUser(t, "jane@example.com", "oldpass")
		_, err := f.svc.RequestOTP(ctx, &dto.ForgotPasswordRequest{Email: "jane@example.com"})
		require.NoError(t, err)

		// Cooldown lapsed.
		f.cool.armed[cooldownKey("jane@example.com")] = 0

		res, err := f.svc.ResendOTP(ctx, &dto.ResendOtpRequest{Email: "jane@example.com"})
		require.NoError(t, err)
		assert.Equal(t, 60, res.ResendInSeconds)
		assert.Len(t, f.mail.published, 2)
		assert.Len(t, f.uow.otps.records, 1)
	})
}
