// Package resetflow models the password reset journey as an explicit state
// machine. Each step carries only the data that step legitimately knows, so
// a caller can never reach the new password form without having walked
// through the email and code steps first.
package resetflow

import (
	"fmt"
	"time"

	"travelmate-be/internal/apperr"
)

type StepName string

const (
	StepEmail       StepName = "email"
	StepOTP         StepName = "otp"
	StepNewPassword StepName = "newPassword"
	StepSuccess     StepName = "success"
)

// Step is one state of the reset journey.
type Step interface {
	Name() StepName
}

// EmailStep is the entry state: no email collected yet.
type EmailStep struct{}

func (EmailStep) Name() StepName { return StepEmail }

// OTPStep waits for the code that was mailed to Email.
type OTPStep struct {
	Email             string
	ResendAvailableAt time.Time
}

func (OTPStep) Name() StepName { return StepOTP }

// NewPasswordStep holds the email and the code the user already confirmed.
// Both travel to the final reset call so the server can re-validate them.
type NewPasswordStep struct {
	Email string
	Otp   string
}

func (NewPasswordStep) Name() StepName { return StepNewPassword }

// SuccessStep is terminal; only Restart leaves it.
type SuccessStep struct {
	Email string
}

func (SuccessStep) Name() StepName { return StepSuccess }

// Flow drives the transitions between steps.
type Flow struct {
	current        Step
	resendCooldown time.Duration
	now            func() time.Time
}

type Option func(*Flow)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		f.now = now
	}
}

// WithResendCooldown overrides the default 60 second resend window.
func WithResendCooldown(d time.Duration) Option {
	return func(f *Flow) {
		f.resendCooldown = d
	}
}

func New(options ...Option) *Flow {
	f := &Flow{
		current:        EmailStep{},
		resendCooldown: 60 * time.Second,
		now:            time.Now,
	}
	for _, o := range options {
		o(f)
	}
	return f
}

// Current returns the active step.
func (f *Flow) Current() Step {
	return f.current
}

func (f *Flow) illegal(action string) error {
	return apperr.Validation(fmt.Sprintf("cannot %s from step %q", action, f.current.Name()))
}

// SubmitEmail moves email -> otp after a code has been issued for the address.
func (f *Flow) SubmitEmail(email string) error {
	if _, ok := f.current.(EmailStep); !ok {
		return f.illegal("submit email")
	}
	f.current = OTPStep{
		Email:             email,
		ResendAvailableAt: f.now().Add(f.resendCooldown),
	}
	return nil
}

// ConfirmOTP moves otp -> newPassword once the server accepted the code.
func (f *Flow) ConfirmOTP(otp string) error {
	step, ok := f.current.(OTPStep)
	if !ok {
		return f.illegal("confirm code")
	}
	f.current = NewPasswordStep{
		Email: step.Email,
		Otp:   otp,
	}
	return nil
}

// ResendIn reports how long until another code may be requested. Zero means
// resend is available now. Only meaningful on the otp step.
func (f *Flow) ResendIn() time.Duration {
	step, ok := f.current.(OTPStep)
	if !ok {
		return 0
	}
	remaining := step.ResendAvailableAt.Sub(f.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MarkResent restarts the cooldown window after a successful resend.
func (f *Flow) MarkResent() error {
	step, ok := f.current.(OTPStep)
	if !ok {
		return f.illegal("resend code")
	}
	step.ResendAvailableAt = f.now().Add(f.resendCooldown)
	f.current = step
	return nil
}

// CompleteReset moves newPassword -> success after the password was changed.
func (f *Flow) CompleteReset() error {
	step, ok := f.current.(NewPasswordStep)
	if !ok {
		return f.illegal("complete reset")
	}
	f.current = SuccessStep{Email: step.Email}
	return nil
}

// Restart returns to the email step from any state, discarding collected data.
func (f *Flow) Restart() {
	f.current = EmailStep{}
}
