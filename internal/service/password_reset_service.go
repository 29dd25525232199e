package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"travelmate-be/internal/apperr"
	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/pkg/events"
	pkgNats "travelmate-be/pkg/nats"
	"travelmate-be/pkg/resetflow"
)

const (
	otpTTL         = 10 * time.Minute
	resendCooldown = 60 * time.Second
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type IPasswordResetService interface {
	RequestOTP(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOtpRequest) (*dto.VerifyOtpResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	ResendOTP(ctx context.Context, req *dto.ResendOtpRequest) (*dto.ResendOtpResponse, error)
}

type passwordResetService struct {
	uowFactory     unitofwork.RepositoryFactory
	mailPublisher  IPublisherService
	cooldowns      contract.CooldownStore
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
	now            func() time.Time
}

func NewPasswordResetService(
	uowFactory unitofwork.RepositoryFactory,
	mailPublisher IPublisherService,
	cooldowns contract.CooldownStore,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IPasswordResetService {
	return &passwordResetService{
		uowFactory:     uowFactory,
		mailPublisher:  mailPublisher,
		cooldowns:      cooldowns,
		eventPublisher: eventPublisher,
		log:            log,
		now:            time.Now,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func cooldownKey(email string) string {
	return "pwdreset:cooldown:" + email
}

func (s *passwordResetService) RequestOTP(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, apperr.Validation("Please enter a valid email address")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("No account found with this email address")
	}

	if err := s.issueOTP(ctx, uow, req.Email); err != nil {
		return nil, err
	}

	flow := s.newFlow()
	if err := flow.SubmitEmail(req.Email); err != nil {
		return nil, err
	}

	return &dto.ForgotPasswordResponse{
		Email:           req.Email,
		Step:            string(flow.Current().Name()),
		ResendInSeconds: int(flow.ResendIn().Seconds()),
	}, nil
}

// newFlow builds the journey state machine the responses report their
// position in, so the client renders the same steps the server enforces.
func (s *passwordResetService) newFlow() *resetflow.Flow {
	return resetflow.New(
		resetflow.WithClock(s.now),
		resetflow.WithResendCooldown(resendCooldown),
	)
}

// issueOTP generates a fresh code, upserts it by email and hands the mail off
// to the dispatch topic. The cooldown is armed last so a storage failure never
// locks the user out of retrying.
func (s *passwordResetService) issueOTP(ctx context.Context, uow unitofwork.UnitOfWork, email string) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}

	record := &entity.PasswordResetOTP{
		Id:        uuid.New(),
		Email:     email,
		Otp:       code,
		ExpiresAt: s.now().Add(otpTTL),
		Used:      false,
		CreatedAt: s.now(),
	}
	if err := uow.OtpRepository().Upsert(ctx, record); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.PublishOtpEmailMessage{Email: email, Otp: code})
	if err != nil {
		return err
	}
	if err := s.mailPublisher.Publish(ctx, payload); err != nil {
		return err
	}

	if err := s.cooldowns.Arm(ctx, cooldownKey(email), resendCooldown); err != nil {
		s.log.Warn("password_reset", "failed to arm resend cooldown", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}

	return nil
}

func (s *passwordResetService) VerifyOTP(ctx context.Context, req *dto.VerifyOtpRequest) (*dto.VerifyOtpResponse, error) {
	if err := validateOtpFormat(req.Otp); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.checkActiveOTP(ctx, uow, req.Email, req.Otp); err != nil {
		return nil, err
	}

	flow := s.newFlow()
	if err := flow.SubmitEmail(req.Email); err != nil {
		return nil, err
	}
	if err := flow.ConfirmOTP(req.Otp); err != nil {
		return nil, err
	}

	// Verification never consumes the code; ResetPassword re-validates and
	// marks it used in one place.
	return &dto.VerifyOtpResponse{
		Email:    req.Email,
		Step:     string(flow.Current().Name()),
		Verified: true,
	}, nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return apperr.Validation("Password must be at least 6 characters")
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperr.Validation("Passwords do not match")
	}
	if err := validateOtpFormat(req.Otp); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := s.findActiveOTP(ctx, uow, req.Email, req.Otp)
	if err != nil {
		return err
	}
	if record == nil {
		return apperr.InvalidOrExpired("Invalid or expired OTP")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("No account found with this email address")
	}

	// Consume the code before touching the password so it can never be
	// replayed, even if the update below fails.
	if err := uow.OtpRepository().MarkUsed(ctx, record.Id); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uow.UserRepository().UpdatePassword(ctx, user.Id, string(hash)); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.NewEvent(events.TypePasswordResetDone, map[string]interface{}{
			"user_id": user.Id,
			"email":   user.Email,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("password_reset", "failed to publish reset event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return nil
}

func (s *passwordResetService) ResendOTP(ctx context.Context, req *dto.ResendOtpRequest) (*dto.ResendOtpResponse, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, apperr.Validation("Please enter a valid email address")
	}

	remaining, err := s.cooldowns.Remaining(ctx, cooldownKey(req.Email))
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, apperr.Validation(fmt.Sprintf("Please wait %d seconds before requesting a new code", int(remaining.Seconds())+1))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("No account found with this email address")
	}

	if err := s.issueOTP(ctx, uow, req.Email); err != nil {
		return nil, err
	}

	flow := s.newFlow()
	if err := flow.SubmitEmail(req.Email); err != nil {
		return nil, err
	}

	return &dto.ResendOtpResponse{
		Email:           req.Email,
		Step:            string(flow.Current().Name()),
		ResendInSeconds: int(flow.ResendIn().Seconds()),
	}, nil
}

func (s *passwordResetService) checkActiveOTP(ctx context.Context, uow unitofwork.UnitOfWork, email, otp string) error {
	record, err := s.findActiveOTP(ctx, uow, email, otp)
	if err != nil {
		return err
	}
	if record == nil {
		return apperr.InvalidOrExpired("Invalid or expired OTP")
	}
	return nil
}

func (s *passwordResetService) findActiveOTP(ctx context.Context, uow unitofwork.UnitOfWork, email, otp string) (*entity.PasswordResetOTP, error) {
	return uow.OtpRepository().FindOne(ctx,
		specification.ByEmail{Email: email},
		specification.ByOtpCode{Otp: otp},
		specification.ActiveAt{Now: s.now()},
	)
}

func validateOtpFormat(otp string) error {
	if len(otp) != 6 {
		return apperr.Validation("Please enter the 6-digit code")
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return apperr.Validation("Please enter the 6-digit code")
		}
	}
	return nil
}
