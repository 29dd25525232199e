package dto

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordResponse struct {
	Email           string `json:"email"`
	Step            string `json:"step"`
	ResendInSeconds int    `json:"resend_in_seconds"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
}

type VerifyOtpResponse struct {
	Email    string `json:"email"`
	Step     string `json:"step"`
	Verified bool   `json:"verified"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Otp             string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// PublishOtpEmailMessage travels over the in-process mail topic.
type PublishOtpEmailMessage struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type ResendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResendOtpResponse struct {
	Email           string `json:"email"`
	Step            string `json:"step"`
	ResendInSeconds int    `json:"resend_in_seconds"`
}
