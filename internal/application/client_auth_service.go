package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alibia/backoffice/internal/domain/entity"
	repo "github.com/alibia/backoffice/internal/domain/repository"
	"github.com/alibia/backoffice/pkg/helpers"
	"github.com/alibia/backoffice/pkg/mailer"
)

// OTP validity windows. Verification codes ride along a 24h window, reset
// codes a much shorter one.
const (
	VerifyOTPTTL = 24 * time.Hour
	ResetOTPTTL  = 25 * time.Minute
)

// EmailQueue enqueues outbound mail jobs. Satisfied by helpers.RabbitPublisher.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// ClientAuthService orchestrates the storefront credential flows:
// registration, login, OTP verification and password reset. Sessions are
// delivered as httpOnly cookies by the handler layer.
type ClientAuthService struct {
	Repo        repo.UserClientRepository
	JWT         *helpers.JWTManager
	Queue       EmailQueue
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewClientAuthService(r repo.UserClientRepository, jwt *helpers.JWTManager, q EmailQueue, logger *logrus.Logger, mailEnabled bool) *ClientAuthService {
	return &ClientAuthService{Repo: r, JWT: jwt, Queue: q, Logger: logger, MailEnabled: mailEnabled}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func (s *ClientAuthService) enqueueMail(ctx context.Context, job mailer.EmailJob) error {
	if !s.MailEnabled || s.Queue == nil {
		return nil
	}
	return s.Queue.PublishJSON(ctx, job)
}

// Register creates an unverified account and returns it with a session
// token. A failed welcome email never rolls the account back.
func (s *ClientAuthService) Register(ctx context.Context, name, email, password string) (*entity.UserClient, string, time.Time, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", time.Time{}, ErrMissingFields
	}
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", time.Time{}, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, "", time.Time{}, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u := &entity.UserClient{Name: name, Email: email, Password: hash, Role: entity.ClientRoleUser}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, "", time.Time{}, ErrEmailTaken
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.JWT.GenerateClientToken(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.enqueueMail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name},
	}); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}

	return u, token, exp, nil
}

// Login validates credentials. Unknown email and wrong password collapse
// into one generic rejection so callers cannot probe for accounts.
func (s *ClientAuthService) Login(ctx context.Context, email, password string) (*entity.UserClient, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, ErrMissingFields
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateClientToken(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// SendVerifyOTP issues a fresh verification code, overwriting any pending
// one, and persists it before attempting delivery so a transport failure
// never loses the code. Returns the destination email.
func (s *ClientAuthService) SendVerifyOTP(ctx context.Context, userID int64) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if u.IsAccountVerified {
		return u.Email, ErrAlreadyVerified
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return "", err
	}
	u.VerifyOtp = code
	u.VerifyOtpExpireAt = nowMillis() + VerifyOTPTTL.Milliseconds()
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}

	if err := s.enqueueMail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateVerifyOTP,
		Data:     map[string]any{"Name": u.Name, "Code": code},
	}); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("verify otp enqueue failed")
		}
		return u.Email, ErrMailDelivery
	}
	return u.Email, nil
}

// VerifyAccount consumes a verification code. Success clears the stored
// pair, so replaying the same code fails.
func (s *ClientAuthService) VerifyAccount(ctx context.Context, userID int64, otp string) error {
	if otp == "" {
		return ErrMissingFields
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.VerifyOtp == "" || u.VerifyOtp != otp {
		return ErrInvalidOTP
	}
	if nowMillis() > u.VerifyOtpExpireAt {
		return ErrOTPExpired
	}
	u.IsAccountVerified = true
	u.VerifyOtp = ""
	u.VerifyOtpExpireAt = 0
	return s.Repo.Update(ctx, u)
}

// SendResetOTP issues a password-reset code for the given email. Unknown
// emails are rejected outright; this deliberately reveals whether an email
// is registered and matches the historical behavior of the reset flow.
func (s *ClientAuthService) SendResetOTP(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingFields
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	u.ResetOtp = code
	u.ResetOtpExpireAt = nowMillis() + ResetOTPTTL.Milliseconds()
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}

	if err := s.enqueueMail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateResetOTP,
		Data:     map[string]any{"Name": u.Name, "Code": code},
	}); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset otp enqueue failed")
		}
		return ErrMailDelivery
	}
	return nil
}

// ResetPassword validates the reset code exactly like account verification
// and installs the new password, consuming the code.
func (s *ClientAuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if email == "" || otp == "" || newPassword == "" {
		return ErrMissingFields
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.ResetOtp == "" || u.ResetOtp != otp {
		return ErrInvalidOTP
	}
	if nowMillis() > u.ResetOtpExpireAt {
		return ErrOTPExpired
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	u.ResetOtp = ""
	u.ResetOtpExpireAt = 0
	return s.Repo.Update(ctx, u)
}

// GetProfile loads the sanitized account for session checks and the
// profile endpoint.
func (s *ClientAuthService) GetProfile(ctx context.Context, userID int64) (*entity.UserClient, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
