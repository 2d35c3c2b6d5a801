package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/goplanner/goplanner/internal/models"
	"github.com/goplanner/goplanner/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	otpLength         = 6

	DefaultOTPTTL = 10 * time.Minute
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type AuthUserRepository interface {
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	DeleteByID(userID uint) error
	DeleteAccountAndTrips(userID uint) error
}

// VerificationDispatcher delivers one-time codes. Implementations live in
// internal/mail.
type VerificationDispatcher interface {
	SendVerificationCode(ctx context.Context, email string, name string, code string, validFor time.Duration) error
}

// AuthService owns the account lifecycle: unverified registration, OTP
// verification, credential checks and account deletion. Verification is
// one-way; no operation ever takes a verified account back to unverified.
type AuthService struct {
	users      AuthUserRepository
	dispatcher VerificationDispatcher
	otpTTL     time.Duration
	now        func() time.Time
}

func NewAuthService(users AuthUserRepository, dispatcher VerificationDispatcher, otpTTL time.Duration) *AuthService {
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}
	return &AuthService{
		users:      users,
		dispatcher: dispatcher,
		otpTTL:     otpTTL,
		now:        time.Now,
	}
}

// NormalizeEmail is the canonical email form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates (or refreshes) an unverified account and dispatches the
// verification code. It never returns a session token: the caller must
// verify first. The returned string is the address the code was sent to.
//
// Dispatch failure is handled asymmetrically. A freshly created account is
// rolled back so no permanently unreachable record lingers; a retried
// registration keeps its updated state so the caller can ask for a resend.
func (service *AuthService) Register(ctx context.Context, name string, email string, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" {
		return "", validationf("name is required")
	}
	if !emailPattern.MatchString(email) {
		return "", validationf("a valid email is required")
	}
	if len(password) < MinPasswordLength {
		return "", validationf("password must be at least %d characters", MinPasswordLength)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	code, err := security.NumericOTP(otpLength)
	if err != nil {
		return "", err
	}
	expiresAt := service.now().Add(service.otpTTL)

	existing, err := service.users.FindByNormalizedEmail(email)
	switch {
	case err == nil && existing.EmailVerified:
		return "", ErrAlreadyExists

	case err == nil:
		// Unfinished registration: overwrite and resend instead of creating
		// a duplicate.
		existing.Name = name
		existing.PasswordHash = string(passwordHash)
		existing.OTP = code
		existing.OTPExpiresAt = &expiresAt
		if err := service.users.Save(&existing); err != nil {
			return "", err
		}
		if err := service.dispatcher.SendVerificationCode(ctx, existing.Email, existing.Name, code, service.otpTTL); err != nil {
			return "", &DispatchError{Err: err}
		}
		return existing.Email, nil

	case errors.Is(err, models.ErrNotFound):
		user := models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(passwordHash),
			OTP:          code,
			OTPExpiresAt: &expiresAt,
			Preferences:  models.DefaultPreferences(),
		}
		if err := service.users.Create(&user); err != nil {
			if errors.Is(err, models.ErrDuplicateEmail) {
				// Lost the race against a concurrent registration; the
				// unique index is the arbiter.
				return "", ErrAlreadyExists
			}
			return "", err
		}
		if err := service.dispatcher.SendVerificationCode(ctx, user.Email, user.Name, code, service.otpTTL); err != nil {
			if deleteErr := service.users.DeleteByID(user.ID); deleteErr != nil {
				return "", deleteErr
			}
			return "", &DispatchError{Err: err}
		}
		return user.Email, nil

	default:
		return "", err
	}
}

// Verify consumes the pending code. On success the account becomes verified,
// irreversibly, and the pending fields are cleared.
func (service *AuthService) Verify(email string, code string) (models.User, error) {
	email = NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return models.User{}, validationf("email and verification code are required")
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if errors.Is(err, models.ErrNotFound) {
		return models.User{}, ErrInvalidCode
	}
	if err != nil {
		return models.User{}, err
	}

	if user.EmailVerified {
		return models.User{}, ErrAlreadyVerified
	}
	if user.OTP == "" || user.OTP != code {
		return models.User{}, ErrInvalidCode
	}
	if user.OTPExpiresAt == nil || user.OTPExpiresAt.Before(service.now()) {
		return models.User{}, ErrCodeExpired
	}

	user.EmailVerified = true
	user.OTP = ""
	user.OTPExpiresAt = nil
	if err := service.users.Save(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login checks credentials for a verified account. An unverified account
// fails with ErrEmailNotVerified regardless of password correctness.
func (service *AuthService) Login(email string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if !user.EmailVerified {
		return models.User{}, ErrEmailNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GoogleLogin signs in (creating if necessary) an account backed by a Google
// identity. The identity provider has already proven the email, so a created
// account is verified from the start and carries a random placeholder
// credential that nobody can log in with.
//
// Binding is an idempotent attach: the first federated login wins, and an
// existing different Google subject is never overwritten.
func (service *AuthService) GoogleLogin(name string, email string, googleID string, pictureURL string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	googleID = strings.TrimSpace(googleID)
	if name == "" || googleID == "" || !emailPattern.MatchString(email) {
		return models.User{}, validationf("name, email and googleId are required")
	}

	user, err := service.users.FindByNormalizedEmail(email)
	switch {
	case err == nil:
		changed := false
		if user.GoogleID == nil {
			user.GoogleID = &googleID
			changed = true
		}
		if !user.EmailVerified {
			// Google vouched for the address; a pending OTP is obsolete.
			user.EmailVerified = true
			user.OTP = ""
			user.OTPExpiresAt = nil
			changed = true
		}
		if user.ProfilePicture == "" && pictureURL != "" {
			user.ProfilePicture = pictureURL
			changed = true
		}
		if changed {
			if err := service.users.Save(&user); err != nil {
				return models.User{}, err
			}
		}
		return user, nil

	case errors.Is(err, models.ErrNotFound):
		placeholder, err := security.PlaceholderPassword()
		if err != nil {
			return models.User{}, err
		}
		placeholderHash, err := bcrypt.GenerateFromPassword([]byte(placeholder), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		created := models.User{
			Name:           name,
			Email:          email,
			PasswordHash:   string(placeholderHash),
			GoogleID:       &googleID,
			EmailVerified:  true,
			ProfilePicture: pictureURL,
			Preferences:    models.DefaultPreferences(),
		}
		if err := service.users.Create(&created); err != nil {
			if errors.Is(err, models.ErrDuplicateEmail) {
				return models.User{}, ErrAlreadyExists
			}
			return models.User{}, err
		}
		return created, nil

	default:
		return models.User{}, err
	}
}

// ResendVerification regenerates the pending code with a fresh expiry and
// redispatches it.
func (service *AuthService) ResendVerification(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return validationf("email is required")
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if errors.Is(err, models.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	code, err := security.NumericOTP(otpLength)
	if err != nil {
		return err
	}
	expiresAt := service.now().Add(service.otpTTL)
	user.OTP = code
	user.OTPExpiresAt = &expiresAt
	if err := service.users.Save(&user); err != nil {
		return err
	}

	if err := service.dispatcher.SendVerificationCode(ctx, user.Email, user.Name, code, service.otpTTL); err != nil {
		return &DispatchError{Err: err}
	}
	return nil
}

func (service *AuthService) CurrentUser(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, models.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

// DeleteAccount removes the account and all owned trips as one unit.
func (service *AuthService) DeleteAccount(userID uint) error {
	return service.users.DeleteAccountAndTrips(userID)
}
