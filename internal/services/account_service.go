package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/anonto42/friendbook/backend/internal/auth"
	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/pkg/apperrors"
	"github.com/anonto42/friendbook/backend/validators"
)

const (
	msgEmailIncorrect     = "Email Incorrect"
	msgPasswordIncorrect  = "Password Incorrect"
	msgCredentialsMissing = "Email or Password Not Found."
	msgAlreadyRegistered  = "Email Or Phonenumber Already Exist."
	msgEmailNotRegistered = "User Of This EmailAddress Not Exist"
	msgTokenInvalid       = "Token Is Not Valid For This User"
	msgTokenExpired       = "Token Is Expired. Please Generate New Otp."
	msgOldPassword        = "Old Password Is Incorrect."
	msgFirebaseDisabled   = "Firebase Login Is Not Configured."
	msgFirebaseToken      = "Invalid Firebase ID token"

	resetMailSubject = "Reset Your Password"
)

// AccountService covers signup, login and password recovery.
type AccountService struct {
	users      repositories.UserRepository
	resets     repositories.ForgotPasswordRepository
	tokens     TokenIssuer
	mailer     Mailer
	firebase   IDTokenVerifier
	resetTTL   time.Duration
	now        func() time.Time
	background func(func())
}

// NewAccountService wires the account flows. firebase may be nil when federated login is disabled.
func NewAccountService(users repositories.UserRepository, resets repositories.ForgotPasswordRepository, tokens TokenIssuer, mailer Mailer, firebase IDTokenVerifier, resetTTL time.Duration) *AccountService {
	return &AccountService{
		users:      users,
		resets:     resets,
		tokens:     tokens,
		mailer:     mailer,
		firebase:   firebase,
		resetTTL:   resetTTL,
		now:        time.Now,
		background: func(fn func()) { go fn() },
	}
}

// Signup registers a local account and returns its session token.
func (s *AccountService) Signup(ctx context.Context, req models.SignupRequest) (string, *models.User, error) {
	var c apperrors.Collector
	c.Check(validators.IsValidEmail(req.Email), http.StatusUnauthorized, msgEmailIncorrect)
	c.Check(validators.IsValidPassword(req.Password), http.StatusUnauthorized, msgPasswordIncorrect)
	if err := c.Err(); err != nil {
		return "", nil, err
	}

	taken, err := s.users.EmailOrPhoneTaken(ctx, req.Email, req.PhoneNumber)
	if err != nil {
		return "", nil, err
	}
	if taken {
		return "", nil, apperrors.Unauthorized(msgAlreadyRegistered)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}
	user := &models.User{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       req.Email,
		Password:    hash,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Role:        models.RoleUser,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return "", nil, apperrors.Unauthorized(msgAlreadyRegistered)
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login checks the credential format before touching the store.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	var c apperrors.Collector
	c.Check(validators.IsValidEmail(email), http.StatusUnauthorized, msgEmailIncorrect)
	c.Check(validators.IsValidPassword(password), http.StatusUnauthorized, msgPasswordIncorrect)
	if err := c.Err(); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", notFound(err, msgCredentialsMissing)
	}
	if !auth.CheckPassword(user.Password, password) {
		return "", apperrors.NotFound(msgCredentialsMissing)
	}
	return s.tokens.Issue(user)
}

// FirebaseLogin exchanges a Firebase ID token for a local session, linking or creating the user.
func (s *AccountService) FirebaseLogin(ctx context.Context, idToken string) (string, error) {
	if s.firebase == nil {
		return "", apperrors.New(http.StatusServiceUnavailable, msgFirebaseDisabled)
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", apperrors.Unauthorized(msgFirebaseToken)
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	uid := token.UID

	user, err := s.users.GetUserByFirebaseUID(ctx, uid)
	found, err := exists(err)
	if err != nil {
		return "", err
	}
	if !found && email != "" {
		user, err = s.users.GetUserByEmail(ctx, email)
		if found, err = exists(err); err != nil {
			return "", err
		}
		if found {
			user.FirebaseUID = &uid
			if err := s.users.UpdateUser(ctx, user); err != nil {
				return "", federatedConflict(err)
			}
		}
	}
	if !found {
		first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
		user = &models.User{
			FirstName:   first,
			LastName:    last,
			Email:       email,
			FirebaseUID: &uid,
			Role:        models.RoleUser,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return "", federatedConflict(err)
		}
	}
	return s.tokens.Issue(user)
}

// federatedConflict reports a lost race on the email or firebase_uid index as a 409 entry.
func federatedConflict(err error) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return apperrors.Conflict(msgAlreadyRegistered)
	}
	return err
}

// RequestPasswordReset stores a fresh six-digit code and mails it in the background.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) (uint, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return 0, notFound(err, msgEmailNotRegistered)
	}

	code, err := newOTP()
	if err != nil {
		return 0, err
	}
	if err := s.resets.ReplaceToken(ctx, &models.ForgotPassword{UserID: user.ID, Token: code}); err != nil {
		return 0, err
	}

	to := user.Email
	s.background(func() {
		if err := s.mailer.Send(to, resetMailSubject, resetMailBody(code)); err != nil {
			log.Printf("Failed to send reset code to %s: %v\n", to, err)
		}
	})
	return user.ID, nil
}

// VerifyResetToken consumes the code; codes older than the reset TTL are expired and also consumed.
func (s *AccountService) VerifyResetToken(ctx context.Context, userID uint, token string) error {
	_, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return notFound(err, msgUserNotFound)
	}

	reset, err := s.resets.GetLatestToken(ctx, userID)
	found, err := exists(err)
	if err != nil {
		return err
	}
	if !found || reset.Token != token {
		return apperrors.Unauthorized(msgTokenInvalid)
	}

	if err := s.resets.ConsumeToken(ctx, reset.ID); err != nil {
		return err
	}
	if s.now().Sub(reset.CreatedAt) >= s.resetTTL {
		return apperrors.Unauthorized(msgTokenExpired)
	}
	return nil
}

// ResetPassword stores a new hash; a supplied old password must match the current one.
func (s *AccountService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	user, err := s.users.GetUserByID(ctx, req.UserID)
	found, err := exists(err)
	if err != nil {
		return err
	}

	var c apperrors.Collector
	c.Check(found, http.StatusNotFound, msgUserNotFound)
	c.Check(validators.IsValidPassword(req.NewPassword), http.StatusUnauthorized, msgPasswordIncorrect+".")
	if found && strings.TrimSpace(req.OldPassword) != "" && !auth.CheckPassword(user.Password, req.OldPassword) {
		c.Add(http.StatusUnauthorized, msgOldPassword)
	}
	if err := c.Err(); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

func resetMailBody(code string) string {
	return fmt.Sprintf("<h1>Otp For Reset password</h1><h2> %s </h2>", code)
}

// newOTP draws a code in [100000, 999999].
func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 100000+n.Int64()), nil
}
