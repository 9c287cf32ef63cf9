package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/apperror"
	"go-cv-backend/pkg/logger"
	"go-cv-backend/pkg/security"
)

// TokenIssuer signs session tokens. *auth.TokenManager satisfies it.
type TokenIssuer interface {
	Issue(userID, userType string) (string, time.Time, error)
}

// LoginGuard throttles failed logins. *security.LoginTracker satisfies it.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailure(ctx context.Context, email, ip, reason string) (bool, error)
	Clear(ctx context.Context, email, ip string) error
}

type authUsecase struct {
	userRepo    domain.UserRepository
	mailer      domain.Mailer
	tokens      TokenIssuer
	guard       LoginGuard
	secLog      *security.SecurityLogger
	frontendURL string
}

func NewAuthUsecase(userRepo domain.UserRepository, mailer domain.Mailer, tokens TokenIssuer, guard LoginGuard, secLog *security.SecurityLogger, frontendURL string) domain.AuthUsecase {
	if secLog == nil {
		secLog = security.NewNopSecurityLogger()
	}
	return &authUsecase{
		userRepo:    userRepo,
		mailer:      mailer,
		tokens:      tokens,
		guard:       guard,
		secLog:      secLog,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	code := security.NewActivationCode()
	user := &domain.User{
		Prenom:         strings.TrimSpace(in.Prenom),
		Nom:            strings.TrimSpace(in.Nom),
		Email:          email,
		Pays:           strings.TrimSpace(in.Pays),
		Telephone:      strings.TrimSpace(in.Telephone),
		PasswordHash:   hash,
		Type:           domain.UserTypeUser,
		Status:         domain.StatusPendingActivation,
		ActivationCode: &code,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	confirmURL := u.frontendURL + "/confirm/" + code
	if err := u.mailer.SendActivation(ctx, user.Email, user.Prenom, confirmURL); err != nil {
		// The account exists; an admin can resend or activate it.
		logger.Log.Error("activation email failed", "user_id", user.ID, "error", err)
	}
	return user, nil
}

func (u *authUsecase) ConfirmAccount(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.NewValidationError("Code d'activation manquant")
	}
	return u.userRepo.Activate(ctx, code)
}

func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput, clientIP string) (*domain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if u.guard != nil {
		blocked, err := u.guard.IsBlocked(ctx, email, clientIP)
		if err != nil {
			logger.Log.Warn("login block check failed", "error", err)
		}
		if blocked {
			return nil, domain.ErrLoginBlocked
		}
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if user == nil {
		return nil, u.failLogin(ctx, email, clientIP, "unknown_email", domain.ErrNotFound)
	}
	if user.Status != domain.StatusActive {
		u.secLog.LogLoginFailed(ctx, email, clientIP, string(user.Status))
		return nil, domain.ErrAccountNotActivated
	}
	if !security.CheckPassword(user.PasswordHash, in.Password) {
		return nil, u.failLogin(ctx, email, clientIP, "invalid_credentials", domain.ErrInvalidCredentials)
	}

	token, expiresAt, err := u.tokens.Issue(user.ID, string(user.Type))
	if err != nil {
		return nil, err
	}
	if u.guard != nil {
		if err := u.guard.Clear(ctx, email, clientIP); err != nil {
			logger.Log.Warn("clear login counters failed", "error", err)
		}
	}
	u.secLog.LogLoginSuccess(ctx, user.ID, clientIP)
	return &domain.LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// failLogin counts the attempt and returns cause unless the guard now blocks the caller.
func (u *authUsecase) failLogin(ctx context.Context, email, ip, reason string, cause error) error {
	if u.guard == nil {
		u.secLog.LogLoginFailed(ctx, email, ip, reason)
		return cause
	}
	blocked, err := u.guard.RecordFailure(ctx, email, ip, reason)
	if err != nil {
		logger.Log.Warn("record failed login", "error", err)
	}
	if blocked {
		return domain.ErrLoginBlocked
	}
	return cause
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	return u.userRepo.GetByID(ctx, id)
}

func (u *authUsecase) ListUsers(ctx context.Context, search string) ([]domain.User, error) {
	return u.userRepo.List(ctx, search)
}
