package services

import (
	"context"
	"crypto/subtle"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/questpath-backend/internal/apperr"
	"github.com/yungbote/questpath-backend/internal/data/repos"
	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/observability"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	LoginWithGoogle(ctx context.Context, idToken string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, userID uint) error
	Authenticate(ctx context.Context, tokenString string) (uint, error)
	RefreshTTL() time.Duration
}

const (
	registerLimit  = 10
	registerWindow = time.Hour
)

type authService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	oidc       OIDCVerifier
	limiter    RateLimitService
	metrics    *observability.Collector
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	oidc OIDCVerifier,
	limiter RateLimitService,
	metrics *observability.Collector,
	jwtSecret string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		oidc:       oidc,
		limiter:    limiter,
		metrics:    metrics,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (as *authService) Register(ctx context.Context, email, password string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, apperr.Validation("invalid email address")
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if as.limiter != nil {
		if err := as.limiter.Check(ctx, "email:"+email, "register", registerLimit, registerWindow); err != nil {
			return nil, err
		}
	}

	existing, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, apperr.Internal(err, "failed to check existing user")
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err, "failed to hash password")
	}
	hash := string(hashed)
	user := &types.User{Email: email, PasswordHash: &hash}
	if _, err := as.userRepo.Create(ctx, nil, user); err != nil {
		return nil, apperr.Internal(err, "failed to create user")
	}

	as.metrics.IncBusiness(observability.MetricUsersRegistered)
	as.log.Info("User registered", "user_id", user.ID)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", "", apperr.Internal(err, "failed to load user")
	}
	if user == nil || user.PasswordHash == nil {
		return "", "", apperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return "", "", apperr.Unauthorized("invalid email or password")
	}
	return as.issueSession(ctx, user.ID)
}

func (as *authService) LoginWithGoogle(ctx context.Context, idToken string) (string, string, error) {
	if as.oidc == nil {
		return "", "", apperr.Unauthorized("Google sign-in is not configured")
	}
	ident, err := as.oidc.VerifyGoogleIDToken(ctx, idToken)
	if err != nil {
		as.log.Warn("Google ID token rejected", "error", err)
		return "", "", apperr.Unauthorized("invalid Google credential")
	}
	if !ident.EmailVerified || ident.Email == "" {
		return "", "", apperr.Unauthorized("Google account email is not verified")
	}

	user, err := as.userRepo.GetByGoogleID(ctx, nil, ident.Sub)
	if err != nil {
		return "", "", apperr.Internal(err, "failed to load user by google id")
	}
	if user == nil {
		// Link to an existing email account or create a fresh one.
		email := strings.ToLower(ident.Email)
		user, err = as.userRepo.GetByEmail(ctx, nil, email)
		if err != nil {
			return "", "", apperr.Internal(err, "failed to load user by email")
		}
		if user == nil {
			user = &types.User{Email: email, GoogleID: &ident.Sub, DisplayName: ident.Name}
			if _, err := as.userRepo.Create(ctx, nil, user); err != nil {
				return "", "", apperr.Internal(err, "failed to create user")
			}
			as.metrics.IncBusiness(observability.MetricUsersRegistered)
		} else {
			if err := as.db.WithContext(ctx).
				Model(user).
				Update("google_id", ident.Sub).Error; err != nil {
				return "", "", apperr.Internal(err, "failed to link google account")
			}
		}
	}
	return as.issueSession(ctx, user.ID)
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", apperr.Unauthorized("missing refresh token")
	}
	userID, err := parseToken(as.jwtSecret, refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", "", apperr.Unauthorized("invalid refresh token")
	}
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return "", "", apperr.Internal(err, "failed to load user for refresh")
	}
	if user == nil || user.RefreshTokenHash == nil {
		return "", "", apperr.Unauthorized("session revoked")
	}
	presented := hashRefreshToken(refreshToken)
	if subtle.ConstantTimeCompare([]byte(presented), []byte(*user.RefreshTokenHash)) != 1 {
		return "", "", apperr.Unauthorized("session revoked")
	}
	return as.issueSession(ctx, user.ID)
}

func (as *authService) Logout(ctx context.Context, userID uint) error {
	if err := as.userRepo.SetRefreshTokenHash(ctx, nil, userID, nil); err != nil {
		return apperr.Internal(err, "failed to revoke session")
	}
	return nil
}

// Authenticate resolves a bearer token to a user id for middleware.
func (as *authService) Authenticate(ctx context.Context, tokenString string) (uint, error) {
	userID, err := parseToken(as.jwtSecret, tokenString, tokenTypeAccess)
	if err != nil {
		return 0, apperr.Unauthorized("could not validate credentials")
	}
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return 0, apperr.Internal(err, "failed to load user")
	}
	if user == nil {
		return 0, apperr.Unauthorized("could not validate credentials")
	}
	return user.ID, nil
}

func (as *authService) RefreshTTL() time.Duration {
	return as.refreshTTL
}

// issueSession mints a fresh access/refresh pair and rotates the stored
// refresh hash, invalidating any previous refresh token.
func (as *authService) issueSession(ctx context.Context, userID uint) (string, string, error) {
	accessToken, err := mintToken(as.jwtSecret, userID, tokenTypeAccess, as.accessTTL)
	if err != nil {
		return "", "", apperr.Internal(err, "failed to mint access token")
	}
	refreshToken, err := mintToken(as.jwtSecret, userID, tokenTypeRefresh, as.refreshTTL)
	if err != nil {
		return "", "", apperr.Internal(err, "failed to mint refresh token")
	}
	hash := hashRefreshToken(refreshToken)
	if err := as.userRepo.SetRefreshTokenHash(ctx, nil, userID, &hash); err != nil {
		return "", "", apperr.Internal(err, "failed to store refresh token")
	}
	return accessToken, refreshToken, nil
}
