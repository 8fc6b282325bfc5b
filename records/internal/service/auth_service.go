package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/precinct-systems/precinct-stack/common/messaging"
	"github.com/precinct-systems/precinct-stack/records/internal/audit"
	"github.com/precinct-systems/precinct-stack/records/internal/metrics"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/notify"
	"github.com/precinct-systems/precinct-stack/records/internal/repository"
	"github.com/precinct-systems/precinct-stack/records/pkg/tokens"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password. Callers must not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidToken       = errors.New("invalid token")
	ErrValidation         = errors.New("validation failed")
)

// Bootstrap credentials created on first start so the department can
// log in and change them.
const (
	bootstrapUsername = "admin"
	bootstrapPassword = "admin123"
)

type AuthService struct {
	repo     repository.Repository
	issuer   *tokens.Issuer
	auditLog *audit.Logger
	notifier *notify.Notifier
	log      *slog.Logger
}

func NewAuthService(repo repository.Repository, issuer *tokens.Issuer, auditLog *audit.Logger, notifier *notify.Notifier, log *slog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		issuer:   issuer,
		auditLog: auditLog,
		notifier: notifier,
		log:      log,
	}
}

// EnsureAdmin seeds the bootstrap admin account when the user table is
// empty. It is a no-op on every later start.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate user ID: %w", err)
	}

	admin := &models.User{
		ID:           id.String(),
		Name:         "Administrador",
		Username:     bootstrapUsername,
		PasswordHash: string(hash),
		Role:         string(models.RoleAdmin),
		Rank:         "Comandante",
		Permissions:  models.AllPermissions(),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, admin); err != nil {
		// A concurrent instance may have seeded first.
		if errors.Is(err, repository.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	s.log.Warn("seeded bootstrap admin account, change its password",
		slog.String("username", bootstrapUsername),
	)
	return nil
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest, ipAddress string) (*models.LoginResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		s.auditLog.Record(ctx, "", models.ActionLoginFailed, "unknown user "+req.Username, ipAddress)
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		s.auditLog.Record(ctx, user.ID, models.ActionLoginFailed, "account disabled", ipAddress)
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.auditLog.Record(ctx, user.ID, models.ActionLoginFailed, "invalid password", ipAddress)
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.auditLog.Record(ctx, user.ID, models.ActionLogin, "login "+user.Username, ipAddress)
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return &models.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.issuer.TTL().Seconds()),
		User:      user,
	}, nil
}

// ValidateToken verifies a bearer token and loads the current user
// record, so permission changes apply to the next request even though
// the token itself carries only identity.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.issuer.Verify(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	return user, nil
}

func (s *AuthService) CreateUser(ctx context.Context, req *models.CreateUserRequest, actorID, ipAddress string) (*models.User, error) {
	if req.Username == "" || req.Password == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: nome, usuario and password are required", ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password too short", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	role := req.Role
	if role == "" {
		role = string(models.RoleOfficer)
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	user := &models.User{
		ID:           id.String(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Rank:         req.Rank,
		Permissions:  permissions,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.auditLog.Record(ctx, actorID, models.ActionUserCreate, "created user "+user.Username, ipAddress)
	s.notifier.Emit(notify.Event{
		Subject:  messaging.SubjectRecordsUserCreated,
		Action:   models.ActionUserCreate,
		RecordID: user.ID,
		Title:    "Novo oficial cadastrado",
		Fields: map[string]string{
			"nome":    user.Name,
			"usuario": user.Username,
			"patente": user.Rank,
		},
	})
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context, req models.ListRecordsRequest) ([]*models.User, int, error) {
	return s.repo.ListUsers(ctx, req)
}

func (s *AuthService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest, actorID, ipAddress string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Rank != nil {
		user.Rank = *req.Rank
	}
	if req.Permissions != nil {
		user.Permissions = *req.Permissions
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.auditLog.Record(ctx, actorID, models.ActionUserUpdate, "updated user "+user.Username, ipAddress)
	return user, nil
}

// SetUserActive enables or disables an account. Disabling takes effect
// on the user's next request, outstanding tokens are not revoked.
func (s *AuthService) SetUserActive(ctx context.Context, id string, active bool, actorID, ipAddress string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Active = active
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if !active {
		s.auditLog.Record(ctx, actorID, models.ActionUserDisable, "disabled user "+user.Username, ipAddress)
	} else {
		s.auditLog.Record(ctx, actorID, models.ActionUserUpdate, "enabled user "+user.Username, ipAddress)
	}
	return user, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, id string, req *models.ResetPasswordRequest, actorID, ipAddress string) error {
	if len(req.Password) < 6 {
		return fmt.Errorf("%w: password too short", ErrValidation)
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.auditLog.Record(ctx, actorID, models.ActionPasswordReset, "reset password for "+user.Username, ipAddress)
	return nil
}
