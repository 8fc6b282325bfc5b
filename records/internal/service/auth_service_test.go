package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/precinct-systems/precinct-stack/records/internal/audit"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/notify"
	"github.com/precinct-systems/precinct-stack/records/internal/repository"
	"github.com/precinct-systems/precinct-stack/records/internal/storage"
	"github.com/precinct-systems/precinct-stack/records/pkg/tokens"
)

type testEnv struct {
	auth    *AuthService
	records *RecordsService
	repo    *repository.MemoryRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := repository.NewMemoryRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditLog := audit.NewLogger("test-audit-secret", repo, log)
	issuer := tokens.NewIssuer("test-jwt-secret")

	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	notifier := notify.New(nil, log)
	return &testEnv{
		auth:    NewAuthService(repo, issuer, auditLog, notifier, log),
		records: NewRecordsService(repo, auditLog, notifier, nil, store, log),
		repo:    repo,
	}
}

func (e *testEnv) createUser(t *testing.T, username, password string, active bool) *models.User {
	t.Helper()

	user, err := e.auth.CreateUser(context.Background(), &models.CreateUserRequest{
		Name:     "Oficial " + username,
		Username: username,
		Password: password,
	}, "", "127.0.0.1")
	if err != nil {
		t.Fatalf("CreateUser(%s) error = %v", username, err)
	}
	if !active {
		if _, err := e.auth.SetUserActive(context.Background(), user.ID, false, "", "127.0.0.1"); err != nil {
			t.Fatalf("SetUserActive() error = %v", err)
		}
	}
	return user
}

func (e *testEnv) auditActions(t *testing.T) []string {
	t.Helper()

	entries, _, err := e.repo.ListAudit(context.Background(), models.ListAuditRequest{Limit: 100})
	if err != nil {
		t.Fatalf("ListAudit() error = %v", err)
	}
	actions := make([]string, 0, len(entries))
	for _, entry := range entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

func containsAction(actions []string, want string) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}

func TestEnsureAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.auth.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	resp, err := env.auth.Login(ctx, &models.LoginRequest{
		Username: "admin",
		Password: "admin123",
	}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() as bootstrap admin error = %v", err)
	}
	if len(resp.User.Permissions) != len(models.AllPermissions()) {
		t.Errorf("bootstrap admin has %d permissions, want %d",
			len(resp.User.Permissions), len(models.AllPermissions()))
	}

	// Second call must not seed again.
	if err := env.auth.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin() second call error = %v", err)
	}
	count, err := env.repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountUsers() = %d after two EnsureAdmin calls, want 1", count)
	}
}

func TestEnsureAdminSkipsWhenUsersExist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "silva", "secret123", true)

	if err := env.auth.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	if _, err := env.repo.GetUserByUsername(ctx, "admin"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("GetUserByUsername(admin) error = %v, want ErrUserNotFound", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "silva", "secret123", true)

	resp, err := env.auth.Login(ctx, &models.LoginRequest{
		Username: "silva",
		Password: "secret123",
	}, "10.0.0.5")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if resp.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", resp.TokenType)
	}
	if want := int((8 * time.Hour).Seconds()); resp.ExpiresIn != want {
		t.Errorf("ExpiresIn = %d, want %d", resp.ExpiresIn, want)
	}
	if resp.User.ID != user.ID {
		t.Errorf("User.ID = %q, want %q", resp.User.ID, user.ID)
	}

	validated, err := env.auth.ValidateToken(ctx, resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("ValidateToken() user = %q, want %q", validated.ID, user.ID)
	}

	if actions := env.auditActions(t); !containsAction(actions, models.ActionLogin) {
		t.Error("successful login did not record an audit entry")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createUser(t, "silva", "secret123", true)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "secret123"},
		{"wrong password", "silva", "wrong"},
		{"empty password", "silva", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Login(ctx, &models.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			}, "127.0.0.1")
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}

	actions := env.auditActions(t)
	failures := 0
	for _, a := range actions {
		if a == models.ActionLoginFailed {
			failures++
		}
	}
	if failures != len(tests) {
		t.Errorf("recorded %d login_failed audit entries, want %d", failures, len(tests))
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createUser(t, "silva", "secret123", false)

	_, err := env.auth.Login(ctx, &models.LoginRequest{
		Username: "silva",
		Password: "secret123",
	}, "127.0.0.1")
	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("Login() error = %v, want ErrAccountDisabled", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.ValidateToken(context.Background(), "not.a.token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenDisabledAfterIssue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "silva", "secret123", true)

	resp, err := env.auth.Login(ctx, &models.LoginRequest{Username: "silva", Password: "secret123"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := env.auth.SetUserActive(ctx, user.ID, false, "", "127.0.0.1"); err != nil {
		t.Fatalf("SetUserActive() error = %v", err)
	}

	if _, err := env.auth.ValidateToken(ctx, resp.Token); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("ValidateToken() after disable error = %v, want ErrAccountDisabled", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.CreateUserRequest
	}{
		{"missing username", &models.CreateUserRequest{Name: "A", Password: "secret123"}},
		{"missing password", &models.CreateUserRequest{Name: "A", Username: "a"}},
		{"missing name", &models.CreateUserRequest{Username: "a", Password: "secret123"}},
		{"short password", &models.CreateUserRequest{Name: "A", Username: "a", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.auth.CreateUser(ctx, tt.req, "", "127.0.0.1"); !errors.Is(err, ErrValidation) {
				t.Errorf("CreateUser() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateUserDefaultsAndDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.CreateUser(ctx, &models.CreateUserRequest{
		Name:     "Silva",
		Username: "silva",
		Password: "secret123",
	}, "", "127.0.0.1")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.Role != string(models.RoleOfficer) {
		t.Errorf("Role = %q, want %q", user.Role, models.RoleOfficer)
	}
	if user.Permissions == nil {
		t.Error("Permissions is nil, want empty slice")
	}
	if !user.Active {
		t.Error("new user is not active")
	}

	_, err = env.auth.CreateUser(ctx, &models.CreateUserRequest{
		Name:     "Other",
		Username: "silva",
		Password: "secret123",
	}, "", "127.0.0.1")
	if !errors.Is(err, repository.ErrUserExists) {
		t.Errorf("CreateUser() duplicate error = %v, want ErrUserExists", err)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "silva", "secret123", true)

	rank := "Sargento"
	perms := []string{models.PermArrestsCreate, models.PermFinesCreate}
	updated, err := env.auth.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{
		Rank:        &rank,
		Permissions: &perms,
	}, "", "127.0.0.1")
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	if updated.Rank != "Sargento" {
		t.Errorf("Rank = %q, want Sargento", updated.Rank)
	}
	if updated.Name != user.Name {
		t.Errorf("Name changed to %q, want %q untouched", updated.Name, user.Name)
	}
	if !updated.Can(models.PermFinesCreate) {
		t.Error("updated user is missing granted permission")
	}
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "silva", "secret123", true)

	err := env.auth.ResetPassword(ctx, user.ID, &models.ResetPasswordRequest{Password: "12345"}, "", "127.0.0.1")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ResetPassword() short password error = %v, want ErrValidation", err)
	}

	if err := env.auth.ResetPassword(ctx, user.ID, &models.ResetPasswordRequest{Password: "newsecret"}, "", "127.0.0.1"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if _, err := env.auth.Login(ctx, &models.LoginRequest{Username: "silva", Password: "secret123"}, "127.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with old password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := env.auth.Login(ctx, &models.LoginRequest{Username: "silva", Password: "newsecret"}, "127.0.0.1"); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
}
