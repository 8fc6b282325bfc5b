package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/precinct-systems/precinct-stack/records/internal/audit"
	"github.com/precinct-systems/precinct-stack/records/internal/handlers"
	"github.com/precinct-systems/precinct-stack/records/internal/middleware"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/notify"
	"github.com/precinct-systems/precinct-stack/records/internal/ratelimit"
	"github.com/precinct-systems/precinct-stack/records/internal/repository"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
	"github.com/precinct-systems/precinct-stack/records/internal/storage"
	"github.com/precinct-systems/precinct-stack/records/pkg/tokens"
)

type testServer struct {
	srv  *httptest.Server
	repo *repository.MemoryRepository
}

func newTestServer(t *testing.T) *testServer {
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
	authSvc := service.NewAuthService(repo, issuer, auditLog, notifier, log)
	recSvc := service.NewRecordsService(repo, auditLog, notifier, nil, store, log)

	if err := authSvc.EnsureAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	router := NewRouter(Handlers{
		Auth:    handlers.NewAuthHandler(authSvc),
		Users:   handlers.NewUsersHandler(authSvc),
		Records: handlers.NewRecordsHandler(recSvc),
		Civil:   handlers.NewCivilHandler(recSvc),
		Public:  handlers.NewPublicHandler(recSvc),
		Audit:   handlers.NewAuditHandler(recSvc),
		Search:  handlers.NewSearchHandler(recSvc),
		Upload:  handlers.NewUploadHandler(store),
	}, middleware.NewAuthMiddleware(authSvc), &ratelimit.NoOpRateLimiter{}, store.BaseDir(), []string{"*"})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, repo: repo}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func (ts *testServer) login(t *testing.T, username, password string) *models.LoginResponse {
	t.Helper()

	resp, data := ts.do(t, http.MethodPost, "/api/login", "", models.LoginRequest{
		Username: username,
		Password: password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status = %d, body = %s", username, resp.StatusCode, data)
	}

	var lr models.LoginResponse
	if err := json.Unmarshal(data, &lr); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}
	return &lr
}

func TestLoginBootstrapAdmin(t *testing.T) {
	ts := newTestServer(t)

	lr := ts.login(t, "admin", "admin123")
	if lr.TokenType != "Bearer" || lr.Token == "" {
		t.Errorf("unexpected login response: %+v", lr)
	}
	if len(lr.User.Permissions) != len(models.AllPermissions()) {
		t.Errorf("admin permissions = %d, want %d", len(lr.User.Permissions), len(models.AllPermissions()))
	}
}

func TestPasswordHashNeverLeaves(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin", "admin123")

	_, loginBody := ts.do(t, http.MethodPost, "/api/login", "", models.LoginRequest{
		Username: "admin", Password: "admin123",
	})
	_, listBody := ts.do(t, http.MethodGet, "/api/usuarios", admin.Token, nil)
	_, meBody := ts.do(t, http.MethodGet, "/api/me", admin.Token, nil)

	// Checked on the raw bytes: decoding into models.User would hide a
	// leak, since the hash field has no JSON tag to land in.
	for name, body := range map[string][]byte{
		"login": loginBody, "list": listBody, "me": meBody,
	} {
		for _, leak := range []string{"password_hash", "PasswordHash", "$2a$"} {
			if bytes.Contains(body, []byte(leak)) {
				t.Errorf("%s response contains %q: %s", name, leak, body)
			}
		}
	}
}

func TestLoginGenericInvalidCredentials(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []models.LoginRequest{
		{Username: "ghost", Password: "whatever"},
		{Username: "admin", Password: "wrong"},
	} {
		resp, data := ts.do(t, http.MethodPost, "/api/login", "", body)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
		var e map[string]string
		if err := json.Unmarshal(data, &e); err != nil {
			t.Fatalf("unmarshal error body: %v", err)
		}
		if e["error"] != "invalid credentials" {
			t.Errorf("error = %q, want the generic message", e["error"])
		}
	}
}

func TestDisabledAccountDistinctError(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin", "admin123")

	resp, data := ts.do(t, http.MethodPost, "/api/usuarios", admin.Token, models.CreateUserRequest{
		Name: "Silva", Username: "silva", Password: "secret123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user: status = %d, body = %s", resp.StatusCode, data)
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}

	if resp, _ := ts.do(t, http.MethodPost, "/api/usuarios/"+user.ID+"/desativar", admin.Token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("disable user: status = %d", resp.StatusCode)
	}

	resp, data = ts.do(t, http.MethodPost, "/api/login", "", models.LoginRequest{
		Username: "silva", Password: "secret123",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("disabled login status = %d, want 403", resp.StatusCode)
	}
	var e map[string]string
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if e["error"] != "account disabled" {
		t.Errorf("error = %q, want account disabled", e["error"])
	}
}

func TestUnauthenticatedCreateHasNoSideEffects(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/prisoes", "", models.CreateArrestRequest{
		CitizenName: "João", Charges: "Roubo",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	arrests, total, err := ts.repo.ListArrests(context.Background(), models.ListRecordsRequest{})
	if err != nil {
		t.Fatalf("ListArrests() error = %v", err)
	}
	if total != 0 || len(arrests) != 0 {
		t.Errorf("rejected request still created %d arrests", total)
	}
}

func TestPermissionDenied(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin", "admin123")

	// An officer with only fine permission cannot register arrests.
	resp, data := ts.do(t, http.MethodPost, "/api/usuarios", admin.Token, models.CreateUserRequest{
		Name: "Silva", Username: "silva", Password: "secret123",
		Permissions: []string{models.PermFinesCreate},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user: status = %d, body = %s", resp.StatusCode, data)
	}
	officer := ts.login(t, "silva", "secret123")

	resp, _ = ts.do(t, http.MethodPost, "/api/prisoes", officer.Token, models.CreateArrestRequest{
		CitizenName: "João", Charges: "Roubo",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("arrest without permission: status = %d, want 403", resp.StatusCode)
	}

	resp, _ = ts.do(t, http.MethodPost, "/api/multas", officer.Token, models.CreateFineRequest{
		CitizenName: "João", Violation: "Velocidade", Amount: 500,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("fine with permission: status = %d, want 201", resp.StatusCode)
	}
}

func TestPublicWantedFlow(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin", "admin123")

	var ids []string
	for _, w := range []models.CreateWantedRequest{
		{Name: "Baixo", Crimes: "furto", DangerLevel: 1},
		{Name: "Extremo", Crimes: "homicídio", DangerLevel: 5},
		{Name: "Médio", Crimes: "roubo", DangerLevel: 3},
	} {
		resp, data := ts.do(t, http.MethodPost, "/api/procurados", admin.Token, w)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create wanted: status = %d, body = %s", resp.StatusCode, data)
		}
		var created models.WantedPerson
		if err := json.Unmarshal(data, &created); err != nil {
			t.Fatalf("unmarshal wanted: %v", err)
		}
		ids = append(ids, created.ID)
	}

	resp, data := ts.do(t, http.MethodGet, "/api/public/procurados", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public list: status = %d", resp.StatusCode)
	}
	var list struct {
		Data []models.PublicWanted `json:"data"`
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("unmarshal public list: %v", err)
	}
	if len(list.Data) != 3 {
		t.Fatalf("public list has %d entries, want 3", len(list.Data))
	}
	for i, want := range []string{"Extremo", "Médio", "Baixo"} {
		if list.Data[i].Name != want {
			t.Errorf("public[%d] = %q, want %q", i, list.Data[i].Name, want)
		}
	}

	// Capture the most dangerous one; the public list must shrink.
	if resp, _ := ts.do(t, http.MethodPost, "/api/procurados/"+ids[1]+"/capturar", admin.Token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("capture: status = %d", resp.StatusCode)
	}

	_, data = ts.do(t, http.MethodGet, "/api/public/procurados", "", nil)
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("unmarshal public list: %v", err)
	}
	if len(list.Data) != 2 || list.Data[0].Name != "Médio" {
		t.Errorf("public list after capture = %+v", list.Data)
	}
}

func TestPublicQuizHidesAnswers(t *testing.T) {
	ts := newTestServer(t)

	resp, data := ts.do(t, http.MethodGet, "/api/public/quiz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("quiz: status = %d", resp.StatusCode)
	}
	if bytes.Contains(data, []byte(`"correct"`)) || bytes.Contains(data, []byte(`"Correct"`)) {
		t.Error("quiz payload leaks correct answers")
	}

	var body struct {
		Data []models.QuizQuestion `json:"data"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal quiz: %v", err)
	}
	if len(body.Data) == 0 {
		t.Fatal("quiz has no questions")
	}
}

func TestPublicLicenseRequestAndReview(t *testing.T) {
	ts := newTestServer(t)

	resp, data := ts.do(t, http.MethodPost, "/api/public/porte", "", models.CreateLicenseRequest{
		CitizenName: "Maria", CitizenRG: "123", WeaponType: "pistola", Justification: "defesa",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit license: status = %d, body = %s", resp.StatusCode, data)
	}
	var lr models.LicenseRequest
	if err := json.Unmarshal(data, &lr); err != nil {
		t.Fatalf("unmarshal license: %v", err)
	}

	admin := ts.login(t, "admin", "admin123")
	resp, data = ts.do(t, http.MethodPost, "/api/porte/"+lr.ID+"/aprovar", admin.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve: status = %d, body = %s", resp.StatusCode, data)
	}
	var reviewed models.LicenseRequest
	if err := json.Unmarshal(data, &reviewed); err != nil {
		t.Fatalf("unmarshal reviewed: %v", err)
	}
	if reviewed.Status != models.LicenseStatusApproved {
		t.Errorf("status = %q, want %q", reviewed.Status, models.LicenseStatusApproved)
	}

	// Second review is rejected.
	if resp, _ := ts.do(t, http.MethodPost, "/api/porte/"+lr.ID+"/negar", admin.Token, nil); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("second review status = %d, want 400", resp.StatusCode)
	}
}

func TestAuditRequiresPermission(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin", "admin123")

	resp, data := ts.do(t, http.MethodPost, "/api/usuarios", admin.Token, models.CreateUserRequest{
		Name: "Silva", Username: "silva", Password: "secret123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user: status = %d, body = %s", resp.StatusCode, data)
	}
	officer := ts.login(t, "silva", "secret123")

	if resp, _ := ts.do(t, http.MethodGet, "/api/auditoria", officer.Token, nil); resp.StatusCode != http.StatusForbidden {
		t.Errorf("audit without permission: status = %d, want 403", resp.StatusCode)
	}

	resp, data = ts.do(t, http.MethodGet, "/api/auditoria?action=login", admin.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("audit: status = %d", resp.StatusCode)
	}
	var list struct {
		Data  []models.AuditLog `json:"data"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("unmarshal audit: %v", err)
	}
	if list.Total == 0 {
		t.Error("no login entries in the audit trail")
	}
	for _, entry := range list.Data {
		if entry.Action != "login" {
			t.Errorf("filtered list contains action %q", entry.Action)
		}
		if entry.Signature == "" {
			t.Error("audit entry has no signature")
		}
	}
}

func TestUploadAndServe(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin", "admin123")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("arquivo", "mugshot.png")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	fmt.Fprint(fw, "fake png bytes")
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/api/uploads/fotos", &buf)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin.Token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload: status = %d", resp.StatusCode)
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}

	served, data := ts.do(t, http.MethodGet, result["path"], "", nil)
	if served.StatusCode != http.StatusOK {
		t.Fatalf("serving %s: status = %d", result["path"], served.StatusCode)
	}
	if string(data) != "fake png bytes" {
		t.Errorf("served content = %q", data)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, data := ts.do(t, http.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK || string(data) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, data)
	}
}
