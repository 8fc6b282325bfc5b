package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	commonmw "github.com/precinct-systems/precinct-stack/common/middleware"
	"github.com/precinct-systems/precinct-stack/records/internal/handlers"
	"github.com/precinct-systems/precinct-stack/records/internal/metrics"
	"github.com/precinct-systems/precinct-stack/records/internal/middleware"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/ratelimit"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Users   *handlers.UsersHandler
	Records *handlers.RecordsHandler
	Civil   *handlers.CivilHandler
	Public  *handlers.PublicHandler
	Audit   *handlers.AuditHandler
	Search  *handlers.SearchHandler
	Upload  *handlers.UploadHandler
}

// NewRouter constructs the ServeMux with all API routes registered.
// uploadDir is served read-only under /uploads/.
func NewRouter(h Handlers, authMW *middleware.AuthMiddleware, limiter ratelimit.RateLimiter, uploadDir string, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// Public endpoints, no authentication. Anonymous writes are rate
	// limited per client IP.
	mux.HandleFunc("POST /api/login", middleware.RateLimit(limiter, "login")(h.Auth.Login))
	mux.HandleFunc("GET /api/public/procurados", h.Public.Wanted)
	mux.HandleFunc("GET /api/public/noticias", h.Public.News)
	mux.HandleFunc("GET /api/public/quiz", h.Public.QuizQuestions)
	mux.HandleFunc("POST /api/public/quiz", middleware.RateLimit(limiter, "quiz")(h.Public.SubmitQuiz))
	mux.HandleFunc("POST /api/public/porte", middleware.RateLimit(limiter, "porte")(h.Public.SubmitLicenseRequest))

	// Session
	mux.HandleFunc("GET /api/me", authMW.RequireAuth(h.Auth.Me))

	// User management
	mux.HandleFunc("POST /api/usuarios", authMW.RequirePermission(models.PermUsersManage)(h.Users.Create))
	mux.HandleFunc("GET /api/usuarios", authMW.RequirePermission(models.PermUsersManage)(h.Users.List))
	mux.HandleFunc("GET /api/usuarios/{id}", authMW.RequirePermission(models.PermUsersManage)(h.Users.Get))
	mux.HandleFunc("PATCH /api/usuarios/{id}", authMW.RequirePermission(models.PermUsersManage)(h.Users.Update))
	mux.HandleFunc("POST /api/usuarios/{id}/desativar", authMW.RequirePermission(models.PermUsersManage)(h.Users.Disable))
	mux.HandleFunc("POST /api/usuarios/{id}/ativar", authMW.RequirePermission(models.PermUsersManage)(h.Users.Enable))
	mux.HandleFunc("POST /api/usuarios/{id}/senha", authMW.RequirePermission(models.PermUsersManage)(h.Users.ResetPassword))

	// Arrests
	mux.HandleFunc("POST /api/prisoes", authMW.RequirePermission(models.PermArrestsCreate)(h.Records.CreateArrest))
	mux.HandleFunc("GET /api/prisoes", authMW.RequireAuth(h.Records.ListArrests))
	mux.HandleFunc("GET /api/prisoes/{id}", authMW.RequireAuth(h.Records.GetArrest))

	// Wanted persons
	mux.HandleFunc("POST /api/procurados", authMW.RequirePermission(models.PermWantedManage)(h.Records.CreateWanted))
	mux.HandleFunc("GET /api/procurados", authMW.RequireAuth(h.Records.ListWanted))
	mux.HandleFunc("GET /api/procurados/{id}", authMW.RequireAuth(h.Records.GetWanted))
	mux.HandleFunc("POST /api/procurados/{id}/capturar", authMW.RequirePermission(models.PermWantedManage)(h.Records.CaptureWanted))

	// Incident reports
	mux.HandleFunc("POST /api/bo", authMW.RequirePermission(models.PermReportsCreate)(h.Records.CreateReport))
	mux.HandleFunc("GET /api/bo", authMW.RequireAuth(h.Records.ListReports))
	mux.HandleFunc("GET /api/bo/{id}", authMW.RequireAuth(h.Records.GetReport))
	mux.HandleFunc("POST /api/bo/{id}/arquivar", authMW.RequirePermission(models.PermReportsCreate)(h.Records.ArchiveReport))

	// Investigations
	mux.HandleFunc("POST /api/investigacoes", authMW.RequirePermission(models.PermInvestigationsManage)(h.Records.CreateInvestigation))
	mux.HandleFunc("GET /api/investigacoes", authMW.RequireAuth(h.Records.ListInvestigations))
	mux.HandleFunc("GET /api/investigacoes/{id}", authMW.RequireAuth(h.Records.GetInvestigation))
	mux.HandleFunc("POST /api/investigacoes/{id}/finalizar", authMW.RequirePermission(models.PermInvestigationsManage)(h.Records.FinalizeInvestigation))
	mux.HandleFunc("POST /api/investigacoes/{id}/evidencias", authMW.RequirePermission(models.PermInvestigationsManage)(h.Records.AddEvidence))
	mux.HandleFunc("GET /api/investigacoes/{id}/evidencias", authMW.RequireAuth(h.Records.ListEvidence))

	// Fines
	mux.HandleFunc("POST /api/multas", authMW.RequirePermission(models.PermFinesCreate)(h.Civil.CreateFine))
	mux.HandleFunc("GET /api/multas", authMW.RequireAuth(h.Civil.ListFines))
	mux.HandleFunc("GET /api/multas/{id}", authMW.RequireAuth(h.Civil.GetFine))

	// Seizures
	mux.HandleFunc("POST /api/apreensoes", authMW.RequirePermission(models.PermSeizuresCreate)(h.Civil.CreateSeizure))
	mux.HandleFunc("GET /api/apreensoes", authMW.RequireAuth(h.Civil.ListSeizures))
	mux.HandleFunc("GET /api/apreensoes/{id}", authMW.RequireAuth(h.Civil.GetSeizure))

	// Department assets
	mux.HandleFunc("POST /api/patrimonio", authMW.RequirePermission(models.PermAssetsManage)(h.Civil.CreateAsset))
	mux.HandleFunc("GET /api/patrimonio", authMW.RequireAuth(h.Civil.ListAssets))
	mux.HandleFunc("GET /api/patrimonio/{id}", authMW.RequireAuth(h.Civil.GetAsset))
	mux.HandleFunc("PATCH /api/patrimonio/{id}", authMW.RequirePermission(models.PermAssetsManage)(h.Civil.UpdateAsset))

	// News
	mux.HandleFunc("POST /api/noticias", authMW.RequirePermission(models.PermNewsManage)(h.Civil.CreateNews))
	mux.HandleFunc("GET /api/noticias", authMW.RequireAuth(h.Civil.ListNews))
	mux.HandleFunc("GET /api/noticias/{id}", authMW.RequireAuth(h.Civil.GetNews))

	// Weapons-license review
	mux.HandleFunc("GET /api/porte", authMW.RequirePermission(models.PermLicensesReview)(h.Civil.ListLicenseRequests))
	mux.HandleFunc("GET /api/porte/{id}", authMW.RequirePermission(models.PermLicensesReview)(h.Civil.GetLicenseRequest))
	mux.HandleFunc("POST /api/porte/{id}/aprovar", authMW.RequirePermission(models.PermLicensesReview)(h.Civil.ApproveLicenseRequest))
	mux.HandleFunc("POST /api/porte/{id}/negar", authMW.RequirePermission(models.PermLicensesReview)(h.Civil.DenyLicenseRequest))

	// Quiz review
	mux.HandleFunc("GET /api/quiz/submissoes", authMW.RequirePermission(models.PermQuizReview)(h.Civil.ListQuizSubmissions))

	// Audit trail
	mux.HandleFunc("GET /api/auditoria", authMW.RequirePermission(models.PermAuditRead)(h.Audit.List))

	// Search
	mux.HandleFunc("GET /api/busca", authMW.RequireAuth(h.Search.Search))

	// Uploads
	mux.HandleFunc("POST /api/uploads/{kind}", authMW.RequireAuth(h.Upload.Upload))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Operational endpoints
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	cors := commonmw.CORS(commonmw.CORSConfig{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return commonmw.RequestID(cors(withSource(instrument(mux))))
}

// withSource stores where the request came from (web, cli, api) in the
// context so audit entries can carry it.
func withSource(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := httputil.WithRequestContext(r.Context(), httputil.NewRequestContext(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// instrument records request counts and latency per method and route
// pattern. The registered pattern keeps metric cardinality bounded,
// raw URL paths would not.
func instrument(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		mux.ServeHTTP(rec, r)

		_, pattern := mux.Handler(r)
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
