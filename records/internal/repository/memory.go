package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/precinct-systems/precinct-stack/records/internal/models"
)

// MemoryRepository is an in-memory Repository used for tests and for
// running the service without Postgres. UUIDv7 ids sort by creation
// time, so "newest first" is a descending id sort throughout.
type MemoryRepository struct {
	mu sync.RWMutex

	users          map[string]*models.User
	arrests        map[string]*models.Arrest
	wanted         map[string]*models.WantedPerson
	reports        map[string]*models.IncidentReport
	investigations map[string]*models.Investigation
	evidence       map[string][]*models.Evidence
	fines          map[string]*models.Fine
	seizures       map[string]*models.Seizure
	assets         map[string]*models.Asset
	news           map[string]*models.NewsPost
	licenses       map[string]*models.LicenseRequest
	quizzes        map[string]*models.QuizSubmission
	audit          []*models.AuditLog
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:          make(map[string]*models.User),
		arrests:        make(map[string]*models.Arrest),
		wanted:         make(map[string]*models.WantedPerson),
		reports:        make(map[string]*models.IncidentReport),
		investigations: make(map[string]*models.Investigation),
		evidence:       make(map[string][]*models.Evidence),
		fines:          make(map[string]*models.Fine),
		seizures:       make(map[string]*models.Seizure),
		assets:         make(map[string]*models.Asset),
		news:           make(map[string]*models.NewsPost),
		licenses:       make(map[string]*models.LicenseRequest),
		quizzes:        make(map[string]*models.QuizSubmission),
	}
}

func paginate[T any](items []T, page, limit int) ([]T, int) {
	total := len(items)
	if limit <= 0 {
		return items, total
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= total {
		return nil, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], total
}

// =============================================================================
// USERS
// =============================================================================

func (r *MemoryRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return ErrUserExists
		}
	}

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *MemoryRepository) UpdateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryRepository) ListUsers(_ context.Context, req models.ListRecordsRequest) ([]*models.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })

	page, total := paginate(users, req.Page, req.Limit)
	return page, total, nil
}

func (r *MemoryRepository) CountUsers(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

// =============================================================================
// ARRESTS
// =============================================================================

func (r *MemoryRepository) CreateArrest(_ context.Context, arrest *models.Arrest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *arrest
	r.arrests[arrest.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetArrest(_ context.Context, id string) (*models.Arrest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	arrest, ok := r.arrests[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *arrest
	return &clone, nil
}

func (r *MemoryRepository) ListArrests(_ context.Context, req models.ListRecordsRequest) ([]*models.Arrest, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	arrests := make([]*models.Arrest, 0, len(r.arrests))
	for _, arrest := range r.arrests {
		clone := *arrest
		arrests = append(arrests, &clone)
	}
	sort.Slice(arrests, func(i, j int) bool { return arrests[i].ID > arrests[j].ID })

	page, total := paginate(arrests, req.Page, req.Limit)
	return page, total, nil
}

// =============================================================================
// WANTED PERSONS
// =============================================================================

func (r *MemoryRepository) CreateWanted(_ context.Context, wanted *models.WantedPerson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *wanted
	r.wanted[wanted.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetWanted(_ context.Context, id string) (*models.WantedPerson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted, ok := r.wanted[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *wanted
	return &clone, nil
}

func (r *MemoryRepository) ListWanted(_ context.Context, req models.ListRecordsRequest) ([]*models.WantedPerson, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	persons := make([]*models.WantedPerson, 0, len(r.wanted))
	for _, wanted := range r.wanted {
		if req.Status != "" && wanted.Status != req.Status {
			continue
		}
		clone := *wanted
		persons = append(persons, &clone)
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].ID > persons[j].ID })

	page, total := paginate(persons, req.Page, req.Limit)
	return page, total, nil
}

func (r *MemoryRepository) UpdateWantedStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted, ok := r.wanted[id]
	if !ok {
		return ErrNotFound
	}
	wanted.Status = status
	return nil
}

func (r *MemoryRepository) ListPublicWanted(_ context.Context) ([]*models.WantedPerson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	persons := make([]*models.WantedPerson, 0, len(r.wanted))
	for _, wanted := range r.wanted {
		if wanted.Status == models.WantedStatusCaptured {
			continue
		}
		clone := *wanted
		persons = append(persons, &clone)
	}
	sort.Slice(persons, func(i, j int) bool {
		if persons[i].DangerLevel != persons[j].DangerLevel {
			return persons[i].DangerLevel > persons[j].DangerLevel
		}
		return persons[i].ID > persons[j].ID
	})

	return persons, nil
}

// =============================================================================
// INCIDENT REPORTS
// =============================================================================

func (r *MemoryRepository) CreateReport(_ context.Context, report *models.IncidentReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetReport(_ context.Context, id string) (*models.IncidentReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *report
	return &clone, nil
}

func (r *MemoryRepository) ListReports(_ context.Context, req models.ListRecordsRequest) ([]*models.IncidentReport, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*models.IncidentReport, 0, len(r.reports))
	for _, report := range r.reports {
		if req.Status != "" && report.Status != req.Status {
			continue
		}
		clone := *report
		reports = append(reports, &clone)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID > reports[j].ID })

	page, total := paginate(reports, req.Page, req.Limit)
	return page, total, nil
}

func (r *MemoryRepository) UpdateReportStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	report, ok := r.reports[id]
	if !ok {
		return ErrNotFound
	}
	report.Status = status
	return nil
}

// =============================================================================
// INVESTIGATIONS + EVIDENCE
// =============================================================================

func (r *MemoryRepository) CreateInvestigation(_ context.Context, inv *models.Investigation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *inv
	r.investigations[inv.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetInvestigation(_ context.Context, id string) (*models.Investigation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.investigations[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *inv
	return &clone, nil
}

func (r *MemoryRepository) ListInvestigations(_ context.Context, req models.ListRecordsRequest) ([]*models.Investigation, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invs := make([]*models.Investigation, 0, len(r.investigations))
	for _, inv := range r.investigations {
		if req.Status != "" && inv.Status != req.Status {
			continue
		}
		clone := *inv
		invs = append(invs, &clone)
	}
	sort.Slice(invs, func(i, j int) bool { return invs[i].ID > invs[j].ID })

	page, total := paginate(invs, req.Page, req.Limit)
	return page, total, nil
}

func (r *MemoryRepository) FinalizeInvestigation(_ context.Context, id, finalizedBy, dossierPath string, finalizedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.investigations[id]
	if !ok {
		return ErrNotFound
	}
	inv.Status = models.InvestigationStatusFinalized
	inv.DossierPath = dossierPath
	inv.FinalizedBy = &finalizedBy
	inv.FinalizedAt = &finalizedAt
	return nil
}

func (r *MemoryRepository) AddEvidence(_ context.Context, ev *models.Evidence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *ev
	r.evidence[ev.InvestigationID] = append(r.evidence[ev.InvestigationID], &clone)
	return nil
}

func (r *MemoryRepository) ListEvidence(_ context.Context, investigationID string) ([]*models.Evidence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*models.Evidence, 0, len(r.evidence[investigationID]))
	for _, ev := range r.evidence[investigationID] {
		clone := *ev
		items = append(items, &clone)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}

// =============================================================================
// FINES
// =============================================================================

func (r *MemoryRepository) CreateFine(_ context.Context, fine *models.Fine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *fine
	r.fines[fine.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetFine(_ context.Context, id string) (*models.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fine, ok := r.fines[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *fine
	return &clone, nil
}

func (r *MemoryRepository) ListFines(_ context.Context, req models.ListRecordsRequest) ([]*models.Fine, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fines := make([]*models.Fine, 0, len(r.fines))
	for _, fine := range r.fines {
		clone := *fine
		fines = append(fines, &clone)
	}
	sort.Slice(fines, func(i, j int) bool { return fines[i].ID > fines[j].ID })

	page, total := paginate(fines, req.Page, req.Limit)
	return page, total, nil
}

// =============================================================================
// SEIZURES
// =============================================================================

func (r *MemoryRepository) CreateSeizure(_ context.Context, seizure *models.Seizure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *seizure
	r.seizures[seizure.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetSeizure(_ context.Context, id string) (*models.Seizure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seizure, ok := r.seizures[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *seizure
	return &clone, nil
}

func (r *MemoryRepository) ListSeizures(_ context.Context, req models.ListRecordsRequest) ([]*models.Seizure, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seizures := make([]*models.Seizure, 0, len(r.seizures))
	for _, seizure := range r.seizures {
		clone := *seizure
		seizures = append(seizures, &clone)
	}
	sort.Slice(seizures, func(i, j int) bool { return seizures[i].ID > seizures[j].ID })

	page, total := paginate(seizures, req.Page, req.Limit)
	return page, total, nil
}

// =============================================================================
// ASSETS
// =============================================================================

func (r *MemoryRepository) CreateAsset(_ context.Context, asset *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *asset
	r.assets[asset.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetAsset(_ context.Context, id string) (*models.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, ok := r.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *asset
	return &clone, nil
}

func (r *MemoryRepository) UpdateAsset(_ context.Context, asset *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assets[asset.ID]; !ok {
		return ErrNotFound
	}
	clone := *asset
	r.assets[asset.ID] = &clone
	return nil
}

func (r *MemoryRepository) ListAssets(_ context.Context, req models.ListRecordsRequest) ([]*models.Asset, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assets := make([]*models.Asset, 0, len(r.assets))
	for _, asset := range r.assets {
		if req.Status != "" && asset.Status != req.Status {
			continue
		}
		clone := *asset
		assets = append(assets, &clone)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID > assets[j].ID })

	page, total := paginate(assets, req.Page, req.Limit)
	return page, total, nil
}

// =============================================================================
// NEWS
// =============================================================================

func (r *MemoryRepository) CreateNews(_ context.Context, post *models.NewsPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *post
	r.news[post.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetNews(_ context.Context, id string) (*models.NewsPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.news[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *post
	return &clone, nil
}

func (r *MemoryRepository) ListNews(_ context.Context, req models.ListRecordsRequest) ([]*models.NewsPost, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*models.NewsPost, 0, len(r.news))
	for _, post := range r.news {
		clone := *post
		posts = append(posts, &clone)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })

	page, total := paginate(posts, req.Page, req.Limit)
	return page, total, nil
}

func (r *MemoryRepository) ListPublishedNews(_ context.Context) ([]*models.NewsPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*models.NewsPost, 0, len(r.news))
	for _, post := range r.news {
		if !post.Published {
			continue
		}
		clone := *post
		posts = append(posts, &clone)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })

	return posts, nil
}

// =============================================================================
// WEAPONS-LICENSE REQUESTS
// =============================================================================

func (r *MemoryRepository) CreateLicenseRequest(_ context.Context, lr *models.LicenseRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *lr
	r.licenses[lr.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetLicenseRequest(_ context.Context, id string) (*models.LicenseRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lr, ok := r.licenses[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *lr
	return &clone, nil
}

func (r *MemoryRepository) ListLicenseRequests(_ context.Context, req models.ListRecordsRequest) ([]*models.LicenseRequest, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]*models.LicenseRequest, 0, len(r.licenses))
	for _, lr := range r.licenses {
		if req.Status != "" && lr.Status != req.Status {
			continue
		}
		clone := *lr
		requests = append(requests, &clone)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })

	page, total := paginate(requests, req.Page, req.Limit)
	return page, total, nil
}

func (r *MemoryRepository) ReviewLicenseRequest(_ context.Context, id, status, reviewedBy string, reviewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lr, ok := r.licenses[id]
	if !ok {
		return ErrNotFound
	}
	lr.Status = status
	lr.ReviewedBy = &reviewedBy
	lr.ReviewedAt = &reviewedAt
	return nil
}

// =============================================================================
// QUIZ SUBMISSIONS
// =============================================================================

func (r *MemoryRepository) CreateQuizSubmission(_ context.Context, sub *models.QuizSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *sub
	r.quizzes[sub.ID] = &clone
	return nil
}

func (r *MemoryRepository) ListQuizSubmissions(_ context.Context, req models.ListRecordsRequest) ([]*models.QuizSubmission, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := make([]*models.QuizSubmission, 0, len(r.quizzes))
	for _, sub := range r.quizzes {
		clone := *sub
		subs = append(subs, &clone)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID > subs[j].ID })

	page, total := paginate(subs, req.Page, req.Limit)
	return page, total, nil
}

// =============================================================================
// AUDIT LOG
// =============================================================================

func (r *MemoryRepository) AppendAudit(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *entry
	r.audit = append(r.audit, &clone)
	return nil
}

func (r *MemoryRepository) ListAudit(_ context.Context, req models.ListAuditRequest) ([]*models.AuditLog, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*models.AuditLog, 0, len(r.audit))
	for _, entry := range r.audit {
		if req.ActorID != "" && (entry.ActorID == nil || *entry.ActorID != req.ActorID) {
			continue
		}
		if req.Action != "" && entry.Action != req.Action {
			continue
		}
		clone := *entry
		entries = append(entries, &clone)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })

	page, total := paginate(entries, req.Page, req.Limit)
	return page, total, nil
}
