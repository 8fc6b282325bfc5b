package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/precinct-systems/precinct-stack/common/messaging"
	"github.com/precinct-systems/precinct-stack/records/internal/audit"
	"github.com/precinct-systems/precinct-stack/records/internal/dossier"
	"github.com/precinct-systems/precinct-stack/records/internal/metrics"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/notify"
	"github.com/precinct-systems/precinct-stack/records/internal/repository"
	"github.com/precinct-systems/precinct-stack/records/internal/search"
	"github.com/precinct-systems/precinct-stack/records/internal/storage"
)

// RecordsService implements the department's record keeping. Every
// mutating operation writes a signed audit entry and emits a
// best-effort notification; neither failure aborts the operation.
type RecordsService struct {
	repo     repository.Repository
	auditLog *audit.Logger
	notifier *notify.Notifier
	indexer  *search.Indexer
	store    *storage.LocalStore
	log      *slog.Logger
}

func NewRecordsService(repo repository.Repository, auditLog *audit.Logger, notifier *notify.Notifier, indexer *search.Indexer, store *storage.LocalStore, log *slog.Logger) *RecordsService {
	return &RecordsService{
		repo:     repo,
		auditLog: auditLog,
		notifier: notifier,
		indexer:  indexer,
		store:    store,
		log:      log,
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return id.String(), nil
}

// Arrests

func (s *RecordsService) CreateArrest(ctx context.Context, req *models.CreateArrestRequest, actor *models.User, ipAddress string) (*models.Arrest, error) {
	if req.CitizenName == "" || req.Charges == "" {
		return nil, fmt.Errorf("%w: nome_cidadao and acusacoes are required", ErrValidation)
	}
	if req.SentenceMin < 0 || req.FineAmount < 0 {
		return nil, fmt.Errorf("%w: pena_minutos and valor_multa must not be negative", ErrValidation)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	arrest := &models.Arrest{
		ID:          id,
		CitizenName: req.CitizenName,
		CitizenRG:   req.CitizenRG,
		Charges:     req.Charges,
		SentenceMin: req.SentenceMin,
		FineAmount:  req.FineAmount,
		Notes:       req.Notes,
		MugshotPath: req.MugshotPath,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateArrest(ctx, arrest); err != nil {
		return nil, fmt.Errorf("failed to create arrest: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionArrestCreate, "arrested "+arrest.CitizenName, ipAddress)
	metrics.RecordsCreatedTotal.WithLabelValues("arrest").Inc()
	s.notifier.Emit(notify.Event{
		Subject:   messaging.SubjectRecordsArrestCreated,
		Action:    models.ActionArrestCreate,
		ActorName: actor.Name,
		RecordID:  arrest.ID,
		Title:     "Prisão registrada: " + arrest.CitizenName,
		Fields: map[string]string{
			"Acusações": arrest.Charges,
			"Pena":      fmt.Sprintf("%d min", arrest.SentenceMin),
		},
	})
	s.indexer.Index(search.Document{
		ID:        arrest.ID,
		Kind:      "prisao",
		Title:     arrest.CitizenName,
		Body:      arrest.Charges + " " + arrest.Notes,
		CreatedAt: arrest.CreatedAt,
	})
	return arrest, nil
}

func (s *RecordsService) GetArrest(ctx context.Context, id string) (*models.Arrest, error) {
	return s.repo.GetArrest(ctx, id)
}

func (s *RecordsService) ListArrests(ctx context.Context, req models.ListRecordsRequest) ([]*models.Arrest, int, error) {
	return s.repo.ListArrests(ctx, req)
}

// Wanted persons

func (s *RecordsService) CreateWanted(ctx context.Context, req *models.CreateWantedRequest, actor *models.User, ipAddress string) (*models.WantedPerson, error) {
	if req.Name == "" || req.Crimes == "" {
		return nil, fmt.Errorf("%w: nome and crimes are required", ErrValidation)
	}
	if req.DangerLevel < 1 || req.DangerLevel > 5 {
		return nil, fmt.Errorf("%w: nivel_perigo must be between 1 and 5", ErrValidation)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	wanted := &models.WantedPerson{
		ID:          id,
		Name:        req.Name,
		Crimes:      req.Crimes,
		DangerLevel: req.DangerLevel,
		Bounty:      req.Bounty,
		PhotoPath:   req.PhotoPath,
		Status:      models.WantedStatusActive,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateWanted(ctx, wanted); err != nil {
		return nil, fmt.Errorf("failed to create wanted record: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionWantedCreate, "added wanted person "+wanted.Name, ipAddress)
	metrics.RecordsCreatedTotal.WithLabelValues("wanted").Inc()
	s.notifier.Emit(notify.Event{
		Subject:   messaging.SubjectRecordsWantedCreated,
		Action:    models.ActionWantedCreate,
		ActorName: actor.Name,
		RecordID:  wanted.ID,
		Title:     "Novo procurado: " + wanted.Name,
		Fields: map[string]string{
			"Crimes":          wanted.Crimes,
			"Nível de perigo": fmt.Sprintf("%d", wanted.DangerLevel),
			"Recompensa":      fmt.Sprintf("$%.2f", wanted.Bounty),
		},
	})
	s.indexer.Index(search.Document{
		ID:        wanted.ID,
		Kind:      "procurado",
		Title:     wanted.Name,
		Body:      wanted.Crimes,
		CreatedAt: wanted.CreatedAt,
	})
	return wanted, nil
}

func (s *RecordsService) GetWanted(ctx context.Context, id string) (*models.WantedPerson, error) {
	return s.repo.GetWanted(ctx, id)
}

func (s *RecordsService) ListWanted(ctx context.Context, req models.ListRecordsRequest) ([]*models.WantedPerson, int, error) {
	return s.repo.ListWanted(ctx, req)
}

// CaptureWanted marks a wanted person as captured, removing them from
// the public list. Capturing an already captured person succeeds.
func (s *RecordsService) CaptureWanted(ctx context.Context, id string, actor *models.User, ipAddress string) (*models.WantedPerson, error) {
	wanted, err := s.repo.GetWanted(ctx, id)
	if err != nil {
		return nil, err
	}

	if wanted.Status != models.WantedStatusCaptured {
		if err := s.repo.UpdateWantedStatus(ctx, id, models.WantedStatusCaptured); err != nil {
			return nil, fmt.Errorf("failed to update wanted status: %w", err)
		}
		wanted.Status = models.WantedStatusCaptured

		s.auditLog.Record(ctx, actor.ID, models.ActionWantedCapture, "captured "+wanted.Name, ipAddress)
		s.notifier.Emit(notify.Event{
			Subject:   messaging.SubjectRecordsWantedCaptured,
			Action:    models.ActionWantedCapture,
			ActorName: actor.Name,
			RecordID:  wanted.ID,
			Title:     "Procurado capturado: " + wanted.Name,
		})
	}
	return wanted, nil
}

// PublicWanted returns the uncaptured wanted list ordered by danger
// level, projected to the public shape.
func (s *RecordsService) PublicWanted(ctx context.Context) ([]*models.PublicWanted, error) {
	wanted, err := s.repo.ListPublicWanted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wanted persons: %w", err)
	}

	out := make([]*models.PublicWanted, 0, len(wanted))
	for _, w := range wanted {
		out = append(out, &models.PublicWanted{
			ID:          w.ID,
			Name:        w.Name,
			Crimes:      w.Crimes,
			DangerLevel: w.DangerLevel,
			Bounty:      w.Bounty,
			PhotoPath:   w.PhotoPath,
		})
	}
	return out, nil
}

// Incident reports (B.O.)

func (s *RecordsService) CreateReport(ctx context.Context, req *models.CreateReportRequest, actor *models.User, ipAddress string) (*models.IncidentReport, error) {
	if req.Title == "" || req.Description == "" {
		return nil, fmt.Errorf("%w: titulo and descricao are required", ErrValidation)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	report := &models.IncidentReport{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		ReporterName: req.ReporterName,
		Status:       models.ReportStatusOpen,
		CreatedBy:    actor.ID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionReportCreate, "filed B.O. "+report.Title, ipAddress)
	metrics.RecordsCreatedTotal.WithLabelValues("report").Inc()
	s.notifier.Emit(notify.Event{
		Subject:   messaging.SubjectRecordsReportCreated,
		Action:    models.ActionReportCreate,
		ActorName: actor.Name,
		RecordID:  report.ID,
		Title:     "B.O. registrado: " + report.Title,
	})
	s.indexer.Index(search.Document{
		ID:        report.ID,
		Kind:      "bo",
		Title:     report.Title,
		Body:      report.Description,
		CreatedAt: report.CreatedAt,
	})
	return report, nil
}

func (s *RecordsService) GetReport(ctx context.Context, id string) (*models.IncidentReport, error) {
	return s.repo.GetReport(ctx, id)
}

func (s *RecordsService) ListReports(ctx context.Context, req models.ListRecordsRequest) ([]*models.IncidentReport, int, error) {
	return s.repo.ListReports(ctx, req)
}

func (s *RecordsService) ArchiveReport(ctx context.Context, id string, actor *models.User, ipAddress string) (*models.IncidentReport, error) {
	report, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	if report.Status != models.ReportStatusArchived {
		if err := s.repo.UpdateReportStatus(ctx, id, models.ReportStatusArchived); err != nil {
			return nil, fmt.Errorf("failed to archive report: %w", err)
		}
		report.Status = models.ReportStatusArchived
		s.auditLog.Record(ctx, actor.ID, models.ActionReportArchive, "archived B.O. "+report.Title, ipAddress)
	}
	return report, nil
}

// Investigations

func (s *RecordsService) CreateInvestigation(ctx context.Context, req *models.CreateInvestigationRequest, actor *models.User, ipAddress string) (*models.Investigation, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: titulo is required", ErrValidation)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	inv := &models.Investigation{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		LeadOfficer: req.LeadOfficer,
		Status:      models.InvestigationStatusOpen,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateInvestigation(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create investigation: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionInvestigationCreate, "opened investigation "+inv.Title, ipAddress)
	metrics.RecordsCreatedTotal.WithLabelValues("investigation").Inc()
	s.indexer.Index(search.Document{
		ID:        inv.ID,
		Kind:      "investigacao",
		Title:     inv.Title,
		Body:      inv.Description,
		CreatedAt: inv.CreatedAt,
	})
	return inv, nil
}

func (s *RecordsService) GetInvestigation(ctx context.Context, id string) (*models.Investigation, error) {
	return s.repo.GetInvestigation(ctx, id)
}

func (s *RecordsService) ListInvestigations(ctx context.Context, req models.ListRecordsRequest) ([]*models.Investigation, int, error) {
	return s.repo.ListInvestigations(ctx, req)
}

func (s *RecordsService) AddEvidence(ctx context.Context, investigationID string, req *models.AddEvidenceRequest, actor *models.User, ipAddress string) (*models.Evidence, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: descricao is required", ErrValidation)
	}

	// Evidence only attaches to existing investigations.
	if _, err := s.repo.GetInvestigation(ctx, investigationID); err != nil {
		return nil, err
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	ev := &models.Evidence{
		ID:              id,
		InvestigationID: investigationID,
		Description:     req.Description,
		PhotoPath:       req.PhotoPath,
		AddedBy:         actor.ID,
		AddedAt:         time.Now().UTC(),
	}

	if err := s.repo.AddEvidence(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to add evidence: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionEvidenceAdd, "added evidence to investigation "+investigationID, ipAddress)
	return ev, nil
}

func (s *RecordsService) ListEvidence(ctx context.Context, investigationID string) ([]*models.Evidence, error) {
	if _, err := s.repo.GetInvestigation(ctx, investigationID); err != nil {
		return nil, err
	}
	return s.repo.ListEvidence(ctx, investigationID)
}

// FinalizeInvestigation closes an investigation and renders its
// dossier. Finalizing an already finalized investigation returns it
// unchanged with the existing dossier.
func (s *RecordsService) FinalizeInvestigation(ctx context.Context, id string, actor *models.User, ipAddress string) (*models.Investigation, error) {
	inv, err := s.repo.GetInvestigation(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status == models.InvestigationStatusFinalized {
		return inv, nil
	}

	evidence, err := s.repo.ListEvidence(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}

	now := time.Now().UTC()
	html, err := dossier.Render(inv, evidence, actor.Name, now)
	if err != nil {
		return nil, fmt.Errorf("failed to render dossier: %w", err)
	}

	path, err := s.store.SaveBytes("dossies", inv.ID+".html", html)
	if err != nil {
		return nil, fmt.Errorf("failed to store dossier: %w", err)
	}

	if err := s.repo.FinalizeInvestigation(ctx, id, actor.ID, path, now); err != nil {
		return nil, fmt.Errorf("failed to finalize investigation: %w", err)
	}

	inv.Status = models.InvestigationStatusFinalized
	inv.DossierPath = path
	inv.FinalizedAt = &now
	inv.FinalizedBy = &actor.ID

	s.auditLog.Record(ctx, actor.ID, models.ActionInvestigationFinalize, "finalized investigation "+inv.Title, ipAddress)
	s.notifier.Emit(notify.Event{
		Subject:   messaging.SubjectRecordsInvestigationClosed,
		Action:    models.ActionInvestigationFinalize,
		ActorName: actor.Name,
		RecordID:  inv.ID,
		Title:     "Investigação finalizada: " + inv.Title,
		Fields: map[string]string{
			"Evidências": fmt.Sprintf("%d", len(evidence)),
		},
	})
	return inv, nil
}

// Fines

func (s *RecordsService) CreateFine(ctx context.Context, req *models.CreateFineRequest, actor *models.User, ipAddress string) (*models.Fine, error) {
	if req.CitizenName == "" || req.Violation == "" {
		return nil, fmt.Errorf("%w: nome_cidadao and infracao are required", ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: valor must be positive", ErrValidation)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	fine := &models.Fine{
		ID:          id,
		CitizenName: req.CitizenName,
		Plate:       req.Plate,
		Violation:   req.Violation,
		Amount:      req.Amount,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateFine(ctx, fine); err != nil {
		return nil, fmt.Errorf("failed to create fine: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionFineCreate, "fined "+fine.CitizenName, ipAddress)
	metrics.RecordsCreatedTotal.WithLabelValues("fine").Inc()
	s.notifier.Emit(notify.Event{
		Subject:   messaging.SubjectRecordsFineCreated,
		Action:    models.ActionFineCreate,
		ActorName: actor.Name,
		RecordID:  fine.ID,
		Title:     "Multa aplicada: " + fine.CitizenName,
		Fields: map[string]string{
			"Infração": fine.Violation,
			"Valor":    fmt.Sprintf("$%.2f", fine.Amount),
		},
	})
	return fine, nil
}

func (s *RecordsService) GetFine(ctx context.Context, id string) (*models.Fine, error) {
	return s.repo.GetFine(ctx, id)
}

func (s *RecordsService) ListFines(ctx context.Context, req models.ListRecordsRequest) ([]*models.Fine, int, error) {
	return s.repo.ListFines(ctx, req)
}

// Seizures

func (s *RecordsService) CreateSeizure(ctx context.Context, req *models.CreateSeizureRequest, actor *models.User, ipAddress string) (*models.Seizure, error) {
	if req.Item == "" || req.Reason == "" {
		return nil, fmt.Errorf("%w: item and motivo are required", ErrValidation)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	seizure := &models.Seizure{
		ID:          id,
		Item:        req.Item,
		Reason:      req.Reason,
		CitizenName: req.CitizenName,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateSeizure(ctx, seizure); err != nil {
		return nil, fmt.Errorf("failed to create seizure: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionSeizureCreate, "seized "+seizure.Item, ipAddress)
	metrics.RecordsCreatedTotal.WithLabelValues("seizure").Inc()
	s.notifier.Emit(notify.Event{
		Subject:   messaging.SubjectRecordsSeizureCreated,
		Action:    models.ActionSeizureCreate,
		ActorName: actor.Name,
		RecordID:  seizure.ID,
		Title:     "Apreensão registrada: " + seizure.Item,
	})
	return seizure, nil
}

func (s *RecordsService) GetSeizure(ctx context.Context, id string) (*models.Seizure, error) {
	return s.repo.GetSeizure(ctx, id)
}

func (s *RecordsService) ListSeizures(ctx context.Context, req models.ListRecordsRequest) ([]*models.Seizure, int, error) {
	return s.repo.ListSeizures(ctx, req)
}

// Assets

func (s *RecordsService) CreateAsset(ctx context.Context, req *models.CreateAssetRequest, actor *models.User, ipAddress string) (*models.Asset, error) {
	if req.Name == "" || req.Category == "" {
		return nil, fmt.Errorf("%w: nome and categoria are required", ErrValidation)
	}
	if req.Value < 0 {
		return nil, fmt.Errorf("%w: valor must not be negative", ErrValidation)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	asset := &models.Asset{
		ID:        id,
		Name:      req.Name,
		Category:  req.Category,
		Value:     req.Value,
		Status:    models.AssetStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionAssetCreate, "registered asset "+asset.Name, ipAddress)
	metrics.RecordsCreatedTotal.WithLabelValues("asset").Inc()
	return asset, nil
}

func (s *RecordsService) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	return s.repo.GetAsset(ctx, id)
}

func (s *RecordsService) ListAssets(ctx context.Context, req models.ListRecordsRequest) ([]*models.Asset, int, error) {
	return s.repo.ListAssets(ctx, req)
}

func (s *RecordsService) UpdateAsset(ctx context.Context, id string, req *models.UpdateAssetRequest, actor *models.User, ipAddress string) (*models.Asset, error) {
	asset, err := s.repo.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Value != nil {
		if *req.Value < 0 {
			return nil, fmt.Errorf("%w: valor must not be negative", ErrValidation)
		}
		asset.Value = *req.Value
	}
	if req.Status != nil {
		if *req.Status != models.AssetStatusActive && *req.Status != models.AssetStatusInactive {
			return nil, fmt.Errorf("%w: unknown asset status %q", ErrValidation, *req.Status)
		}
		asset.Status = *req.Status
	}
	asset.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionAssetUpdate, "updated asset "+asset.Name, ipAddress)
	return asset, nil
}

// News

func (s *RecordsService) CreateNews(ctx context.Context, req *models.CreateNewsRequest, actor *models.User, ipAddress string) (*models.NewsPost, error) {
	if req.Title == "" || req.Body == "" {
		return nil, fmt.Errorf("%w: titulo and corpo are required", ErrValidation)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	post := &models.NewsPost{
		ID:        id,
		Title:     req.Title,
		Body:      req.Body,
		Author:    actor.Name,
		Published: req.Published,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateNews(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create news post: %w", err)
	}

	s.auditLog.Record(ctx, actor.ID, models.ActionNewsCreate, "posted news "+post.Title, ipAddress)
	if post.Published {
		s.notifier.Emit(notify.Event{
			Subject:   messaging.SubjectRecordsNewsPublished,
			Action:    models.ActionNewsCreate,
			ActorName: actor.Name,
			RecordID:  post.ID,
			Title:     "Notícia publicada: " + post.Title,
		})
	}
	return post, nil
}

func (s *RecordsService) GetNews(ctx context.Context, id string) (*models.NewsPost, error) {
	return s.repo.GetNews(ctx, id)
}

func (s *RecordsService) ListNews(ctx context.Context, req models.ListRecordsRequest) ([]*models.NewsPost, int, error) {
	return s.repo.ListNews(ctx, req)
}

// publicNewsLimit caps the anonymous feed regardless of how much the
// department publishes.
const publicNewsLimit = 20

func (s *RecordsService) PublicNews(ctx context.Context) ([]*models.NewsPost, error) {
	posts, err := s.repo.ListPublishedNews(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) > publicNewsLimit {
		posts = posts[:publicNewsLimit]
	}
	return posts, nil
}

// Weapons-license requests

// SubmitLicenseRequest handles the public application form. There is
// no actor: the audit entry is anonymous.
func (s *RecordsService) SubmitLicenseRequest(ctx context.Context, req *models.CreateLicenseRequest, ipAddress string) (*models.LicenseRequest, error) {
	if req.CitizenName == "" || req.CitizenRG == "" || req.WeaponType == "" || req.Justification == "" {
		return nil, fmt.Errorf("%w: nome_cidadao, rg_cidadao, tipo_arma and justificativa are required", ErrValidation)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	lr := &models.LicenseRequest{
		ID:            id,
		CitizenName:   req.CitizenName,
		CitizenRG:     req.CitizenRG,
		Phone:         req.Phone,
		WeaponType:    req.WeaponType,
		Justification: req.Justification,
		Status:        models.LicenseStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.CreateLicenseRequest(ctx, lr); err != nil {
		return nil, fmt.Errorf("failed to create license request: %w", err)
	}

	s.auditLog.Record(ctx, "", models.ActionLicenseRequest, "license requested by "+lr.CitizenName, ipAddress)
	s.notifier.Emit(notify.Event{
		Subject:  messaging.SubjectRecordsLicenseRequested,
		Action:   models.ActionLicenseRequest,
		RecordID: lr.ID,
		Title:    "Novo pedido de porte: " + lr.CitizenName,
		Fields: map[string]string{
			"Arma": lr.WeaponType,
		},
	})
	return lr, nil
}

func (s *RecordsService) GetLicenseRequest(ctx context.Context, id string) (*models.LicenseRequest, error) {
	return s.repo.GetLicenseRequest(ctx, id)
}

func (s *RecordsService) ListLicenseRequests(ctx context.Context, req models.ListRecordsRequest) ([]*models.LicenseRequest, int, error) {
	return s.repo.ListLicenseRequests(ctx, req)
}

// ReviewLicenseRequest approves or denies a pending application.
// Reviewing a request that was already decided is a validation error.
func (s *RecordsService) ReviewLicenseRequest(ctx context.Context, id string, approve bool, actor *models.User, ipAddress string) (*models.LicenseRequest, error) {
	lr, err := s.repo.GetLicenseRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if lr.Status != models.LicenseStatusPending {
		return nil, fmt.Errorf("%w: request already reviewed", ErrValidation)
	}

	status := models.LicenseStatusDenied
	action := models.ActionLicenseDeny
	if approve {
		status = models.LicenseStatusApproved
		action = models.ActionLicenseApprove
	}

	now := time.Now().UTC()
	if err := s.repo.ReviewLicenseRequest(ctx, id, status, actor.ID, now); err != nil {
		return nil, fmt.Errorf("failed to review license request: %w", err)
	}

	lr.Status = status
	lr.ReviewedBy = &actor.ID
	lr.ReviewedAt = &now

	s.auditLog.Record(ctx, actor.ID, action, "license "+status+" for "+lr.CitizenName, ipAddress)
	s.notifier.Emit(notify.Event{
		Subject:   messaging.SubjectRecordsLicenseReviewed,
		Action:    action,
		ActorName: actor.Name,
		RecordID:  lr.ID,
		Title:     "Pedido de porte " + status + ": " + lr.CitizenName,
	})
	return lr, nil
}

// Recruitment quiz

// QuizQuestions returns the public question set without the correct
// answer indexes.
func (s *RecordsService) QuizQuestions() []*models.QuizQuestion {
	return quizQuestions()
}

// SubmitQuiz grades a public submission against the question set.
func (s *RecordsService) SubmitQuiz(ctx context.Context, req *models.SubmitQuizRequest, ipAddress string) (*models.QuizSubmission, error) {
	if req.CandidateName == "" {
		return nil, fmt.Errorf("%w: nome_candidato is required", ErrValidation)
	}

	questions := quizQuestions()
	if len(req.Answers) != len(questions) {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", ErrValidation, len(questions), len(req.Answers))
	}

	score := 0
	for i, q := range questions {
		if req.Answers[i] == q.Correct {
			score++
		}
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	sub := &models.QuizSubmission{
		ID:            id,
		CandidateName: req.CandidateName,
		Answers:       req.Answers,
		Score:         score,
		Total:         len(questions),
		Passed:        score*100 >= quizPassPercent*len(questions),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.CreateQuizSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to store quiz submission: %w", err)
	}

	s.auditLog.Record(ctx, "", models.ActionQuizSubmit, fmt.Sprintf("quiz by %s: %d/%d", sub.CandidateName, sub.Score, sub.Total), ipAddress)
	s.notifier.Emit(notify.Event{
		Subject:  messaging.SubjectRecordsQuizSubmitted,
		Action:   models.ActionQuizSubmit,
		RecordID: sub.ID,
		Title:    "Prova de recrutamento: " + sub.CandidateName,
		Fields: map[string]string{
			"Resultado": fmt.Sprintf("%d/%d", sub.Score, sub.Total),
		},
	})
	return sub, nil
}

func (s *RecordsService) ListQuizSubmissions(ctx context.Context, req models.ListRecordsRequest) ([]*models.QuizSubmission, int, error) {
	return s.repo.ListQuizSubmissions(ctx, req)
}

// Audit

func (s *RecordsService) ListAudit(ctx context.Context, req models.ListAuditRequest) ([]*models.AuditLog, int, error) {
	entries, total, err := s.repo.ListAudit(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	// Flag tampered rows instead of hiding them.
	for _, e := range entries {
		if !s.auditLog.Verify(e) {
			s.log.Error("audit entry failed signature verification",
				slog.String("entry_id", e.ID),
			)
		}
	}
	return entries, total, nil
}

func (s *RecordsService) Search(ctx context.Context, q string, limit int) ([]search.Hit, error) {
	return s.indexer.Search(ctx, q, limit)
}
