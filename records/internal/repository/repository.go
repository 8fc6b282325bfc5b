package repository

import (
	"context"
	"errors"
	"time"

	"github.com/precinct-systems/precinct-stack/records/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrNotFound     = errors.New("record not found")
)

// Repository is the persistence boundary for the records service.
// List methods return the page plus the unfiltered total so handlers
// can build pagination metadata.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context, req models.ListRecordsRequest) ([]*models.User, int, error)
	CountUsers(ctx context.Context) (int, error)

	CreateArrest(ctx context.Context, arrest *models.Arrest) error
	GetArrest(ctx context.Context, id string) (*models.Arrest, error)
	ListArrests(ctx context.Context, req models.ListRecordsRequest) ([]*models.Arrest, int, error)

	CreateWanted(ctx context.Context, wanted *models.WantedPerson) error
	GetWanted(ctx context.Context, id string) (*models.WantedPerson, error)
	ListWanted(ctx context.Context, req models.ListRecordsRequest) ([]*models.WantedPerson, int, error)
	UpdateWantedStatus(ctx context.Context, id, status string) error
	ListPublicWanted(ctx context.Context) ([]*models.WantedPerson, error)

	CreateReport(ctx context.Context, report *models.IncidentReport) error
	GetReport(ctx context.Context, id string) (*models.IncidentReport, error)
	ListReports(ctx context.Context, req models.ListRecordsRequest) ([]*models.IncidentReport, int, error)
	UpdateReportStatus(ctx context.Context, id, status string) error

	CreateInvestigation(ctx context.Context, inv *models.Investigation) error
	GetInvestigation(ctx context.Context, id string) (*models.Investigation, error)
	ListInvestigations(ctx context.Context, req models.ListRecordsRequest) ([]*models.Investigation, int, error)
	FinalizeInvestigation(ctx context.Context, id, finalizedBy, dossierPath string, finalizedAt time.Time) error
	AddEvidence(ctx context.Context, ev *models.Evidence) error
	ListEvidence(ctx context.Context, investigationID string) ([]*models.Evidence, error)

	CreateFine(ctx context.Context, fine *models.Fine) error
	GetFine(ctx context.Context, id string) (*models.Fine, error)
	ListFines(ctx context.Context, req models.ListRecordsRequest) ([]*models.Fine, int, error)

	CreateSeizure(ctx context.Context, seizure *models.Seizure) error
	GetSeizure(ctx context.Context, id string) (*models.Seizure, error)
	ListSeizures(ctx context.Context, req models.ListRecordsRequest) ([]*models.Seizure, int, error)

	CreateAsset(ctx context.Context, asset *models.Asset) error
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	UpdateAsset(ctx context.Context, asset *models.Asset) error
	ListAssets(ctx context.Context, req models.ListRecordsRequest) ([]*models.Asset, int, error)

	CreateNews(ctx context.Context, post *models.NewsPost) error
	GetNews(ctx context.Context, id string) (*models.NewsPost, error)
	ListNews(ctx context.Context, req models.ListRecordsRequest) ([]*models.NewsPost, int, error)
	ListPublishedNews(ctx context.Context) ([]*models.NewsPost, error)

	CreateLicenseRequest(ctx context.Context, lr *models.LicenseRequest) error
	GetLicenseRequest(ctx context.Context, id string) (*models.LicenseRequest, error)
	ListLicenseRequests(ctx context.Context, req models.ListRecordsRequest) ([]*models.LicenseRequest, int, error)
	ReviewLicenseRequest(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time) error

	CreateQuizSubmission(ctx context.Context, sub *models.QuizSubmission) error
	ListQuizSubmissions(ctx context.Context, req models.ListRecordsRequest) ([]*models.QuizSubmission, int, error)

	AppendAudit(ctx context.Context, entry *models.AuditLog) error
	ListAudit(ctx context.Context, req models.ListAuditRequest) ([]*models.AuditLog, int, error)
}
