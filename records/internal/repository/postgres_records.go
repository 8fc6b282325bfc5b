package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
)

// =============================================================================
// ARRESTS
// =============================================================================

func (r *PostgresRepository) CreateArrest(ctx context.Context, arrest *models.Arrest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO arrests (id, citizen_name, citizen_rg, charges, sentence_min, fine_amount, notes, mugshot_path, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		arrest.ID, arrest.CitizenName, arrest.CitizenRG, arrest.Charges,
		arrest.SentenceMin, arrest.FineAmount, arrest.Notes, arrest.MugshotPath,
		arrest.CreatedBy, arrest.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create arrest: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetArrest(ctx context.Context, id string) (*models.Arrest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, citizen_name, citizen_rg, charges, sentence_min, fine_amount, notes, mugshot_path, created_by, created_at
		FROM arrests
		WHERE id = $1
	`

	var arrest models.Arrest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&arrest.ID, &arrest.CitizenName, &arrest.CitizenRG, &arrest.Charges,
		&arrest.SentenceMin, &arrest.FineAmount, &arrest.Notes, &arrest.MugshotPath,
		&arrest.CreatedBy, &arrest.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get arrest: %w", err)
	}

	return &arrest, nil
}

func (r *PostgresRepository) ListArrests(ctx context.Context, req models.ListRecordsRequest) ([]*models.Arrest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM arrests`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count arrests: %w", err)
	}

	query := `
		SELECT id, citizen_name, citizen_rg, charges, sentence_min, fine_amount, notes, mugshot_path, created_by, created_at
		FROM arrests
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list arrests: %w", err)
	}
	defer rows.Close()

	var arrests []*models.Arrest
	for rows.Next() {
		var arrest models.Arrest
		err := rows.Scan(
			&arrest.ID, &arrest.CitizenName, &arrest.CitizenRG, &arrest.Charges,
			&arrest.SentenceMin, &arrest.FineAmount, &arrest.Notes, &arrest.MugshotPath,
			&arrest.CreatedBy, &arrest.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan arrest: %w", err)
		}
		arrests = append(arrests, &arrest)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating arrests: %w", err)
	}

	return arrests, total, nil
}

// =============================================================================
// WANTED PERSONS
// =============================================================================

func (r *PostgresRepository) CreateWanted(ctx context.Context, wanted *models.WantedPerson) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO wanted_persons (id, name, crimes, danger_level, bounty, photo_path, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		wanted.ID, wanted.Name, wanted.Crimes, wanted.DangerLevel,
		wanted.Bounty, wanted.PhotoPath, wanted.Status,
		wanted.CreatedBy, wanted.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create wanted person: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetWanted(ctx context.Context, id string) (*models.WantedPerson, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, name, crimes, danger_level, bounty, photo_path, status, created_by, created_at
		FROM wanted_persons
		WHERE id = $1
	`

	var wanted models.WantedPerson
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&wanted.ID, &wanted.Name, &wanted.Crimes, &wanted.DangerLevel,
		&wanted.Bounty, &wanted.PhotoPath, &wanted.Status,
		&wanted.CreatedBy, &wanted.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wanted person: %w", err)
	}

	return &wanted, nil
}

func (r *PostgresRepository) ListWanted(ctx context.Context, req models.ListRecordsRequest) ([]*models.WantedPerson, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	where := ` WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM wanted_persons`+where, req.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count wanted persons: %w", err)
	}

	query := `
		SELECT id, name, crimes, danger_level, bounty, photo_path, status, created_by, created_at
		FROM wanted_persons` + where + `
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, req.Status, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list wanted persons: %w", err)
	}
	defer rows.Close()

	var persons []*models.WantedPerson
	for rows.Next() {
		var wanted models.WantedPerson
		err := rows.Scan(
			&wanted.ID, &wanted.Name, &wanted.Crimes, &wanted.DangerLevel,
			&wanted.Bounty, &wanted.PhotoPath, &wanted.Status,
			&wanted.CreatedBy, &wanted.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan wanted person: %w", err)
		}
		persons = append(persons, &wanted)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating wanted persons: %w", err)
	}

	return persons, total, nil
}

func (r *PostgresRepository) UpdateWantedStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `UPDATE wanted_persons SET status = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update wanted status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListPublicWanted returns everyone not yet captured, most dangerous
// first. This is the ordering the public site shows.
func (r *PostgresRepository) ListPublicWanted(ctx context.Context) ([]*models.WantedPerson, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, name, crimes, danger_level, bounty, photo_path, status, created_by, created_at
		FROM wanted_persons
		WHERE status <> $1
		ORDER BY danger_level DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, models.WantedStatusCaptured)
	if err != nil {
		return nil, fmt.Errorf("failed to list public wanted: %w", err)
	}
	defer rows.Close()

	var persons []*models.WantedPerson
	for rows.Next() {
		var wanted models.WantedPerson
		err := rows.Scan(
			&wanted.ID, &wanted.Name, &wanted.Crimes, &wanted.DangerLevel,
			&wanted.Bounty, &wanted.PhotoPath, &wanted.Status,
			&wanted.CreatedBy, &wanted.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wanted person: %w", err)
		}
		persons = append(persons, &wanted)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating public wanted: %w", err)
	}

	return persons, nil
}

// =============================================================================
// INCIDENT REPORTS (B.O.)
// =============================================================================

func (r *PostgresRepository) CreateReport(ctx context.Context, report *models.IncidentReport) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO incident_reports (id, title, description, location, reporter_name, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		report.ID, report.Title, report.Description, report.Location,
		report.ReporterName, report.Status, report.CreatedBy, report.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create incident report: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetReport(ctx context.Context, id string) (*models.IncidentReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, title, description, location, reporter_name, status, created_by, created_at
		FROM incident_reports
		WHERE id = $1
	`

	var report models.IncidentReport
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.Title, &report.Description, &report.Location,
		&report.ReporterName, &report.Status, &report.CreatedBy, &report.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get incident report: %w", err)
	}

	return &report, nil
}

func (r *PostgresRepository) ListReports(ctx context.Context, req models.ListRecordsRequest) ([]*models.IncidentReport, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	where := ` WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM incident_reports`+where, req.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count incident reports: %w", err)
	}

	query := `
		SELECT id, title, description, location, reporter_name, status, created_by, created_at
		FROM incident_reports` + where + `
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, req.Status, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list incident reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.IncidentReport
	for rows.Next() {
		var report models.IncidentReport
		err := rows.Scan(
			&report.ID, &report.Title, &report.Description, &report.Location,
			&report.ReporterName, &report.Status, &report.CreatedBy, &report.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan incident report: %w", err)
		}
		reports = append(reports, &report)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating incident reports: %w", err)
	}

	return reports, total, nil
}

func (r *PostgresRepository) UpdateReportStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `UPDATE incident_reports SET status = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// =============================================================================
// INVESTIGATIONS + EVIDENCE
// =============================================================================

func (r *PostgresRepository) CreateInvestigation(ctx context.Context, inv *models.Investigation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO investigations (id, title, description, lead_officer, status, dossier_path, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		inv.ID, inv.Title, inv.Description, inv.LeadOfficer,
		inv.Status, inv.DossierPath, inv.CreatedBy, inv.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create investigation: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetInvestigation(ctx context.Context, id string) (*models.Investigation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, title, description, lead_officer, status, dossier_path, created_by, created_at, finalized_at, finalized_by
		FROM investigations
		WHERE id = $1
	`

	var inv models.Investigation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Title, &inv.Description, &inv.LeadOfficer,
		&inv.Status, &inv.DossierPath, &inv.CreatedBy, &inv.CreatedAt,
		&inv.FinalizedAt, &inv.FinalizedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get investigation: %w", err)
	}

	return &inv, nil
}

func (r *PostgresRepository) ListInvestigations(ctx context.Context, req models.ListRecordsRequest) ([]*models.Investigation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	where := ` WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM investigations`+where, req.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count investigations: %w", err)
	}

	query := `
		SELECT id, title, description, lead_officer, status, dossier_path, created_by, created_at, finalized_at, finalized_by
		FROM investigations` + where + `
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, req.Status, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list investigations: %w", err)
	}
	defer rows.Close()

	var invs []*models.Investigation
	for rows.Next() {
		var inv models.Investigation
		err := rows.Scan(
			&inv.ID, &inv.Title, &inv.Description, &inv.LeadOfficer,
			&inv.Status, &inv.DossierPath, &inv.CreatedBy, &inv.CreatedAt,
			&inv.FinalizedAt, &inv.FinalizedBy,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan investigation: %w", err)
		}
		invs = append(invs, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating investigations: %w", err)
	}

	return invs, total, nil
}

func (r *PostgresRepository) FinalizeInvestigation(ctx context.Context, id, finalizedBy, dossierPath string, finalizedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE investigations
		SET status = $2, dossier_path = $3, finalized_by = $4, finalized_at = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		id, models.InvestigationStatusFinalized, dossierPath, finalizedBy, finalizedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize investigation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) AddEvidence(ctx context.Context, ev *models.Evidence) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO evidence (id, investigation_id, description, photo_path, added_by, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		ev.ID, ev.InvestigationID, ev.Description, ev.PhotoPath, ev.AddedBy, ev.AddedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to add evidence: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListEvidence(ctx context.Context, investigationID string) ([]*models.Evidence, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, investigation_id, description, photo_path, added_by, added_at
		FROM evidence
		WHERE investigation_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, investigationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	defer rows.Close()

	var items []*models.Evidence
	for rows.Next() {
		var ev models.Evidence
		err := rows.Scan(
			&ev.ID, &ev.InvestigationID, &ev.Description, &ev.PhotoPath,
			&ev.AddedBy, &ev.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evidence: %w", err)
		}
		items = append(items, &ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evidence: %w", err)
	}

	return items, nil
}
