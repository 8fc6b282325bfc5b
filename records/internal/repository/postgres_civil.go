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
// TRAFFIC FINES
// =============================================================================

func (r *PostgresRepository) CreateFine(ctx context.Context, fine *models.Fine) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO fines (id, citizen_name, plate, violation, amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		fine.ID, fine.CitizenName, fine.Plate, fine.Violation,
		fine.Amount, fine.CreatedBy, fine.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create fine: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetFine(ctx context.Context, id string) (*models.Fine, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, citizen_name, plate, violation, amount, created_by, created_at
		FROM fines
		WHERE id = $1
	`

	var fine models.Fine
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&fine.ID, &fine.CitizenName, &fine.Plate, &fine.Violation,
		&fine.Amount, &fine.CreatedBy, &fine.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get fine: %w", err)
	}

	return &fine, nil
}

func (r *PostgresRepository) ListFines(ctx context.Context, req models.ListRecordsRequest) ([]*models.Fine, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM fines`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count fines: %w", err)
	}

	query := `
		SELECT id, citizen_name, plate, violation, amount, created_by, created_at
		FROM fines
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fines: %w", err)
	}
	defer rows.Close()

	var fines []*models.Fine
	for rows.Next() {
		var fine models.Fine
		err := rows.Scan(
			&fine.ID, &fine.CitizenName, &fine.Plate, &fine.Violation,
			&fine.Amount, &fine.CreatedBy, &fine.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan fine: %w", err)
		}
		fines = append(fines, &fine)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating fines: %w", err)
	}

	return fines, total, nil
}

// =============================================================================
// SEIZURES
// =============================================================================

func (r *PostgresRepository) CreateSeizure(ctx context.Context, seizure *models.Seizure) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO seizures (id, item, reason, citizen_name, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		seizure.ID, seizure.Item, seizure.Reason, seizure.CitizenName,
		seizure.CreatedBy, seizure.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create seizure: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetSeizure(ctx context.Context, id string) (*models.Seizure, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, item, reason, citizen_name, created_by, created_at
		FROM seizures
		WHERE id = $1
	`

	var seizure models.Seizure
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&seizure.ID, &seizure.Item, &seizure.Reason, &seizure.CitizenName,
		&seizure.CreatedBy, &seizure.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get seizure: %w", err)
	}

	return &seizure, nil
}

func (r *PostgresRepository) ListSeizures(ctx context.Context, req models.ListRecordsRequest) ([]*models.Seizure, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM seizures`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count seizures: %w", err)
	}

	query := `
		SELECT id, item, reason, citizen_name, created_by, created_at
		FROM seizures
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list seizures: %w", err)
	}
	defer rows.Close()

	var seizures []*models.Seizure
	for rows.Next() {
		var seizure models.Seizure
		err := rows.Scan(
			&seizure.ID, &seizure.Item, &seizure.Reason, &seizure.CitizenName,
			&seizure.CreatedBy, &seizure.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan seizure: %w", err)
		}
		seizures = append(seizures, &seizure)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating seizures: %w", err)
	}

	return seizures, total, nil
}

// =============================================================================
// ASSETS
// =============================================================================

func (r *PostgresRepository) CreateAsset(ctx context.Context, asset *models.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO assets (id, name, category, value, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		asset.ID, asset.Name, asset.Category, asset.Value,
		asset.Status, asset.CreatedAt, asset.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, name, category, value, status, created_at, updated_at
		FROM assets
		WHERE id = $1
	`

	var asset models.Asset
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&asset.ID, &asset.Name, &asset.Category, &asset.Value,
		&asset.Status, &asset.CreatedAt, &asset.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return &asset, nil
}

func (r *PostgresRepository) UpdateAsset(ctx context.Context, asset *models.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE assets
		SET name = $2, category = $3, value = $4, status = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		asset.ID, asset.Name, asset.Category, asset.Value, asset.Status, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) ListAssets(ctx context.Context, req models.ListRecordsRequest) ([]*models.Asset, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	where := ` WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM assets`+where, req.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	query := `
		SELECT id, name, category, value, status, created_at, updated_at
		FROM assets` + where + `
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, req.Status, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		var asset models.Asset
		err := rows.Scan(
			&asset.ID, &asset.Name, &asset.Category, &asset.Value,
			&asset.Status, &asset.CreatedAt, &asset.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, &asset)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, total, nil
}

// =============================================================================
// NEWS
// =============================================================================

func (r *PostgresRepository) CreateNews(ctx context.Context, post *models.NewsPost) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO news_posts (id, title, body, author, published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID, post.Title, post.Body, post.Author, post.Published, post.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create news post: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetNews(ctx context.Context, id string) (*models.NewsPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, title, body, author, published, created_at
		FROM news_posts
		WHERE id = $1
	`

	var post models.NewsPost
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Body, &post.Author, &post.Published, &post.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get news post: %w", err)
	}

	return &post, nil
}

func (r *PostgresRepository) ListNews(ctx context.Context, req models.ListRecordsRequest) ([]*models.NewsPost, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM news_posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count news posts: %w", err)
	}

	query := `
		SELECT id, title, body, author, published, created_at
		FROM news_posts
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list news posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.NewsPost
	for rows.Next() {
		var post models.NewsPost
		err := rows.Scan(
			&post.ID, &post.Title, &post.Body, &post.Author, &post.Published, &post.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan news post: %w", err)
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating news posts: %w", err)
	}

	return posts, total, nil
}

func (r *PostgresRepository) ListPublishedNews(ctx context.Context) ([]*models.NewsPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, title, body, author, published, created_at
		FROM news_posts
		WHERE published = TRUE
		ORDER BY id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list published news: %w", err)
	}
	defer rows.Close()

	var posts []*models.NewsPost
	for rows.Next() {
		var post models.NewsPost
		err := rows.Scan(
			&post.ID, &post.Title, &post.Body, &post.Author, &post.Published, &post.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news post: %w", err)
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating published news: %w", err)
	}

	return posts, nil
}

// =============================================================================
// WEAPONS-LICENSE REQUESTS
// =============================================================================

func (r *PostgresRepository) CreateLicenseRequest(ctx context.Context, lr *models.LicenseRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO license_requests (id, citizen_name, citizen_rg, phone, weapon_type, justification, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		lr.ID, lr.CitizenName, lr.CitizenRG, lr.Phone,
		lr.WeaponType, lr.Justification, lr.Status, lr.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create license request: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetLicenseRequest(ctx context.Context, id string) (*models.LicenseRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, citizen_name, citizen_rg, phone, weapon_type, justification, status, reviewed_by, reviewed_at, created_at
		FROM license_requests
		WHERE id = $1
	`

	var lr models.LicenseRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&lr.ID, &lr.CitizenName, &lr.CitizenRG, &lr.Phone,
		&lr.WeaponType, &lr.Justification, &lr.Status,
		&lr.ReviewedBy, &lr.ReviewedAt, &lr.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get license request: %w", err)
	}

	return &lr, nil
}

func (r *PostgresRepository) ListLicenseRequests(ctx context.Context, req models.ListRecordsRequest) ([]*models.LicenseRequest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	where := ` WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM license_requests`+where, req.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count license requests: %w", err)
	}

	query := `
		SELECT id, citizen_name, citizen_rg, phone, weapon_type, justification, status, reviewed_by, reviewed_at, created_at
		FROM license_requests` + where + `
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, req.Status, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list license requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.LicenseRequest
	for rows.Next() {
		var lr models.LicenseRequest
		err := rows.Scan(
			&lr.ID, &lr.CitizenName, &lr.CitizenRG, &lr.Phone,
			&lr.WeaponType, &lr.Justification, &lr.Status,
			&lr.ReviewedBy, &lr.ReviewedAt, &lr.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan license request: %w", err)
		}
		requests = append(requests, &lr)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating license requests: %w", err)
	}

	return requests, total, nil
}

func (r *PostgresRepository) ReviewLicenseRequest(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE license_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, status, reviewedBy, reviewedAt)
	if err != nil {
		return fmt.Errorf("failed to review license request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// =============================================================================
// QUIZ SUBMISSIONS
// =============================================================================

func (r *PostgresRepository) CreateQuizSubmission(ctx context.Context, sub *models.QuizSubmission) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO quiz_submissions (id, candidate_name, answers, score, total, passed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		sub.ID, sub.CandidateName, sub.Answers, sub.Score, sub.Total, sub.Passed, sub.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create quiz submission: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListQuizSubmissions(ctx context.Context, req models.ListRecordsRequest) ([]*models.QuizSubmission, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quiz_submissions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz submissions: %w", err)
	}

	query := `
		SELECT id, candidate_name, answers, score, total, passed, created_at
		FROM quiz_submissions
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quiz submissions: %w", err)
	}
	defer rows.Close()

	var subs []*models.QuizSubmission
	for rows.Next() {
		var sub models.QuizSubmission
		err := rows.Scan(
			&sub.ID, &sub.CandidateName, &sub.Answers, &sub.Score,
			&sub.Total, &sub.Passed, &sub.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan quiz submission: %w", err)
		}
		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating quiz submissions: %w", err)
	}

	return subs, total, nil
}
