package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
)

var (
	ErrRoleRequestNotFound    = errors.New("role change request not found")
	ErrRoleRequestUserInvalid = errors.New("role change request user conflict or invalid")
)

type RoleRequestRepository interface {
	Create(ctx context.Context, request *models.RoleChangeRequest) error
	GetByID(ctx context.Context, id string) (*models.RoleChangeRequest, error)
	List(ctx context.Context, status *models.RoleRequestStatus) ([]models.RoleChangeRequest, error)
	// UpdateStatus переводит заявку из pending в терминальный статус.
	// Заявка, уже покинувшая pending, не изменяется.
	UpdateStatus(ctx context.Context, id string, status models.RoleRequestStatus, reviewedBy string, reviewedAt time.Time) error
}

type postgresRoleRequestRepository struct {
	db *sql.DB
}

func NewPostgresRoleRequestRepository(db *sql.DB) RoleRequestRepository {
	return &postgresRoleRequestRepository{db: db}
}

func (r *postgresRoleRequestRepository) Create(ctx context.Context, request *models.RoleChangeRequest) error {
	query := `
		INSERT INTO role_change_requests
			(id, requester_id, target_user_id, current_role, requested_role, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		request.ID,
		request.RequesterID,
		request.TargetUserID,
		request.CurrentRole,
		request.RequestedRole,
		request.Reason,
		request.Status,
	).Scan(&request.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "role_change_requests_requester_id_fkey", "role_change_requests_target_user_id_fkey":
				return ErrRoleRequestUserInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresRoleRequestRepository) GetByID(ctx context.Context, id string) (*models.RoleChangeRequest, error) {
	query := `
		SELECT id, requester_id, target_user_id, current_role, requested_role,
		       reason, status, reviewed_by, reviewed_at, created_at
		FROM role_change_requests
		WHERE id = $1`

	request := &models.RoleChangeRequest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&request.ID,
		&request.RequesterID,
		&request.TargetUserID,
		&request.CurrentRole,
		&request.RequestedRole,
		&request.Reason,
		&request.Status,
		&request.ReviewedBy,
		&request.ReviewedAt,
		&request.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (r *postgresRoleRequestRepository) List(ctx context.Context, status *models.RoleRequestStatus) ([]models.RoleChangeRequest, error) {
	query := `
		SELECT id, requester_id, target_user_id, current_role, requested_role,
		       reason, status, reviewed_by, reviewed_at, created_at
		FROM role_change_requests`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.RoleChangeRequest, 0)
	for rows.Next() {
		var request models.RoleChangeRequest
		if err := rows.Scan(
			&request.ID,
			&request.RequesterID,
			&request.TargetUserID,
			&request.CurrentRole,
			&request.RequestedRole,
			&request.Reason,
			&request.Status,
			&request.ReviewedBy,
			&request.ReviewedAt,
			&request.CreatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *postgresRoleRequestRepository) UpdateStatus(ctx context.Context, id string, status models.RoleRequestStatus, reviewedBy string, reviewedAt time.Time) error {
	query := `
		UPDATE role_change_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3
		WHERE id = $4 AND status = $5`

	result, err := r.db.ExecContext(ctx, query, status, reviewedBy, reviewedAt, id, models.RoleRequestPending)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRoleRequestNotFound)
}
