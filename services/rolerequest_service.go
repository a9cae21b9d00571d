package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
)

// RoleRequestService реализует заявочный процесс смены ролей:
// администратор создаёт заявку на пользователя-посетителя, разработчик
// утверждает или отклоняет её. Утверждение меняет роль цели.
type RoleRequestService interface {
	Create(ctx context.Context, requesterUID string, requesterRole models.UserRole, input CreateRoleRequestInput) (*models.RoleChangeRequest, error)
	Approve(ctx context.Context, reviewerUID string, reviewerRole models.UserRole, requestID string) (*models.RoleChangeRequest, error)
	Reject(ctx context.Context, reviewerUID string, reviewerRole models.UserRole, requestID string) (*models.RoleChangeRequest, error)
	List(ctx context.Context, status *models.RoleRequestStatus) ([]models.RoleChangeRequest, error)
}

type CreateRoleRequestInput struct {
	TargetUserID  string          `json:"target_user_id"`
	RequestedRole models.UserRole `json:"requested_role"`
	Reason        *string         `json:"reason,omitempty"`
}

type roleRequestService struct {
	requestRepo repositories.RoleRequestRepository
	userRepo    repositories.UserRepository
}

func NewRoleRequestService(requestRepo repositories.RoleRequestRepository, userRepo repositories.UserRepository) RoleRequestService {
	return &roleRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

func (s *roleRequestService) Create(ctx context.Context, requesterUID string, requesterRole models.UserRole, input CreateRoleRequestInput) (*models.RoleChangeRequest, error) {
	if requesterRole != models.RoleAdmin {
		return nil, ErrRequestCreateForbidden
	}
	if !models.IsValidRole(input.RequestedRole) {
		return nil, ErrRoleInvalid
	}

	target, err := s.userRepo.GetByUID(ctx, input.TargetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load target user: %w", err)
	}
	if target.Role != models.RoleVisitor {
		return nil, ErrRequestTargetNotVisitor
	}

	request := &models.RoleChangeRequest{
		ID:            uuid.NewString(),
		RequesterID:   requesterUID,
		TargetUserID:  target.UID,
		CurrentRole:   target.Role,
		RequestedRole: input.RequestedRole,
		Reason:        trimToNil(input.Reason),
		Status:        models.RoleRequestPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create role change request: %w", err)
	}
	return request, nil
}

func (s *roleRequestService) Approve(ctx context.Context, reviewerUID string, reviewerRole models.UserRole, requestID string) (*models.RoleChangeRequest, error) {
	request, err := s.review(ctx, reviewerUID, reviewerRole, requestID, models.RoleRequestApproved)
	if err != nil {
		return nil, err
	}

	// Смена роли цели — побочный эффект утверждения. Транзакционной
	// связки с заявкой нет: при сбое здесь заявка остаётся approved,
	// а роль применяется повторным прямым изменением.
	if err := s.userRepo.UpdateRole(ctx, request.TargetUserID, request.RequestedRole); err != nil {
		return nil, fmt.Errorf("request approved but failed to apply role change: %w", err)
	}
	return request, nil
}

func (s *roleRequestService) Reject(ctx context.Context, reviewerUID string, reviewerRole models.UserRole, requestID string) (*models.RoleChangeRequest, error) {
	return s.review(ctx, reviewerUID, reviewerRole, requestID, models.RoleRequestRejected)
}

func (s *roleRequestService) review(ctx context.Context, reviewerUID string, reviewerRole models.UserRole, requestID string, status models.RoleRequestStatus) (*models.RoleChangeRequest, error) {
	if reviewerRole != models.RoleDeveloper {
		return nil, ErrRequestReviewForbidden
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoleRequestNotFound) {
			return nil, ErrRoleRequestNotFound
		}
		return nil, fmt.Errorf("failed to load role change request: %w", err)
	}
	if request.Status != models.RoleRequestPending {
		return nil, ErrRequestAlreadyReviewed
	}

	reviewedAt := time.Now().UTC()
	if err := s.requestRepo.UpdateStatus(ctx, requestID, status, reviewerUID, reviewedAt); err != nil {
		if errors.Is(err, repositories.ErrRoleRequestNotFound) {
			// Заявку перевели в терминальный статус между чтением и записью.
			return nil, ErrRequestAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}

	request.Status = status
	request.ReviewedBy = &reviewerUID
	request.ReviewedAt = &reviewedAt
	return request, nil
}

func (s *roleRequestService) List(ctx context.Context, status *models.RoleRequestStatus) ([]models.RoleChangeRequest, error) {
	requests, err := s.requestRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list role change requests: %w", err)
	}
	return requests, nil
}
