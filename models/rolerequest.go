package models

import "time"

// RoleRequestStatus представляет статусы заявки на смену роли.
type RoleRequestStatus string

const (
	RoleRequestPending  RoleRequestStatus = "pending"
	RoleRequestApproved RoleRequestStatus = "approved"
	RoleRequestRejected RoleRequestStatus = "rejected"
)

// RoleChangeRequest — заявка администратора на смену роли пользователя.
// Создаётся со статусом pending, далее разработчик переводит её в
// approved либо rejected; оба статуса терминальные.
type RoleChangeRequest struct {
	ID            string            `json:"id" db:"id"`
	RequesterID   string            `json:"requester_id" db:"requester_id"`
	TargetUserID  string            `json:"target_user_id" db:"target_user_id"`
	CurrentRole   UserRole          `json:"current_role" db:"current_role"`
	RequestedRole UserRole          `json:"requested_role" db:"requested_role"`
	Reason        *string           `json:"reason,omitempty" db:"reason"`
	Status        RoleRequestStatus `json:"status" db:"status"`
	ReviewedBy    *string           `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt    *time.Time        `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
}
