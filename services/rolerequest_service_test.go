package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/services"
)

func newRoleRequestServiceForTest(t *testing.T) (services.RoleRequestService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	requestRepo := newFakeRoleRequestRepo()

	ctx := context.Background()
	require.NoError(t, userRepo.Create(ctx, &models.User{UID: "dev-1", Email: "dev@example.com", Username: "dev", Role: models.RoleDeveloper}))
	require.NoError(t, userRepo.Create(ctx, &models.User{UID: "admin-1", Email: "admin@example.com", Username: "admin", Role: models.RoleAdmin}))
	require.NoError(t, userRepo.Create(ctx, &models.User{UID: "visitor-1", Email: "visitor@example.com", Username: "visitor", Role: models.RoleVisitor}))
	require.NoError(t, userRepo.Create(ctx, &models.User{UID: "player-1", Email: "player@example.com", Username: "player", Role: models.RolePlayer}))

	return services.NewRoleRequestService(requestRepo, userRepo), userRepo
}

func TestRoleRequestServiceCreate(t *testing.T) {
	tests := []struct {
		name          string
		requesterRole models.UserRole
		input         services.CreateRoleRequestInput
		wantErr       error
	}{
		{
			name:          "admin requests promotion for visitor",
			requesterRole: models.RoleAdmin,
			input:         services.CreateRoleRequestInput{TargetUserID: "visitor-1", RequestedRole: models.RolePlayer},
		},
		{
			name:          "developer cannot create requests",
			requesterRole: models.RoleDeveloper,
			input:         services.CreateRoleRequestInput{TargetUserID: "visitor-1", RequestedRole: models.RolePlayer},
			wantErr:       services.ErrRequestCreateForbidden,
		},
		{
			name:          "player cannot create requests",
			requesterRole: models.RolePlayer,
			input:         services.CreateRoleRequestInput{TargetUserID: "visitor-1", RequestedRole: models.RolePlayer},
			wantErr:       services.ErrRequestCreateForbidden,
		},
		{
			name:          "unknown requested role",
			requesterRole: models.RoleAdmin,
			input:         services.CreateRoleRequestInput{TargetUserID: "visitor-1", RequestedRole: models.UserRole("superuser")},
			wantErr:       services.ErrRoleInvalid,
		},
		{
			name:          "target is not a visitor",
			requesterRole: models.RoleAdmin,
			input:         services.CreateRoleRequestInput{TargetUserID: "player-1", RequestedRole: models.RoleAdmin},
			wantErr:       services.ErrRequestTargetNotVisitor,
		},
		{
			name:          "target does not exist",
			requesterRole: models.RoleAdmin,
			input:         services.CreateRoleRequestInput{TargetUserID: "nobody", RequestedRole: models.RolePlayer},
			wantErr:       services.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newRoleRequestServiceForTest(t)

			request, err := svc.Create(context.Background(), "admin-1", tt.requesterRole, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.RoleRequestPending, request.Status)
			assert.Equal(t, models.RoleVisitor, request.CurrentRole)
			assert.Equal(t, "visitor-1", request.TargetUserID)
		})
	}
}

func TestRoleRequestServiceApproveChangesTargetRole(t *testing.T) {
	svc, userRepo := newRoleRequestServiceForTest(t)
	ctx := context.Background()

	request, err := svc.Create(ctx, "admin-1", models.RoleAdmin, services.CreateRoleRequestInput{
		TargetUserID:  "visitor-1",
		RequestedRole: models.RolePlayer,
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, "dev-1", models.RoleDeveloper, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRequestApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "dev-1", *approved.ReviewedBy)

	target, err := userRepo.GetByUID(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, models.RolePlayer, target.Role)
}

func TestRoleRequestServiceRejectKeepsTargetRole(t *testing.T) {
	svc, userRepo := newRoleRequestServiceForTest(t)
	ctx := context.Background()

	request, err := svc.Create(ctx, "admin-1", models.RoleAdmin, services.CreateRoleRequestInput{
		TargetUserID:  "visitor-1",
		RequestedRole: models.RolePlayer,
	})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, "dev-1", models.RoleDeveloper, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRequestRejected, rejected.Status)

	target, err := userRepo.GetByUID(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleVisitor, target.Role)
}

func TestRoleRequestServiceReviewRequiresDeveloper(t *testing.T) {
	svc, _ := newRoleRequestServiceForTest(t)
	ctx := context.Background()

	request, err := svc.Create(ctx, "admin-1", models.RoleAdmin, services.CreateRoleRequestInput{
		TargetUserID:  "visitor-1",
		RequestedRole: models.RolePlayer,
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, "admin-1", models.RoleAdmin, request.ID)
	assert.ErrorIs(t, err, services.ErrRequestReviewForbidden)

	_, err = svc.Reject(ctx, "player-1", models.RolePlayer, request.ID)
	assert.ErrorIs(t, err, services.ErrRequestReviewForbidden)
}

func TestRoleRequestServiceSecondReviewRejected(t *testing.T) {
	svc, _ := newRoleRequestServiceForTest(t)
	ctx := context.Background()

	request, err := svc.Create(ctx, "admin-1", models.RoleAdmin, services.CreateRoleRequestInput{
		TargetUserID:  "visitor-1",
		RequestedRole: models.RolePlayer,
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, "dev-1", models.RoleDeveloper, request.ID)
	require.NoError(t, err)

	// Заявка уже в терминальном статусе, повторный разбор запрещён.
	_, err = svc.Reject(ctx, "dev-1", models.RoleDeveloper, request.ID)
	assert.ErrorIs(t, err, services.ErrRequestAlreadyReviewed)
}
