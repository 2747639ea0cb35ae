package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/mocks"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/service"
)

func TestAssignRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profileID := uuid.New()

	t.Run("assigns a known role", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		profileRepo.EXPECT().FindByID(gomock.Any(), profileID).
			Return(&model.Profile{ID: profileID}, nil)
		roleRepo.EXPECT().UpsertUserRole(gomock.Any(), profileID, model.RoleTeacher).Return(nil)

		svc := service.NewPermissionService(roleRepo, profileRepo)
		assert.NoError(t, svc.AssignRole(context.Background(), profileID, model.RoleTeacher))
	})

	t.Run("rejects an unknown role label", func(t *testing.T) {
		svc := service.NewPermissionService(nil, nil)
		err := svc.AssignRole(context.Background(), profileID, model.Role("superuser"))
		assert.ErrorIs(t, err, domain.ErrUnknownRole)
	})

	t.Run("requires an existing profile", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		profileRepo.EXPECT().FindByID(gomock.Any(), profileID).
			Return(nil, domain.ErrProfileNotFound)

		svc := service.NewPermissionService(roleRepo, profileRepo)
		err := svc.AssignRole(context.Background(), profileID, model.RoleTeacher)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}

func TestRevokeRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profileID := uuid.New()

	t.Run("revoking an unheld role is a no-op", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		roleRepo.EXPECT().DeleteUserRole(gomock.Any(), profileID, model.RoleSales).Return(nil)

		svc := service.NewPermissionService(roleRepo, nil)
		assert.NoError(t, svc.RevokeRole(context.Background(), profileID, model.RoleSales))
	})

	t.Run("rejects an unknown role label", func(t *testing.T) {
		svc := service.NewPermissionService(nil, nil)
		err := svc.RevokeRole(context.Background(), profileID, model.Role(""))
		assert.ErrorIs(t, err, domain.ErrUnknownRole)
	})
}

func TestEffectivePermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profileID := uuid.New()
	readTeachers := model.NewPermissionKey(model.VerbRead, model.ResourceTeachers)
	updateTeachers := model.NewPermissionKey(model.VerbUpdate, model.ResourceTeachers)
	readLibrary := model.NewPermissionKey(model.VerbRead, model.ResourceLibrary)

	templates := []model.RolePermission{
		{Role: model.RoleBranchManager, Resource: model.ResourceTeachers, CanRead: true, CanUpdate: true},
		{Role: model.RoleTeacher, Resource: model.ResourceLibrary, CanRead: true},
	}

	t.Run("union of role templates", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		roleRepo.EXPECT().FindRolesByProfile(gomock.Any(), profileID).
			Return([]model.Role{model.RoleBranchManager, model.RoleTeacher}, nil)
		roleRepo.EXPECT().FindPermissionsByRoles(gomock.Any(), gomock.Any()).
			Return(templates, nil)
		roleRepo.EXPECT().FindOverridesByProfile(gomock.Any(), profileID).
			Return(nil, nil)

		svc := service.NewPermissionService(roleRepo, nil)
		effective, err := svc.EffectivePermissions(context.Background(), profileID)

		require.NoError(t, err)
		assert.True(t, effective[readTeachers])
		assert.True(t, effective[updateTeachers])
		assert.True(t, effective[readLibrary])
		assert.False(t, effective[model.NewPermissionKey(model.VerbDelete, model.ResourceTeachers)])
	})

	t.Run("revoking override wins over the template", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		roleRepo.EXPECT().FindRolesByProfile(gomock.Any(), profileID).
			Return([]model.Role{model.RoleBranchManager}, nil)
		roleRepo.EXPECT().FindPermissionsByRoles(gomock.Any(), gomock.Any()).
			Return(templates[:1], nil)
		roleRepo.EXPECT().FindOverridesByProfile(gomock.Any(), profileID).
			Return([]model.UserPermission{
				{ProfileID: profileID, PermissionKey: updateTeachers, IsGranted: false},
			}, nil)

		svc := service.NewPermissionService(roleRepo, nil)
		effective, err := svc.EffectivePermissions(context.Background(), profileID)

		require.NoError(t, err)
		assert.True(t, effective[readTeachers])
		assert.False(t, effective[updateTeachers])
	})

	t.Run("granting override adds beyond the roles", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		roleRepo.EXPECT().FindRolesByProfile(gomock.Any(), profileID).
			Return([]model.Role{model.RoleTeacher}, nil)
		roleRepo.EXPECT().FindPermissionsByRoles(gomock.Any(), gomock.Any()).
			Return(templates[1:], nil)
		roleRepo.EXPECT().FindOverridesByProfile(gomock.Any(), profileID).
			Return([]model.UserPermission{
				{ProfileID: profileID, PermissionKey: readTeachers, IsGranted: true},
			}, nil)

		svc := service.NewPermissionService(roleRepo, nil)
		effective, err := svc.EffectivePermissions(context.Background(), profileID)

		require.NoError(t, err)
		assert.True(t, effective[readLibrary])
		assert.True(t, effective[readTeachers])
	})

	t.Run("no roles and no overrides means nothing", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		roleRepo.EXPECT().FindRolesByProfile(gomock.Any(), profileID).Return(nil, nil)
		roleRepo.EXPECT().FindPermissionsByRoles(gomock.Any(), gomock.Any()).Return(nil, nil)
		roleRepo.EXPECT().FindOverridesByProfile(gomock.Any(), profileID).Return(nil, nil)

		svc := service.NewPermissionService(roleRepo, nil)
		effective, err := svc.EffectivePermissions(context.Background(), profileID)

		require.NoError(t, err)
		assert.Empty(t, effective)
	})
}

func TestHasPermission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profileID := uuid.New()

	t.Run("admin role bypasses resolution", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		roleRepo.EXPECT().FindRolesByProfile(gomock.Any(), profileID).
			Return([]model.Role{model.RoleAdmin}, nil)

		svc := service.NewPermissionService(roleRepo, nil)
		allowed, err := svc.HasPermission(context.Background(), profileID, model.VerbDelete, model.ResourcePricing)

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("wildcard override passes every check", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		roleRepo.EXPECT().FindRolesByProfile(gomock.Any(), profileID).
			Return([]model.Role{model.RoleSupport}, nil).Times(2)
		roleRepo.EXPECT().FindPermissionsByRoles(gomock.Any(), gomock.Any()).Return(nil, nil)
		roleRepo.EXPECT().FindOverridesByProfile(gomock.Any(), profileID).
			Return([]model.UserPermission{
				{ProfileID: profileID, PermissionKey: model.WildcardPermission, IsGranted: true},
			}, nil)

		svc := service.NewPermissionService(roleRepo, nil)
		allowed, err := svc.HasPermission(context.Background(), profileID, model.VerbDelete, model.ResourcePricing)

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("denied without a grant", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		roleRepo.EXPECT().FindRolesByProfile(gomock.Any(), profileID).
			Return(nil, nil).Times(2)
		roleRepo.EXPECT().FindPermissionsByRoles(gomock.Any(), gomock.Any()).Return(nil, nil)
		roleRepo.EXPECT().FindOverridesByProfile(gomock.Any(), profileID).Return(nil, nil)

		svc := service.NewPermissionService(roleRepo, nil)
		allowed, err := svc.HasPermission(context.Background(), profileID, model.VerbRead, model.ResourceTeachers)

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unknown key is rejected at the boundary", func(t *testing.T) {
		svc := service.NewPermissionService(nil, nil)
		_, err := svc.HasPermission(context.Background(), profileID, model.Verb("own"), model.ResourceTeachers)
		assert.ErrorIs(t, err, domain.ErrUnknownPermission)
	})
}

func TestOverrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profileID := uuid.New()
	key := model.NewPermissionKey(model.VerbUpdate, model.ResourceFamilies)

	t.Run("set override", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		profileRepo.EXPECT().FindByID(gomock.Any(), profileID).
			Return(&model.Profile{ID: profileID}, nil)
		roleRepo.EXPECT().UpsertOverride(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *model.UserPermission) error {
				assert.Equal(t, key, o.PermissionKey)
				assert.False(t, o.IsGranted)
				return nil
			})

		svc := service.NewPermissionService(roleRepo, profileRepo)
		assert.NoError(t, svc.SetOverride(context.Background(), profileID, key, false))
	})

	t.Run("clear override reverts to the role-derived value", func(t *testing.T) {
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		roleRepo.EXPECT().DeleteOverride(gomock.Any(), profileID, key).Return(nil)

		svc := service.NewPermissionService(roleRepo, nil)
		assert.NoError(t, svc.ClearOverride(context.Background(), profileID, key))
	})

	t.Run("free-form keys are rejected", func(t *testing.T) {
		svc := service.NewPermissionService(nil, nil)
		err := svc.SetOverride(context.Background(), profileID, model.PermissionKey("do:anything"), true)
		assert.ErrorIs(t, err, domain.ErrUnknownPermission)

		err = svc.ClearOverride(context.Background(), profileID, model.PermissionKey(""))
		assert.ErrorIs(t, err, domain.ErrUnknownPermission)
	})
}

func TestCanAccessAdminSection(t *testing.T) {
	tests := []struct {
		name    string
		roles   []model.Role
		section service.AdminSection
		want    bool
	}{
		{"admin sees everything", []model.Role{model.RoleAdmin}, service.SectionRoles, true},
		{"branch manager sees staff", []model.Role{model.RoleBranchManager}, service.SectionStaff, true},
		{"teacher sees library", []model.Role{model.RoleTeacher}, service.SectionLibrary, true},
		{"teacher does not see pricing", []model.Role{model.RoleTeacher}, service.SectionPricing, false},
		{"sales sees telephony", []model.Role{model.RoleSales}, service.SectionTelephony, true},
		{"support does not see staff", []model.Role{model.RoleSupport}, service.SectionStaff, false},
		{"roles section is admin-only", []model.Role{model.RoleBranchManager}, service.SectionRoles, false},
		{"no roles see nothing", nil, service.SectionLibrary, false},
		{"unknown sections are closed", []model.Role{model.RoleAdmin}, service.AdminSection("billing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.CanAccessAdminSection(tt.roles, tt.section))
		})
	}
}

func TestVisibleSections(t *testing.T) {
	admin := service.VisibleSections([]model.Role{model.RoleAdmin})
	assert.Len(t, admin, 7)

	teacher := service.VisibleSections([]model.Role{model.RoleTeacher})
	assert.Equal(t, []service.AdminSection{service.SectionLibrary}, teacher)

	assert.Empty(t, service.VisibleSections(nil))
}
