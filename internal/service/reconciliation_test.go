package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lingvoclass/backoffice/internal/auth"
	"github.com/lingvoclass/backoffice/internal/config"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/mocks"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/service"
)

func nowForTest() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newReconciliationService(
	teacherRepo *mocks.MockTeacherRepositoryIface,
	profileRepo *mocks.MockProfileRepositoryIface,
	invitationRepo *mocks.MockInvitationRepositoryIface,
	roleRepo *mocks.MockRoleRepositoryIface,
) *service.ReconciliationService {
	return service.NewReconciliationService(
		teacherRepo,
		profileRepo,
		invitationRepo,
		roleRepo,
		auth.NewPasswordHasher(),
		nil,
		&config.Config{BaseURL: "http://localhost:8080"},
	)
}

func TestFindMatch(t *testing.T) {
	emailProfile := &model.Profile{ID: uuid.New(), Email: "anna@school.ru", Phone: "+79990001122"}
	phoneProfile := &model.Profile{ID: uuid.New(), Email: "boris@school.ru", Phone: "8 (912) 345-67-89"}
	candidates := []*model.Profile{emailProfile, phoneProfile}

	t.Run("email match is case-insensitive", func(t *testing.T) {
		teacher := &model.Teacher{Email: "ANNA@School.RU"}
		match := service.FindMatch(teacher, candidates)
		require.NotNil(t, match)
		assert.Equal(t, emailProfile.ID, match.Profile.ID)
		assert.Equal(t, service.MatchByEmail, match.Reason)
	})

	t.Run("phone match uses canonical form", func(t *testing.T) {
		teacher := &model.Teacher{Phone: "+7 912 345 6789"}
		match := service.FindMatch(teacher, candidates)
		require.NotNil(t, match)
		assert.Equal(t, phoneProfile.ID, match.Profile.ID)
		assert.Equal(t, service.MatchByPhone, match.Reason)
	})

	t.Run("email wins over phone", func(t *testing.T) {
		// The teacher's phone points at one profile, the email at another.
		teacher := &model.Teacher{Email: "anna@school.ru", Phone: "89123456789"}
		match := service.FindMatch(teacher, candidates)
		require.NotNil(t, match)
		assert.Equal(t, emailProfile.ID, match.Profile.ID)
		assert.Equal(t, service.MatchByEmail, match.Reason)
	})

	t.Run("no contact fields means no match", func(t *testing.T) {
		assert.Nil(t, service.FindMatch(&model.Teacher{FirstName: "Анна"}, candidates))
	})

	t.Run("deterministic over candidate order", func(t *testing.T) {
		twin := &model.Profile{ID: uuid.New(), Email: "anna@school.ru"}
		teacher := &model.Teacher{Email: "anna@school.ru"}

		match := service.FindMatch(teacher, []*model.Profile{emailProfile, twin})
		require.NotNil(t, match)
		assert.Equal(t, emailProfile.ID, match.Profile.ID, "first candidate in order wins")
	})
}

func TestApplyLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	teacherID := uuid.New()
	profileID := uuid.New()

	t.Run("links an unlinked teacher", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		teacherRepo.EXPECT().FindByID(gomock.Any(), teacherID).
			Return(&model.Teacher{ID: teacherID}, nil)
		profileRepo.EXPECT().FindByID(gomock.Any(), profileID).
			Return(&model.Profile{ID: profileID}, nil)
		teacherRepo.EXPECT().FindByProfileID(gomock.Any(), profileID).
			Return(nil, domain.ErrTeacherNotFound)
		teacherRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, teacher *model.Teacher) error {
				require.NotNil(t, teacher.ProfileID)
				assert.Equal(t, profileID, *teacher.ProfileID)
				return nil
			})

		svc := newReconciliationService(teacherRepo, profileRepo, nil, nil)
		assert.NoError(t, svc.ApplyLink(context.Background(), teacherID, profileID))
	})

	t.Run("re-applying the same link is a no-op", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)

		teacherRepo.EXPECT().FindByID(gomock.Any(), teacherID).
			Return(&model.Teacher{ID: teacherID, ProfileID: &profileID}, nil)

		svc := newReconciliationService(teacherRepo, nil, nil, nil)
		assert.NoError(t, svc.ApplyLink(context.Background(), teacherID, profileID))
	})

	t.Run("teacher already linked elsewhere", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)

		otherProfile := uuid.New()
		teacherRepo.EXPECT().FindByID(gomock.Any(), teacherID).
			Return(&model.Teacher{ID: teacherID, ProfileID: &otherProfile}, nil)

		svc := newReconciliationService(teacherRepo, nil, nil, nil)
		err := svc.ApplyLink(context.Background(), teacherID, profileID)
		assert.ErrorIs(t, err, domain.ErrProfileAlreadyClaimed)
	})

	t.Run("profile claimed by another teacher", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		teacherRepo.EXPECT().FindByID(gomock.Any(), teacherID).
			Return(&model.Teacher{ID: teacherID}, nil)
		profileRepo.EXPECT().FindByID(gomock.Any(), profileID).
			Return(&model.Profile{ID: profileID}, nil)
		teacherRepo.EXPECT().FindByProfileID(gomock.Any(), profileID).
			Return(&model.Teacher{ID: uuid.New(), ProfileID: &profileID}, nil)

		svc := newReconciliationService(teacherRepo, profileRepo, nil, nil)
		err := svc.ApplyLink(context.Background(), teacherID, profileID)
		assert.ErrorIs(t, err, domain.ErrProfileAlreadyClaimed)
	})

	t.Run("unknown teacher", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)

		teacherRepo.EXPECT().FindByID(gomock.Any(), teacherID).
			Return(nil, domain.ErrTeacherNotFound)

		svc := newReconciliationService(teacherRepo, nil, nil, nil)
		err := svc.ApplyLink(context.Background(), teacherID, profileID)
		assert.ErrorIs(t, err, domain.ErrTeacherNotFound)
	})
}

func TestCreateTeacherWithAutoLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	t.Run("links when a profile matches by email", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

		existing := &model.Profile{ID: uuid.New(), Email: "anna@school.ru"}
		profileRepo.EXPECT().FindActiveByOrganization(gomock.Any(), orgID).
			Return([]*model.Profile{existing}, nil)
		teacherRepo.EXPECT().FindByProfileID(gomock.Any(), existing.ID).
			Return(nil, domain.ErrTeacherNotFound)
		teacherRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		roleRepo.EXPECT().UpsertUserRole(gomock.Any(), existing.ID, model.RoleTeacher).Return(nil)

		svc := newReconciliationService(teacherRepo, profileRepo, nil, roleRepo)
		output, err := svc.CreateTeacherWithAutoLink(context.Background(), service.CreateTeacherInput{
			OrganizationID: orgID,
			FirstName:      "Анна",
			Email:          "Anna@school.ru",
		})

		require.NoError(t, err)
		assert.True(t, output.Linked)
		assert.Equal(t, service.MatchByEmail, output.Reason)
		require.NotNil(t, output.Teacher.ProfileID)
		assert.Equal(t, existing.ID, *output.Teacher.ProfileID)
	})

	t.Run("issues an invitation when nothing matches", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		invitationRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		profileRepo.EXPECT().FindActiveByOrganization(gomock.Any(), orgID).
			Return(nil, nil)
		teacherRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		var created *model.TeacherInvitation
		invitationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *model.TeacherInvitation) error {
				created = inv
				return nil
			})

		svc := newReconciliationService(teacherRepo, profileRepo, invitationRepo, nil)
		output, err := svc.CreateTeacherWithAutoLink(context.Background(), service.CreateTeacherInput{
			OrganizationID: orgID,
			FirstName:      "Борис",
			Email:          "boris@school.ru",
		})

		require.NoError(t, err)
		assert.False(t, output.Linked)
		assert.Nil(t, output.Teacher.ProfileID)
		require.NotNil(t, created)
		assert.NotEmpty(t, created.InviteToken)
		assert.Equal(t, "boris@school.ru", created.Email)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), created.ExpiresAt, time.Minute)
	})

	t.Run("claimed profile falls back to an invitation", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		invitationRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		// The matching profile already backs another teacher record.
		claimed := &model.Profile{ID: uuid.New(), Email: "anna@school.ru"}
		profileRepo.EXPECT().FindActiveByOrganization(gomock.Any(), orgID).
			Return([]*model.Profile{claimed}, nil)
		teacherRepo.EXPECT().FindByProfileID(gomock.Any(), claimed.ID).
			Return(&model.Teacher{ID: uuid.New(), ProfileID: &claimed.ID}, nil)
		teacherRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		invitationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		svc := newReconciliationService(teacherRepo, profileRepo, invitationRepo, nil)
		output, err := svc.CreateTeacherWithAutoLink(context.Background(), service.CreateTeacherInput{
			OrganizationID: orgID,
			FirstName:      "Анна",
			Email:          "anna@school.ru",
		})

		require.NoError(t, err)
		assert.False(t, output.Linked, "one profile backs at most one teacher")
		assert.Nil(t, output.Teacher.ProfileID)
	})

	t.Run("rejects a record without any contact field", func(t *testing.T) {
		svc := newReconciliationService(nil, nil, nil, nil)
		_, err := svc.CreateTeacherWithAutoLink(context.Background(), service.CreateTeacherInput{
			OrganizationID: orgID,
			FirstName:      "Анна",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCompleteInvitation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	teacherID := uuid.New()

	input := service.CompleteInvitationInput{
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
	}

	t.Run("creates and links a profile", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		invitationRepo := mocks.NewMockInvitationRepositoryIface(ctrl)
		roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)
		tx := mocks.NewMockTransaction(ctrl)

		invitation := &model.TeacherInvitation{
			ID:          uuid.New(),
			TeacherID:   teacherID,
			InviteToken: "token-1",
			Email:       "boris@school.ru",
			FirstName:   "Борис",
			ExpiresAt:   time.Now().Add(time.Hour),
		}

		invitationRepo.EXPECT().FindByToken(gomock.Any(), "token-1").Return(invitation, nil)
		teacherRepo.EXPECT().FindByID(gomock.Any(), teacherID).
			Return(&model.Teacher{ID: teacherID, OrganizationID: orgID}, nil)
		teacherRepo.EXPECT().Begin(gomock.Any()).Return(tx, nil)

		// The write set runs on tx-scoped repositories.
		profileRepo.EXPECT().WithTx(tx).Return(profileRepo)
		teacherRepo.EXPECT().WithTx(tx).Return(teacherRepo)
		roleRepo.EXPECT().WithTx(tx).Return(roleRepo)
		invitationRepo.EXPECT().WithTx(tx).Return(invitationRepo)

		profileRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, profile *model.Profile) error {
				profile.ID = uuid.New()
				assert.Equal(t, orgID, profile.OrganizationID)
				assert.Equal(t, "boris@school.ru", profile.Email)
				assert.NotEmpty(t, profile.PasswordHash)
				return nil
			})
		teacherRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, teacher *model.Teacher) error {
				assert.NotNil(t, teacher.ProfileID)
				return nil
			})
		roleRepo.EXPECT().UpsertUserRole(gomock.Any(), gomock.Any(), model.RoleTeacher).Return(nil)
		invitationRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *model.TeacherInvitation) error {
				assert.True(t, inv.Used())
				return nil
			})
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil) // deferred cleanup after commit

		svc := newReconciliationService(teacherRepo, profileRepo, invitationRepo, roleRepo)
		profileID, err := svc.CompleteInvitation(context.Background(), "token-1", input)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, profileID)
	})

	t.Run("replayed token fails", func(t *testing.T) {
		invitationRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		usedAt := nowForTest()
		invitationRepo.EXPECT().FindByToken(gomock.Any(), "token-2").
			Return(&model.TeacherInvitation{UsedAt: &usedAt}, nil)

		svc := newReconciliationService(nil, nil, invitationRepo, nil)
		_, err := svc.CompleteInvitation(context.Background(), "token-2", input)
		assert.ErrorIs(t, err, domain.ErrInvitationUsed)
	})

	t.Run("expired token maps to invalid token", func(t *testing.T) {
		invitationRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		invitationRepo.EXPECT().FindByToken(gomock.Any(), "token-old").
			Return(&model.TeacherInvitation{
				ID:        uuid.New(),
				TeacherID: teacherID,
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil)

		svc := newReconciliationService(nil, nil, invitationRepo, nil)
		_, err := svc.CompleteInvitation(context.Background(), "token-old", input)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("unknown token maps to invalid token", func(t *testing.T) {
		invitationRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		invitationRepo.EXPECT().FindByToken(gomock.Any(), "nope").
			Return(nil, domain.ErrInvitationNotFound)

		svc := newReconciliationService(nil, nil, invitationRepo, nil)
		_, err := svc.CompleteInvitation(context.Background(), "nope", input)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		svc := newReconciliationService(nil, nil, nil, nil)
		_, err := svc.CompleteInvitation(context.Background(), "", input)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("password mismatch", func(t *testing.T) {
		svc := newReconciliationService(nil, nil, nil, nil)
		_, err := svc.CompleteInvitation(context.Background(), "token-3", service.CompleteInvitationInput{
			Password:        "correct-horse",
			ConfirmPassword: "battery-staple",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRevokeInvitation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invitationID := uuid.New()

	t.Run("deletes a pending invitation", func(t *testing.T) {
		invitationRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		invitationRepo.EXPECT().FindByID(gomock.Any(), invitationID).
			Return(&model.TeacherInvitation{ID: invitationID}, nil)
		invitationRepo.EXPECT().Delete(gomock.Any(), invitationID).Return(nil)

		svc := newReconciliationService(nil, nil, invitationRepo, nil)
		assert.NoError(t, svc.RevokeInvitation(context.Background(), invitationID))
	})

	t.Run("refuses a consumed invitation", func(t *testing.T) {
		invitationRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		usedAt := nowForTest()
		invitationRepo.EXPECT().FindByID(gomock.Any(), invitationID).
			Return(&model.TeacherInvitation{ID: invitationID, UsedAt: &usedAt}, nil)

		svc := newReconciliationService(nil, nil, invitationRepo, nil)
		err := svc.RevokeInvitation(context.Background(), invitationID)
		assert.ErrorIs(t, err, domain.ErrInvitationUsed)
	})
}

func TestBulkLinkTeachers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	matchable := &model.Teacher{ID: uuid.New(), Email: "anna@school.ru"}
	unmatched := &model.Teacher{ID: uuid.New(), Email: "nobody@school.ru"}
	duplicate := &model.Teacher{ID: uuid.New(), Email: "vera@school.ru"}
	profile := &model.Profile{ID: uuid.New(), Email: "anna@school.ru"}
	claimedProfile := &model.Profile{ID: uuid.New(), Email: "vera@school.ru"}

	teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)
	profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
	roleRepo := mocks.NewMockRoleRepositoryIface(ctrl)

	teacherRepo.EXPECT().FindUnlinkedByOrganization(gomock.Any(), orgID).
		Return([]*model.Teacher{matchable, unmatched, duplicate}, nil)
	profileRepo.EXPECT().FindActiveByOrganization(gomock.Any(), orgID).
		Return([]*model.Profile{profile, claimedProfile}, nil)
	teacherRepo.EXPECT().FindByProfileID(gomock.Any(), profile.ID).
		Return(nil, domain.ErrTeacherNotFound)
	teacherRepo.EXPECT().Update(gomock.Any(), matchable).Return(nil)
	roleRepo.EXPECT().UpsertUserRole(gomock.Any(), profile.ID, model.RoleTeacher).Return(nil)

	// vera's profile already backs another teacher record.
	teacherRepo.EXPECT().FindByProfileID(gomock.Any(), claimedProfile.ID).
		Return(&model.Teacher{ID: uuid.New(), ProfileID: &claimedProfile.ID}, nil)

	svc := newReconciliationService(teacherRepo, profileRepo, nil, roleRepo)
	report, err := svc.BulkLinkTeachers(context.Background(), orgID)

	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Linked)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Items, 3)
	assert.True(t, report.Items[0].Linked)
	assert.False(t, report.Items[1].Linked)
	assert.Empty(t, report.Items[1].Error, "an unmatched teacher is not a failure")
	assert.False(t, report.Items[2].Linked)
	assert.Equal(t, domain.ErrProfileAlreadyClaimed.Error(), report.Items[2].Error)
}

func TestDeactivateTeacher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	teacherID := uuid.New()

	t.Run("deactivates an active teacher", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)

		teacherRepo.EXPECT().FindByID(gomock.Any(), teacherID).
			Return(&model.Teacher{ID: teacherID, IsActive: true}, nil)
		teacherRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, teacher *model.Teacher) error {
				assert.False(t, teacher.IsActive)
				return nil
			})

		svc := newReconciliationService(teacherRepo, nil, nil, nil)
		assert.NoError(t, svc.DeactivateTeacher(context.Background(), teacherID))
	})

	t.Run("already inactive is a no-op", func(t *testing.T) {
		teacherRepo := mocks.NewMockTeacherRepositoryIface(ctrl)

		teacherRepo.EXPECT().FindByID(gomock.Any(), teacherID).
			Return(&model.Teacher{ID: teacherID, IsActive: false}, nil)

		svc := newReconciliationService(teacherRepo, nil, nil, nil)
		assert.NoError(t, svc.DeactivateTeacher(context.Background(), teacherID))
	})
}
