package service_test

import (
	"context"
	"errors"
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

func newRepairService(familyRepo *mocks.MockFamilyRepositoryIface) *service.FamilyRepairService {
	return service.NewFamilyRepairService(familyRepo, service.DefaultRepairConfig())
}

func member(groupID, clientID uuid.UUID) *model.FamilyMember {
	return &model.FamilyMember{ID: uuid.New(), FamilyGroupID: groupID, ClientID: clientID}
}

func TestDetectIssues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	healthy := &model.FamilyGroup{ID: uuid.New(), Name: "Семья Анна"}
	duplicated := &model.FamilyGroup{ID: uuid.New(), Name: "Семья Борис"}
	overMerged := &model.FamilyGroup{ID: uuid.New(), Name: "Семья Вера"}

	clientID := uuid.New()

	familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
	familyRepo.EXPECT().FindGroupsByOrganization(gomock.Any(), orgID).
		Return([]*model.FamilyGroup{healthy, duplicated, overMerged}, nil)

	familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), healthy.ID).
		Return([]*model.FamilyMember{member(healthy.ID, uuid.New())}, nil)

	familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), duplicated.ID).
		Return([]*model.FamilyMember{
			member(duplicated.ID, clientID),
			member(duplicated.ID, clientID),
		}, nil)
	familyRepo.EXPECT().FindStudentsByGroup(gomock.Any(), duplicated.ID).
		Return([]*model.Student{{ID: uuid.New()}}, nil)

	// Four distinct guardians exceeds the default ceiling of three.
	familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), overMerged.ID).
		Return([]*model.FamilyMember{
			member(overMerged.ID, uuid.New()),
			member(overMerged.ID, uuid.New()),
			member(overMerged.ID, uuid.New()),
			member(overMerged.ID, uuid.New()),
		}, nil)
	familyRepo.EXPECT().FindStudentsByGroup(gomock.Any(), overMerged.ID).
		Return([]*model.Student{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := newRepairService(familyRepo)
	issues, err := svc.DetectIssues(context.Background(), orgID)

	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, duplicated.ID, issues[0].GroupID)
	assert.Equal(t, 1, issues[0].DuplicateEdges)
	assert.False(t, issues[0].TooManyEdges)

	assert.Equal(t, overMerged.ID, issues[1].GroupID)
	assert.Equal(t, 0, issues[1].DuplicateEdges)
	assert.True(t, issues[1].TooManyEdges)
	assert.Equal(t, 4, issues[1].EdgeCount)
}

func TestDeduplicateGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupID := uuid.New()
	clientA := uuid.New()
	clientB := uuid.New()

	t.Run("first edge per client survives", func(t *testing.T) {
		first := member(groupID, clientA)
		dupe1 := member(groupID, clientA)
		dupe2 := member(groupID, clientA)
		other := member(groupID, clientB)

		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindGroupByID(gomock.Any(), groupID).
			Return(&model.FamilyGroup{ID: groupID}, nil)
		familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), groupID).
			Return([]*model.FamilyMember{first, dupe1, other, dupe2}, nil)
		familyRepo.EXPECT().DeleteMember(gomock.Any(), dupe1.ID).Return(nil)
		familyRepo.EXPECT().DeleteMember(gomock.Any(), dupe2.ID).Return(nil)

		svc := newRepairService(familyRepo)
		removed, err := svc.DeduplicateGroup(context.Background(), groupID)

		require.NoError(t, err)
		assert.Equal(t, 2, removed)
	})

	t.Run("clean group removes nothing", func(t *testing.T) {
		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindGroupByID(gomock.Any(), groupID).
			Return(&model.FamilyGroup{ID: groupID}, nil)
		familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), groupID).
			Return([]*model.FamilyMember{member(groupID, clientA), member(groupID, clientB)}, nil)

		svc := newRepairService(familyRepo)
		removed, err := svc.DeduplicateGroup(context.Background(), groupID)

		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})

	t.Run("unknown group", func(t *testing.T) {
		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindGroupByID(gomock.Any(), groupID).
			Return(nil, domain.ErrGroupNotFound)

		svc := newRepairService(familyRepo)
		_, err := svc.DeduplicateGroup(context.Background(), groupID)
		assert.ErrorIs(t, err, domain.ErrGroupNotFound)
	})
}

func TestDeduplicateAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	groupA := uuid.New()
	groupB := uuid.New()
	sharedClient := uuid.New()

	// The same client appearing in two different groups is legal; only the
	// (group, client) pair is deduplicated.
	edgeA := member(groupA, sharedClient)
	edgeB := member(groupB, sharedClient)
	dupeB := member(groupB, sharedClient)

	familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
	familyRepo.EXPECT().FindMembersByOrganization(gomock.Any(), orgID).
		Return([]*model.FamilyMember{edgeA, edgeB, dupeB}, nil)
	familyRepo.EXPECT().DeleteMember(gomock.Any(), dupeB.ID).Return(nil)

	svc := newRepairService(familyRepo)
	removed, err := svc.DeduplicateAll(context.Background(), orgID)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestSplitGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	groupID := uuid.New()
	group := &model.FamilyGroup{ID: groupID, OrganizationID: orgID, Name: "Семья Анна"}

	t.Run("one singleton group per student, edges and group removed", func(t *testing.T) {
		students := []*model.Student{
			{ID: uuid.New(), OrganizationID: orgID, FamilyGroupID: &groupID, FirstName: "Анна"},
			{ID: uuid.New(), OrganizationID: orgID, FamilyGroupID: &groupID, FirstName: "Борис"},
			{ID: uuid.New(), OrganizationID: orgID, FamilyGroupID: &groupID, FirstName: "Вера"},
		}

		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindGroupByID(gomock.Any(), groupID).Return(group, nil)
		familyRepo.EXPECT().FindStudentsByGroup(gomock.Any(), groupID).Return(students, nil)

		var createdNames []string
		familyRepo.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).Times(3).
			DoAndReturn(func(_ context.Context, g *model.FamilyGroup) error {
				g.ID = uuid.New()
				assert.Equal(t, orgID, g.OrganizationID)
				createdNames = append(createdNames, g.Name)
				return nil
			})

		reassigned := make(map[uuid.UUID]uuid.UUID)
		familyRepo.EXPECT().UpdateStudent(gomock.Any(), gomock.Any()).Times(3).
			DoAndReturn(func(_ context.Context, s *model.Student) error {
				require.NotNil(t, s.FamilyGroupID)
				reassigned[s.ID] = *s.FamilyGroupID
				return nil
			})

		gomock.InOrder(
			familyRepo.EXPECT().DeleteMembersByGroup(gomock.Any(), groupID).Return(nil),
			familyRepo.EXPECT().DeleteGroup(gomock.Any(), groupID).Return(nil),
		)

		svc := newRepairService(familyRepo)
		created, err := svc.SplitGroup(context.Background(), groupID)

		require.NoError(t, err)
		assert.Equal(t, 3, created)
		assert.Equal(t, []string{"Семья Анна", "Семья Борис", "Семья Вера"}, createdNames)

		// Every student lands in its own group.
		seen := make(map[uuid.UUID]bool)
		for _, newGroup := range reassigned {
			assert.False(t, seen[newGroup], "two students share a singleton group")
			seen[newGroup] = true
			assert.NotEqual(t, groupID, newGroup)
		}
	})

	t.Run("refuses a group with fewer than two students", func(t *testing.T) {
		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindGroupByID(gomock.Any(), groupID).Return(group, nil)
		familyRepo.EXPECT().FindStudentsByGroup(gomock.Any(), groupID).
			Return([]*model.Student{{ID: uuid.New()}}, nil)

		svc := newRepairService(familyRepo)
		_, err := svc.SplitGroup(context.Background(), groupID)
		assert.ErrorIs(t, err, domain.ErrGroupTooSmall)
	})
}

func TestReorganizeAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	students := []*model.Student{
		{ID: uuid.New(), OrganizationID: orgID, FirstName: "Анна"},
		{ID: uuid.New(), OrganizationID: orgID, FirstName: "Борис"},
		{ID: uuid.New(), OrganizationID: orgID, FirstName: "Вера"},
	}

	t.Run("rebuilds the graph and counts per-student failures", func(t *testing.T) {
		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindStudentsByOrganization(gomock.Any(), orgID).Return(students, nil)

		gomock.InOrder(
			familyRepo.EXPECT().DeleteMembersByOrganization(gomock.Any(), orgID).Return(nil),
			familyRepo.EXPECT().DeleteGroupsByOrganization(gomock.Any(), orgID).Return(nil),
		)

		calls := 0
		familyRepo.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).Times(3).
			DoAndReturn(func(_ context.Context, g *model.FamilyGroup) error {
				calls++
				if calls == 2 {
					return errors.New("insert failed")
				}
				g.ID = uuid.New()
				return nil
			})
		familyRepo.EXPECT().UpdateStudent(gomock.Any(), gomock.Any()).Times(2).Return(nil)

		svc := newRepairService(familyRepo)
		report, err := svc.ReorganizeAll(context.Background(), orgID)

		require.NoError(t, err)
		assert.Equal(t, 3, report.TotalStudents)
		assert.Equal(t, 2, report.CreatedGroups)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], students[1].ID.String())
	})

	t.Run("aborts when the graph wipe fails", func(t *testing.T) {
		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindStudentsByOrganization(gomock.Any(), orgID).Return(students, nil)
		familyRepo.EXPECT().DeleteMembersByOrganization(gomock.Any(), orgID).
			Return(errors.New("locked"))

		svc := newRepairService(familyRepo)
		_, err := svc.ReorganizeAll(context.Background(), orgID)
		assert.Error(t, err)
	})
}

func TestRestoreGuardianLinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	t.Run("links the first matching client", func(t *testing.T) {
		groupID := uuid.New()
		student := &model.Student{ID: uuid.New(), FamilyGroupID: &groupID, FirstName: "Анна"}
		guardian := &model.Client{ID: uuid.New(), Name: "Петрова Анна"}
		other := &model.Client{ID: uuid.New(), Name: "Сидорова Анна"}

		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindStudentsByOrganization(gomock.Any(), orgID).
			Return([]*model.Student{student}, nil)
		familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), groupID).Return(nil, nil)
		familyRepo.EXPECT().FindGroupByID(gomock.Any(), groupID).
			Return(&model.FamilyGroup{ID: groupID, Name: "Семья Анна"}, nil)
		familyRepo.EXPECT().SearchClientsByName(gomock.Any(), orgID, "Анна").
			Return([]*model.Client{guardian, other}, nil)
		familyRepo.EXPECT().CreateMember(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.FamilyMember) error {
				assert.Equal(t, groupID, m.FamilyGroupID)
				assert.Equal(t, guardian.ID, m.ClientID)
				assert.Equal(t, model.RelationshipMain, m.RelationshipType)
				assert.True(t, m.IsPrimaryContact)
				return nil
			})

		svc := newRepairService(familyRepo)
		report, err := svc.RestoreGuardianLinks(context.Background(), orgID)

		require.NoError(t, err)
		assert.Equal(t, 1, report.Linked)
		assert.Equal(t, 0, report.AlreadyLinked)
		assert.Equal(t, 0, report.NotFound)
	})

	t.Run("counts students in groups that already have guardians", func(t *testing.T) {
		groupID := uuid.New()
		student := &model.Student{ID: uuid.New(), FamilyGroupID: &groupID, FirstName: "Анна"}

		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindStudentsByOrganization(gomock.Any(), orgID).
			Return([]*model.Student{student}, nil)
		familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), groupID).
			Return([]*model.FamilyMember{member(groupID, uuid.New())}, nil)

		svc := newRepairService(familyRepo)
		report, err := svc.RestoreGuardianLinks(context.Background(), orgID)

		require.NoError(t, err)
		assert.Equal(t, 0, report.Linked)
		assert.Equal(t, 1, report.AlreadyLinked)
		assert.Equal(t, 0, report.NotFound)
	})

	t.Run("group-mates of a restored group count as linked", func(t *testing.T) {
		groupID := uuid.New()
		first := &model.Student{ID: uuid.New(), FamilyGroupID: &groupID, FirstName: "Анна"}
		sibling := &model.Student{ID: uuid.New(), FamilyGroupID: &groupID, FirstName: "Борис"}
		guardian := &model.Client{ID: uuid.New(), Name: "Петрова Анна"}

		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindStudentsByOrganization(gomock.Any(), orgID).
			Return([]*model.Student{first, sibling}, nil)
		// The group is looked up and repaired once, not per student.
		familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), groupID).Return(nil, nil)
		familyRepo.EXPECT().FindGroupByID(gomock.Any(), groupID).
			Return(&model.FamilyGroup{ID: groupID, Name: "Семья Анна"}, nil)
		familyRepo.EXPECT().SearchClientsByName(gomock.Any(), orgID, "Анна").
			Return([]*model.Client{guardian}, nil)
		familyRepo.EXPECT().CreateMember(gomock.Any(), gomock.Any()).Return(nil)

		svc := newRepairService(familyRepo)
		report, err := svc.RestoreGuardianLinks(context.Background(), orgID)

		require.NoError(t, err)
		assert.Equal(t, 2, report.Linked, "both siblings share the restored link")
		assert.Equal(t, 0, report.AlreadyLinked)
		assert.Equal(t, 0, report.NotFound)
	})

	t.Run("counts groupless students and failed lookups", func(t *testing.T) {
		groupID := uuid.New()
		groupless := &model.Student{ID: uuid.New(), FirstName: "Борис"}
		unmatched := &model.Student{ID: uuid.New(), FamilyGroupID: &groupID, FirstName: "Вера"}

		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindStudentsByOrganization(gomock.Any(), orgID).
			Return([]*model.Student{groupless, unmatched}, nil)
		familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), groupID).Return(nil, nil)
		familyRepo.EXPECT().FindGroupByID(gomock.Any(), groupID).
			Return(&model.FamilyGroup{ID: groupID, Name: "Семья Вера"}, nil)
		familyRepo.EXPECT().SearchClientsByName(gomock.Any(), orgID, "Вера").
			Return(nil, nil)

		svc := newRepairService(familyRepo)
		report, err := svc.RestoreGuardianLinks(context.Background(), orgID)

		require.NoError(t, err)
		assert.Equal(t, 0, report.Linked)
		assert.Equal(t, 2, report.NotFound)
	})

	t.Run("groups without the expected name prefix are skipped", func(t *testing.T) {
		groupID := uuid.New()
		student := &model.Student{ID: uuid.New(), FamilyGroupID: &groupID, FirstName: "Анна"}

		familyRepo := mocks.NewMockFamilyRepositoryIface(ctrl)
		familyRepo.EXPECT().FindStudentsByOrganization(gomock.Any(), orgID).
			Return([]*model.Student{student}, nil)
		familyRepo.EXPECT().FindMembersByGroup(gomock.Any(), groupID).Return(nil, nil)
		familyRepo.EXPECT().FindGroupByID(gomock.Any(), groupID).
			Return(&model.FamilyGroup{ID: groupID, Name: "Импорт 2023"}, nil)

		svc := newRepairService(familyRepo)
		report, err := svc.RestoreGuardianLinks(context.Background(), orgID)

		require.NoError(t, err)
		assert.Equal(t, 0, report.Linked)
		assert.Equal(t, 1, report.NotFound)
	})
}
