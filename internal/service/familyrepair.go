// internal/service/familyrepair.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lingvoclass/backoffice/internal/domain"
	"github.com/lingvoclass/backoffice/internal/metrics"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/repository"
)

// RepairConfig carries the tunable heuristics of the family-graph repair
// operations. Both values came out of imported-data cleanup practice rather
// than any hard rule, so they are configuration, not constants.
type RepairConfig struct {
	// MaxGuardianEdges is the plausible-family-size ceiling; a group with
	// more guardian edges than this is flagged for review.
	MaxGuardianEdges int
	// GroupNamePrefix is prepended to a student's first name when singleton
	// groups are created, and stripped when deriving a guardian name from a
	// group name.
	GroupNamePrefix string
}

// DefaultRepairConfig mirrors the thresholds the cleanup tooling has always
// used: at most 3 guardians per family, groups named "Семья <имя>".
func DefaultRepairConfig() RepairConfig {
	return RepairConfig{
		MaxGuardianEdges: 3,
		GroupNamePrefix:  "Семья ",
	}
}

// FamilyRepairService detects and repairs structural defects in the
// family-group graph: duplicate guardian edges, over-merged groups, and
// groups left without guardians. The bulk operations are deliberately
// non-transactional; each returns per-item counts instead of an
// all-or-nothing guarantee, and the surrounding UI warns the admin that
// they cannot be undone.
type FamilyRepairService struct {
	familyRepo repository.FamilyRepositoryIface
	cfg        RepairConfig
}

func NewFamilyRepairService(familyRepo repository.FamilyRepositoryIface, cfg RepairConfig) *FamilyRepairService {
	if cfg.MaxGuardianEdges <= 0 {
		cfg.MaxGuardianEdges = DefaultRepairConfig().MaxGuardianEdges
	}
	if cfg.GroupNamePrefix == "" {
		cfg.GroupNamePrefix = DefaultRepairConfig().GroupNamePrefix
	}
	return &FamilyRepairService{familyRepo: familyRepo, cfg: cfg}
}

// GroupIssue describes one defective family group.
type GroupIssue struct {
	GroupID        uuid.UUID `json:"group_id"`
	GroupName      string    `json:"group_name"`
	StudentCount   int       `json:"student_count"`
	EdgeCount      int       `json:"edge_count"`
	DuplicateEdges int       `json:"duplicate_edges"`
	TooManyEdges   bool      `json:"too_many_edges"`
}

// DetectIssues scans the organization's family groups and returns only the
// defective ones: duplicate (group, client) edges, or more guardian edges
// than the configured ceiling.
func (s *FamilyRepairService) DetectIssues(ctx context.Context, orgID uuid.UUID) ([]GroupIssue, error) {
	groups, err := s.familyRepo.FindGroupsByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	var issues []GroupIssue
	for _, group := range groups {
		members, err := s.familyRepo.FindMembersByGroup(ctx, group.ID)
		if err != nil {
			return nil, err
		}

		seen := make(map[uuid.UUID]int)
		duplicates := 0
		for _, m := range members {
			seen[m.ClientID]++
			if seen[m.ClientID] > 1 {
				duplicates++
			}
		}

		tooMany := len(members) > s.cfg.MaxGuardianEdges
		if duplicates == 0 && !tooMany {
			continue
		}

		students, err := s.familyRepo.FindStudentsByGroup(ctx, group.ID)
		if err != nil {
			return nil, err
		}

		issues = append(issues, GroupIssue{
			GroupID:        group.ID,
			GroupName:      group.Name,
			StudentCount:   len(students),
			EdgeCount:      len(members),
			DuplicateEdges: duplicates,
			TooManyEdges:   tooMany,
		})
	}

	return issues, nil
}

// DeduplicateGroup removes duplicate guardian edges within one group,
// keeping the first encountered edge per client. Returns the number of
// edges removed.
func (s *FamilyRepairService) DeduplicateGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	if _, err := s.familyRepo.FindGroupByID(ctx, groupID); err != nil {
		return 0, err
	}

	members, err := s.familyRepo.FindMembersByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}

	return s.removeDuplicates(ctx, members)
}

// DeduplicateAll applies the same rule across every (group, client) pair in
// the organization in one pass.
func (s *FamilyRepairService) DeduplicateAll(ctx context.Context, orgID uuid.UUID) (int, error) {
	members, err := s.familyRepo.FindMembersByOrganization(ctx, orgID)
	if err != nil {
		return 0, err
	}

	return s.removeDuplicates(ctx, members)
}

func (s *FamilyRepairService) removeDuplicates(ctx context.Context, members []*model.FamilyMember) (int, error) {
	type pair struct{ group, client uuid.UUID }

	seen := make(map[pair]bool)
	removed := 0
	for _, m := range members {
		key := pair{m.FamilyGroupID, m.ClientID}
		if !seen[key] {
			seen[key] = true
			continue
		}
		if err := s.familyRepo.DeleteMember(ctx, m.ID); err != nil {
			return removed, fmt.Errorf("removing duplicate edge: %w", err)
		}
		removed++
		metrics.FamilyEdgesRemoved.Inc()
	}
	return removed, nil
}

// SplitGroup breaks one over-merged group into singleton groups, one per
// student, named by the configured prefix plus the student's first name.
// Guardian edges are discarded on purpose and have to be restored
// afterwards. Edges go before the group so that an interrupted run leaves
// the group present and visibly empty rather than orphaning edges.
func (s *FamilyRepairService) SplitGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	group, err := s.familyRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return 0, err
	}

	students, err := s.familyRepo.FindStudentsByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}
	if len(students) < 2 {
		return 0, domain.ErrGroupTooSmall
	}

	created := 0
	for _, student := range students {
		newGroup := &model.FamilyGroup{
			OrganizationID: group.OrganizationID,
			Name:           s.cfg.GroupNamePrefix + student.FirstName,
		}
		if err := s.familyRepo.CreateGroup(ctx, newGroup); err != nil {
			return created, fmt.Errorf("creating singleton group: %w", err)
		}

		student.FamilyGroupID = &newGroup.ID
		if err := s.familyRepo.UpdateStudent(ctx, student); err != nil {
			return created, fmt.Errorf("reassigning student: %w", err)
		}
		created++
		metrics.FamilyGroupsCreated.Inc()
	}

	if err := s.familyRepo.DeleteMembersByGroup(ctx, groupID); err != nil {
		return created, fmt.Errorf("deleting guardian edges: %w", err)
	}
	if err := s.familyRepo.DeleteGroup(ctx, groupID); err != nil {
		return created, fmt.Errorf("deleting original group: %w", err)
	}

	return created, nil
}

// ReorganizeReport summarizes an organization-wide reorganization run.
type ReorganizeReport struct {
	TotalStudents int      `json:"total_students"`
	CreatedGroups int      `json:"created_groups"`
	Errors        []string `json:"errors,omitempty"`
}

// ReorganizeAll rebuilds the whole family graph from scratch: every edge
// and group is deleted, then one singleton group per student is created.
// Per-student failures are recorded and skipped, not rolled back.
func (s *FamilyRepairService) ReorganizeAll(ctx context.Context, orgID uuid.UUID) (*ReorganizeReport, error) {
	students, err := s.familyRepo.FindStudentsByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if err := s.familyRepo.DeleteMembersByOrganization(ctx, orgID); err != nil {
		return nil, fmt.Errorf("deleting guardian edges: %w", err)
	}
	if err := s.familyRepo.DeleteGroupsByOrganization(ctx, orgID); err != nil {
		return nil, fmt.Errorf("deleting family groups: %w", err)
	}

	report := &ReorganizeReport{TotalStudents: len(students)}
	for _, student := range students {
		group := &model.FamilyGroup{
			OrganizationID: orgID,
			Name:           s.cfg.GroupNamePrefix + student.FirstName,
		}
		if err := s.familyRepo.CreateGroup(ctx, group); err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("student %s: %v", student.ID, err))
			metrics.FamilyRepairErrors.Inc()
			continue
		}

		student.FamilyGroupID = &group.ID
		if err := s.familyRepo.UpdateStudent(ctx, student); err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("student %s: %v", student.ID, err))
			metrics.FamilyRepairErrors.Inc()
			continue
		}

		report.CreatedGroups++
		metrics.FamilyGroupsCreated.Inc()
	}

	slog.InfoContext(ctx, "family graph reorganized",
		"organizationID", orgID,
		"students", report.TotalStudents,
		"createdGroups", report.CreatedGroups,
		"errors", len(report.Errors))

	return report, nil
}

// RestoreReport summarizes a guardian-link restoration run. Every student
// the run looked at is counted exactly once, so
// Linked + AlreadyLinked + NotFound equals the number of students.
type RestoreReport struct {
	Linked        int `json:"linked"`
	AlreadyLinked int `json:"already_linked"`
	NotFound      int `json:"not_found"`
}

type restoreOutcome int

const (
	restoreLinked restoreOutcome = iota
	restoreAlreadyLinked
	restoreNotFound
)

// RestoreGuardianLinks walks students whose groups have no guardian edges,
// derives a candidate guardian name by stripping the group-name prefix, and
// links the first client whose name contains it (case-insensitive). This is
// best-effort heuristic matching; two guardians sharing a name substring
// can produce a false positive, which is why the derived edges are marked
// relationship "main" for later review rather than silently trusted.
// Students are counted by the outcome of their group, so group-mates of a
// restored group count as linked too.
func (s *FamilyRepairService) RestoreGuardianLinks(ctx context.Context, orgID uuid.UUID) (*RestoreReport, error) {
	students, err := s.familyRepo.FindStudentsByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	report := &RestoreReport{}
	outcomes := make(map[uuid.UUID]restoreOutcome)

	for _, student := range students {
		if student.FamilyGroupID == nil {
			report.NotFound++
			continue
		}
		groupID := *student.FamilyGroupID

		outcome, seen := outcomes[groupID]
		if !seen {
			outcome, err = s.restoreGroup(ctx, orgID, groupID)
			if err != nil {
				return report, err
			}
			outcomes[groupID] = outcome
		}

		switch outcome {
		case restoreLinked:
			report.Linked++
		case restoreAlreadyLinked:
			report.AlreadyLinked++
		default:
			report.NotFound++
		}
	}

	return report, nil
}

func (s *FamilyRepairService) restoreGroup(ctx context.Context, orgID, groupID uuid.UUID) (restoreOutcome, error) {
	members, err := s.familyRepo.FindMembersByGroup(ctx, groupID)
	if err != nil {
		return restoreNotFound, err
	}
	if len(members) > 0 {
		return restoreAlreadyLinked, nil
	}

	group, err := s.familyRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return restoreNotFound, err
	}

	if !strings.HasPrefix(group.Name, s.cfg.GroupNamePrefix) {
		return restoreNotFound, nil
	}
	guardianName := strings.TrimSpace(strings.TrimPrefix(group.Name, s.cfg.GroupNamePrefix))
	if guardianName == "" {
		return restoreNotFound, nil
	}

	candidates, err := s.familyRepo.SearchClientsByName(ctx, orgID, guardianName)
	if err != nil {
		return restoreNotFound, err
	}
	if len(candidates) == 0 {
		return restoreNotFound, nil
	}

	// First match wins.
	member := &model.FamilyMember{
		FamilyGroupID:    groupID,
		ClientID:         candidates[0].ID,
		RelationshipType: model.RelationshipMain,
		IsPrimaryContact: true,
	}
	if err := s.familyRepo.CreateMember(ctx, member); err != nil {
		return restoreNotFound, fmt.Errorf("linking guardian: %w", err)
	}

	return restoreLinked, nil
}
