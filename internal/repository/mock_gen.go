// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./repository.go -destination=../mocks/mock_transaction.go -package=mocks Transaction
//go:generate mockgen -source=./profile.go -destination=../mocks/mock_profile_repository.go -package=mocks ProfileRepositoryIface
//go:generate mockgen -source=./teacher.go -destination=../mocks/mock_teacher_repository.go -package=mocks TeacherRepositoryIface
//go:generate mockgen -source=./role.go -destination=../mocks/mock_role_repository.go -package=mocks RoleRepositoryIface
//go:generate mockgen -source=./invitation.go -destination=../mocks/mock_invitation_repository.go -package=mocks InvitationRepositoryIface
//go:generate mockgen -source=./family.go -destination=../mocks/mock_family_repository.go -package=mocks FamilyRepositoryIface
