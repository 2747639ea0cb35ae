// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Profile-related errors
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Teacher-related errors
	ErrTeacherNotFound       = errors.New("teacher not found")
	ErrProfileAlreadyClaimed = errors.New("profile already linked to another teacher")

	// Invitation-related errors
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationUsed     = errors.New("invitation already used")
	ErrInvalidToken       = errors.New("invalid invitation token")

	// Role/permission-related errors
	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownPermission = errors.New("unknown permission key")

	// Family-graph-related errors
	ErrGroupNotFound   = errors.New("family group not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrGroupTooSmall   = errors.New("group has fewer than two students")
)
