// internal/email/mailer/teacher_invitation.go
package mailer

import "github.com/lingvoclass/backoffice/internal/email"

// InvitationTemplateData contains data for the invitation email template
type InvitationTemplateData struct {
	FirstName      string
	InvitationLink string
}

// SendTeacherInvitationEmail sends the onboarding invitation to a teacher
func SendTeacherInvitationEmail(s *email.Service, to, firstName, invitationLink string) error {
	templateData := InvitationTemplateData{
		FirstName:      firstName,
		InvitationLink: invitationLink,
	}

	fromName := "LingvoClass"

	emailData := email.EmailData{
		To:           to,
		FromName:     fromName,
		Subject:      "Приглашение в LingvoClass",
		TemplateName: "teacher_invitation",
		TemplateData: templateData,
	}

	return s.SendEmail(emailData)
}
