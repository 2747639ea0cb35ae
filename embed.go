package backoffice

import "embed"

// EmailFS holds the transactional email templates shipped with the binary.
//
//go:embed templates/emails
var EmailFS embed.FS
