package domain

import "context"

// Notifier mirrors new leads to the admin mailbox, fire-and-forget.
type Notifier interface {
	ContactReceived(ctx context.Context, msg ContactMessage)
	VolunteerReceived(ctx context.Context, app VolunteerApplication)
	PartnerReceived(ctx context.Context, inquiry PartnerInquiry)
}
