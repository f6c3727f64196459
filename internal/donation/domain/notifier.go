package domain

import "context"

// Notifier receives the completed-donation side channel. Delivery is
// observational only and never affects the payment outcome.
type Notifier interface {
	DonationReceived(ctx context.Context, donation Donation)
}
