// Package notification fans new donations and leads out to the admin
// mailbox. Delivery is fire-and-forget: a failed send is logged and
// never surfaces to the request that triggered it.
package notification

import (
	"context"
	"time"

	"github.com/kolahope/kolahope/internal/config"
	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	leadsdomain "github.com/kolahope/kolahope/internal/leads/domain"
	obscontext "github.com/kolahope/kolahope/internal/observability/context"
	"github.com/kolahope/kolahope/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const sendTimeout = 15 * time.Second

type Params struct {
	fx.In

	Log      *zap.Logger
	Provider email.Provider
	Site     *config.SiteConfigHolder
}

// Dispatcher renders admin notification emails and delivers them in the
// background.
type Dispatcher struct {
	log      *zap.Logger
	provider email.Provider
	site     *config.SiteConfigHolder
}

func NewDispatcher(p Params) *Dispatcher {
	return &Dispatcher{
		log:      p.Log.Named("notification"),
		provider: p.Provider,
		site:     p.Site,
	}
}

var (
	_ donationdomain.Notifier = (*Dispatcher)(nil)
	_ leadsdomain.Notifier    = (*Dispatcher)(nil)
)

func (d *Dispatcher) DonationReceived(ctx context.Context, donation donationdomain.Donation) {
	site := d.site.Get()
	d.dispatch(ctx, "donation", buildDonationEmail(donation, site.Currency))
}

func (d *Dispatcher) ContactReceived(ctx context.Context, msg leadsdomain.ContactMessage) {
	d.dispatch(ctx, "contact", buildContactEmail(msg))
}

func (d *Dispatcher) VolunteerReceived(ctx context.Context, app leadsdomain.VolunteerApplication) {
	d.dispatch(ctx, "volunteer", buildVolunteerEmail(app))
}

func (d *Dispatcher) PartnerReceived(ctx context.Context, inquiry leadsdomain.PartnerInquiry) {
	d.dispatch(ctx, "partner", buildPartnerEmail(inquiry))
}

// dispatch delivers in a detached goroutine so the caller's request
// lifecycle never waits on the mail backend. Request metadata is
// carried over for log correlation only.
func (d *Dispatcher) dispatch(ctx context.Context, kind string, msg Email) {
	site := d.site.Get()
	if len(site.AdminEmails) == 0 {
		d.log.Debug("no admin emails configured, dropping notification",
			zap.String("kind", kind),
		)
		return
	}

	recipients := append([]string(nil), site.AdminEmails...)
	body := msg.HTML + footer(site.OrganizationName)

	requestID := obscontext.RequestIDFromContext(ctx)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		log := d.log.With(
			zap.String("kind", kind),
			zap.String("request_id", requestID),
		)

		if err := d.provider.Send(sendCtx, recipients, msg.Subject, body); err != nil {
			log.Warn("admin notification delivery failed", zap.Error(err))
			return
		}
		log.Info("admin notification sent", zap.Int("recipients", len(recipients)))
	}()
}
