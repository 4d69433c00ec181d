// Package notification subscribes to domain events and enqueues the emails
// they call for. It inverts the dependency: the leads module never talks to
// the mail queue directly.
package notification

import (
	"context"

	"solaris_crm_backend/internal/events"
	"solaris_crm_backend/internal/scheduler"
	"solaris_crm_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Module wires the event bus to the email queue.
type Module struct {
	queue scheduler.EmailScheduler
	log   *logger.Logger
}

// NewModule creates the notification module. A nil queue (redis not
// configured) disables dispatch; events are logged and dropped.
func NewModule(queue scheduler.EmailScheduler, log *logger.Logger) *Module {
	return &Module{queue: queue, log: log}
}

// Subscribe registers the module's event handlers on the bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(m.handleLeadCreated))
}

// handleLeadCreated enqueues the welcome email and the sales alert. The two
// are enqueued independently so a failure on one does not block the other,
// and failures only ever reach the logs.
func (m *Module) handleLeadCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadCreated)
	if !ok {
		return nil
	}

	if m.queue == nil {
		m.log.Warn("email queue not configured; skipping lead notifications", "leadId", e.LeadID)
		return nil
	}

	// The publisher's request context is canceled once the response is
	// written; enqueueing must outlive it.
	ctx = context.WithoutCancel(ctx)

	var group errgroup.Group
	group.Go(func() error {
		err := m.queue.EnqueueLeadWelcome(ctx, scheduler.LeadWelcomePayload{
			LeadID:          e.LeadID.String(),
			Email:           e.Email,
			FirstName:       e.FirstName,
			PropertyAddress: e.PropertyAddress,
		})
		if err != nil {
			m.log.EmailEvent("lead_welcome.enqueue", e.Email, false, err.Error())
		}
		return nil
	})
	group.Go(func() error {
		err := m.queue.EnqueueSalesAlert(ctx, scheduler.SalesAlertPayload{
			LeadID:          e.LeadID.String(),
			FullName:        e.FirstName + " " + e.LastName,
			Email:           e.Email,
			Phone:           e.Phone,
			PropertyAddress: e.PropertyAddress,
		})
		if err != nil {
			m.log.EmailEvent("sales_alert.enqueue", e.Email, false, err.Error())
		}
		return nil
	})

	// Enqueue failures are swallowed; lead creation already succeeded.
	_ = group.Wait()
	return nil
}
