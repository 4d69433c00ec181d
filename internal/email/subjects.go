package email

const (
	subjectLeadWelcome   = "Your Solar Quote Request - We're on it! ☀️"
	subjectSalesAlertFmt = "🔔 New Lead: %s"
)
