package reminder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_cycles_total",
		Help: "Number of reminder cycles started.",
	})
	notificationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_notifications_created_total",
		Help: "In-app notifications created by reminder cycles.",
	})
	duplicatesSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_duplicates_suppressed_total",
		Help: "Notification creations skipped because the idempotency key already existed.",
	})
	emailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_emails_sent_total",
		Help: "Reminder emails handed to the SMTP server.",
	})
	emailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_emails_failed_total",
		Help: "Reminder email sends that errored.",
	})
	scanFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reminder_scan_failures_total",
		Help: "Entity scans that errored, by entity kind.",
	}, []string{"kind"})
	storeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_store_failures_total",
		Help: "Notification persistence errors.",
	})
)
