package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CallsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screener_calls_started_total",
		Help: "Outbound interview calls placed.",
	})

	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screener_webhook_events_total",
		Help: "Telephony webhook events received, by event type.",
	}, []string{"event"})

	PipelineTasks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screener_pipeline_tasks_total",
		Help: "Answer processing pipeline outcomes.",
	}, []string{"outcome"})

	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screener_notifications_sent_total",
		Help: "Final summary notifications dispatched.",
	})
)
