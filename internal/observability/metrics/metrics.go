package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReminderMetrics exposes counters for reminder scheduling and delivery.
type ReminderMetrics struct {
	scheduledTotal *prometheus.CounterVec
	skippedTotal   *prometheus.CounterVec
	sentTotal      *prometheus.CounterVec
}

func NewReminderMetrics(reg prometheus.Registerer) *ReminderMetrics {
	m := &ReminderMetrics{
		scheduledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospiagent",
			Subsystem: "reminder",
			Name:      "scheduled_total",
			Help:      "Total reminder jobs registered",
		}, []string{"kind", "mode"}),
		skippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospiagent",
			Subsystem: "reminder",
			Name:      "skipped_total",
			Help:      "Total reminders skipped to avoid duplicate emails",
		}, []string{"kind"}),
		sentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospiagent",
			Subsystem: "reminder",
			Name:      "emails_total",
			Help:      "Total reminder email dispatch outcomes",
		}, []string{"provider", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.scheduledTotal, m.skippedTotal, m.sentTotal)
	return m
}

func (m *ReminderMetrics) ObserveScheduled(kind, mode string) {
	if m == nil {
		return
	}
	m.scheduledTotal.WithLabelValues(kind, mode).Inc()
}

func (m *ReminderMetrics) ObserveSkipped(kind string) {
	if m == nil {
		return
	}
	m.skippedTotal.WithLabelValues(kind).Inc()
}

func (m *ReminderMetrics) ObserveEmail(provider string, ok bool) {
	if m == nil {
		return
	}
	status := "error"
	if ok {
		status = "sent"
	}
	m.sentTotal.WithLabelValues(provider, status).Inc()
}

// NotificationMetrics exposes counters for multi-channel notification fan-out.
type NotificationMetrics struct {
	channelTotal *prometheus.CounterVec
}

func NewNotificationMetrics(reg prometheus.Registerer) *NotificationMetrics {
	m := &NotificationMetrics{
		channelTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospiagent",
			Subsystem: "notification",
			Name:      "channel_total",
			Help:      "Total per-channel notification delivery outcomes",
		}, []string{"channel", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.channelTotal)
	return m
}

func (m *NotificationMetrics) ObserveChannel(channel string, ok bool) {
	if m == nil {
		return
	}
	status := "failed"
	if ok {
		status = "sent"
	}
	m.channelTotal.WithLabelValues(channel, status).Inc()
}
