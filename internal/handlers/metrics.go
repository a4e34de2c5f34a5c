package handlers

import "github.com/prometheus/client_golang/prometheus"

type PostMetrics struct {
	PostOperations    *prometheus.CounterVec
	WebhookDispatches *prometheus.CounterVec
	AIRequests        *prometheus.CounterVec
	MediaTasks        *prometheus.CounterVec
}

func (m *PostMetrics) IncPostOp(op, status string) {
	if m == nil || m.PostOperations == nil {
		return
	}

	m.PostOperations.WithLabelValues(op, status).Inc()
}

func (m *PostMetrics) IncWebhook(direction, status string) {
	if m == nil || m.WebhookDispatches == nil {
		return
	}

	m.WebhookDispatches.WithLabelValues(direction, status).Inc()
}

func (m *PostMetrics) IncAI(operation, status string) {
	if m == nil || m.AIRequests == nil {
		return
	}

	m.AIRequests.WithLabelValues(operation, status).Inc()
}

func (m *PostMetrics) IncMediaTask(kind, status string) {
	if m == nil || m.MediaTasks == nil {
		return
	}

	m.MediaTasks.WithLabelValues(kind, status).Inc()
}
