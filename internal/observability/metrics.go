package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EngagementTransitions counts applied like/rating writes by outcome.
	EngagementTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coursehub_engagement_transitions_total",
		Help: "Engagement state machine results by kind and result",
	}, []string{"kind", "result"})

	// EngagementConflicts counts uniqueness races detected while writing engagement rows.
	EngagementConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coursehub_engagement_conflicts_total",
		Help: "Concurrent engagement writes that required a retry",
	}, []string{"kind"})

	// AuthRejections counts requests refused by the authentication gate.
	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coursehub_auth_rejections_total",
		Help: "Requests rejected by the authentication gate by reason",
	}, []string{"reason"})
)
