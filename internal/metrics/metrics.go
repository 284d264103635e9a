package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studydesk",
			Name:      "http_requests_total",
			Help:      "Count of API requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	activitiesParsed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studydesk",
			Name:      "activities_parsed_total",
			Help:      "Count of activity records produced by the text parser.",
		},
	)

	schedulesGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studydesk",
			Name:      "schedules_generated_total",
			Help:      "Count of weekly schedules generated.",
		},
	)

	studyHoursAllocated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studydesk",
			Name:      "study_hours_allocated_total",
			Help:      "Total study hours placed by the allocator.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, activitiesParsed, schedulesGenerated, studyHoursAllocated)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func AddActivitiesParsed(n int) {
	activitiesParsed.Add(float64(n))
}

func IncScheduleGenerated() {
	schedulesGenerated.Inc()
}

func AddStudyHours(hours float64) {
	studyHoursAllocated.Add(hours)
}
