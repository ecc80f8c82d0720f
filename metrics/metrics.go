package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	Enrollments      prometheus.Counter
	Unenrollments    prometheus.Counter
	LessonCompletion *prometheus.CounterVec
	CourseCompleted  prometheus.Counter
	ProgressResets   prometheus.Counter
	CountersFixed    prometheus.Counter
}

var (
	once     sync.Once
	instance *Metrics
)

// Get returns the process-wide collectors, registering them on first use.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "campy_http_requests_total",
				Help: "HTTP requests by method, route and status.",
			}, []string{"method", "route", "status"}),
			HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "campy_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route.",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "route"}),
			Enrollments: promauto.NewCounter(prometheus.CounterOpts{
				Name: "campy_enrollments_total",
				Help: "Successful course enrollments.",
			}),
			Unenrollments: promauto.NewCounter(prometheus.CounterOpts{
				Name: "campy_unenrollments_total",
				Help: "Successful course unenrollments.",
			}),
			LessonCompletion: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "campy_lesson_completions_total",
				Help: "Lesson completion requests by result (recorded, duplicate).",
			}, []string{"result"}),
			CourseCompleted: promauto.NewCounter(prometheus.CounterOpts{
				Name: "campy_course_completions_total",
				Help: "Progress records that reached completion.",
			}),
			ProgressResets: promauto.NewCounter(prometheus.CounterOpts{
				Name: "campy_progress_resets_total",
				Help: "Progress records reset to zero.",
			}),
			CountersFixed: promauto.NewCounter(prometheus.CounterOpts{
				Name: "campy_enrollment_counters_fixed_total",
				Help: "Course enrollment counters corrected by reconciliation.",
			}),
		}
	})
	return instance
}
