package services

import (
	"context"

	"campy/logger"
	"campy/metrics"
	"campy/models"

	"gorm.io/gorm"
)

// Reconciler repairs drift between courses.enrollments and the progress
// records that back it.
type Reconciler struct {
	db      *gorm.DB
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewReconciler(db *gorm.DB, log *logger.Logger, m *metrics.Metrics) *Reconciler {
	return &Reconciler{db: db, log: log, metrics: m}
}

type courseCount struct {
	CourseID string
	Total    int
}

// ReconcileEnrollmentCounts sets every course counter to the number of
// enrollment entries for that course and returns how many were corrected.
func (r *Reconciler) ReconcileEnrollmentCounts(ctx context.Context) (int, error) {
	fixed := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counts []courseCount
		if err := tx.Model(&models.CourseEnrollment{}).
			Select("course_id, COUNT(*) AS total").
			Group("course_id").
			Scan(&counts).Error; err != nil {
			return dbError(err)
		}
		actual := make(map[string]int, len(counts))
		for _, c := range counts {
			actual[c.CourseID] = c.Total
		}

		var courses []models.Course
		if err := tx.Select("id", "enrollments").Find(&courses).Error; err != nil {
			return dbError(err)
		}
		for _, course := range courses {
			want := actual[course.ID]
			if course.Enrollments == want {
				continue
			}
			err := tx.Model(&models.Course{}).
				Where("id = ?", course.ID).
				UpdateColumn("enrollments", want).Error
			if err != nil {
				return dbError(err)
			}
			r.log.Warn("enrollment counter drift corrected", "courseId", course.ID, "was", course.Enrollments, "now", want)
			fixed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.metrics.CountersFixed.Add(float64(fixed))
	return fixed, nil
}
