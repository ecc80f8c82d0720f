package services

import (
	"context"
	"errors"

	"campy/logger"
	"campy/metrics"
	"campy/models"
	"campy/utils"

	"gorm.io/gorm"
)

const (
	msgAlreadyEnrolled = "User is already enrolled in this course"
	msgNotEnrolled     = "User is not enrolled in this course"
)

// EnrollmentService keeps the enrollment entry, the course counter and the
// progress record in step.
type EnrollmentService struct {
	db       *gorm.DB
	log      *logger.Logger
	metrics  *metrics.Metrics
	notifier Notifier
	now      clock
}

func NewEnrollmentService(db *gorm.DB, log *logger.Logger, m *metrics.Metrics, notifier Notifier) *EnrollmentService {
	return &EnrollmentService{db: db, log: log, metrics: m, notifier: notifier, now: systemClock}
}

// Enroll adds the course to the user's enrolled list, bumps the course
// counter and creates an empty progress record, all in one transaction.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string) (*models.CourseEnrollment, error) {
	if userID == "" || courseID == "" {
		return nil, utils.NewValidationError("userId and courseId are required")
	}

	var entry models.CourseEnrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCourseExists(tx, courseID); err != nil {
			return err
		}
		if err := ensureUserExists(tx, userID, msgUserNotFound); err != nil {
			return err
		}

		var enrolled int64
		if err := tx.Model(&models.CourseEnrollment{}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			Count(&enrolled).Error; err != nil {
			return dbError(err)
		}
		if enrolled > 0 {
			return utils.NewConflictError(msgAlreadyEnrolled)
		}

		// a record started by completeLesson before enrolling is adopted
		var progress models.Progress
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			progress = models.Progress{UserID: userID, CourseID: courseID}
			if err := tx.Create(&progress).Error; err != nil {
				return writeError(err, msgAlreadyEnrolled)
			}
		case err != nil:
			return dbError(err)
		}

		entry = models.CourseEnrollment{
			UserID:      userID,
			CourseID:    courseID,
			EnrolledAt:  s.now(),
			Progress:    progress.OverallProgress,
			Completed:   progress.IsCompleted,
			CompletedAt: progress.CompletedAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return writeError(err, msgAlreadyEnrolled)
		}

		err = tx.Model(&models.Course{}).
			Where("id = ?", courseID).
			UpdateColumn("enrollments", gorm.Expr("enrollments + ?", 1)).Error
		if err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Enrollments.Inc()
	s.log.Info("user enrolled", "userId", userID, "courseId", courseID)
	s.notifier.Notify(ctx, Event{Type: EventEnrolled, UserID: userID, CourseID: courseID, At: entry.EnrolledAt})
	return &entry, nil
}

// Unenroll reverses Enroll: the entry and progress record are deleted and
// the counter is decremented, never below zero.
func (s *EnrollmentService) Unenroll(ctx context.Context, userID, courseID string) error {
	if userID == "" || courseID == "" {
		return utils.NewValidationError("userId and courseId are required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, userID, msgUserNotFound); err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&models.CourseEnrollment{})
		if res.Error != nil {
			return dbError(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.NewValidationError(msgNotEnrolled)
		}

		if err := decrementEnrollments(tx, courseID); err != nil {
			return err
		}
		return deleteProgress(tx, "user_id = ? AND course_id = ?", userID, courseID)
	})
	if err != nil {
		return err
	}

	s.metrics.Unenrollments.Inc()
	s.log.Info("user unenrolled", "userId", userID, "courseId", courseID)
	s.notifier.Notify(ctx, Event{Type: EventUnenrolled, UserID: userID, CourseID: courseID, At: s.now()})
	return nil
}
