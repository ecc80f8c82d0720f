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
	msgProgressNotFound       = "Progress not found"
	msgProgressRecordNotFound = "Progress record not found"
	msgLessonAlreadyCompleted = "Lesson already completed"
)

// CompletionResult describes the outcome of CompleteLesson.
type CompletionResult struct {
	Progress *models.Progress
	// AlreadyCompleted is set when the lesson was in the completed set
	// before the call; Progress is then returned unchanged.
	AlreadyCompleted bool
	// CourseCompleted is set on the call that first completes the course.
	CourseCompleted bool
}

// ProgressService records lesson completions and derives course progress.
type ProgressService struct {
	db       *gorm.DB
	log      *logger.Logger
	metrics  *metrics.Metrics
	notifier Notifier
	now      clock
}

func NewProgressService(db *gorm.DB, log *logger.Logger, m *metrics.Metrics, notifier Notifier) *ProgressService {
	return &ProgressService{db: db, log: log, metrics: m, notifier: notifier, now: systemClock}
}

func preloadCompleted(db *gorm.DB) *gorm.DB {
	return db.Preload("CompletedLessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("completed_at asc")
	})
}

// GetProgress returns the user's progress in a course with each completed
// lesson expanded.
func (s *ProgressService) GetProgress(ctx context.Context, userID, courseID string) (*models.Progress, error) {
	var progress models.Progress
	err := preloadCompleted(s.db.WithContext(ctx)).
		Preload("CompletedLessons.Lesson").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, lookupError(err, msgProgressNotFound)
	}
	return &progress, nil
}

// ListUserProgress returns every progress record of the user with the
// course title and description.
func (s *ProgressService) ListUserProgress(ctx context.Context, userID string) ([]models.Progress, error) {
	records := []models.Progress{}
	err := preloadCompleted(s.db.WithContext(ctx)).
		Preload("Course", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "course_id", "title", "description")
		}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		return nil, dbError(err)
	}
	return records, nil
}

// CompleteLesson adds lessonID to the completed set and recomputes the
// derived fields. Completing an already completed lesson is a no-op.
func (s *ProgressService) CompleteLesson(ctx context.Context, userID, courseID, lessonID string) (*CompletionResult, error) {
	if userID == "" || courseID == "" || lessonID == "" {
		return nil, utils.NewValidationError("userId, courseId, and lessonId are required")
	}

	result, err := s.completeLesson(ctx, userID, courseID, lessonID)
	if err != nil && isDuplicate(err) {
		// a concurrent request inserted the same progress record or lesson;
		// the second pass finds it
		s.log.Debug("concurrent completion, re-running", "userId", userID, "courseId", courseID, "lessonId", lessonID)
		result, err = s.completeLesson(ctx, userID, courseID, lessonID)
	}
	if err != nil {
		return nil, writeError(err, msgLessonAlreadyCompleted)
	}

	if result.AlreadyCompleted {
		s.metrics.LessonCompletion.WithLabelValues("duplicate").Inc()
		return result, nil
	}

	s.metrics.LessonCompletion.WithLabelValues("recorded").Inc()
	s.log.Info("lesson completed", "userId", userID, "courseId", courseID, "lessonId", lessonID,
		"overallProgress", result.Progress.OverallProgress)

	if result.CourseCompleted {
		s.metrics.CourseCompleted.Inc()
		s.log.Info("course completed", "userId", userID, "courseId", courseID)
		s.notifier.Notify(ctx, Event{Type: EventCourseCompleted, UserID: userID, CourseID: courseID, At: *result.Progress.CompletedAt})
	}
	return result, nil
}

// completeLesson is one unit of work. Unique violations are returned
// untranslated so the caller can re-run.
func (s *ProgressService) completeLesson(ctx context.Context, userID, courseID, lessonID string) (*CompletionResult, error) {
	result := &CompletionResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var progress models.Progress
		err := preloadCompleted(tx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := ensureCourseExists(tx, courseID); err != nil {
				return err
			}
			progress = models.Progress{UserID: userID, CourseID: courseID}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
			progress.CompletedLessons = []models.CompletedLesson{}
		case err != nil:
			return dbError(err)
		}
		result.Progress = &progress

		if progress.HasCompleted(lessonID) {
			result.AlreadyCompleted = true
			return nil
		}

		now := s.now()
		completed := models.CompletedLesson{ProgressID: progress.ID, LessonID: lessonID, CompletedAt: now}
		if err := tx.Create(&completed).Error; err != nil {
			return err
		}
		progress.CompletedLessons = append(progress.CompletedLessons, completed)

		var lessonIDs []string
		if err := tx.Model(&models.Lesson{}).Where("course_id = ?", courseID).Pluck("id", &lessonIDs).Error; err != nil {
			return dbError(err)
		}
		done := countCompleted(progress.CompletedLessons, lessonIDs)
		total := len(lessonIDs)

		progress.OverallProgress = roundPercent(done, total)
		updates := map[string]interface{}{"overall_progress": progress.OverallProgress}
		if total > 0 && done == total {
			result.CourseCompleted = !progress.IsCompleted
			progress.IsCompleted = true
			updates["is_completed"] = true
			if progress.CompletedAt == nil {
				progress.CompletedAt = &now
				updates["completed_at"] = now
			}
		}
		if err := tx.Model(&models.Progress{}).Where("id = ?", progress.ID).Updates(updates).Error; err != nil {
			return dbError(err)
		}

		return syncEnrollmentEntry(tx, &progress)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// syncEnrollmentEntry mirrors progress onto the user's enrollment entry and
// stamps it once the course is complete. A missing entry is not an error.
func syncEnrollmentEntry(tx *gorm.DB, progress *models.Progress) error {
	updates := map[string]interface{}{"progress": progress.OverallProgress}
	if progress.IsCompleted {
		updates["completed"] = true
	}
	err := tx.Model(&models.CourseEnrollment{}).
		Where("user_id = ? AND course_id = ?", progress.UserID, progress.CourseID).
		Updates(updates).Error
	if err != nil {
		return dbError(err)
	}

	if progress.IsCompleted && progress.CompletedAt != nil {
		err = tx.Model(&models.CourseEnrollment{}).
			Where("user_id = ? AND course_id = ? AND completed_at IS NULL", progress.UserID, progress.CourseID).
			Update("completed_at", *progress.CompletedAt).Error
		if err != nil {
			return dbError(err)
		}
	}
	return nil
}

// countCompleted counts completed lessons that still belong to the course.
func countCompleted(completed []models.CompletedLesson, lessonIDs []string) int {
	current := make(map[string]struct{}, len(lessonIDs))
	for _, id := range lessonIDs {
		current[id] = struct{}{}
	}
	n := 0
	for _, cl := range completed {
		if _, ok := current[cl.LessonID]; ok {
			n++
		}
	}
	return n
}

// ResetProgress clears the completed set and derived fields. The enrollment
// entry and the course counter are untouched.
func (s *ProgressService) ResetProgress(ctx context.Context, userID, courseID string) (*models.Progress, error) {
	if userID == "" || courseID == "" {
		return nil, utils.NewValidationError("userId and courseId are required")
	}

	var progress models.Progress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
			return lookupError(err, msgProgressRecordNotFound)
		}
		if err := tx.Where("progress_id = ?", progress.ID).Delete(&models.CompletedLesson{}).Error; err != nil {
			return dbError(err)
		}
		err := tx.Model(&models.Progress{}).Where("id = ?", progress.ID).Updates(map[string]interface{}{
			"overall_progress": 0,
			"is_completed":     false,
			"completed_at":     nil,
		}).Error
		if err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	progress.CompletedLessons = []models.CompletedLesson{}
	progress.OverallProgress = 0
	progress.IsCompleted = false
	progress.CompletedAt = nil
	progress.UpdatedAt = s.now()

	s.metrics.ProgressResets.Inc()
	s.log.Info("progress reset", "userId", userID, "courseId", courseID)
	return &progress, nil
}

// CourseStats aggregates the progress records of a course.
func (s *ProgressService) CourseStats(ctx context.Context, courseID string) (*models.CourseStats, error) {
	db := s.db.WithContext(ctx)
	if err := ensureCourseExists(db, courseID); err != nil {
		return nil, err
	}

	var rows []struct {
		OverallProgress int
		IsCompleted     bool
	}
	err := db.Model(&models.Progress{}).
		Select("overall_progress", "is_completed").
		Where("course_id = ?", courseID).
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err)
	}

	stats := &models.CourseStats{TotalEnrolled: len(rows)}
	values := make([]int, 0, len(rows))
	for _, r := range rows {
		values = append(values, r.OverallProgress)
		if r.IsCompleted {
			stats.Completed++
		} else if r.OverallProgress > 0 {
			stats.InProgress++
		}
		if r.OverallProgress == 0 {
			stats.NotStarted++
		}
	}
	stats.AverageProgress = roundMean(values)
	return stats, nil
}
