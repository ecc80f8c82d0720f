package services

import (
	"testing"

	"campy/models"
	"campy/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollCreatesEntryProgressAndCounter(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	student := f.user(t, "student")
	course := f.course(t, "GO-101", instructor)

	entry, err := f.svc.Enrollment.Enroll(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, entry.CourseID)
	assert.False(t, entry.EnrolledAt.IsZero())
	assert.False(t, entry.Completed)

	assert.Equal(t, 1, f.reloadCourse(t, course.ID).Enrollments)

	progress, err := f.svc.Progress.GetProgress(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, progress.CompletedLessons)
	assert.Equal(t, 0, progress.OverallProgress)
	assert.False(t, progress.IsCompleted)

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventEnrolled, events[0].Type)
}

func TestEnrollTwiceIsConflictAndLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	student := f.user(t, "student")
	course := f.course(t, "GO-101", instructor)

	_, err := f.svc.Enrollment.Enroll(f.ctx, student.ID, course.ID)
	require.NoError(t, err)

	_, err = f.svc.Enrollment.Enroll(f.ctx, student.ID, course.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrConflict)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "User is already enrolled in this course", appErr.Message)

	assert.Equal(t, 1, f.reloadCourse(t, course.ID).Enrollments)
	assert.EqualValues(t, 1, f.countRows(t, &models.CourseEnrollment{}, "user_id = ?", student.ID))
	assert.EqualValues(t, 1, f.countRows(t, &models.Progress{}, "user_id = ?", student.ID))
}

func TestConcurrentSecondEnrollIsConflict(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	student := f.user(t, "student")
	course := f.course(t, "GO-101", instructor)

	_, err := f.svc.Enrollment.Enroll(f.ctx, student.ID, course.ID)
	require.NoError(t, err)

	// the second request misses the first one's entry and hits the unique index
	f.hideRowsOnce(t, "course_enrollments")
	_, err = f.svc.Enrollment.Enroll(f.ctx, student.ID, course.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrConflict)

	assert.Equal(t, 1, f.reloadCourse(t, course.ID).Enrollments)
	assert.EqualValues(t, 1, f.countRows(t, &models.CourseEnrollment{}, "user_id = ?", student.ID))
	assert.EqualValues(t, 1, f.countRows(t, &models.Progress{}, "user_id = ?", student.ID))
}

func TestEnrollAfterCompletingLessonAdoptsProgress(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	student := f.user(t, "student")
	course := f.course(t, "GO-101", instructor)
	lesson := f.lesson(t, course, "GO-101-1", 1)
	f.lesson(t, course, "GO-101-2", 2)

	_, err := f.svc.Progress.CompleteLesson(f.ctx, student.ID, course.ID, lesson.ID)
	require.NoError(t, err)

	entry, err := f.svc.Enrollment.Enroll(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, entry.Progress)
	assert.False(t, entry.Completed)

	assert.Equal(t, 1, f.reloadCourse(t, course.ID).Enrollments)
	assert.EqualValues(t, 1, f.countRows(t, &models.CourseEnrollment{}, "user_id = ?", student.ID))
	assert.EqualValues(t, 1, f.countRows(t, &models.Progress{}, "user_id = ?", student.ID))

	progress, err := f.svc.Progress.GetProgress(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	require.Len(t, progress.CompletedLessons, 1)
	assert.Equal(t, 50, progress.OverallProgress)

	require.NoError(t, f.svc.Enrollment.Unenroll(f.ctx, student.ID, course.ID))
	assert.Equal(t, 0, f.reloadCourse(t, course.ID).Enrollments)
}

func TestEnrollUnknownUserOrCourse(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	course := f.course(t, "GO-101", instructor)

	_, err := f.svc.Enrollment.Enroll(f.ctx, "missing-user", course.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = f.svc.Enrollment.Enroll(f.ctx, instructor.ID, "missing-course")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	assert.Equal(t, 0, f.reloadCourse(t, course.ID).Enrollments)
	assert.EqualValues(t, 0, f.countRows(t, &models.Progress{}, "1 = 1"))
}

func TestEnrollInactiveCourseIsAllowed(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	course := f.course(t, "GO-101", instructor)
	_, err := f.svc.Catalog.CancelCourse(f.ctx, course.ID)
	require.NoError(t, err)

	_, err = f.svc.Enrollment.Enroll(f.ctx, instructor.ID, course.ID)
	assert.NoError(t, err)
}

func TestEnrollThenUnenrollIsSymmetric(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	student := f.user(t, "student")
	course := f.course(t, "GO-101", instructor)
	lesson := f.lesson(t, course, "GO-101-1", 1)

	before := f.reloadCourse(t, course.ID).Enrollments

	_, err := f.svc.Enrollment.Enroll(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	_, err = f.svc.Progress.CompleteLesson(f.ctx, student.ID, course.ID, lesson.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Enrollment.Unenroll(f.ctx, student.ID, course.ID))

	assert.Equal(t, before, f.reloadCourse(t, course.ID).Enrollments)
	assert.EqualValues(t, 0, f.countRows(t, &models.CourseEnrollment{}, "user_id = ?", student.ID))
	assert.EqualValues(t, 0, f.countRows(t, &models.CompletedLesson{}, "1 = 1"))

	_, err = f.svc.Progress.GetProgress(f.ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUnenrollWhenNotEnrolled(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	course := f.course(t, "GO-101", instructor)

	err := f.svc.Enrollment.Unenroll(f.ctx, instructor.ID, course.ID)
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.KindValidation, appErr.Kind)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "User is not enrolled in this course", appErr.Message)

	err = f.svc.Enrollment.Unenroll(f.ctx, "missing-user", course.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUnenrollCounterNeverNegative(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	course := f.course(t, "GO-101", instructor)

	_, err := f.svc.Enrollment.Enroll(f.ctx, instructor.ID, course.ID)
	require.NoError(t, err)
	// simulate drift
	require.NoError(t, f.db.Model(&models.Course{}).Where("id = ?", course.ID).UpdateColumn("enrollments", 0).Error)

	require.NoError(t, f.svc.Enrollment.Unenroll(f.ctx, instructor.ID, course.ID))
	assert.Equal(t, 0, f.reloadCourse(t, course.ID).Enrollments)
}
