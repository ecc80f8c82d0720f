package services

import (
	"testing"

	"campy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileEnrollmentCounts(t *testing.T) {
	f := newFixture(t)
	instructor := f.user(t, "instructor")
	student := f.user(t, "student")
	drifted := f.course(t, "GO-101", instructor)
	healthy := f.course(t, "GO-201", instructor)
	empty := f.course(t, "GO-301", instructor)

	for _, c := range []*models.Course{drifted, healthy} {
		_, err := f.svc.Enrollment.Enroll(f.ctx, student.ID, c.ID)
		require.NoError(t, err)
	}
	require.NoError(t, f.db.Model(&models.Course{}).Where("id = ?", drifted.ID).UpdateColumn("enrollments", 5).Error)
	require.NoError(t, f.db.Model(&models.Course{}).Where("id = ?", empty.ID).UpdateColumn("enrollments", 2).Error)
	// progress without an enrollment entry does not count
	require.NoError(t, f.db.Create(&models.Progress{UserID: instructor.ID, CourseID: empty.ID}).Error)

	fixed, err := f.svc.Reconciler.ReconcileEnrollmentCounts(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fixed)

	assert.Equal(t, 1, f.reloadCourse(t, drifted.ID).Enrollments)
	assert.Equal(t, 1, f.reloadCourse(t, healthy.ID).Enrollments)
	assert.Equal(t, 0, f.reloadCourse(t, empty.ID).Enrollments)

	fixed, err = f.svc.Reconciler.ReconcileEnrollmentCounts(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, fixed)
}
