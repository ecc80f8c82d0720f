package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestRelationsJoinOnPrimaryKeys(t *testing.T) {
	cache := &sync.Map{}
	namer := schema.NamingStrategy{}

	cases := []struct {
		model   interface{}
		field   string
		kind    schema.RelationshipType
		foreign string
		primary string
	}{
		{&Progress{}, "Course", schema.BelongsTo, "CourseID", "ID"},
		{&CompletedLesson{}, "Lesson", schema.BelongsTo, "LessonID", "ID"},
		{&Lesson{}, "Course", schema.BelongsTo, "CourseID", "ID"},
		{&CourseEnrollment{}, "Course", schema.BelongsTo, "CourseID", "ID"},
		{&Course{}, "Instructor", schema.BelongsTo, "InstructorID", "ID"},
		{&Course{}, "Lessons", schema.HasMany, "CourseID", "ID"},
		{&Progress{}, "CompletedLessons", schema.HasMany, "ProgressID", "ID"},
		{&User{}, "CoursesEnrolled", schema.HasMany, "UserID", "ID"},
	}

	for _, tc := range cases {
		s, err := schema.Parse(tc.model, cache, namer)
		require.NoError(t, err)

		rel, ok := s.Relationships.Relations[tc.field]
		require.True(t, ok, "%s.%s", s.Name, tc.field)
		assert.Equal(t, tc.kind, rel.Type, "%s.%s", s.Name, tc.field)
		require.Len(t, rel.References, 1)
		assert.Equal(t, tc.foreign, rel.References[0].ForeignKey.Name, "%s.%s", s.Name, tc.field)
		assert.Equal(t, tc.primary, rel.References[0].PrimaryKey.Name, "%s.%s", s.Name, tc.field)
	}
}
