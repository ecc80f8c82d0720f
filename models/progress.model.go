package models

import (
	"time"

	"gorm.io/gorm"
)

// Progress tracks which lessons of a course a user has completed. There is
// exactly one record per (user, course) pair.
type Progress struct {
	ID               string            `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID           string            `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_user_course"`
	CourseID         string            `json:"courseId" gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_user_course;index"`
	Course           *Course           `json:"course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
	CompletedLessons []CompletedLesson `json:"completedLessons" gorm:"foreignKey:ProgressID"`
	OverallProgress  int               `json:"overallProgress" gorm:"not null;default:0"` // percentage 0-100
	IsCompleted      bool              `json:"isCompleted" gorm:"not null;default:false"`
	CompletedAt      *time.Time        `json:"completedAt"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	p.ID = newID(p.ID)
	return nil
}

// HasCompleted reports whether lessonID is already in the completed set.
func (p *Progress) HasCompleted(lessonID string) bool {
	for _, cl := range p.CompletedLessons {
		if cl.LessonID == lessonID {
			return true
		}
	}
	return false
}

// CompletedLesson is a member of a progress record's completed set.
type CompletedLesson struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProgressID  string    `json:"-" gorm:"type:varchar(36);not null;uniqueIndex:idx_completed_progress_lesson"`
	LessonID    string    `json:"lessonId" gorm:"type:varchar(36);not null;uniqueIndex:idx_completed_progress_lesson"`
	Lesson      *Lesson   `json:"lesson,omitempty" gorm:"foreignKey:LessonID;references:ID"`
	CompletedAt time.Time `json:"completedAt"`
}

func (cl *CompletedLesson) BeforeCreate(tx *gorm.DB) error {
	cl.ID = newID(cl.ID)
	return nil
}

// CourseStats is the aggregate view over a course's progress records.
type CourseStats struct {
	TotalEnrolled   int `json:"totalEnrolled"`
	Completed       int `json:"completed"`
	InProgress      int `json:"inProgress"`
	NotStarted      int `json:"notStarted"`
	AverageProgress int `json:"averageProgress"`
}
