package models

import (
	"time"

	"gorm.io/gorm"
)

// Lesson is a single unit of content inside a course.
type Lesson struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	LessonID    string    `json:"lessonId" gorm:"size:64;uniqueIndex;not null"`
	CourseID    string    `json:"courseId" gorm:"type:varchar(36);not null;index"`
	Course      *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
	Title       string    `json:"title" gorm:"size:100;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Duration    int       `json:"duration" gorm:"not null"` // duration in minutes
	VideoURL    *string   `json:"videoUrl"`
	Order       int       `json:"order" gorm:"column:sort_order;not null;index"`
	IsPublished bool      `json:"isPublished" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	l.ID = newID(l.ID)
	return nil
}
