package models

import (
	"time"

	"gorm.io/gorm"
)

// CourseEnrollment is one entry of a user's enrolled course list.
type CourseEnrollment struct {
	ID          string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID      string     `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID    string     `json:"courseId" gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_course;index"`
	Course      *Course    `json:"course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	Progress    int        `json:"progress" gorm:"default:0"` // percentage 0-100
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (e *CourseEnrollment) BeforeCreate(tx *gorm.DB) error {
	e.ID = newID(e.ID)
	return nil
}
