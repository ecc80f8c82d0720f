package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered learner or instructor.
type User struct {
	ID              string             `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name            string             `json:"name" gorm:"size:50;not null"`
	Email           string             `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password        string             `json:"-" gorm:"not null"`
	Kudos           int                `json:"kudos" gorm:"default:0"`
	CoursesEnrolled []CourseEnrollment `json:"coursesEnrolled" gorm:"foreignKey:UserID"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.ID = newID(u.ID)
	return nil
}
