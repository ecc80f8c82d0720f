package models

import (
	"time"

	"gorm.io/gorm"
)

// Course levels accepted by the catalog.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Course represents a learning course composed of ordered lessons
type Course struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CourseID     string    `json:"courseId" gorm:"size:64;uniqueIndex;not null"`
	Title        string    `json:"title" gorm:"size:100;not null"`
	Description  string    `json:"description" gorm:"size:500;not null"`
	Duration     int       `json:"duration" gorm:"not null"` // duration in hours
	InstructorID string    `json:"instructorId" gorm:"type:varchar(36);not null;index"`
	Instructor   *User     `json:"instructor,omitempty" gorm:"foreignKey:InstructorID;references:ID"`
	Price        float64   `json:"price" gorm:"not null;default:0"`
	Lessons      []Lesson  `json:"lessons" gorm:"foreignKey:CourseID;references:ID"`
	Category     *string   `json:"category"`
	Level        string    `json:"level" gorm:"size:20;default:'Beginner'"`
	Thumbnail    *string   `json:"thumbnail"`
	Enrollments  int       `json:"enrollments" gorm:"not null;default:0"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	c.ID = newID(c.ID)
	return nil
}
