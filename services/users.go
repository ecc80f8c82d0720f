package services

import (
	"context"
	"strings"

	"campy/logger"
	"campy/models"
	"campy/utils"

	"gorm.io/gorm"
)

const msgUserNotFound = "User not found"

// UserPatch carries the mutable user fields. Nil means "leave unchanged".
type UserPatch struct {
	Name  *string
	Email *string
	Kudos *int
}

type UserService struct {
	db       *gorm.DB
	hashCost int
	log      *logger.Logger
}

func NewUserService(db *gorm.DB, hashCost int, log *logger.Logger) *UserService {
	return &UserService{db: db, hashCost: hashCost, log: log}
}

func preloadEnrolledCourses(db *gorm.DB) *gorm.DB {
	return db.Preload("CoursesEnrolled", func(db *gorm.DB) *gorm.DB {
		return db.Order("enrolled_at asc")
	}).Preload("CoursesEnrolled.Course", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "course_id", "title", "description")
	})
}

// ListUsers returns every user with the title and description of each
// enrolled course.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := preloadEnrolledCourses(s.db.WithContext(ctx)).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, dbError(err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := preloadEnrolledCourses(s.db.WithContext(ctx)).First(&user, "id = ?", id).Error; err != nil {
		return nil, lookupError(err, msgUserNotFound)
	}
	return &user, nil
}

// CreateUser adds a user directly. The password is hashed like on sign-up.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	user, err := createUser(ctx, s.db, s.hashCost, name, email, password)
	if err != nil {
		return nil, err
	}
	s.log.Info("user created", "userId", user.ID)
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id", "email").First(&user, "id = ?", id).Error; err != nil {
			return lookupError(err, msgUserNotFound)
		}

		updates := map[string]interface{}{}
		if patch.Name != nil {
			updates["name"] = strings.TrimSpace(*patch.Name)
		}
		if patch.Email != nil {
			email := normalizeEmail(*patch.Email)
			if email != user.Email {
				var count int64
				if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
					return dbError(err)
				}
				if count > 0 {
					return utils.NewConflictError(msgEmailTaken)
				}
			}
			updates["email"] = email
		}
		if patch.Kudos != nil {
			updates["kudos"] = *patch.Kudos
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return writeError(err, msgEmailTaken)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user along with their enrollment entries and
// progress, decrementing the counters of every course they were enrolled in.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, "id = ?", id).Error; err != nil {
			return lookupError(err, msgUserNotFound)
		}

		var courseIDs []string
		if err := tx.Model(&models.CourseEnrollment{}).Where("user_id = ?", id).Pluck("course_id", &courseIDs).Error; err != nil {
			return dbError(err)
		}
		if len(courseIDs) > 0 {
			if err := tx.Where("user_id = ?", id).Delete(&models.CourseEnrollment{}).Error; err != nil {
				return dbError(err)
			}
			if err := decrementEnrollments(tx, courseIDs...); err != nil {
				return err
			}
		}

		if err := deleteProgress(tx, "user_id = ?", id); err != nil {
			return err
		}

		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return dbError(err)
		}
		s.log.Info("user deleted", "userId", id, "enrollmentsRemoved", len(courseIDs))
		return nil
	})
}

// ListEnrolledCourses returns the user's enrollment entries with the full
// course expanded.
func (s *UserService) ListEnrolledCourses(ctx context.Context, id string) ([]models.CourseEnrollment, error) {
	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, dbError(err)
	}
	if count == 0 {
		return nil, utils.NewNotFoundError(msgUserNotFound)
	}

	entries := []models.CourseEnrollment{}
	if err := db.Preload("Course").Where("user_id = ?", id).Order("enrolled_at asc").Find(&entries).Error; err != nil {
		return nil, dbError(err)
	}
	return entries, nil
}

// decrementEnrollments lowers each course counter by one, never below zero.
func decrementEnrollments(tx *gorm.DB, courseIDs ...string) error {
	for _, courseID := range courseIDs {
		err := tx.Model(&models.Course{}).
			Where("id = ? AND enrollments > 0", courseID).
			UpdateColumn("enrollments", gorm.Expr("enrollments - ?", 1)).Error
		if err != nil {
			return dbError(err)
		}
	}
	return nil
}

// deleteProgress removes the progress records matching the condition
// together with their completed lessons.
func deleteProgress(tx *gorm.DB, query string, args ...interface{}) error {
	var ids []string
	if err := tx.Model(&models.Progress{}).Where(query, args...).Pluck("id", &ids).Error; err != nil {
		return dbError(err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("progress_id IN ?", ids).Delete(&models.CompletedLesson{}).Error; err != nil {
		return dbError(err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Progress{}).Error; err != nil {
		return dbError(err)
	}
	return nil
}
