package services

import (
	"context"
	"strings"

	"campy/logger"
	"campy/models"
	"campy/utils"

	"gorm.io/gorm"
)

const (
	msgCourseNotFound = "Course not found"
	msgLessonNotFound = "Lesson not found"
	msgCourseIDTaken  = "Course with this ID already exists"
	msgLessonIDTaken  = "Lesson with this ID already exists"
)

// CourseInput is the payload for creating a course.
type CourseInput struct {
	CourseID     string
	Title        string
	Description  string
	Duration     int
	InstructorID string
	Price        float64
	Category     *string
	Level        string
	Thumbnail    *string
}

// CoursePatch is a partial course update. Nil fields are left unchanged.
type CoursePatch struct {
	CourseID     *string
	Title        *string
	Description  *string
	Duration     *int
	InstructorID *string
	Price        *float64
	Category     *string
	Level        *string
	Thumbnail    *string
	IsActive     *bool
}

// LessonInput is the payload for creating a lesson.
type LessonInput struct {
	LessonID string
	CourseID string
	Title    string
	Content  string
	Duration int
	VideoURL *string
	Order    int
}

// LessonPatch is a partial lesson update. Moving a lesson between courses
// is not supported.
type LessonPatch struct {
	LessonID    *string
	Title       *string
	Content     *string
	Duration    *int
	VideoURL    *string
	Order       *int
	IsPublished *bool
}

// CatalogService manages courses and their lessons.
type CatalogService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCatalogService(db *gorm.DB, log *logger.Logger) *CatalogService {
	return &CatalogService{db: db, log: log}
}

func orderedLessons(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order asc").Order("created_at asc")
}

func preloadCourseDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Instructor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}).Preload("Lessons", orderedLessons)
}

// ListActiveCourses returns courses that have not been cancelled.
func (s *CatalogService) ListActiveCourses(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	err := preloadCourseDetails(s.db.WithContext(ctx)).
		Where("is_active = ?", true).
		Order("created_at asc").
		Find(&courses).Error
	if err != nil {
		return nil, dbError(err)
	}
	return courses, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := preloadCourseDetails(s.db.WithContext(ctx)).First(&course, "id = ?", id).Error; err != nil {
		return nil, lookupError(err, msgCourseNotFound)
	}
	return &course, nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, in CourseInput) (*models.Course, error) {
	course := models.Course{
		CourseID:     strings.TrimSpace(in.CourseID),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Duration:     in.Duration,
		InstructorID: in.InstructorID,
		Price:        in.Price,
		Category:     in.Category,
		Level:        in.Level,
		Thumbnail:    in.Thumbnail,
		IsActive:     true,
	}
	if course.Level == "" {
		course.Level = models.LevelBeginner
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCourseIDFree(tx, course.CourseID, ""); err != nil {
			return err
		}
		if err := ensureUserExists(tx, course.InstructorID, "Instructor not found"); err != nil {
			return err
		}
		if err := tx.Create(&course).Error; err != nil {
			return writeError(err, msgCourseIDTaken)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	course.Lessons = []models.Lesson{}
	s.log.Info("course created", "id", course.ID, "courseId", course.CourseID)
	return &course, nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, id string, patch CoursePatch) (*models.Course, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCourseExists(tx, id); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if patch.CourseID != nil {
			courseID := strings.TrimSpace(*patch.CourseID)
			if err := ensureCourseIDFree(tx, courseID, id); err != nil {
				return err
			}
			updates["course_id"] = courseID
		}
		if patch.InstructorID != nil {
			if err := ensureUserExists(tx, *patch.InstructorID, "Instructor not found"); err != nil {
				return err
			}
			updates["instructor_id"] = *patch.InstructorID
		}
		if patch.Title != nil {
			updates["title"] = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			updates["description"] = strings.TrimSpace(*patch.Description)
		}
		if patch.Duration != nil {
			updates["duration"] = *patch.Duration
		}
		if patch.Price != nil {
			updates["price"] = *patch.Price
		}
		if patch.Category != nil {
			updates["category"] = *patch.Category
		}
		if patch.Level != nil {
			updates["level"] = *patch.Level
		}
		if patch.Thumbnail != nil {
			updates["thumbnail"] = *patch.Thumbnail
		}
		if patch.IsActive != nil {
			updates["is_active"] = *patch.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Course{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return writeError(err, msgCourseIDTaken)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCourse(ctx, id)
}

// DeleteCourse hard-deletes the course. Its lessons, progress records and
// enrollment entries go with it.
func (s *CatalogService) DeleteCourse(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCourseExists(tx, id); err != nil {
			return err
		}

		if err := tx.Where("course_id = ?", id).Delete(&models.CourseEnrollment{}).Error; err != nil {
			return dbError(err)
		}
		if err := deleteProgress(tx, "course_id = ?", id); err != nil {
			return err
		}

		var lessonIDs []string
		if err := tx.Model(&models.Lesson{}).Where("course_id = ?", id).Pluck("id", &lessonIDs).Error; err != nil {
			return dbError(err)
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&models.CompletedLesson{}).Error; err != nil {
				return dbError(err)
			}
			if err := tx.Where("id IN ?", lessonIDs).Delete(&models.Lesson{}).Error; err != nil {
				return dbError(err)
			}
		}

		if err := tx.Delete(&models.Course{}, "id = ?", id).Error; err != nil {
			return dbError(err)
		}
		s.log.Info("course deleted", "id", id, "lessons", len(lessonIDs))
		return nil
	})
}

// CancelCourse hides the course from the active listing without deleting it.
func (s *CatalogService) CancelCourse(ctx context.Context, id string) (*models.Course, error) {
	res := s.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return nil, dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		// RowsAffected is 0 on some drivers when the value did not change
		if err := ensureCourseExists(s.db.WithContext(ctx), id); err != nil {
			return nil, err
		}
	}
	s.log.Info("course cancelled", "id", id)
	return s.GetCourse(ctx, id)
}

// ListLessons returns every lesson with its course title.
func (s *CatalogService) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	err := s.db.WithContext(ctx).
		Preload("Course", func(db *gorm.DB) *gorm.DB { return db.Select("id", "course_id", "title") }).
		Order("created_at asc").
		Find(&lessons).Error
	if err != nil {
		return nil, dbError(err)
	}
	return lessons, nil
}

// ListLessonsByCourse returns the course's lessons sorted by order.
func (s *CatalogService) ListLessonsByCourse(ctx context.Context, courseID string) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	if err := orderedLessons(s.db.WithContext(ctx)).Where("course_id = ?", courseID).Find(&lessons).Error; err != nil {
		return nil, dbError(err)
	}
	return lessons, nil
}

func (s *CatalogService) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.db.WithContext(ctx).
		Preload("Course", func(db *gorm.DB) *gorm.DB { return db.Select("id", "course_id", "title") }).
		First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, lookupError(err, msgLessonNotFound)
	}
	return &lesson, nil
}

// CreateLesson appends a lesson to its course.
func (s *CatalogService) CreateLesson(ctx context.Context, in LessonInput) (*models.Lesson, error) {
	lesson := models.Lesson{
		LessonID:    strings.TrimSpace(in.LessonID),
		CourseID:    in.CourseID,
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		Duration:    in.Duration,
		VideoURL:    in.VideoURL,
		Order:       in.Order,
		IsPublished: true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCourseExists(tx, lesson.CourseID); err != nil {
			return err
		}
		if err := ensureLessonIDFree(tx, lesson.LessonID, ""); err != nil {
			return err
		}
		if err := tx.Create(&lesson).Error; err != nil {
			return writeError(err, msgLessonIDTaken)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("lesson created", "id", lesson.ID, "lessonId", lesson.LessonID, "courseId", lesson.CourseID)
	return &lesson, nil
}

func (s *CatalogService) UpdateLesson(ctx context.Context, id string, patch LessonPatch) (*models.Lesson, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Lesson{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return dbError(err)
		}
		if count == 0 {
			return utils.NewNotFoundError(msgLessonNotFound)
		}

		updates := map[string]interface{}{}
		if patch.LessonID != nil {
			lessonID := strings.TrimSpace(*patch.LessonID)
			if err := ensureLessonIDFree(tx, lessonID, id); err != nil {
				return err
			}
			updates["lesson_id"] = lessonID
		}
		if patch.Title != nil {
			updates["title"] = strings.TrimSpace(*patch.Title)
		}
		if patch.Content != nil {
			updates["content"] = *patch.Content
		}
		if patch.Duration != nil {
			updates["duration"] = *patch.Duration
		}
		if patch.VideoURL != nil {
			updates["video_url"] = *patch.VideoURL
		}
		if patch.Order != nil {
			updates["sort_order"] = *patch.Order
		}
		if patch.IsPublished != nil {
			updates["is_published"] = *patch.IsPublished
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Lesson{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return writeError(err, msgLessonIDTaken)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetLesson(ctx, id)
}

// DeleteLesson removes a lesson, which also drops it from its course.
func (s *CatalogService) DeleteLesson(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Lesson{}, "id = ?", id)
	if res.Error != nil {
		return dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError(msgLessonNotFound)
	}
	s.log.Info("lesson deleted", "id", id)
	return nil
}

func ensureCourseExists(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&models.Course{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return dbError(err)
	}
	if count == 0 {
		return utils.NewNotFoundError(msgCourseNotFound)
	}
	return nil
}

func ensureUserExists(tx *gorm.DB, id, notFoundMsg string) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return dbError(err)
	}
	if count == 0 {
		return utils.NewNotFoundError(notFoundMsg)
	}
	return nil
}

// ensureCourseIDFree rejects a business id already used by another course.
func ensureCourseIDFree(tx *gorm.DB, courseID, exceptID string) error {
	q := tx.Model(&models.Course{}).Where("course_id = ?", courseID)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return dbError(err)
	}
	if count > 0 {
		return utils.NewConflictError(msgCourseIDTaken)
	}
	return nil
}

func ensureLessonIDFree(tx *gorm.DB, lessonID, exceptID string) error {
	q := tx.Model(&models.Lesson{}).Where("lesson_id = ?", lessonID)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return dbError(err)
	}
	if count > 0 {
		return utils.NewConflictError(msgLessonIDTaken)
	}
	return nil
}
