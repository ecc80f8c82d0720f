package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"campy/config"
	"campy/database"
	"campy/logger"
	"campy/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(_ context.Context, evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordingNotifier) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

type fixture struct {
	db       *gorm.DB
	svc      *Services
	notifier *recordingNotifier
	ctx      context.Context
}

func testConfig() *config.Config {
	return &config.Config{
		Env:       "test",
		DBDriver:  "sqlite",
		DBName:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTKey:    "test-secret",
		TokenTTL:  time.Hour,
		SaltRound: bcrypt.MinCost,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := testConfig()
	log := logger.NewNop()

	db, err := database.Connect(cfg, log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, log))
	t.Cleanup(func() { _ = database.Close(db) })

	notifier := &recordingNotifier{}
	return &fixture{
		db:       db,
		svc:      New(db, cfg, log, notifier),
		notifier: notifier,
		ctx:      context.Background(),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := f.svc.Users.CreateUser(f.ctx, name, name+"@example.com", "secret123")
	require.NoError(t, err)
	return u
}

func (f *fixture) course(t *testing.T, courseID string, instructor *models.User) *models.Course {
	t.Helper()
	c, err := f.svc.Catalog.CreateCourse(f.ctx, CourseInput{
		CourseID:     courseID,
		Title:        "Course " + courseID,
		Description:  "A course used in tests",
		Duration:     3,
		InstructorID: instructor.ID,
		Price:        10,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) lesson(t *testing.T, course *models.Course, lessonID string, order int) *models.Lesson {
	t.Helper()
	l, err := f.svc.Catalog.CreateLesson(f.ctx, LessonInput{
		LessonID: lessonID,
		CourseID: course.ID,
		Title:    "Lesson " + lessonID,
		Content:  "content",
		Duration: 15,
		Order:    order,
	})
	require.NoError(t, err)
	return l
}

func (f *fixture) reloadCourse(t *testing.T, id string) models.Course {
	t.Helper()
	var c models.Course
	require.NoError(t, f.db.First(&c, "id = ?", id).Error)
	return c
}

func (f *fixture) countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

// hideRowsOnce makes the next query against table return no rows, standing
// in for a concurrent writer that commits right after that read.
func (f *fixture) hideRowsOnce(t *testing.T, table string) {
	t.Helper()
	var fired bool
	name := "test:hide_" + table + "_" + uuid.NewString()
	err := f.db.Callback().Query().Before("gorm:query").Register(name, func(db *gorm.DB) {
		if fired || db.Statement.Table != table {
			return
		}
		fired = true
		db.Statement.AddClause(clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "1 = 0"}}})
	})
	require.NoError(t, err)
}
