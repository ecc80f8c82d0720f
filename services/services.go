package services

import (
	"errors"
	"time"

	"campy/config"
	"campy/logger"
	"campy/metrics"
	"campy/utils"

	"gorm.io/gorm"
)

// Services bundles every domain service behind one constructor so the
// transport layer can be wired in a single place.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Catalog    *CatalogService
	Enrollment *EnrollmentService
	Progress   *ProgressService
	Reconciler *Reconciler
}

func New(db *gorm.DB, cfg *config.Config, log *logger.Logger, notifier Notifier) *Services {
	m := metrics.Get()
	tokens := NewTokenManager(cfg.JWTKey, cfg.TokenTTL)
	return &Services{
		Auth:       NewAuthService(db, tokens, cfg.SaltRound, log),
		Users:      NewUserService(db, cfg.SaltRound, log),
		Catalog:    NewCatalogService(db, log),
		Enrollment: NewEnrollmentService(db, log, m, notifier),
		Progress:   NewProgressService(db, log, m, notifier),
		Reconciler: NewReconciler(db, log, m),
	}
}

// lookupError maps a failed single-row lookup to NotFound or Internal.
func lookupError(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError(notFoundMsg)
	}
	return utils.NewInternalError("database error", err)
}

// writeError maps a failed insert/update, turning unique violations into Conflict.
func writeError(err error, conflictMsg string) error {
	if _, ok := utils.AsAppError(err); ok {
		return err
	}
	if isDuplicate(err) {
		return utils.NewConflictError(conflictMsg)
	}
	return utils.NewInternalError("database error", err)
}

func dbError(err error) error {
	if _, ok := utils.AsAppError(err); ok {
		return err
	}
	return utils.NewInternalError("database error", err)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// roundPercent returns round-half-up(100 * part / total), 0 when total is 0.
func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// roundMean returns the round-half-up integer mean of values, 0 when empty.
func roundMean(values []int) int {
	n := len(values)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return (2*sum + n) / (2 * n)
}

type clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
