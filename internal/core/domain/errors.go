package domain

import "errors"

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong   = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidColor       = errors.New("invalid color format (must be #RRGGBB)")
	ErrInvalidHabitType   = errors.New("invalid habit type (must be binary or numeric)")
	ErrInvalidGoal        = errors.New("numeric habits require a positive goal")
	ErrInvalidWeekday     = errors.New("invalid weekday (must be Mon..Sun)")
	ErrInvalidInterval    = errors.New("interval cannot be negative")
	ErrInvalidReminder    = errors.New("invalid reminder format (must be HH:MM 24h)")
	ErrHabitArchived      = errors.New("cannot update an archived habit")

	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitExists   = errors.New("habit already exists")
	ErrUnauthorized  = errors.New("habit does not belong to user")

	// ErrImportFormat is the only failure the import boundary surfaces: the
	// payload's top-level "habits" key is not an array of habit records.
	ErrImportFormat = errors.New("invalid import format: habits must be an array")
)
