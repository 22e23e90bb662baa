package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
var reminderRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	HabitTypeBinary  = "binary"
	HabitTypeNumeric = "numeric"

	MaxNameLen = 100
	MaxDescLen = 500

	DefaultIcon = "default_icon"
)

// Habit is a tracked behavior. The record is treated as immutable by every
// reader: mutations go through Clone + full-record replacement so concurrent
// readers never observe a partially updated habit.
type Habit struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Category    string `json:"category,omitempty"`

	Type string  `json:"type"`
	Goal float64 `json:"goal"`
	Unit string  `json:"unit,omitempty"`

	// Frequency nil means daily.
	Frequency *Schedule `json:"frequency,omitempty"`

	// CompletedDates maps a DateKey to the activity recorded that day:
	// 1 for a completed binary habit, the accumulated amount for a numeric
	// one. An entry <= 0 is never stored; it is removed instead, so absence
	// of a key is the single representation of "no activity".
	CompletedDates map[string]float64 `json:"completed_dates,omitempty"`

	Reminders []string `json:"reminders,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

func validateHabit(name, desc, color, hType string, goal float64, freq *Schedule, reminders []string) (float64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrHabitNameEmpty
	}
	if len(strings.TrimSpace(name)) > MaxNameLen {
		return 0, ErrHabitNameTooLong
	}
	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return 0, ErrHabitDescTooLong
	}

	switch hType {
	case HabitTypeBinary, HabitTypeNumeric:
	default:
		return 0, ErrInvalidHabitType
	}

	finalGoal := goal
	if hType == HabitTypeBinary {
		finalGoal = 1
	} else if goal <= 0 {
		return 0, ErrInvalidGoal
	}

	if color != "" && !colorRegex.MatchString(color) {
		return 0, ErrInvalidColor
	}

	for _, r := range reminders {
		if !reminderRegex.MatchString(r) {
			return 0, ErrInvalidReminder
		}
	}

	if err := freq.Validate(); err != nil {
		return 0, err
	}

	return finalGoal, nil
}

// NewHabit creates a binary, daily habit with the given name. Callers refine
// type, goal and frequency through Update, mirroring the create flow of the
// service layer.
func NewHabit(userID, name string) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	goal, err := validateHabit(name, "", "", HabitTypeBinary, 1, nil, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Habit{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           strings.TrimSpace(name),
		Icon:           DefaultIcon,
		Type:           HabitTypeBinary,
		Goal:           goal,
		CompletedDates: make(map[string]float64),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Update replaces the definition fields of the habit. The completion log and
// identity are untouched; frequency changes apply from the next due check.
func (h *Habit) Update(name, description, icon, color, category, hType, unit string, goal float64, freq *Schedule, reminders []string) error {
	if h.ArchivedAt != nil {
		return ErrHabitArchived
	}

	cleanDesc := strings.TrimSpace(description)

	finalGoal, err := validateHabit(name, cleanDesc, color, hType, goal, freq, reminders)
	if err != nil {
		return err
	}

	if icon == "" {
		icon = DefaultIcon
	}
	if freq != nil {
		freq.Days = normalizeDays(freq.Days)
	}

	h.Name = strings.TrimSpace(name)
	h.Description = cleanDesc
	h.Icon = icon
	h.Color = color
	h.Category = category
	h.Type = hType
	h.Unit = unit
	h.Goal = finalGoal
	h.Frequency = freq
	h.Reminders = reminders
	h.UpdatedAt = time.Now().UTC()

	return nil
}

func (h *Habit) IsArchived() bool {
	return h.ArchivedAt != nil
}

func (h *Habit) Archive() {
	if h.ArchivedAt != nil {
		return
	}
	now := time.Now().UTC()
	h.ArchivedAt = &now
	h.UpdatedAt = now
}

func (h *Habit) Restore() {
	if h.ArchivedAt == nil {
		return
	}
	h.ArchivedAt = nil
	h.UpdatedAt = time.Now().UTC()
}

// SetCompletion records the activity for a day, replacing any previous value.
// A value <= 0 removes the entry entirely; zero is never stored.
func (h *Habit) SetCompletion(key string, value float64) {
	if h.CompletedDates == nil {
		h.CompletedDates = make(map[string]float64)
	}
	if value <= 0 {
		delete(h.CompletedDates, key)
	} else {
		h.CompletedDates[key] = value
	}
	h.UpdatedAt = time.Now().UTC()
}

// AddCompletion accumulates activity for a day (numeric habits log partial
// amounts through the day). The <= 0 removal rule applies to the sum.
func (h *Habit) AddCompletion(key string, delta float64) {
	h.SetCompletion(key, h.CompletedDates[key]+delta)
}

// ToggleCompletion flips a binary habit's day between done and not done.
func (h *Habit) ToggleCompletion(key string) {
	if h.CompletedDates[key] > 0 {
		h.SetCompletion(key, 0)
	} else {
		h.SetCompletion(key, 1)
	}
}

// CompletionOn returns the logged amount for a day, 0 when absent.
func (h *Habit) CompletionOn(key string) float64 {
	return h.CompletedDates[key]
}

// DoneOn reports whether any positive activity was logged for the day. This
// is the streak test: for numeric habits showing up counts, even below goal.
func (h *Habit) DoneOn(key string) bool {
	return h.CompletedDates[key] > 0
}

// GoalMetOn reports whether the day's activity reached the habit's goal.
// This is the stricter test used by strength scoring and perfect days.
func (h *Habit) GoalMetOn(key string) bool {
	v, ok := h.CompletedDates[key]
	if !ok {
		return false
	}
	if h.Type == HabitTypeNumeric {
		return v >= h.Goal
	}
	return v > 0
}

// Clone returns a deep copy of the habit. Writers mutate the copy and replace
// the stored record wholesale.
func (h *Habit) Clone() *Habit {
	c := *h

	if h.CompletedDates != nil {
		c.CompletedDates = make(map[string]float64, len(h.CompletedDates))
		for k, v := range h.CompletedDates {
			c.CompletedDates[k] = v
		}
	}
	if h.Reminders != nil {
		c.Reminders = append([]string(nil), h.Reminders...)
	}
	if h.ArchivedAt != nil {
		t := *h.ArchivedAt
		c.ArchivedAt = &t
	}
	if h.Frequency != nil {
		f := *h.Frequency
		if h.Frequency.Days != nil {
			f.Days = append([]Weekday(nil), h.Frequency.Days...)
		}
		if h.Frequency.StartDate != nil {
			t := *h.Frequency.StartDate
			f.StartDate = &t
		}
		c.Frequency = &f
	}

	return &c
}
