// Package progress derives study-progress statistics from the goal store and
// the session ledger. Nothing here is persisted: every computation is a pure
// function of the stored records and the explicit reference window or instant
// passed by the caller, so results can never go stale.
package progress

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/platform/logger"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// GoalProgress summarizes a user's goals by lifecycle status.
// Cancelled goals count toward TotalGoals but are not broken out.
// CompletedPercentage is nil when the user has no goals, so callers can
// distinguish "no data" from 0%.
type GoalProgress struct {
	TotalGoals          int  `json:"total_goals"`
	CompletedGoals      int  `json:"completed_goals"`
	ActiveGoals         int  `json:"active_goals"`
	CompletedPercentage *int `json:"completed_percentage,omitempty"`
}

// SubjectMinutes is one row of a per-subject study time breakdown.
type SubjectMinutes struct {
	Subject      string `json:"subject"`
	TotalMinutes int    `json:"total_minutes"`
	Percentage   int    `json:"percentage"`
}

// StudyStatistics aggregates study time within a window.
// SubjectBreakdown is sorted by descending minutes, ties broken by subject
// name ascending, and is empty when TotalMinutes is zero.
type StudyStatistics struct {
	TotalMinutes     int              `json:"total_minutes"`
	SubjectBreakdown []SubjectMinutes `json:"subject_breakdown"`
}

// Window is an inclusive range of calendar dates.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the given date falls inside the window.
// All comparisons are by UTC calendar date.
func (w Window) Contains(date time.Time) bool {
	d := domain.DateOf(date)
	return !d.Before(domain.DateOf(w.From)) && !d.After(domain.DateOf(w.To))
}

// MonthOf returns the window covering the calendar month containing t.
func MonthOf(t time.Time) Window {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return Window{From: from, To: to}
}

// Aggregator computes progress views over the goal store and session ledger.
// It performs no mutation and is safe to call concurrently with writers.
type Aggregator struct {
	goals         store.GoalStore
	sessions      store.SessionStore
	maxStreakDays int
	logger        *slog.Logger
}

// NewAggregator creates an Aggregator. maxStreakDays caps the reported
// streak length and must be at least 1.
// If log is nil, a default logger will be used.
func NewAggregator(
	goals store.GoalStore,
	sessions store.SessionStore,
	maxStreakDays int,
	log *slog.Logger,
) (*Aggregator, error) {
	if goals == nil {
		return nil, errors.New("goal store cannot be nil")
	}
	if sessions == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if maxStreakDays < 1 {
		return nil, errors.New("max streak days must be at least 1")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Aggregator{
		goals:         goals,
		sessions:      sessions,
		maxStreakDays: maxStreakDays,
		logger:        log.With(slog.String("component", "progress_aggregator")),
	}, nil
}

// GoalProgress counts the user's goals by status.
func (a *Aggregator) GoalProgress(ctx context.Context, userID uuid.UUID) (*GoalProgress, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	goals, err := a.goals.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load goals for progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	progress := &GoalProgress{TotalGoals: len(goals)}
	for _, goal := range goals {
		switch goal.Status {
		case domain.GoalStatusCompleted:
			progress.CompletedGoals++
		case domain.GoalStatusActive:
			progress.ActiveGoals++
		}
	}

	if progress.TotalGoals > 0 {
		pct := roundPercent(progress.CompletedGoals, progress.TotalGoals)
		progress.CompletedPercentage = &pct
	}

	return progress, nil
}

// StudyStatistics sums study minutes within the window and groups them by
// subject. The ledger's full history is scanned; the window filter is the
// only truncation applied.
func (a *Aggregator) StudyStatistics(
	ctx context.Context,
	userID uuid.UUID,
	window Window,
) (*StudyStatistics, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	sessions, err := a.sessions.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load sessions for statistics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	stats := &StudyStatistics{SubjectBreakdown: make([]SubjectMinutes, 0)}
	bySubject := make(map[string]int)
	for _, session := range sessions {
		if !window.Contains(session.SessionDate) {
			continue
		}
		stats.TotalMinutes += session.DurationMinutes
		bySubject[session.Subject] += session.DurationMinutes
	}

	if stats.TotalMinutes == 0 {
		return stats, nil
	}

	for subject, minutes := range bySubject {
		stats.SubjectBreakdown = append(stats.SubjectBreakdown, SubjectMinutes{
			Subject:      subject,
			TotalMinutes: minutes,
			Percentage:   roundPercent(minutes, stats.TotalMinutes),
		})
	}

	sort.Slice(stats.SubjectBreakdown, func(i, j int) bool {
		if stats.SubjectBreakdown[i].TotalMinutes != stats.SubjectBreakdown[j].TotalMinutes {
			return stats.SubjectBreakdown[i].TotalMinutes > stats.SubjectBreakdown[j].TotalMinutes
		}
		return stats.SubjectBreakdown[i].Subject < stats.SubjectBreakdown[j].Subject
	})

	return stats, nil
}

// StudyStreak returns the number of consecutive calendar days ending at
// asOf's date on which the user logged at least one session, capped at the
// configured maximum. A user with no session on asOf's date has a streak
// of zero regardless of earlier history.
func (a *Aggregator) StudyStreak(
	ctx context.Context,
	userID uuid.UUID,
	asOf time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	sessions, err := a.sessions.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load sessions for streak",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	// Distinct calendar dates with at least one session, from full history.
	dates := make(map[time.Time]struct{}, len(sessions))
	for _, session := range sessions {
		dates[domain.DateOf(session.SessionDate)] = struct{}{}
	}

	streak := 0
	day := domain.DateOf(asOf)
	for streak < a.maxStreakDays {
		if _, ok := dates[day]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak, nil
}

// roundPercent computes part/whole as a percentage rounded to the nearest
// integer, half away from zero.
func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
