// Package lifecycle derives the time and status based UI gates of an
// interview. Everything here is a pure function of its inputs and is meant
// to be recomputed on every request.
package lifecycle

import (
	"time"

	"interview-portal/internal/model"
)

// JoinLead is how early before the start the join action opens.
const JoinLead = 5 * time.Minute

// Gate is the set of booleans a dashboard needs to render one interview.
type Gate struct {
	IsUpcoming    bool      `json:"isUpcoming"`
	CanJoin       bool      `json:"canJoin"`
	CanCancel     bool      `json:"canCancel"`
	CanStart      bool      `json:"canStart"`
	CanComplete   bool      `json:"canComplete"`
	NeedsFeedback bool      `json:"needsFeedback"`
	JoinOpensAt   time.Time `json:"joinOpensAt"`
	JoinClosesAt  time.Time `json:"joinClosesAt"`
}

// JoinWindow returns [scheduledAt-5m, scheduledAt+duration]. A zero or
// negative duration collapses the close to scheduledAt.
func JoinWindow(scheduledAt time.Time, durationMin int) (opens, closes time.Time) {
	opens = scheduledAt.Add(-JoinLead)
	closes = scheduledAt
	if durationMin > 0 {
		closes = scheduledAt.Add(time.Duration(durationMin) * time.Minute)
	}
	return opens, closes
}

// IsUpcoming: now is before the start and the interview is still scheduled.
func IsUpcoming(now, scheduledAt time.Time, status model.Status) bool {
	return status == model.StatusScheduled && now.Before(scheduledAt)
}

// CanJoin: the interview is scheduled and now falls inside the join window,
// both ends inclusive.
func CanJoin(now, scheduledAt time.Time, durationMin int, status model.Status) bool {
	if status != model.StatusScheduled {
		return false
	}
	opens, closes := JoinWindow(scheduledAt, durationMin)
	return !now.Before(opens) && !now.After(closes)
}

func Derive(now, scheduledAt time.Time, durationMin int, status model.Status) Gate {
	opens, closes := JoinWindow(scheduledAt, durationMin)
	join := CanJoin(now, scheduledAt, durationMin, status)
	return Gate{
		IsUpcoming:   IsUpcoming(now, scheduledAt, status),
		CanJoin:      join,
		CanCancel:    status == model.StatusScheduled,
		CanStart:     join,
		CanComplete:  status == model.StatusInProgress,
		JoinOpensAt:  opens,
		JoinClosesAt: closes,
	}
}

// ForInterview derives the gate of iv, including the feedback reminder.
func ForInterview(now time.Time, iv model.Interview) Gate {
	g := Derive(now, iv.ScheduledAt, iv.Duration, iv.Status)
	g.NeedsFeedback = iv.Status == model.StatusCompleted && !iv.FeedbackSubmitted
	return g
}
