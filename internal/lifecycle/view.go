package lifecycle

import (
	"sort"
	"time"

	"interview-portal/internal/model"
)

// Card is an interview together with its gate, as rendered on a dashboard.
type Card struct {
	model.Interview
	Gate Gate `json:"gate"`
}

// Board splits cards into upcoming (not yet over, soonest first) and past
// (most recent first).
type Board struct {
	Upcoming []Card `json:"upcoming"`
	Past     []Card `json:"past"`
}

func Cards(now time.Time, ivs []model.Interview) []Card {
	out := make([]Card, len(ivs))
	for i, iv := range ivs {
		out[i] = Card{Interview: iv, Gate: ForInterview(now, iv)}
	}
	return out
}

// Arrange puts an interview in Upcoming while it is scheduled or in
// progress and its window has not closed; everything else is Past.
func Arrange(now time.Time, ivs []model.Interview) Board {
	b := Board{Upcoming: []Card{}, Past: []Card{}}
	for _, c := range Cards(now, ivs) {
		active := c.Status == model.StatusScheduled || c.Status == model.StatusInProgress
		if active && !now.After(c.Gate.JoinClosesAt) {
			b.Upcoming = append(b.Upcoming, c)
		} else {
			b.Past = append(b.Past, c)
		}
	}
	sort.SliceStable(b.Upcoming, func(i, j int) bool {
		return b.Upcoming[i].ScheduledAt.Before(b.Upcoming[j].ScheduledAt)
	})
	sort.SliceStable(b.Past, func(i, j int) bool {
		return b.Past[i].ScheduledAt.After(b.Past[j].ScheduledAt)
	})
	return b
}
