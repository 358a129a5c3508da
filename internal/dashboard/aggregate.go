// Package dashboard computes the coach dashboard from the plans a coach owns.
package dashboard

import (
	"sort"
	"time"

	"alcyxob/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	days          = 7
	upcomingLimit = 5

	DistributionCompleted = "Completed"
	DistributionUpcoming  = "Upcoming (7 days)"
	DistributionPending   = "Pending"
)

// Stats are the headline numbers.
type Stats struct {
	ActivePlans               int     `json:"activePlans"`
	CompletedSessionsThisWeek int     `json:"completedSessionsThisWeek"`
	CompletionRate            float64 `json:"completionRate"` // completedSessionsThisWeek / totalSessions, 0 when empty
	TotalSessions             int     `json:"totalSessions"`
}

// DayProgress is one calendar day of the trailing week.
type DayProgress struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Day       string `json:"day"`  // Mon, Tue, ...
	Scheduled int    `json:"scheduled"`
	Completed int    `json:"completed"`
}

// UpcomingSession is an incomplete session scheduled within the next 7 days.
type UpcomingSession struct {
	PlanID      primitive.ObjectID `json:"planId"`
	PlanName    string             `json:"planName"`
	SessionID   string             `json:"sessionId"`
	SessionName string             `json:"sessionName"`
	Date        string             `json:"date"`
	AthleteID   primitive.ObjectID `json:"athleteId"`
	AthleteName string             `json:"athleteName"`

	at time.Time
}

// Slice is one entry of the session distribution.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Dashboard struct {
	Stats               Stats             `json:"stats"`
	WeeklyProgress      []DayProgress     `json:"weeklyProgress"`
	UpcomingSessions    []UpcomingSession `json:"upcomingSessions"`
	SessionDistribution []Slice           `json:"sessionDistribution"`
}

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseSessionDate interprets an opaque session date. Layouts without a zone are read in loc.
func ParseSessionDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// Aggregate builds the dashboard for the given plans as of now. Calendar days are taken in
// now's location. athleteNames maps athlete ids to display names; missing names stay empty.
func Aggregate(plans []*domain.TrainingPlan, athleteNames map[primitive.ObjectID]string, now time.Time) *Dashboard {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	horizon := now.Add(days * 24 * time.Hour)

	weekly := make([]DayProgress, days)
	bucket := make(map[string]int, days)
	for i := range weekly {
		day := today.AddDate(0, 0, i-(days-1))
		key := day.Format("2006-01-02")
		weekly[i] = DayProgress{Date: key, Day: day.Format("Mon")}
		bucket[key] = i
	}

	var (
		stats                    Stats
		upcoming                 []UpcomingSession
		completed, soon, pending int
	)

	for _, plan := range plans {
		if plan.HasIncompleteSession() {
			stats.ActivePlans++
		}
		for _, s := range plan.Sessions {
			stats.TotalSessions++

			at, ok := ParseSessionDate(s.Date, loc)
			if ok {
				if i, hit := bucket[at.Format("2006-01-02")]; hit {
					weekly[i].Scheduled++
					if s.Completed {
						weekly[i].Completed++
					}
				}
			}

			switch {
			case s.Completed:
				completed++
			case ok && !at.Before(now) && at.Before(horizon):
				soon++
				upcoming = append(upcoming, UpcomingSession{
					PlanID:      plan.ID,
					PlanName:    plan.Name,
					SessionID:   s.SessionID,
					SessionName: s.SessionName,
					Date:        s.Date,
					AthleteID:   plan.AthleteID,
					AthleteName: athleteNames[plan.AthleteID],
					at:          at,
				})
			default:
				pending++
			}
		}
	}

	for _, d := range weekly {
		stats.CompletedSessionsThisWeek += d.Completed
	}
	if stats.TotalSessions > 0 {
		stats.CompletionRate = float64(stats.CompletedSessionsThisWeek) / float64(stats.TotalSessions)
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].at.Before(upcoming[j].at) })
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	if upcoming == nil {
		upcoming = []UpcomingSession{}
	}

	return &Dashboard{
		Stats:            stats,
		WeeklyProgress:   weekly,
		UpcomingSessions: upcoming,
		SessionDistribution: []Slice{
			{Name: DistributionCompleted, Value: completed},
			{Name: DistributionUpcoming, Value: soon},
			{Name: DistributionPending, Value: pending},
		},
	}
}
