package progress

import (
	"math"
	"slices"
	"time"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

const (
	metricsPerLevel = 3
	xpPerMetric     = 100
	xpPerLevel      = metricsPerLevel * xpPerMetric
)

// AverageScores are the mean scores rounded to whole points.
type AverageScores struct {
	Grammar int `json:"grammar"`
	Clarity int `json:"clarity"`
	Voice   int `json:"voice"`
	Overall int `json:"overall"`
}

// Dashboard is the aggregate view of a session's progress.
type Dashboard struct {
	AverageScores    AverageScores
	Improvement      int
	CurrentStreak    int
	Level            int
	CurrentXP        int
	RequiredXP       int
	TotalWords       int
	TotalDocuments   int
	AnalyzedCount    int
	LatestDocument   *domain.Document
	ActivePatterns   []domain.WritingPattern
	MasteredPatterns []domain.WritingPattern
	ActiveDays       []time.Time
}

// Dashboard computes the dashboard from the loaded state.
func (s *Service) Dashboard() Dashboard {
	snap := s.Snapshot()
	today := s.now()

	d := Dashboard{
		AverageScores:    averageScores(snap.Metrics),
		Improvement:      improvement(snap.Metrics),
		Level:            len(snap.Metrics)/metricsPerLevel + 1,
		CurrentXP:        (len(snap.Metrics) % metricsPerLevel) * xpPerMetric,
		RequiredXP:       xpPerLevel,
		TotalDocuments:   len(snap.Documents),
		AnalyzedCount:    len(snap.Metrics),
		ActivePatterns:   snap.ActivePatterns,
		MasteredPatterns: snap.MasteredPatterns,
	}

	for i, doc := range snap.Documents {
		d.TotalWords += doc.WordCount
		if d.LatestDocument == nil || doc.UpdatedAt.After(d.LatestDocument.UpdatedAt) {
			d.LatestDocument = &snap.Documents[i]
		}
	}

	d.ActiveDays = activeDays(snap.Documents, snap.Metrics, today.Location())
	d.CurrentStreak = CalculateStreak(d.ActiveDays, today)
	return d
}

func averageScores(metrics []domain.ProgressMetric) AverageScores {
	if len(metrics) == 0 {
		return AverageScores{}
	}

	var g, c, v, o float64
	for _, m := range metrics {
		g += m.GrammarScore
		c += m.ClarityScore
		v += m.VocabularyScore
		o += m.OverallScore
	}
	n := float64(len(metrics))
	return AverageScores{
		Grammar: round(g / n),
		Clarity: round(c / n),
		Voice:   round(v / n),
		Overall: round(o / n),
	}
}

func improvement(metrics []domain.ProgressMetric) int {
	if len(metrics) < 2 {
		return 0
	}
	return round(metrics[len(metrics)-1].OverallScore - metrics[0].OverallScore)
}

// round sends halves toward positive infinity, so -0.5 is 0 and 0.5 is 1.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// activeDays returns the distinct calendar days, newest first, on which a
// document was created or updated or an analysis was recorded.
func activeDays(docs []domain.Document, metrics []domain.ProgressMetric, loc *time.Location) []time.Time {
	seen := make(map[time.Time]struct{})
	add := func(t time.Time) {
		if t.IsZero() {
			return
		}
		seen[startOfDay(t.In(loc))] = struct{}{}
	}
	for _, d := range docs {
		add(d.CreatedAt)
		add(d.UpdatedAt)
	}
	for _, m := range metrics {
		add(m.CreatedAt)
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return b.Compare(a) })
	return days
}

// CalculateStreak returns the number of consecutive active days ending today,
// or ending yesterday when today has no activity yet. Days need not be
// sorted or distinct.
func CalculateStreak(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	loc := today.Location()
	active := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		active[startOfDay(d.In(loc))] = struct{}{}
	}

	expected := startOfDay(today)
	if _, ok := active[expected]; !ok {
		expected = expected.AddDate(0, 0, -1)
		if _, ok := active[expected]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := active[expected]; !ok {
			return streak
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
