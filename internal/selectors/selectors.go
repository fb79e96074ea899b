// Package selectors holds pure derived-view functions over store state.
// Nothing here owns state: every function is deterministic for identical
// inputs and never mutates its arguments.
package selectors

import (
	"sort"
	"strings"
	"time"

	"github.com/acework2u/ai-smart-plants/internal/domain"
)

// SortKey selects the ordering of SortedPlants.
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByStatus SortKey = "status"
	SortByRecent SortKey = "recent"
)

// statusSeverity fixes the status sort order: healthy < warning < critical.
var statusSeverity = map[domain.PlantStatus]int{
	domain.StatusHealthy:  0,
	domain.StatusWarning:  1,
	domain.StatusCritical: 2,
}

// HeroStats is the dashboard headline aggregate.
type HeroStats struct {
	Total          int `json:"total"`
	Healthy        int `json:"healthy"`
	NeedsAttention int `json:"needsAttention"`
}

// DayGroup is one calendar day's worth of activity entries.
type DayGroup struct {
	DateISO string                 `json:"dateISO"`
	Entries []domain.ActivityEntry `json:"entries"`
}

// SortedPlants returns a sorted copy of plants. Name sorts are case-folded
// lexicographic; status sorts by fixed severity; recent sorts by UpdatedAt
// (falling back to CreatedAt) descending. Equal elements keep their input
// order so repeated calls yield identical output.
func SortedPlants(plants []domain.Plant, key SortKey) []domain.Plant {
	sorted := append([]domain.Plant(nil), plants...)

	switch key {
	case SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	case SortByStatus:
		sort.SliceStable(sorted, func(i, j int) bool {
			return statusSeverity[sorted[i].Status] < statusSeverity[sorted[j].Status]
		})
	case SortByRecent:
		sort.SliceStable(sorted, func(i, j int) bool {
			return lastTouched(sorted[i]).After(lastTouched(sorted[j]))
		})
	}
	return sorted
}

// ComputeHeroStats counts plants for the dashboard header. Warning and
// critical plants both need attention.
func ComputeHeroStats(plants []domain.Plant) HeroStats {
	stats := HeroStats{Total: len(plants)}
	for _, plant := range plants {
		if plant.Status == domain.StatusHealthy {
			stats.Healthy++
		} else {
			stats.NeedsAttention++
		}
	}
	return stats
}

// GroupActivitiesByDay buckets entries by their DateISO day, newest day
// first. Within a day, entries keep their input order. Labeling a day as
// "today" or "yesterday" is the caller's job: it depends on the caller's
// clock, which a pure function must not read.
func GroupActivitiesByDay(entries []domain.ActivityEntry) []DayGroup {
	byDay := make(map[string][]domain.ActivityEntry)
	days := make([]string, 0)
	for _, entry := range entries {
		if _, seen := byDay[entry.DateISO]; !seen {
			days = append(days, entry.DateISO)
		}
		byDay[entry.DateISO] = append(byDay[entry.DateISO], entry)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		groups = append(groups, DayGroup{
			DateISO: day,
			Entries: append([]domain.ActivityEntry(nil), byDay[day]...),
		})
	}
	return groups
}

func lastTouched(p domain.Plant) time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.CreatedAt
}
