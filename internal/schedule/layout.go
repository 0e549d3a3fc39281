package schedule

import (
	"sort"
	"time"
)

// LayoutEntry positions one event within its day column. Width and Left
// are percentages of the day's horizontal space.
type LayoutEntry struct {
	Width float64 // (0, 100]
	Left  float64 // [0, 100)
}

// Layout computes side-by-side column positions for the timed events of
// one rendering day (the caller pre-filters to a single day). Events
// that overlap in time land in different columns of equal width; events
// that merely touch (one ends exactly when the next starts) do not
// split each other.
//
// The result maps event ID → entry. Events in different clusters never
// influence each other's column count.
func Layout(events []ScheduledEvent) map[string]LayoutEntry {
	entries := make(map[string]LayoutEntry, len(events))
	if len(events) == 0 {
		return entries
	}

	sorted := make([]ScheduledEvent, len(events))
	copy(sorted, events)
	// Earlier start first; for simultaneous starts the longer event
	// comes first so it claims the leftmost column and stacks beneath.
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].Duration > sorted[j].Duration
	})

	for _, cluster := range clusterSweep(sorted) {
		layoutCluster(cluster, entries)
	}
	return entries
}

// layoutEnd is the interval end used for clustering and packing.
// Duration is already clamped non-negative, so an inverted stored End
// degenerates to a zero-length interval at Start.
func layoutEnd(ev ScheduledEvent) time.Time {
	return ev.Start.Add(time.Duration(ev.Duration) * time.Minute)
}

// clusterSweep splits the sorted events into maximal runs of
// transitively overlapping intervals. An event extends the current
// cluster only when it starts strictly before the cluster's running
// maximum end; a shared boundary instant closes the cluster.
func clusterSweep(sorted []ScheduledEvent) [][]ScheduledEvent {
	var (
		clusters   [][]ScheduledEvent
		current    []ScheduledEvent
		currentEnd time.Time
	)

	for _, ev := range sorted {
		if len(current) > 0 && ev.Start.Before(currentEnd) {
			current = append(current, ev)
			if end := layoutEnd(ev); end.After(currentEnd) {
				currentEnd = end
			}
			continue
		}
		if len(current) > 0 {
			clusters = append(clusters, current)
		}
		current = []ScheduledEvent{ev}
		currentEnd = layoutEnd(ev)
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}
	return clusters
}

// layoutCluster packs one cluster into columns greedily: each event
// takes the first column whose last occupant has ended by the event's
// start, or opens a new column. All columns share the cluster's width.
func layoutCluster(cluster []ScheduledEvent, entries map[string]LayoutEntry) {
	var columnEnds []time.Time
	columnOf := make(map[string]int, len(cluster))

	for _, ev := range cluster {
		placed := false
		for col, colEnd := range columnEnds {
			if !colEnd.After(ev.Start) {
				columnEnds[col] = layoutEnd(ev)
				columnOf[ev.ID] = col
				placed = true
				break
			}
		}
		if !placed {
			columnEnds = append(columnEnds, layoutEnd(ev))
			columnOf[ev.ID] = len(columnEnds) - 1
		}
	}

	width := 100.0 / float64(len(columnEnds))
	for _, ev := range cluster {
		entries[ev.ID] = LayoutEntry{
			Width: width,
			Left:  float64(columnOf[ev.ID]) * width,
		}
	}
}
