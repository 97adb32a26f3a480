package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slot(day Weekday, sh, sm, eh, em int, id string) Entry[string] {
	return NewEntry(Interval{Day: day, Start: MustTimeOfDay(sh, sm), End: MustTimeOfDay(eh, em)}, id)
}

func sampleWeek() []Entry[string] {
	return []Entry[string]{
		slot(Tuesday, 8, 0, 9, 0, "C"),
		slot(Monday, 9, 0, 10, 0, "A"),
		slot(Monday, 9, 0, 10, 0, "B"),
	}
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry[string]
		now     time.Time
		want    []string
	}{
		{
			name:    "tie on the same start is grouped",
			entries: sampleWeek(),
			now:     monday(8, 0),
			want:    []string{"A", "B"},
		},
		{
			name:    "active slot is rotated past",
			entries: sampleWeek(),
			now:     monday(9, 30),
			want:    []string{"C"},
		},
		{
			name:    "slot active at its start boundary is rotated past",
			entries: sampleWeek(),
			now:     monday(9, 0),
			want:    []string{"C"},
		},
		{
			name:    "empty input",
			entries: nil,
			now:     monday(8, 0),
			want:    []string{},
		},
		{
			name:    "single passed slot wraps to next week",
			entries: []Entry[string]{slot(Monday, 8, 0, 9, 0, "X")},
			now:     monday(12, 0).AddDate(0, 0, 2),
			want:    []string{"X"},
		},
		{
			name: "later today beats finished and active ones",
			entries: []Entry[string]{
				slot(Monday, 8, 0, 9, 0, "done"),
				slot(Monday, 10, 0, 11, 30, "now"),
				slot(Monday, 14, 0, 15, 0, "later"),
				slot(Tuesday, 8, 0, 9, 0, "tomorrow"),
			},
			now:  monday(10, 15),
			want: []string{"later"},
		},
		{
			name: "everything passed keeps sorted order",
			entries: []Entry[string]{
				slot(Tuesday, 8, 0, 9, 0, "tue"),
				slot(Monday, 8, 0, 9, 0, "mon"),
			},
			now:  monday(12, 0).AddDate(0, 0, 6),
			want: []string{"mon"},
		},
		{
			name: "sunday is after saturday",
			entries: []Entry[string]{
				slot(Sunday, 8, 0, 9, 0, "sun"),
				slot(Saturday, 8, 0, 9, 0, "sat"),
			},
			now:  monday(12, 0).AddDate(0, 0, 4),
			want: []string{"sat"},
		},
		{
			name: "tie requires same start not same end",
			entries: []Entry[string]{
				slot(Wednesday, 9, 0, 11, 0, "long"),
				slot(Wednesday, 9, 0, 10, 0, "short"),
				slot(Wednesday, 9, 15, 10, 0, "other"),
			},
			now:  monday(8, 0),
			want: []string{"short", "long"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.entries, tt.now)
			assert.Equal(t, tt.want, Payloads(got))
		})
	}
}

func TestNextStart(t *testing.T) {
	iv := Interval{Day: Monday, Start: MustTimeOfDay(9, 0), End: MustTimeOfDay(10, 0)}

	assert.Equal(t, monday(9, 0), NextStart(iv, monday(8, 0)))
	assert.Equal(t, monday(9, 0).AddDate(0, 0, 7), NextStart(iv, monday(9, 0)))
	assert.Equal(t, monday(9, 0).AddDate(0, 0, 7), NextStart(iv, monday(9, 0).AddDate(0, 0, 3)))

	sunday := Interval{Day: Sunday, Start: MustTimeOfDay(18, 0), End: MustTimeOfDay(19, 0)}
	assert.Equal(t, monday(18, 0).AddDate(0, 0, 6), NextStart(sunday, monday(8, 0)))
}
