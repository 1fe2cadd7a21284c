package domain

import (
	"fmt"
	"strings"
	"time"
)

// ScheduleBlock is one weekly slot of a course, e.g. Lunes 08:00-10:00.
type ScheduleBlock struct {
	Day   string `json:"day"`
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// Duration returns End-Start.
func (b ScheduleBlock) Duration() time.Duration {
	s, err1 := time.Parse("15:04", b.Start)
	e, err2 := time.Parse("15:04", b.End)
	if err1 != nil || err2 != nil {
		return 0
	}
	return e.Sub(s)
}

func (b ScheduleBlock) String() string {
	return b.Day + "@" + b.Start + "-" + b.End
}

// ParseSchedule decodes a schedule string of the form
// "Day@HH:MM-HH:MM|Day@HH:MM-HH:MM". Blocks keep their order. Empty segments
// are skipped, so "" yields no blocks.
func ParseSchedule(s string) ([]ScheduleBlock, error) {
	var blocks []ScheduleBlock
	for _, seg := range strings.Split(s, "|") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		day, span, ok := strings.Cut(seg, "@")
		day = strings.TrimSpace(day)
		if !ok || day == "" {
			return nil, fmt.Errorf("domain.ParseSchedule: block %q: missing day", seg)
		}
		start, end, ok := strings.Cut(span, "-")
		if !ok {
			return nil, fmt.Errorf("domain.ParseSchedule: block %q: missing time range", seg)
		}
		start, end = strings.TrimSpace(start), strings.TrimSpace(end)
		st, err := time.Parse("15:04", start)
		if err != nil {
			return nil, fmt.Errorf("domain.ParseSchedule: block %q: bad start time", seg)
		}
		et, err := time.Parse("15:04", end)
		if err != nil {
			return nil, fmt.Errorf("domain.ParseSchedule: block %q: bad end time", seg)
		}
		if !et.After(st) {
			return nil, fmt.Errorf("domain.ParseSchedule: block %q: end before start", seg)
		}
		blocks = append(blocks, ScheduleBlock{Day: day, Start: start, End: end})
	}
	return blocks, nil
}

// FormatSchedule is the inverse of ParseSchedule.
func FormatSchedule(blocks []ScheduleBlock) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.String()
	}
	return strings.Join(parts, "|")
}

// GroupScheduleByDay groups blocks by day, keeping their order within a day.
func GroupScheduleByDay(blocks []ScheduleBlock) map[string][]ScheduleBlock {
	out := make(map[string][]ScheduleBlock)
	for _, b := range blocks {
		out[b.Day] = append(out[b.Day], b)
	}
	return out
}
