package ui

import (
	"time"

	"github.com/dustin/go-humanize"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var magnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "now", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * day, Format: "1 day %s", DivBy: 1},
	{D: week, Format: "%d days %s", DivBy: day},
	{D: 2 * week, Format: "1 week %s", DivBy: 1},
	{D: 4 * week, Format: "%d weeks %s", DivBy: week},
}

// relativeTime describes t relative to now. Anything older than four weeks
// is shown as a date.
func relativeTime(then time.Time) string {
	now := time.Now()
	if then.After(now) {
		then = now
	}
	if now.Sub(then) < 4*week {
		return humanize.CustomRelTime(then, now, "ago", "from now", magnitudes)
	}
	return then.Format("02 Jan 2006 15:04 MST")
}
