// Package format renders timestamps and durations for terminal output
// according to the display_date and display_time settings.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Formatter renders times in the configured style.
type Formatter struct {
	date string // display_date setting
	hour string // display_time setting
}

// New builds a Formatter from the display_date and display_time settings.
// Empty values fall back to "Jan 02" and "24h".
func New(displayDate, displayTime string) Formatter {
	if displayDate == "" {
		displayDate = "Jan 02"
	}
	if displayTime == "" {
		displayTime = "24h"
	}
	return Formatter{date: displayDate, hour: displayTime}
}

// DateTime formats a time with both date and time.
// Example output: "23/01/2024 15:04" or "01/23/2024 3:04 PM"
func (f Formatter) DateTime(t time.Time) string {
	return f.Date(t) + " " + f.Time(t)
}

// DateTimeShort formats a time with short date and time (no year).
func (f Formatter) DateTimeShort(t time.Time) string {
	return f.DateShort(t) + " " + f.Time(t)
}

// Date formats only the date portion.
func (f Formatter) Date(t time.Time) string {
	return t.Format(f.dateLayout())
}

// DateShort formats the date without year.
func (f Formatter) DateShort(t time.Time) string {
	return t.Format(f.dateLayoutShort())
}

// Time formats only the time portion.
func (f Formatter) Time(t time.Time) string {
	if f.hour == "12h" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// TimeFull formats time with seconds.
func (f Formatter) TimeFull(t time.Time) string {
	if f.hour == "12h" {
		return t.Format("3:04:05 PM")
	}
	return t.Format("15:04:05")
}

// Full formats with full date and time with seconds.
func (f Formatter) Full(t time.Time) string {
	return f.Date(t) + " " + f.TimeFull(t)
}

func (f Formatter) dateLayout() string {
	switch f.date {
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "yyyy-mm-dd":
		return "2006-01-02"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		// custom Go layout
		return f.date
	}
}

func (f Formatter) dateLayoutShort() string {
	switch f.date {
	case "mm/dd/yyyy":
		return "01/02"
	case "yyyy-mm-dd":
		return "01-02"
	case "dd/mm/yyyy":
		return "02/01"
	}

	short := f.date
	for _, year := range []string{"2006", "/06", "-06", " 06"} {
		short = strings.ReplaceAll(short, year, "")
	}
	short = strings.Trim(strings.TrimSpace(short), "/-")
	if short == "" {
		return "Jan 02"
	}
	return short
}

// Duration renders a run time compactly: "850ms", "4.2s", "3m05s", "1h02m".
func Duration(d time.Duration) string {
	switch {
	case d < 0:
		return "-" + Duration(-d)
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
