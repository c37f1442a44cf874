package domain

import (
	"math"
	"time"
)

const (
	StatusNotRead = "Not Read"
	dateLayout    = "2006-01-02"
)

type PushRecord struct {
	Title        string
	URL          string
	Summary      string
	WhyItMatters string
	Tags         []string
	Status       string
	Date         string
	Week         int
}

// NewPushRecord stamps record with the UTC calendar date of now and its ISO week.
func NewPushRecord(record SummaryRecord, sourceURL string, now time.Time) PushRecord {
	today := now.UTC()

	tags := record.Tags
	if tags == nil {
		tags = []string{}
	}

	return PushRecord{
		Title:        sourceURL,
		URL:          sourceURL,
		Summary:      record.Summary,
		WhyItMatters: record.WhyItMatters,
		Tags:         tags,
		Status:       StatusNotRead,
		Date:         today.Format(dateLayout),
		Week:         ISOWeek(today),
	}
}

// ISOWeek returns the ISO-8601 week number of t's calendar date.
func ISOWeek(t time.Time) int {
	year, month, day := t.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	thursday := date.AddDate(0, 0, 4-weekday)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(yearStart).Hours() / 24)

	return int(math.Ceil(float64(days+1) / 7))
}
