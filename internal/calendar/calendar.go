// Package calendar converts calendar dates between the storage form
// (YYYY-MM-DD) and the display form (DD/MM/YYYY).
package calendar

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	StorageLayout = time.DateOnly
	DisplayLayout = "02/01/2006"
)

var ErrInvalidDate = errors.New("invalid date")

var (
	storagePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	displayPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// Normalizer converts dates using Now as the fallback for unrecognized input.
type Normalizer struct {
	Now func() time.Time
}

var defaultNormalizer = Normalizer{Now: time.Now}

// ToStorage converts a display date to storage form using the wall clock for fallbacks.
func ToStorage(s string) string {
	return defaultNormalizer.ToStorage(s)
}

// ToStorage accepts storage form unchanged and re-orders display form,
// zero-padding day and month. Anything else falls back to today's date.
func (n Normalizer) ToStorage(s string) string {
	s = strings.TrimSpace(s)

	if storagePattern.MatchString(s) {
		return s
	}

	if m := displayPattern.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], pad(m[2]), pad(m[1]))
	}

	today := n.now().Format(StorageLayout)
	slog.Warn("unrecognized date format, using today", "input", s, "fallback", today)

	return today
}

// ToDisplay reverses the field order of a storage date. The input is assumed
// to be zero-padded already; unrecognized input is returned unchanged.
func ToDisplay(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return s
	}

	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// ParseStrict parses a date in storage or display form and rejects anything
// else, including impossible calendar dates.
func ParseStrict(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var normalized string

	switch {
	case storagePattern.MatchString(s):
		normalized = s
	case displayPattern.MatchString(s):
		m := displayPattern.FindStringSubmatch(s)
		normalized = fmt.Sprintf("%s-%s-%s", m[3], pad(m[2]), pad(m[1]))
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	t, err := time.Parse(StorageLayout, normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return t, nil
}

// FormatStorage renders t as YYYY-MM-DD.
func FormatStorage(t time.Time) string {
	return t.Format(StorageLayout)
}

// FormatDisplay renders t as DD/MM/YYYY.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// Today truncates now to midnight UTC of the same calendar day.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (n Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}

	return n.Now()
}

func pad(s string) string {
	v, _ := strconv.Atoi(s)
	return fmt.Sprintf("%02d", v)
}
