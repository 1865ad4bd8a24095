package agent

import (
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // reference zone must resolve on hosts without a zoneinfo database
)

// DefaultTimezone anchors "today" for date normalization.
const DefaultTimezone = "Asia/Kolkata"

const dateLayout = "2006-01-02"

var (
	todayWord     = regexp.MustCompile(`\btoday\b`)
	yesterdayWord = regexp.MustCompile(`\byesterday\b`)
	tomorrowWord  = regexp.MustCompile(`\btomorrow\b`)
	clockWithAmPm = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(am|pm)?)`)
	clockPattern  = regexp.MustCompile(`\d{1,2}:\d{2}`)
	ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	ofWord        = regexp.MustCompile(`(?i)\s+of\s+`)
	extraSpace    = regexp.MustCompile(`\s+`)
)

var todayLiterals = map[string]struct{}{
	"now":     {},
	"todays":  {},
	"today's": {},
}

// Explicit layouts accepted for the date field. Numeric day/month orders
// follow the Indian convention (day first).
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"02-01-2006",
	"02/01/2006",
	"2/1/2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan, 2006",
	"2 January, 2006",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// Layouts without a year resolve to the current year in the reference zone.
var yearlessLayouts = []string{
	"2 Jan",
	"2 January",
	"Jan 2",
	"January 2",
	"2/1",
	"2-1",
}

// Normalizer canonicalizes the HCP name and temporal fields of a draft.
type Normalizer struct {
	loc    *time.Location
	now    func() time.Time
	logger Logger
}

type NormalizerOption func(*Normalizer)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) {
		n.now = now
	}
}

func WithNormalizerLogger(l Logger) NormalizerOption {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewNormalizer resolves the reference timezone once. An unknown zone name
// falls back to time.Local for the lifetime of the normalizer.
func NewNormalizer(timezone string, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		now:    time.Now,
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(n)
	}

	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		n.logger.Warn(logModule, "Timezone unavailable, using local time", map[string]interface{}{
			"timezone": timezone,
			"error":    err.Error(),
		})
		loc = time.Local
	}
	n.loc = loc
	return n
}

// Location is the zone used to compute "today".
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Today returns the current date in the reference zone as YYYY-MM-DD.
func (n *Normalizer) Today() string {
	return n.now().In(n.loc).Format(dateLayout)
}

// Normalize returns a normalized copy of the draft. It is idempotent.
func (n *Normalizer) Normalize(draft Draft) Draft {
	out := draft.Clone()

	out.HCPName = normalizeHCPName(out.HCPName)
	out.Date = n.normalizeDate(out.Date)
	out.OccurredAt = normalizeOccurredAt(out.OccurredAt)

	if strings.TrimSpace(out.Time) == "" && strings.TrimSpace(out.OccurredAt) != "" {
		if clockPattern.MatchString(out.OccurredAt) {
			out.Time = out.OccurredAt
		}
	}

	return out
}

func normalizeHCPName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	low := strings.ToLower(name)
	switch {
	case strings.HasPrefix(low, "doctor "):
		return "Dr. " + strings.TrimSpace(name[len("doctor "):])
	case !strings.HasPrefix(low, "dr"):
		return "Dr. " + name
	default:
		return name
	}
}

func (n *Normalizer) normalizeDate(raw string) string {
	today := n.now().In(n.loc)
	trimmed := strings.TrimSpace(raw)
	low := strings.ToLower(trimmed)

	if _, ok := todayLiterals[low]; ok || todayWord.MatchString(low) {
		return today.Format(dateLayout)
	}
	if low == "" {
		return today.Format(dateLayout)
	}
	if yesterdayWord.MatchString(low) {
		return today.AddDate(0, 0, -1).Format(dateLayout)
	}
	if tomorrowWord.MatchString(low) {
		return today.AddDate(0, 0, 1).Format(dateLayout)
	}
	if d, ok := n.parseExplicitDate(trimmed, today); ok {
		return d
	}

	n.logger.Warn(logModule, "Unrecognized date replaced with today", map[string]interface{}{
		"date": raw,
	})
	return today.Format(dateLayout)
}

// parseExplicitDate reads a calendar date written out by the user, with or
// without ordinal suffixes ("15th of March") and with or without a year.
func (n *Normalizer) parseExplicitDate(raw string, today time.Time) (string, bool) {
	cleaned := ordinalSuffix.ReplaceAllString(raw, "$1")
	cleaned = ofWord.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(extraSpace.ReplaceAllString(cleaned, " "))

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, n.loc); err == nil {
			return t.Format(dateLayout), true
		}
	}
	for _, layout := range yearlessLayouts {
		t, err := time.ParseInLocation(layout, cleaned, n.loc)
		if err != nil {
			continue
		}
		d := time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, n.loc)
		if d.Month() != t.Month() {
			// 29 February outside a leap year.
			continue
		}
		return d.Format(dateLayout), true
	}
	return "", false
}

func normalizeOccurredAt(raw string) string {
	low := strings.ToLower(strings.TrimSpace(raw))
	if !todayWord.MatchString(low) {
		return raw
	}
	if m := clockWithAmPm.FindStringSubmatch(low); m != nil {
		return m[1]
	}
	return ""
}
