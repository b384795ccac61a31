package preference

import "time"

func parseMinuteOfDay(v string) (int, bool) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// InQuietHours reports whether now falls inside the user's quiet hours.
// With start < end the range is a same-day window; with start > end it wraps
// midnight. Never quiet when either bound is unset or unparsable.
func (p *Preference) InQuietHours(now time.Time) bool {
	if p.QuietHoursStart == nil || p.QuietHoursEnd == nil {
		return false
	}

	start, ok := parseMinuteOfDay(*p.QuietHoursStart)
	if !ok {
		return false
	}
	end, ok := parseMinuteOfDay(*p.QuietHoursEnd)
	if !ok {
		return false
	}

	n := now.Hour()*60 + now.Minute()
	if start <= end {
		return start <= n && n <= end
	}
	return n >= start || n <= end
}
