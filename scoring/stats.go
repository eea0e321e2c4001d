package scoring

// RangeStats counts effective statuses for every day from startKey to
// endKey inclusive, truncated at today. Days after today are excluded
// from the walk entirely. Not-yet-due unset instances count nothing.
func (e *Engine) RangeStats(records RecordSet, startKey, endKey string) (RangeStats, error) {
	start, err := ParseDateKey(startKey)
	if err != nil {
		return RangeStats{}, err
	}
	end, err := ParseDateKey(endKey)
	if err != nil {
		return RangeStats{}, err
	}

	stats := RangeStats{ByPrayer: make(map[PrayerType]StatusCounts, len(PrayerOrder))}
	for _, p := range PrayerOrder {
		stats.ByPrayer[p] = StatusCounts{}
	}

	todayKey := e.clock.TodayKey()
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		dateKey := FormatDateKey(current)
		if dateKey > todayKey {
			break
		}

		record := records.Day(dateKey)
		for _, p := range PrayerOrder {
			effective := e.EffectiveStatus(record.StatusFor(p), dateKey, p)

			counts := stats.ByPrayer[p]
			switch effective {
			case StatusOnTime:
				stats.Total.OnTime++
				counts.OnTime++
			case StatusLate:
				stats.Total.Late++
				counts.Late++
			case StatusMissed:
				stats.Total.Missed++
				counts.Missed++
			}
			stats.ByPrayer[p] = counts
		}
	}

	return stats, nil
}
