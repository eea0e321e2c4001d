package scoring

// riskLookbackDays caps the backward walk. A streak longer than this
// still reports exactly riskLookbackDays.
const riskLookbackDays = 14

// riskThresholdDays is the streak length at which a student is flagged.
const riskThresholdDays = 3

// CheckRisk walks backward from yesterday and counts consecutive days
// with no activity. A day counts as active when at least one prayer has
// a stored ontime or late status. Deliberately stored status, not the
// effective one: an auto-missed day and an untouched day both read as
// inactive here.
func (e *Engine) CheckRisk(records RecordSet) RiskStatus {
	today, err := ParseDateKey(e.clock.TodayKey())
	if err != nil {
		return RiskStatus{}
	}

	consecutive := 0
	for i := 1; i <= riskLookbackDays; i++ {
		dateKey := FormatDateKey(today.AddDate(0, 0, -i))
		record := records.Day(dateKey)

		hasPerformance := false
		for _, p := range PrayerOrder {
			s := record.StatusFor(p)
			if s == StatusOnTime || s == StatusLate {
				hasPerformance = true
				break
			}
		}

		if hasPerformance {
			break
		}
		consecutive++
	}

	return RiskStatus{
		AtRisk:                  consecutive >= riskThresholdDays,
		ConsecutiveInactiveDays: consecutive,
	}
}
