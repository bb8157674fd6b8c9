package quota

import "time"

// dayLayout は日次カウンターのキーに使う日付フォーマットです。
const dayLayout = "2006-01-02"

// DayKey は loc における now の日付キー（YYYY-MM-DD）を返します。
func DayKey(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(dayLayout)
}

// TimeUntilNextDay は loc における次の0時までの期間を返します。
func TimeUntilNextDay(now time.Time, loc *time.Location) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return next.Sub(local)
}
