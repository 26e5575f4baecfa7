package cache

import (
	"time"
)

// syncLocation は日次同期の基準タイムゾーンです。
var syncLocation = mustLoadLocation("Asia/Tokyo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// TimeUntilNext8AM は次の午前8時（日本時間）までの期間を返します。
// カタログの日次同期と同じ時刻なので、キャッシュは同期のたびに切れます。
func TimeUntilNext8AM() time.Duration {
	return timeUntilNext8AM(time.Now())
}

func timeUntilNext8AM(now time.Time) time.Duration {
	now = now.In(syncLocation)
	next8am := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, syncLocation)

	// 今日の午前8時が既に過ぎている場合は明日の午前8時を使用
	if !now.Before(next8am) {
		next8am = next8am.AddDate(0, 0, 1)
	}
	return next8am.Sub(now)
}
