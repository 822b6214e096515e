package datemath

import "time"

// TimeContext anchors a conversation in the user's local calendar.
type TimeContext struct {
	Now       time.Time
	Timezone  string
	Today     time.Time
	Tomorrow  time.Time
	WeekStart time.Time
	WeekEnd   time.Time
}
