package punch

import "time"

// PunchEvent is one raw clock event pulled from a device. Rows are immutable
// once stored; the natural key (device_user_id, timestamp) dedupes re-syncs.
type PunchEvent struct {
	ID            string
	DeviceUserID  string
	Timestamp     time.Time
	DirectionCode int // device-reported check-in/check-out code; informative only
	SyncedAt      time.Time
}
