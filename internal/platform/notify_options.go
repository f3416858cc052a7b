package platform

import "time"

// AppName is reported to notification daemons that group by application.
const AppName = "layoutedit"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Urgent marks failures so they are not silently collapsed.
	Urgent bool
	// Expire is how long the notification stays up. Zero uses the default.
	Expire time.Duration
}

const defaultExpire = 5 * time.Second

func (o Options) expireMillis() int32 {
	if o.Expire <= 0 {
		return int32(defaultExpire / time.Millisecond)
	}
	return int32(o.Expire / time.Millisecond)
}
