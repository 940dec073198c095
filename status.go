package l10n

import "sync"

// StatusKind classifies a user's presence.
type StatusKind int

const (
	StatusLongAgo StatusKind = iota
	StatusOnline
	StatusInvisible
	StatusRecently
	StatusWithinWeek
	StatusWithinMonth
	StatusLastSeen
)

func (k StatusKind) String() string {
	switch k {
	case StatusOnline:
		return "online"
	case StatusInvisible:
		return "invisible"
	case StatusRecently:
		return "recently"
	case StatusWithinWeek:
		return "within-week"
	case StatusWithinMonth:
		return "within-month"
	case StatusLastSeen:
		return "last-seen"
	default:
		return "long-ago"
	}
}

// Presence is the coarse status a server reports instead of a timestamp.
type Presence int

const (
	PresenceExact Presence = iota
	PresenceRecently
	PresenceLastWeek
	PresenceLastMonth
)

// UserStatus is the presence information needed to render a status line.
type UserStatus struct {
	UserID   int64
	Presence Presence
	// Expires is the online expiry or last seen time in Unix seconds, or
	// a marker.
	Expires int64
	Deleted bool
}

// Marker returns Expires with coarse presence folded into the marker
// values understood by FormatDateOnline.
func (s UserStatus) Marker() int64 {
	if s.Expires != 0 {
		return s.Expires
	}
	switch s.Presence {
	case PresenceRecently:
		return MarkerRecently
	case PresenceLastWeek:
		return MarkerWithinWeek
	case PresenceLastMonth:
		return MarkerWithinMonth
	default:
		return MarkerLongAgo
	}
}

// ClassifyStatus maps an expiry or marker to a StatusKind. online reports
// that the user was observed online despite a hidden status.
func ClassifyStatus(expires, now int64, online bool) StatusKind {
	if expires <= 0 && online {
		return StatusOnline
	}
	switch {
	case expires == MarkerLongAgo:
		return StatusLongAgo
	case expires > now:
		return StatusOnline
	case expires == MarkerInvisible:
		return StatusInvisible
	case expires == MarkerRecently:
		return StatusRecently
	case expires == MarkerWithinWeek:
		return StatusWithinWeek
	case expires == MarkerWithinMonth:
		return StatusWithinMonth
	case expires < 0:
		return StatusLongAgo
	default:
		return StatusLastSeen
	}
}

// StatusCache remembers users seen online while their status is hidden.
// Entries expire at the recorded time.
type StatusCache struct {
	mu     sync.Mutex
	online map[int64]int64
}

func NewStatusCache() *StatusCache {
	return &StatusCache{online: make(map[int64]int64)}
}

// MarkOnline records userID as online until the given Unix time.
func (c *StatusCache) MarkOnline(userID, until int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.online[userID] = until
	c.mu.Unlock()
}

func (c *StatusCache) Forget(userID int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.online, userID)
	c.mu.Unlock()
}

// IsOnline reports whether userID has an unexpired entry at now. Expired
// entries are dropped.
func (c *StatusCache) IsOnline(userID, now int64) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	until, ok := c.online[userID]
	if !ok {
		return false
	}
	if until <= now {
		delete(c.online, userID)
		return false
	}
	return true
}

func (c *StatusCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.online)
}

// FormatUserStatus renders the presence line for a user.
func (e *Engine) FormatUserStatus(status UserStatus) (out string) {
	defer e.recoverSentinel("formatUserStatus", &out)

	snap := e.load()
	if status.Deleted {
		return e.resolveIn(snap, "ALongTimeAgo", "")
	}

	now := e.cfg.Clock().Unix()
	expires := status.Marker()
	online := expires <= 0 && e.cfg.Statuses.IsOnline(status.UserID, now)

	switch ClassifyStatus(expires, now, online) {
	case StatusOnline:
		return e.resolveIn(snap, "Online", "")
	case StatusInvisible:
		return e.resolveIn(snap, "Invisible", "")
	case StatusRecently:
		return e.resolveIn(snap, "Lately", "")
	case StatusWithinWeek:
		return e.resolveIn(snap, "WithinAWeek", "")
	case StatusWithinMonth:
		return e.resolveIn(snap, "WithinAMonth", "")
	case StatusLastSeen:
		return e.FormatDateOnline(expires)
	default:
		return e.resolveIn(snap, "ALongTimeAgo", "")
	}
}
