package settings

import (
	"fmt"
	"strings"
)

// NotificationLevel is the minimum severity a notification needs to be shown.
// LevelNone shows nothing.
type NotificationLevel uint8

const (
	LevelNone NotificationLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

// DefaultNotificationLevel applies when no level is configured.
const DefaultNotificationLevel = LevelInfo

// String returns the level name as stored in settings files.
func (l NotificationLevel) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return DefaultNotificationLevel.String()
	}
}

// Shows reports whether a notification of severity sev passes this threshold.
func (l NotificationLevel) Shows(sev NotificationLevel) bool {
	if l == LevelNone || sev == LevelNone {
		return false
	}
	return sev >= l
}

// ParseNotificationLevel parses a level name, case-insensitively.
func ParseNotificationLevel(s string) (NotificationLevel, error) {
	for _, l := range NotificationLevels() {
		if strings.EqualFold(l.String(), s) {
			return l, nil
		}
	}
	return DefaultNotificationLevel, fmt.Errorf("unknown notification level %q", s)
}

// NotificationLevels returns all levels, lowest first.
func NotificationLevels() []NotificationLevel {
	return []NotificationLevel{LevelNone, LevelInfo, LevelWarning, LevelError}
}

// notificationLevelNames lists the level names used as enum choices.
func notificationLevelNames() []string {
	levels := NotificationLevels()
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}
	return names
}
