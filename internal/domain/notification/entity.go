package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeInstantLate        NotificationType = "instant_late"
	TypeLatenessEscalation NotificationType = "lateness_escalation"
	TypeMorningReminder    NotificationType = "morning_reminder"
	TypeMonthlyReport      NotificationType = "monthly_report"
	TypeRequestSubmitted   NotificationType = "request_submitted"
	TypeRequestDecided     NotificationType = "request_decided"
	TypeGeneral            NotificationType = "general"
)

// Notification represents a notification entity. A nil Targets slice
// means the notification is addressed to everyone.
type Notification struct {
	ID        string
	Title     string
	Message   string
	Type      NotificationType
	Targets   []string
	CreatedAt time.Time
}

// IsBroadcast reports whether the notification should reach all users.
func (n Notification) IsBroadcast() bool {
	return n.Targets == nil
}
