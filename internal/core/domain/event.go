package domain

import "time"

// AccessEvent is the JSON payload published to the event broker for each access-trail entry
type AccessEvent struct {
	FileID    string    `json:"file_id"`
	LinkID    string    `json:"link_id,omitempty"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip,omitempty"`
}

// ToEvent converts an access-log entry into its broker payload
func (l *AccessLog) ToEvent() AccessEvent {
	e := AccessEvent{
		FileID:    l.FileID.String(),
		Action:    string(l.Action),
		Timestamp: l.Timestamp,
		IP:        l.IP,
	}
	if l.LinkID != nil {
		e.LinkID = l.LinkID.String()
	}
	return e
}
