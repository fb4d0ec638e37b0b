package model

import "time"

// Notification is a server-issued alert for the signed-in user. The server is
// the system of record; clients hold a cache that may lag by one poll interval.
type Notification struct {
	ID        int64            `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type,omitempty"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt,omitzero"`
}

// CountUnread returns how many notifications have not been read.
func CountUnread(notifications []Notification) int {
	n := 0
	for _, item := range notifications {
		if !item.IsRead {
			n++
		}
	}
	return n
}
