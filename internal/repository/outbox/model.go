package outbox

import "time"

type EventDB struct {
	ID        string
	Type      string
	Key       string
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}
