package relay

import "errors"

var ErrUndefinedEventType = errors.New("no topic for event type")
