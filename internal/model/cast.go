package model

import (
	"encoding/json"
	"time"
)

// CastRoom pairs a sending device with a receiving one. Stream is the opaque
// playback descriptor published by the sender; the room never inspects it.
type CastRoom struct {
	Code      string          `json:"code"`
	Stream    json.RawMessage `json:"stream"`
	CreatedAt time.Time       `json:"createdAt"`
	Connected bool            `json:"connected"`
}
