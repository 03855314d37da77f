package amqp

import (
	"encoding/json"
	"time"
)

// MonthChangedMessage signals that recorded data for a month changed
// and budget checks should be re-evaluated. The worker fetches the
// month's transactions itself, so the payload stays small.
type MonthChangedMessage struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMonthChangedMessage(year, month int) *MonthChangedMessage {
	return &MonthChangedMessage{
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *MonthChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MonthChangedMessageFromJSON(data []byte) (*MonthChangedMessage, error) {
	var msg MonthChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
