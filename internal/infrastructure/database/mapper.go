package database

import (
	"encoding/json"
	"fmt"

	"eventbot/internal/domain/entities"
)

// eventRow mirrors the columns of the events table.
type eventRow struct {
	ID        string
	MessageID string
	Status    string
	CreatedAt int64
	Data      []byte
}

func eventToRow(e *entities.Event) (eventRow, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return eventRow{}, fmt.Errorf("encode event %s: %w", e.ID, err)
	}
	return eventRow{
		ID:        e.ID,
		MessageID: e.MessageID,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		Data:      data,
	}, nil
}

// eventToDomain decodes the JSONB payload; the indexed columns are only
// lookup keys, data is authoritative.
func eventToDomain(data []byte) (*entities.Event, error) {
	var e entities.Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if e.MainRoster == nil {
		e.MainRoster = []string{}
	}
	if e.ReserveList == nil {
		e.ReserveList = []string{}
	}
	if e.Rejected == nil {
		e.Rejected = []string{}
	}
	return &e, nil
}
