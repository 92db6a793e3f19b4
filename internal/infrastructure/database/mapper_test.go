package database

import (
	"testing"

	"eventbot/internal/domain/entities"
)

func TestEventRowRoundTripKeepsLookupColumns(t *testing.T) {
	ev := &entities.Event{
		ID:               "id-1",
		Name:             "Raid",
		ParticipantLimit: 5,
		Time:             "09:05",
		CreatorID:        "c",
		MainRoster:       []string{"u1"},
		Status:           entities.StatusActive,
		ChannelID:        "chan",
		MessageID:        "msg",
		CreatedAt:        42,
		Notified:         true,
	}
	row, err := eventToRow(ev)
	if err != nil {
		t.Fatal(err)
	}
	if row.ID != "id-1" || row.MessageID != "msg" || row.Status != "active" || row.CreatedAt != 42 {
		t.Errorf("row columns = %+v", row)
	}

	back, err := eventToDomain(row.Data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Name != "Raid" || !back.Notified || len(back.MainRoster) != 1 {
		t.Errorf("decoded = %+v", back)
	}
	if back.ReserveList == nil || back.Rejected == nil {
		t.Errorf("reserved lists must decode as empty slices, got %v %v", back.ReserveList, back.Rejected)
	}
}
