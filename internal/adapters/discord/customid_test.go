package discord

import "testing"

func TestParseCustomID(t *testing.T) {
	const id = "0190c7d2-8a3e-7b21-9f00-1a2b3c4d5e6f"
	tests := []struct {
		in      string
		action  string
		eventID string
		ok      bool
	}{
		{idCreateModal1, idCreateModal1, "", true},
		{idCreateStep2, idCreateStep2, "", true},
		{"event_reject_" + id, prefixJoin, id, true},
		{"event_cancel_" + id, prefixLeave, id, true},
		{"event_complete_" + id, prefixComplete, id, true},
		{"event_complete_type_" + id, prefixCompleteType, id, true},
		{"event_configure_modal_1_" + id, prefixConfigureModal1, id, true},
		{"event_configure_modal_2_" + id, prefixConfigureModal2, id, true},
		{"event_configure_step2_" + id, prefixConfigureStep2, id, true},
		{"event_reschedule_modal_" + id, prefixRescheduleModal, id, true},
		{"event_timer_modal_" + id, prefixTimerModal, id, true},
		{"event_lists_" + id, prefixLists, id, true},
		{"event_exclude_" + id, prefixExclude, id, true},
		{"event_ping_" + id, prefixPing, id, true},
		{"event_ping_", "", "", false},
		{"btn_join", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		action, eventID, ok := parseCustomID(tt.in)
		if action != tt.action || eventID != tt.eventID || ok != tt.ok {
			t.Errorf("parseCustomID(%q) = %q, %q, %v; want %q, %q, %v", tt.in, action, eventID, ok, tt.action, tt.eventID, tt.ok)
		}
	}
}

func TestCustomIDRoundTrip(t *testing.T) {
	for _, p := range eventPrefixes {
		action, eventID, ok := parseCustomID(customID(p, "abc"))
		if !ok || action != p || eventID != "abc" {
			t.Errorf("%s: got %q %q %v", p, action, eventID, ok)
		}
	}
}
