package discord

import "strings"

// Custom ids of every interactive component. Per-event ids are the prefix
// followed by the event id.
const (
	idCreateModal1 = "event_create_modal_1"
	idCreateModal2 = "event_create_modal_2"
	idCreateStep2  = "event_create_step2"

	prefixConfigureModal1 = "event_configure_modal_1_"
	prefixConfigureModal2 = "event_configure_modal_2_"
	prefixConfigureStep2  = "event_configure_step2_"
	prefixRescheduleModal = "event_reschedule_modal_"
	prefixTimerModal      = "event_timer_modal_"
	prefixCompleteType    = "event_complete_type_"
	prefixComplete        = "event_complete_"
	prefixJoin            = "event_reject_"
	prefixLeave           = "event_cancel_"
	prefixPing            = "event_ping_"
	prefixLists           = "event_lists_"
	prefixExclude         = "event_exclude_"
)

// Values of the event_lists_ menu.
const (
	listReschedule = "reschedule"
	listExclude    = "exclude_participant"
	listConfigure  = "configure_event"
	listTimer      = "set_timer"
)

// Modal field ids.
const (
	fieldName     = "name"
	fieldServer   = "server"
	fieldTime     = "time"
	fieldLimit    = "participant_limit"
	fieldLocation = "location"
	fieldColor    = "color"
	fieldGroup    = "group"
	fieldMap      = "map"
	fieldNewTime  = "new_time"
	fieldMinutes  = "timer_minutes"
)

// Field ids of the creation and configuration modals share a stem and
// differ by prefix.
const (
	createFieldPrefix    = "event_"
	configureFieldPrefix = "configure_"
)

// Longer prefixes first: event_complete_type_ must win over event_complete_.
var eventPrefixes = []string{
	prefixConfigureModal1,
	prefixConfigureModal2,
	prefixConfigureStep2,
	prefixRescheduleModal,
	prefixTimerModal,
	prefixCompleteType,
	prefixComplete,
	prefixJoin,
	prefixLeave,
	prefixPing,
	prefixLists,
	prefixExclude,
}

// parseCustomID splits a custom id into its action and event id. The action
// of a fixed id is the id itself with an empty event id. ok is false for ids
// this bot does not own.
func parseCustomID(customID string) (action, eventID string, ok bool) {
	switch customID {
	case idCreateModal1, idCreateModal2, idCreateStep2:
		return customID, "", true
	}
	for _, p := range eventPrefixes {
		if id, found := strings.CutPrefix(customID, p); found && id != "" {
			return p, id, true
		}
	}
	return "", "", false
}

func customID(prefix, eventID string) string {
	return prefix + eventID
}
