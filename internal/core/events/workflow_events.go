package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeCompanyStatusChanged     = "company.status_changed"
	EventTypeDriveStatusChanged       = "drive.status_changed"
	EventTypeApplicationStatusChanged = "application.status_changed"
	EventTypeStudentBlacklistChanged  = "student.blacklist_changed"
)

// WorkflowEventTypes lists every transition event a workflow service emits.
var WorkflowEventTypes = []string{
	EventTypeCompanyStatusChanged,
	EventTypeDriveStatusChanged,
	EventTypeApplicationStatusChanged,
	EventTypeStudentBlacklistChanged,
}

// TransitionEvent records one committed state change of a workflow entity.
type TransitionEvent struct {
	BaseEvent
	Entity   string `json:"entity"`
	EntityID int64  `json:"entity_id"`
	Action   string `json:"action"`
	From     string `json:"from"`
	To       string `json:"to"`
	ActorID  int64  `json:"actor_id"`
	Role     string `json:"role"`
}

func newTransitionEvent(eventType, entity string, entityID int64, action, from, to string, actorID int64, role string) *TransitionEvent {
	return &TransitionEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entity":    entity,
				"entity_id": entityID,
				"action":    action,
				"from":      from,
				"to":        to,
				"actor_id":  actorID,
				"role":      role,
			},
		},
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		From:     from,
		To:       to,
		ActorID:  actorID,
		Role:     role,
	}
}

func NewCompanyStatusChanged(companyID int64, action, from, to string, actorID int64, role string) *TransitionEvent {
	return newTransitionEvent(EventTypeCompanyStatusChanged, "company", companyID, action, from, to, actorID, role)
}

func NewDriveStatusChanged(driveID int64, action, from, to string, actorID int64, role string) *TransitionEvent {
	return newTransitionEvent(EventTypeDriveStatusChanged, "drive", driveID, action, from, to, actorID, role)
}

func NewApplicationStatusChanged(applicationID int64, from, to string, actorID int64, role string) *TransitionEvent {
	return newTransitionEvent(EventTypeApplicationStatusChanged, "application", applicationID, "update_status", from, to, actorID, role)
}

func NewStudentBlacklistChanged(studentID int64, action string, from, to bool, actorID int64, role string) *TransitionEvent {
	return newTransitionEvent(EventTypeStudentBlacklistChanged, "student", studentID, action, flag(from), flag(to), actorID, role)
}

func flag(blacklisted bool) string {
	if blacklisted {
		return "blacklisted"
	}
	return "active"
}
