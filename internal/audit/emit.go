package audit

import (
	"time"

	"pixeltrack/internal/models"
)

// Actions written to the trail.
const (
	ActionUserCreated         = "user.created"
	ActionUserLogin           = "user.login"
	ActionUserLogout          = "user.logout"
	ActionPixelSelected       = "pixel.selected"
	ActionEventRecorded       = "event.recorded"
	ActionEventDeliveryFailed = "event.delivery_failed"
	ActionLeadForwarded       = "crm.lead"
)

const (
	ActorUser   = "user"
	ActorSystem = "system"
)

const (
	TargetUser  = "user"
	TargetPixel = "pixel"
	TargetEvent = "event"
	TargetLead  = "lead"
)

// Emit stamps rec and queues it. A full queue makes the caller write the
// record itself rather than lose it.
func (e *Emitter) Emit(rec models.AuditRecord) {
	rec.TimeStamp = time.Now().UTC()

	select {
	case e.queue <- rec:
	default:
		e.write([]models.AuditRecord{rec})
	}
}
