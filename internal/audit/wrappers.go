package audit

import "pixeltrack/internal/models"

func (e *Emitter) UserCreated(userID string, externalID string) {
	e.Emit(models.AuditRecord{
		Action: ActionUserCreated,

		ActorRole: ActorSystem,
		ActorID:   "identity",

		TargetType: TargetUser,
		TargetID:   userID,

		Props: map[string]any{
			"externalId": externalID,
		},
	})
}

func (e *Emitter) UserLogin(userID string) {
	e.Emit(models.AuditRecord{
		Action: ActionUserLogin,

		ActorRole: ActorUser,
		ActorID:   userID,

		TargetType: TargetUser,
		TargetID:   userID,
	})
}

func (e *Emitter) UserLogout(userID string) {
	e.Emit(models.AuditRecord{
		Action: ActionUserLogout,

		ActorRole: ActorUser,
		ActorID:   userID,

		TargetType: TargetUser,
		TargetID:   userID,
	})
}

func (e *Emitter) PixelSelected(userID string, pixelID string) {
	e.Emit(models.AuditRecord{
		Action: ActionPixelSelected,

		ActorRole: ActorUser,
		ActorID:   userID,

		TargetType: TargetPixel,
		TargetID:   pixelID,
	})
}

func (e *Emitter) EventRecorded(userID string, evt models.Event) {
	e.Emit(models.AuditRecord{
		Action: ActionEventRecorded,

		ActorRole: ActorUser,
		ActorID:   userID,

		TargetType: TargetEvent,
		TargetID:   evt.EventID,

		Props: map[string]any{
			"eventName": evt.EventName,
			"pixelId":   evt.PixelID,
			"delivery":  evt.Delivery.Status,
		},
	})
}

func (e *Emitter) EventDeliveryFailed(userID string, evt models.Event) {
	e.Emit(models.AuditRecord{
		Action: ActionEventDeliveryFailed,

		ActorRole: ActorSystem,
		ActorID:   "pipeline",

		TargetType: TargetEvent,
		TargetID:   evt.EventID,

		Props: map[string]any{
			"userId":  userID,
			"pixelId": evt.PixelID,
			"error":   evt.Delivery.Error,
		},
	})
}

func (e *Emitter) LeadForwarded(userID string, lead models.Lead) {
	e.Emit(models.AuditRecord{
		Action: ActionLeadForwarded,

		ActorRole: ActorUser,
		ActorID:   userID,

		TargetType: TargetLead,
		TargetID:   lead.Contact,

		Props: map[string]any{
			"source":    lead.Source,
			"eventName": lead.EventName,
		},
	})
}
