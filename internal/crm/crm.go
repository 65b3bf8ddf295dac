// Package crm hands captured leads to the downstream CRM. Only a logging
// forwarder exists so far.
package crm

import (
	"context"
	"strings"

	"pixeltrack/internal/models"

	log "github.com/sirupsen/logrus"
)

type Forwarder interface {
	Forward(ctx context.Context, lead models.Lead) (models.LeadAck, error)
}

// Normalize trims lead in place. Every field is optional: whatever the
// form captured is passed on.
func Normalize(lead *models.Lead) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Contact = strings.TrimSpace(lead.Contact)
	lead.Source = strings.TrimSpace(lead.Source)
	lead.EventName = strings.TrimSpace(lead.EventName)
}

// LogForwarder acknowledges leads after writing them to the log.
type LogForwarder struct {
	Logger log.FieldLogger
}

func NewLogForwarder() *LogForwarder {
	return &LogForwarder{Logger: log.StandardLogger()}
}

func (f *LogForwarder) Forward(ctx context.Context, lead models.Lead) (models.LeadAck, error) {
	f.Logger.WithFields(log.Fields{
		"name":      lead.Name,
		"contact":   lead.Contact,
		"source":    lead.Source,
		"eventName": lead.EventName,
	}).Info("lead received for CRM")

	return models.LeadAck{
		Message:   "lead data sent to CRM (logged)",
		Forwarded: false,
	}, nil
}
