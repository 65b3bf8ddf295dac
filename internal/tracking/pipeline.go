// Package tracking records marketing events and forwards them to the ad
// platform's conversions endpoint.
package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pixeltrack/internal/audit"
	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/graph"
	"pixeltrack/internal/metrics"
	"pixeltrack/internal/models"
	"pixeltrack/internal/store"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Transport holds what the server observed about the request. It is the
// only source of matching signals.
type Transport struct {
	ClientIP  string
	UserAgent string
	Referer   string
	FBC       string
	FBP       string
}

// RawEvent is the untrusted request body.
type RawEvent struct {
	EventName      string          `json:"eventName"`
	EventTime      json.RawMessage `json:"eventTime,omitempty" swaggertype:"string" example:"2026-05-04T10:30:15Z"`
	EventSourceURL string          `json:"eventSourceUrl"`
	EventID        string          `json:"eventId"`
	UTMSource      string          `json:"utmSource,omitempty"`
	UTMMedium      string          `json:"utmMedium,omitempty"`
	UTMCampaign    string          `json:"utmCampaign,omitempty"`
	UTMTerm        string          `json:"utmTerm,omitempty"`
	UTMContent     string          `json:"utmContent,omitempty"`
	LeadSource     string          `json:"leadSource,omitempty"`
	Referrer       string          `json:"referrer,omitempty"`
	CustomData     map[string]any  `json:"customData,omitempty"`
}

type Sender interface {
	SendEvents(ctx context.Context, token string, pixelID string, events []graph.ServerEvent) (*graph.EventsResponse, error)
}

type Publisher interface {
	Publish(ctx context.Context, userID string, evt models.Event) error
}

type Result struct {
	Event       models.Event
	Delivered   bool
	DeliveryErr error
}

type Pipeline struct {
	events    store.EventStore
	sender    Sender
	publisher Publisher
	rules     LeadRules
	timeout   time.Duration
	now       func() time.Time
}

// NewPipeline builds a pipeline. publisher may be nil.
func NewPipeline(events store.EventStore, sender Sender, publisher Publisher, rules LeadRules, timeout time.Duration) *Pipeline {
	return &Pipeline{
		events:    events,
		sender:    sender,
		publisher: publisher,
		rules:     rules,
		timeout:   timeout,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates, records and delivers one event. The record is durable
// before delivery is attempted and a failed delivery never removes it.
func (p *Pipeline) Submit(ctx context.Context, user *models.User, transport Transport, raw RawEvent) (*Result, error) {
	evt, err := p.normalize(user, transport, raw)
	if err != nil {
		return nil, err
	}

	err = p.events.Insert(ctx, &evt)
	if errors.Is(err, store.ErrDuplicate) {
		metrics.DuplicateEvents.Inc()
		return nil, errmsg.EventDuplicate
	}
	if err != nil {
		return nil, err
	}
	metrics.EventsRecorded.Inc()

	res := &Result{Event: evt}
	res.Event.Delivery, res.DeliveryErr = p.deliver(ctx, user, evt)
	res.Delivered = res.DeliveryErr == nil

	if err := p.events.UpdateDelivery(ctx, evt.ID, res.Event.Delivery); err != nil {
		log.WithError(err).WithField("event", evt.EventID).Warn("could not store delivery outcome")
	}

	p.announce(ctx, user, res)

	return res, nil
}

func (p *Pipeline) normalize(user *models.User, transport Transport, raw RawEvent) (models.Event, error) {
	name := strings.TrimSpace(raw.EventName)
	if name == "" {
		return models.Event{}, errmsg.EventNameRequired
	}
	eventID := strings.TrimSpace(raw.EventID)
	if eventID == "" {
		return models.Event{}, errmsg.EventIDRequired
	}
	sourceURL := strings.TrimSpace(raw.EventSourceURL)
	if sourceURL == "" {
		return models.Event{}, errmsg.EventSourceURLRequired
	}
	if strings.TrimSpace(user.SelectedPixelID) == "" {
		return models.Event{}, errmsg.EventNoPixelSelected
	}
	if !user.HasAccessToken() {
		return models.Event{}, errmsg.EventMissingToken
	}

	now := p.now()
	eventTime, err := parseEventTime(raw.EventTime, now)
	if err != nil {
		return models.Event{}, err
	}

	evt := models.Event{
		UserID:         user.ID,
		EventID:        eventID,
		EventName:      name,
		EventTime:      eventTime,
		EventSourceURL: sourceURL,
		PixelID:        user.SelectedPixelID,
		UTMSource:      strings.TrimSpace(raw.UTMSource),
		UTMMedium:      strings.TrimSpace(raw.UTMMedium),
		UTMCampaign:    strings.TrimSpace(raw.UTMCampaign),
		UTMTerm:        strings.TrimSpace(raw.UTMTerm),
		UTMContent:     strings.TrimSpace(raw.UTMContent),
		UserData: models.UserData{
			ClientIPAddress: transport.ClientIP,
			ClientUserAgent: transport.UserAgent,
			FBC:             transport.FBC,
			FBP:             transport.FBP,
		},
		CustomData: raw.CustomData,
		LeadSource: strings.TrimSpace(raw.LeadSource),
		Delivery:   models.Delivery{Status: models.DeliveryPending},
		CreatedAt:  now,
	}

	fillUTM(&evt)

	if evt.LeadSource == "" {
		referrer := strings.TrimSpace(raw.Referrer)
		if referrer == "" {
			referrer = transport.Referer
		}
		evt.LeadSource = p.rules.Derive(referrer, sourceURL, evt.UTMSource)
	}

	return evt, nil
}

func (p *Pipeline) deliver(ctx context.Context, user *models.User, evt models.Event) (models.Delivery, error) {
	payload := BuildServerEvent(evt, user.Email)

	deliverCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		deliverCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	res, err := p.sender.SendEvents(deliverCtx, user.AccessToken, evt.PixelID, []graph.ServerEvent{payload})

	attempted := p.now()
	delivery := models.Delivery{AttemptedAt: &attempted}

	if err != nil {
		delivery.Status = models.DeliveryFailed
		delivery.Error = err.Error()
		return delivery, err
	}

	delivery.Status = models.DeliveryDelivered
	delivery.DeliveredAt = &attempted
	if res != nil {
		delivery.FBTraceID = res.FBTraceID
	}
	return delivery, nil
}

func (p *Pipeline) announce(ctx context.Context, user *models.User, res *Result) {
	userID := user.ID.Hex()

	if res.Delivered {
		metrics.EventDeliveries.WithLabelValues(metrics.ResultDelivered).Inc()
	} else {
		metrics.EventDeliveries.WithLabelValues(metrics.ResultFailed).Inc()
		log.WithError(res.DeliveryErr).
			WithField("event", res.Event.EventID).
			WithField("pixel", res.Event.PixelID).
			Warn("event delivery failed")
	}

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, userID, res.Event); err != nil {
			log.WithError(err).WithField("event", res.Event.EventID).Warn("could not publish event")
		}
	}

	if audit.Em != nil {
		audit.Em.EventRecorded(userID, res.Event)
		if !res.Delivered {
			audit.Em.EventDeliveryFailed(userID, res.Event)
		}
	}
}

// List returns the events of user, newest eventTime first.
func (p *Pipeline) List(ctx context.Context, user *models.User) ([]models.Event, error) {
	return p.events.ListByUser(ctx, user.ID)
}

// parseEventTime accepts an RFC3339 string or unix seconds. Absent or null
// means now.
func parseEventTime(raw json.RawMessage, now time.Time) (time.Time, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return now, nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return now, nil
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UTC(), nil
		}
		if secs, err := strconv.ParseFloat(s, 64); err == nil {
			return unixSeconds(secs)
		}
		return time.Time{}, errmsg.EventTimeInvalid
	}

	var secs float64
	if err := json.Unmarshal(trimmed, &secs); err == nil {
		return unixSeconds(secs)
	}

	return time.Time{}, errmsg.EventTimeInvalid
}

func unixSeconds(secs float64) (time.Time, error) {
	if secs <= 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return time.Time{}, errmsg.EventTimeInvalid
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), nil
}

// fillUTM copies utm_* query parameters of the source URL into fields the
// body left empty.
func fillUTM(evt *models.Event) {
	if evt.EventSourceURL == "" {
		return
	}
	u, err := url.Parse(evt.EventSourceURL)
	if err != nil {
		return
	}
	q := u.Query()

	for key, field := range map[string]*string{
		"utm_source":   &evt.UTMSource,
		"utm_medium":   &evt.UTMMedium,
		"utm_campaign": &evt.UTMCampaign,
		"utm_term":     &evt.UTMTerm,
		"utm_content":  &evt.UTMContent,
	} {
		if *field == "" {
			*field = strings.TrimSpace(q.Get(key))
		}
	}
}
