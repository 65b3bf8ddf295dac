package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DeliveryPending   = "pending"
	DeliveryDelivered = "delivered"
	DeliveryFailed    = "failed"
)

// UserData holds the server observed matching signals of an event.
type UserData struct {
	ClientIPAddress string `json:"client_ip_address,omitempty" bson:"client_ip_address,omitempty"`
	ClientUserAgent string `json:"client_user_agent,omitempty" bson:"client_user_agent,omitempty"`
	FBC             string `json:"fbc,omitempty" bson:"fbc,omitempty"`
	FBP             string `json:"fbp,omitempty" bson:"fbp,omitempty"`
}

// Delivery records the outcome of forwarding an event to the conversions endpoint.
type Delivery struct {
	Status      string     `json:"status" bson:"status"`
	AttemptedAt *time.Time `json:"attemptedAt,omitempty" bson:"attemptedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	FBTraceID   string     `json:"fbtraceId,omitempty" bson:"fbtraceId,omitempty"`
	Error       string     `json:"error,omitempty" bson:"error,omitempty"`
}

// Event is a tracked marketing event. PixelID is frozen at record time.
type Event struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId"`
	EventID        string             `json:"eventId" bson:"eventId"`
	EventName      string             `json:"eventName" bson:"eventName"`
	EventTime      time.Time          `json:"eventTime" bson:"eventTime"`
	EventSourceURL string             `json:"eventSourceUrl" bson:"eventSourceUrl"`
	PixelID        string             `json:"pixelId" bson:"pixelId"`

	UTMSource   string `json:"utmSource,omitempty" bson:"utmSource,omitempty"`
	UTMMedium   string `json:"utmMedium,omitempty" bson:"utmMedium,omitempty"`
	UTMCampaign string `json:"utmCampaign,omitempty" bson:"utmCampaign,omitempty"`
	UTMTerm     string `json:"utmTerm,omitempty" bson:"utmTerm,omitempty"`
	UTMContent  string `json:"utmContent,omitempty" bson:"utmContent,omitempty"`

	UserData   UserData       `json:"userData" bson:"userData"`
	CustomData map[string]any `json:"customData,omitempty" bson:"customData,omitempty"`
	LeadSource string         `json:"leadSource,omitempty" bson:"leadSource,omitempty"`

	Delivery  Delivery  `json:"delivery" bson:"delivery"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
