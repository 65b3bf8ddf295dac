package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a marketer known through the external identity provider.
// AccessToken is the bearer credential for the ad platform and is never
// serialised to API responses.
type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ExternalID      string             `json:"externalId" bson:"externalId"`
	DisplayName     string             `json:"displayName" bson:"displayName"`
	Email           string             `json:"email,omitempty" bson:"email,omitempty"`
	AccessToken     string             `json:"-" bson:"accessToken"`
	SelectedPixelID string             `json:"selectedPixelId,omitempty" bson:"selectedPixelId,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

func (u *User) HasAccessToken() bool {
	return u != nil && u.AccessToken != ""
}
