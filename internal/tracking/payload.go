package tracking

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"pixeltrack/internal/graph"
	"pixeltrack/internal/models"
)

// HashEmail normalises email and returns its lowercase hex SHA-256 digest,
// or "" when there is nothing to hash.
func HashEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// BuildServerEvent turns a recorded event into the conversions payload.
// The raw email never leaves this function.
func BuildServerEvent(evt models.Event, email string) graph.ServerEvent {
	out := graph.ServerEvent{
		EventName:      evt.EventName,
		EventTime:      evt.EventTime.Unix(),
		ActionSource:   graph.ActionSourceWebsite,
		EventSourceURL: evt.EventSourceURL,
		EventID:        evt.EventID,
		UserData: graph.UserData{
			ClientIPAddress: evt.UserData.ClientIPAddress,
			ClientUserAgent: evt.UserData.ClientUserAgent,
			FBC:             evt.UserData.FBC,
			FBP:             evt.UserData.FBP,
		},
	}

	if hashed := HashEmail(email); hashed != "" {
		out.UserData.Email = []string{hashed}
	}

	custom := map[string]any{}
	for k, v := range evt.CustomData {
		custom[k] = v
	}
	for k, v := range map[string]string{
		"utm_source":   evt.UTMSource,
		"utm_medium":   evt.UTMMedium,
		"utm_campaign": evt.UTMCampaign,
		"utm_term":     evt.UTMTerm,
		"utm_content":  evt.UTMContent,
		"lead_source":  evt.LeadSource,
	} {
		if v != "" {
			custom[k] = v
		}
	}
	if len(custom) > 0 {
		out.CustomData = custom
	}

	return out
}
