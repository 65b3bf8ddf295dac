package models

type Lead struct {
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Source    string `json:"source"`
	EventName string `json:"event_name"`
}

type LeadAck struct {
	Message   string `json:"message"`
	Forwarded bool   `json:"forwarded"`
}
