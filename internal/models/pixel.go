package models

// Pixel is a conversion destination owned by one of the user's ad accounts.
type Pixel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
