package models

import (
	"encoding/json"
	"strings"
)

const (
	CourtTypeIndoor  = "Indoor"
	CourtTypeOutdoor = "Outdoor"
)

// CourtImageCount is the fixed number of images a court carries.
const CourtImageCount = 3

// Court is a bookable resource. The booking workflow only reads it.
type Court struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Price           int      `json:"price"`
	MaxPlayers      int      `json:"maxPlayers"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	ImgURLs         FlexList `json:"imgURLs"`
	CurrentBookings FlexList `json:"currentBookings"`
}

// UnmarshalJSON normalizes the shapes the remote API is known to return: the id
// under id, _id, ID or courtId, and imgurls/currentbookings as arrays or JSON strings.
func (c *Court) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              FlexString `json:"id"`
		UnderID         FlexString `json:"_id"`
		CourtID         FlexString `json:"courtId"`
		Name            string     `json:"name"`
		Type            string     `json:"type"`
		Price           FlexInt    `json:"price"`
		MaxPlayers      FlexInt    `json:"maxPlayers"`
		Location        string     `json:"location"`
		Description     string     `json:"description"`
		ImgURLs         FlexList   `json:"imgurls"`
		CurrentBookings FlexList   `json:"currentbookings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	imgs := raw.ImgURLs
	if imgs == nil {
		imgs = FlexList{}
	}
	current := raw.CurrentBookings
	if current == nil {
		current = FlexList{}
	}
	*c = Court{
		ID:              firstNonEmpty(raw.ID.String(), raw.UnderID.String(), raw.CourtID.String()),
		Name:            raw.Name,
		Type:            raw.Type,
		Price:           int(raw.Price),
		MaxPlayers:      int(raw.MaxPlayers),
		Location:        raw.Location,
		Description:     raw.Description,
		ImgURLs:         imgs,
		CurrentBookings: current,
	}
	return nil
}

// HasID reports whether the court carries a usable identifier.
func (c Court) HasID() bool {
	return strings.TrimSpace(c.ID) != ""
}

// Image returns the i-th image URL or "" when the court has fewer images.
func (c Court) Image(i int) string {
	if i < 0 || i >= len(c.ImgURLs) {
		return ""
	}
	return c.ImgURLs[i]
}

// CourtForm carries the admin add/update court fields.
type CourtForm struct {
	CourtID     string   `json:"courtId,omitempty"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	MaxPlayers  int      `json:"maxPlayers"`
	Price       int      `json:"price"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	ImgURLs     []string `json:"imgURLs"`
}
