package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"courtbook/models"
)

func (c *Client) GetAllCourts(ctx context.Context) ([]models.Court, error) {
	var courts []models.Court
	if err := c.do(ctx, http.MethodGet, "/api/courts/getAllCourts", nil, &courts, nil); err != nil {
		return nil, err
	}
	if courts == nil {
		courts = []models.Court{}
	}
	return courts, nil
}

func (c *Client) GetCourtByID(ctx context.Context, courtID string) (*models.Court, error) {
	var court models.Court
	body := map[string]string{"courtId": courtID}
	if err := c.do(ctx, http.MethodPost, "/api/courts/getCourtById", body, &court, nil); err != nil {
		return nil, err
	}
	return &court, nil
}

// addCourtBody is the add-court payload. The remote API expects imgURLs as a
// JSON-encoded string here, unlike update which takes a native array.
type addCourtBody struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	MaxPlayers  int    `json:"maxPlayers"`
	Price       int    `json:"price"`
	Type        string `json:"type"`
	Description string `json:"description"`
	ImgURLs     string `json:"imgURLs"`
}

func (c *Client) AddCourt(ctx context.Context, form models.CourtForm) (*models.Court, error) {
	encoded, err := json.Marshal(form.ImgURLs)
	if err != nil {
		return nil, fmt.Errorf("encode image urls: %w", err)
	}
	body := addCourtBody{
		Name:        form.Name,
		Location:    form.Location,
		MaxPlayers:  form.MaxPlayers,
		Price:       form.Price,
		Type:        form.Type,
		Description: form.Description,
		ImgURLs:     string(encoded),
	}
	var court models.Court
	if err := c.do(ctx, http.MethodPost, "/api/courts/addCourt", body, &court, nil); err != nil {
		return nil, err
	}
	return &court, nil
}

func (c *Client) UpdateCourt(ctx context.Context, courtID string, form models.CourtForm) (*models.Court, error) {
	form.CourtID = courtID
	var court models.Court
	path := "/api/courts/updateCourt/" + url.PathEscape(courtID)
	if err := c.do(ctx, http.MethodPut, path, form, &court, nil); err != nil {
		return nil, err
	}
	return &court, nil
}

func (c *Client) DeleteCourt(ctx context.Context, courtID string) error {
	return c.do(ctx, http.MethodDelete, "/api/courts/deleteCourt/"+url.PathEscape(courtID), nil, nil, nil)
}
