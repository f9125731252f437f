// Package pinapi is the HTTP client a Go frontend uses to reach the pin
// service. It implements mapview.PinStore, translating HTTP statuses back
// into the store sentinels so the map view's error classification works the
// same against the wire as against an in-process store.
package pinapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pawmap/internal/store"
	"pawmap/shared/go/models"
)

// Client talks to the pawmap HTTP API with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a Client for the given API base URL and bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type createPinRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type pinListResponse struct {
	Pins []*models.Pin `json:"pins"`
}

type travelListResponse struct {
	TravelLocations []*models.TravelLocation `json:"travel_locations"`
}

type apiError struct {
	Error string `json:"error"`
}

// Create places a new pin for the pet at the given position.
func (c *Client) Create(ctx context.Context, petID uuid.UUID, lat, lng float64) (*models.Pin, error) {
	var pin models.Pin
	err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/v1/pets/%s/pins", petID),
		createPinRequest{Latitude: lat, Longitude: lng}, &pin)
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// Update changes a pin's metadata.
func (c *Client) Update(ctx context.Context, pinID uuid.UUID, upd models.PinUpdate) error {
	return c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/api/v1/pins/%s", pinID), upd, nil)
}

// Delete removes a single pin.
func (c *Client) Delete(ctx context.Context, pinID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete,
		fmt.Sprintf("/api/v1/pins/%s", pinID), nil, nil)
}

// DeleteAllForPet clears every pin for a pet. The confirmation gate lives in
// the UI; by the time this runs the user has already agreed.
func (c *Client) DeleteAllForPet(ctx context.Context, petID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete,
		fmt.Sprintf("/api/v1/pets/%s/pins?confirm=true", petID), nil, nil)
}

// List fetches the authoritative pin list for a pet.
func (c *Client) List(ctx context.Context, petID uuid.UUID) ([]*models.Pin, error) {
	var resp pinListResponse
	err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/api/v1/pets/%s/pins", petID), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Pins, nil
}

// TravelLocations fetches the pet's travel locations for the travel marker
// layer.
func (c *Client) TravelLocations(ctx context.Context, petID uuid.UUID) ([]*models.TravelLocation, error) {
	var resp travelListResponse
	err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/api/v1/pets/%s/travel-locations", petID), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.TravelLocations, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.asStoreError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// asStoreError maps response statuses back onto the sentinels the map view
// classifies on.
func (c *Client) asStoreError(resp *http.Response) error {
	var payload apiError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
	msg := payload.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w", msg, store.ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, store.ErrPinNotFound)
	case http.StatusBadRequest:
		return &store.ValidationError{Field: "request", Reason: msg}
	default:
		return fmt.Errorf("server error: %s", msg)
	}
}
