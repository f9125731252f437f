package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"pawmap/internal/store"
	"pawmap/shared/go/models"
)

type stubUserService struct {
	signupID  int64
	signupErr error
	loginID   int64
	loginErr  error
}

func (s *stubUserService) Signup(context.Context, string, string) (int64, error) {
	return s.signupID, s.signupErr
}

func (s *stubUserService) Login(context.Context, string, string) (int64, error) {
	return s.loginID, s.loginErr
}

type stubPetService struct {
	pets []*models.Pet
	err  error
}

func (s *stubPetService) Create(_ context.Context, userID int64, pet *models.Pet) (*models.Pet, error) {
	if s.err != nil {
		return nil, s.err
	}
	pet.ID = uuid.New()
	pet.UserID = userID
	return pet, nil
}

func (s *stubPetService) List(context.Context, int64) ([]*models.Pet, error) {
	return s.pets, s.err
}

func (s *stubPetService) Get(context.Context, int64, uuid.UUID) (*models.Pet, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.pets) == 0 {
		return nil, store.ErrPetNotFound
	}
	return s.pets[0], nil
}

type stubPinService struct {
	pins      []*models.Pin
	createErr error
	updateErr error
	deleteErr error
	clearErr  error
	cleared   int64

	lastUserID int64
	lastPetID  uuid.UUID
	lastPinID  uuid.UUID
	lastUpdate models.PinUpdate
	clearCalls int
}

func (s *stubPinService) Create(_ context.Context, userID int64, petID uuid.UUID, lat, lng float64) (*models.Pin, error) {
	s.lastUserID = userID
	s.lastPetID = petID
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Pin{
		ID:       uuid.New(),
		PetID:    petID,
		Latitude: lat, Longitude: lng,
		Category: models.CategoryCustom,
	}, nil
}

func (s *stubPinService) List(_ context.Context, userID int64, petID uuid.UUID) ([]*models.Pin, error) {
	s.lastUserID = userID
	s.lastPetID = petID
	return s.pins, nil
}

func (s *stubPinService) Update(_ context.Context, userID int64, pinID uuid.UUID, upd models.PinUpdate) error {
	s.lastUserID = userID
	s.lastPinID = pinID
	s.lastUpdate = upd
	return s.updateErr
}

func (s *stubPinService) Delete(_ context.Context, userID int64, pinID uuid.UUID) error {
	s.lastPinID = pinID
	return s.deleteErr
}

func (s *stubPinService) ClearForPet(_ context.Context, userID int64, petID uuid.UUID) (int64, error) {
	s.clearCalls++
	s.lastPetID = petID
	return s.cleared, s.clearErr
}

type stubTravelService struct {
	locations []*models.TravelLocation
	err       error
}

func (s *stubTravelService) Create(_ context.Context, _ int64, tl *models.TravelLocation) (*models.TravelLocation, error) {
	if s.err != nil {
		return nil, s.err
	}
	tl.ID = uuid.New()
	return tl, nil
}

func (s *stubTravelService) List(context.Context, int64, uuid.UUID) ([]*models.TravelLocation, error) {
	return s.locations, s.err
}

func (s *stubTravelService) Update(context.Context, int64, uuid.UUID, *models.TravelLocation) error {
	return s.err
}

func (s *stubTravelService) Delete(context.Context, int64, uuid.UUID) error {
	return s.err
}

type testFixture struct {
	server  *Server
	handler http.Handler
	pins    *stubPinService
	pets    *stubPetService
	travels *stubTravelService
	token   string
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{
		pins:    &stubPinService{},
		pets:    &stubPetService{},
		travels: &stubTravelService{},
	}
	f.server = New(&stubUserService{loginID: 7}, f.pets, f.pins, f.travels, []byte("test-secret-please-ignore"))
	f.handler = f.server.Routes()

	token, err := f.server.issueToken(7)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	f.token = token
	return f
}

func (f *testFixture) do(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestLoginIssuesToken(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login",
		credentialsRequest{Username: "demo", Password: "demo123"}, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp tokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	f := newTestFixture(t)
	f.server.users = &stubUserService{loginErr: store.ErrInvalidCredentials}

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login",
		credentialsRequest{Username: "demo", Password: "wrong"}, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestPinRoutesRequireToken(t *testing.T) {
	f := newTestFixture(t)
	petID := uuid.New()

	rec := f.do(t, http.MethodGet, "/api/v1/pets/"+petID.String()+"/pins", nil, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreatePin(t *testing.T) {
	f := newTestFixture(t)
	petID := uuid.New()

	rec := f.do(t, http.MethodPost, "/api/v1/pets/"+petID.String()+"/pins",
		createPinRequest{Latitude: 40.0, Longitude: -105.0}, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var pin models.Pin
	if err := json.NewDecoder(rec.Body).Decode(&pin); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if pin.Latitude != 40.0 || pin.Longitude != -105.0 {
		t.Errorf("pin at (%v, %v)", pin.Latitude, pin.Longitude)
	}
	if pin.Category != models.CategoryCustom {
		t.Errorf("category = %q, want custom", pin.Category)
	}
	if f.pins.lastUserID != 7 {
		t.Errorf("service saw user %d, want 7", f.pins.lastUserID)
	}
	if f.pins.lastPetID != petID {
		t.Errorf("service saw pet %v, want %v", f.pins.lastPetID, petID)
	}
}

func TestCreatePinValidationError(t *testing.T) {
	f := newTestFixture(t)
	f.pins.createErr = &store.ValidationError{Field: "latitude", Reason: "must be between -90 and 90"}

	rec := f.do(t, http.MethodPost, "/api/v1/pets/"+uuid.NewString()+"/pins",
		createPinRequest{Latitude: 120, Longitude: 0}, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdatePinErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "stale id", err: store.ErrPinNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign pet", err: store.ErrUnauthorized, wantStatus: http.StatusForbidden},
		{name: "oversized title", err: &store.ValidationError{Field: "title", Reason: "too long"}, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := newTestFixture(t)
			f.pins.updateErr = tc.err

			title := "x"
			rec := f.do(t, http.MethodPatch, "/api/v1/pins/"+uuid.NewString(),
				models.PinUpdate{Title: &title}, true)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestUpdatePinPassesOnlyMetadata(t *testing.T) {
	f := newTestFixture(t)
	pinID := uuid.New()
	title := "Dr. Smith"
	category := models.CategoryVet

	rec := f.do(t, http.MethodPatch, "/api/v1/pins/"+pinID.String(),
		models.PinUpdate{Title: &title, Category: &category}, true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if f.pins.lastPinID != pinID {
		t.Errorf("service saw pin %v, want %v", f.pins.lastPinID, pinID)
	}
	if f.pins.lastUpdate.Title == nil || *f.pins.lastUpdate.Title != "Dr. Smith" {
		t.Error("title not passed through")
	}
	if f.pins.lastUpdate.Description != nil {
		t.Error("unset description should stay nil")
	}
}

func TestClearPinsRequiresConfirmation(t *testing.T) {
	f := newTestFixture(t)
	petID := uuid.New()

	rec := f.do(t, http.MethodDelete, "/api/v1/pets/"+petID.String()+"/pins", nil, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status without confirm = %d, want 400", rec.Code)
	}
	if f.pins.clearCalls != 0 {
		t.Fatal("unconfirmed clear reached the service")
	}

	f.pins.cleared = 4
	rec = f.do(t, http.MethodDelete, "/api/v1/pets/"+petID.String()+"/pins?confirm=true", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]int64
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["deleted"] != 4 {
		t.Errorf("deleted = %d, want 4", resp["deleted"])
	}
}

func TestListPinsEmptyIsArray(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/pets/"+uuid.NewString()+"/pins", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"pins\":[]}\n" {
		t.Errorf("body = %q, want empty pins array", got)
	}
}

func TestListTravelLocations(t *testing.T) {
	f := newTestFixture(t)
	petID := uuid.New()
	f.travels.locations = []*models.TravelLocation{
		{ID: uuid.New(), PetID: petID, Name: "Colorado", Kind: models.TravelKindState},
	}

	rec := f.do(t, http.MethodGet, "/api/v1/pets/"+petID.String()+"/travel-locations", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string][]*models.TravelLocation
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp["travel_locations"]) != 1 || resp["travel_locations"][0].Name != "Colorado" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestInvalidPinIDIsBadRequest(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(t, http.MethodDelete, "/api/v1/pins/not-a-uuid", nil, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
