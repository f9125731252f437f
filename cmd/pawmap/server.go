package main

import (
	"net/http"

	"pawmap/internal/app/pets"
	"pawmap/internal/app/pins"
	"pawmap/internal/app/travels"
	"pawmap/internal/app/users"
	"pawmap/internal/httpapi"
	"pawmap/internal/store"
	"pawmap/shared/go/config"
	"pawmap/shared/go/middleware"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store) http.Handler {
	userSvc := users.New(dataStore)
	petSvc := pets.New(dataStore)
	pinSvc := pins.New(dataStore)
	travelSvc := travels.New(dataStore)

	api := httpapi.New(userSvc, petSvc, pinSvc, travelSvc, []byte(cfg.Security.JWTSecret))

	handler := api.Routes()
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return handler
}
