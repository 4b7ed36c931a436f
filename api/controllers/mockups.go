package controllers

import (
	"net/http"

	"github.com/velvetcrumb/velvetcrumb-backend/api/responses"
	"github.com/velvetcrumb/velvetcrumb-backend/api/validators"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/mockup"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

type mockupRequest struct {
	Item types.CakeItemSpec `json:"item"`
}

type mockupResponse struct {
	MockupDataURL *string `json:"mockup_data_url"`
}

// MockupGenerate requests an AI preview of the configured cake. A null
// mockup_data_url means generation was unavailable; the order flow continues
// without one.
func MockupGenerate(svc mockup.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload mockupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preview, err := svc.Generate(r.Context(), payload.Item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var url *string
		if preview != nil {
			url = &preview.MockupURL
		}
		responses.WriteSuccess(w, mockupResponse{MockupDataURL: url})
	}
}
