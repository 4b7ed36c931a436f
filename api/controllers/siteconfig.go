package controllers

import (
	"net/http"

	"github.com/velvetcrumb/velvetcrumb-backend/api/responses"
	"github.com/velvetcrumb/velvetcrumb-backend/api/validators"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/catalog"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

type siteConfigResponse struct {
	Catalog types.Catalog `json:"catalog"`
	Source  string        `json:"source"`
}

// SiteConfigFetch serves the order-configuration catalog. It never fails:
// when the database is unreachable the compiled-in defaults are served and
// marked as such in the source field.
func SiteConfigFetch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		cat, source := svc.Catalog(r.Context())
		responses.WriteSuccess(w, siteConfigResponse{Catalog: cat, Source: source})
	}
}

// SiteConfigReplace stores a full catalog as the new site configuration.
func SiteConfigReplace(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload types.Catalog
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Replace(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, siteConfigResponse{Catalog: payload, Source: catalog.SourceDatabase})
	}
}
