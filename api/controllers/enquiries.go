package controllers

import (
	"net/http"

	"github.com/velvetcrumb/velvetcrumb-backend/api/responses"
	"github.com/velvetcrumb/velvetcrumb-backend/api/validators"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/enquiries"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
)

// EnquirySubmit accepts a contact-form submission.
func EnquirySubmit(svc enquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input enquiries.SubmitInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}
