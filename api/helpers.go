package api

import (
	"encoding/json"
	"net/http"

	"github.com/pamfilico/stripe-sdk/errors"
	"github.com/pamfilico/stripe-sdk/stripe"
	"go.vocdoni.io/dvote/log"
)

// httpWriteJSON helper function allows to write a JSON response.
func httpWriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// httpWriteOK helper function allows to write an OK response.
func httpWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// writeStripeError translates a StripeError code into the matching API error
// response. Anything that is not a StripeError becomes a generic 500.
func writeStripeError(w http.ResponseWriter, err error) {
	stripeErr, ok := err.(*stripe.StripeError)
	if !ok {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	switch stripeErr.Code {
	case "customer_not_found":
		errors.ErrCustomerNotFound.With(stripeErr.Message).Write(w)
	case "validation_failed", "invalid_request":
		errors.ErrInvalidCustomerData.With(stripeErr.Message).Write(w)
	default:
		errors.ErrStripeError.WithErr(err).Write(w)
	}
}
