package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pamfilico/stripe-sdk/errors"
	"github.com/pamfilico/stripe-sdk/stripe"
	"github.com/pamfilico/stripe-sdk/validator"
	"go.vocdoni.io/dvote/log"
)

// createCustomerHandler handles the create customer request. The body is
// validated by the InputValidator middleware; the handler falls back to
// decoding it directly when the middleware did not run (e.g. missing JSON
// content type).
func (a *API) createCustomerHandler(w http.ResponseWriter, r *http.Request) {
	req := &stripe.CustomerCreateRequest{}
	if model, ok := validator.GetValidatedModel(r.Context()); ok {
		req, ok = model.(*stripe.CustomerCreateRequest)
		if !ok {
			errors.ErrGenericInternalServerError.Withf("unexpected validated model type").Write(w)
			return
		}
	} else if err := decodeBody(r, req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}

	resp, err := a.stripe.CreateCustomer(req)
	if err != nil {
		writeStripeError(w, err)
		return
	}

	requester, _ := userIDFromContext(r.Context())
	log.Infow("customer created", "customer", resp.Data.ID, "requester", requester)
	httpWriteJSON(w, resp)
}

// getCustomerHandler handles the get customer request.
func (a *API) getCustomerHandler(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if customerID == "" {
		errors.ErrMalformedURLParam.Withf("customerID is required").Write(w)
		return
	}

	resp, err := a.stripe.GetCustomer(customerID)
	if err != nil {
		writeStripeError(w, err)
		return
	}
	httpWriteJSON(w, resp)
}

// updateCustomerHandler handles the update customer request.
func (a *API) updateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if customerID == "" {
		errors.ErrMalformedURLParam.Withf("customerID is required").Write(w)
		return
	}

	req := &stripe.CustomerUpdateRequest{}
	if model, ok := validator.GetValidatedModel(r.Context()); ok {
		req, ok = model.(*stripe.CustomerUpdateRequest)
		if !ok {
			errors.ErrGenericInternalServerError.Withf("unexpected validated model type").Write(w)
			return
		}
	} else if err := decodeBody(r, req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}

	resp, err := a.stripe.UpdateCustomer(customerID, req)
	if err != nil {
		writeStripeError(w, err)
		return
	}

	requester, _ := userIDFromContext(r.Context())
	log.Infow("customer updated", "customer", resp.Data.ID, "requester", requester)
	httpWriteJSON(w, resp)
}

// listCustomersHandler handles the list customers request. When an email
// query parameter is present the result is the set of customers matching it;
// otherwise limit and starting_after paginate through the whole collection.
func (a *API) listCustomersHandler(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		resp, err := a.stripe.GetCustomersByEmail(email)
		if err != nil {
			writeStripeError(w, err)
			return
		}
		httpWriteJSON(w, resp)
		return
	}

	var limit int64
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		var err error
		if limit, err = strconv.ParseInt(rawLimit, 10, 64); err != nil || limit <= 0 {
			errors.ErrMalformedURLParam.Withf("invalid limit %q", rawLimit).Write(w)
			return
		}
	}

	resp, err := a.stripe.ListCustomers(limit, r.URL.Query().Get("starting_after"))
	if err != nil {
		writeStripeError(w, err)
		return
	}
	httpWriteJSON(w, resp)
}

// decodeBody unmarshals the request body into dst.
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}
