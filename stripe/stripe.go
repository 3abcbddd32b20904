// Package stripe provides integration with the Stripe payment service,
// wrapping customer operations behind typed requests, validated inputs and a
// small error taxonomy. It is the core of the SDK consumed by internal
// projects; the api package fronts it over HTTP.
package stripe

import (
	"fmt"

	"github.com/pamfilico/stripe-sdk/validator"
	stripeapi "github.com/stripe/stripe-go/v82"
)

const (
	// DefaultListLimit is the page size used when none is requested.
	DefaultListLimit = 100
	// MaxListLimit is the maximum page size accepted by Stripe.
	MaxListLimit = 100
)

// Service provides the main business logic for Stripe customer operations
type Service struct {
	client    *Client
	config    *Config
	validator *validator.Validator
}

// New creates a new Stripe service. The configuration is validated before any
// Stripe call can be made, so a Service in hand always carries usable keys.
func New(config *Config) (*Service, error) {
	if config == nil {
		return nil, NewStripeError("invalid_configuration", "config is required", nil)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		client:    NewClient(config),
		config:    config,
		validator: validator.New(),
	}, nil
}

// Client exposes the underlying raw client for callers that need stripe-go
// types directly.
func (s *Service) Client() *Client {
	return s.client
}

// PublishableKey returns the configured publishable key, intended for
// frontends that embed Stripe elements.
func (s *Service) PublishableKey() string {
	return s.config.PublishableKey
}

// CreateCustomer creates a new Stripe customer. Only the fields set on the
// request are forwarded to Stripe.
func (s *Service) CreateCustomer(req *CustomerCreateRequest) (*CustomerResponse, error) {
	if req == nil {
		return nil, NewStripeError("validation_failed", "create request is required", nil)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, NewStripeError("validation_failed", validator.FieldErrors(err).Error(), err)
	}

	params := &stripeapi.CustomerParams{}
	if req.Email != "" {
		params.Email = stripeapi.String(req.Email)
	}
	if req.Name != "" {
		params.Name = stripeapi.String(req.Name)
	}
	if req.Phone != "" {
		params.Phone = stripeapi.String(req.Phone)
	}
	if req.Description != "" {
		params.Description = stripeapi.String(req.Description)
	}
	if len(req.Metadata) > 0 {
		params.Metadata = req.Metadata
	}

	customer, err := s.client.CreateCustomer(params)
	if err != nil {
		return nil, err
	}
	return newCustomerResponse(customer), nil
}

// GetCustomer retrieves a single customer by its Stripe ID (cus_...).
func (s *Service) GetCustomer(customerID string) (*CustomerResponse, error) {
	if customerID == "" {
		return nil, NewStripeError("validation_failed", "customer ID is required", nil)
	}

	customer, err := s.client.GetCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return newCustomerResponse(customer), nil
}

// UpdateCustomer updates an existing customer. Only non-nil fields are
// forwarded, so callers can clear a value by pointing at an empty string.
func (s *Service) UpdateCustomer(customerID string, req *CustomerUpdateRequest) (*CustomerResponse, error) {
	if customerID == "" {
		return nil, NewStripeError("validation_failed", "customer ID is required", nil)
	}
	if req == nil {
		return nil, NewStripeError("validation_failed", "update request is required", nil)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, NewStripeError("validation_failed", validator.FieldErrors(err).Error(), err)
	}

	params := &stripeapi.CustomerParams{}
	if req.Email != nil {
		params.Email = stripeapi.String(*req.Email)
	}
	if req.Name != nil {
		params.Name = stripeapi.String(*req.Name)
	}
	if req.Phone != nil {
		params.Phone = stripeapi.String(*req.Phone)
	}
	if req.Description != nil {
		params.Description = stripeapi.String(*req.Description)
	}
	if req.Metadata != nil {
		params.Metadata = req.Metadata
	}

	customer, err := s.client.UpdateCustomer(customerID, params)
	if err != nil {
		return nil, err
	}
	return newCustomerResponse(customer), nil
}

// GetCustomersByEmail retrieves the customers matching an email address.
// Stripe allows multiple customers with the same email, so the result is a
// list; no match is an empty list, not an error.
func (s *Service) GetCustomersByEmail(email string) (*CustomerListResponse, error) {
	if email == "" {
		return nil, NewStripeError("validation_failed", "email is required", nil)
	}

	customers, hasMore, err := s.client.ListCustomersByEmail(email)
	if err != nil {
		return nil, err
	}

	note := fmt.Sprintf("Found %d customers", len(customers))
	if len(customers) == 1 {
		note = "Found 1 customer"
	}
	return newCustomerListResponse(customers, hasMore, note), nil
}

// ListCustomers retrieves a single page of customers. A non-positive limit
// falls back to DefaultListLimit and anything above MaxListLimit is capped.
// startingAfter is a customer ID used as pagination cursor; pass the last ID
// of the previous page to fetch the next one.
func (s *Service) ListCustomers(limit int64, startingAfter string) (*CustomerListResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	customers, hasMore, err := s.client.ListCustomers(limit, startingAfter)
	if err != nil {
		return nil, err
	}
	return newCustomerListResponse(customers, hasMore, ""), nil
}
