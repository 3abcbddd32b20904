package stripe

import (
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v82"
	stripecustomer "github.com/stripe/stripe-go/v82/customer"
)

// Client wraps the stripe-go customer bindings. It deals in raw stripe-go
// types; the Service layer on top translates them into SDK models.
type Client struct {
	config *Config
}

// NewClient creates a new Stripe client with the given configuration
func NewClient(config *Config) *Client {
	stripeapi.Key = config.SecretKey

	return &Client{config: config}
}

// CreateCustomer creates a new customer with the given parameters
func (*Client) CreateCustomer(params *stripeapi.CustomerParams) (*stripeapi.Customer, error) {
	customer, err := stripecustomer.New(params)
	if err != nil {
		return nil, mapAPIError("failed to create customer", err)
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (*Client) GetCustomer(customerID string) (*stripeapi.Customer, error) {
	params := &stripeapi.CustomerParams{}
	customer, err := stripecustomer.Get(customerID, params)
	if err != nil {
		return nil, mapAPIError(fmt.Sprintf("failed to get customer %s", customerID), err)
	}
	return customer, nil
}

// UpdateCustomer updates an existing customer
func (*Client) UpdateCustomer(customerID string, params *stripeapi.CustomerParams) (*stripeapi.Customer, error) {
	customer, err := stripecustomer.Update(customerID, params)
	if err != nil {
		return nil, mapAPIError(fmt.Sprintf("failed to update customer %s", customerID), err)
	}
	return customer, nil
}

// ListCustomersByEmail retrieves the customers matching an email address.
// Stripe allows multiple customers with the same email, so this returns the
// whole first page of matches along with the has_more marker.
func (*Client) ListCustomersByEmail(email string) ([]*stripeapi.Customer, bool, error) {
	params := &stripeapi.CustomerListParams{
		Email: stripeapi.String(email),
	}
	params.Single = true

	return collectCustomers(stripecustomer.List(params))
}

// ListCustomers retrieves a single page of customers, using customer IDs as
// pagination cursors.
func (*Client) ListCustomers(limit int64, startingAfter string) ([]*stripeapi.Customer, bool, error) {
	params := &stripeapi.CustomerListParams{}
	params.Limit = stripeapi.Int64(limit)
	params.Single = true
	if startingAfter != "" {
		params.StartingAfter = stripeapi.String(startingAfter)
	}

	return collectCustomers(stripecustomer.List(params))
}

// collectCustomers drains a single-page customer iterator and returns the
// page contents plus the has_more marker from the list metadata.
func collectCustomers(i *stripecustomer.Iter) ([]*stripeapi.Customer, bool, error) {
	var customers []*stripeapi.Customer
	for i.Next() {
		customers = append(customers, i.Customer())
	}
	if err := i.Err(); err != nil {
		return nil, false, mapAPIError("failed to list customers", err)
	}

	hasMore := false
	if list := i.CustomerList(); list != nil {
		hasMore = list.HasMore
	}
	return customers, hasMore, nil
}
