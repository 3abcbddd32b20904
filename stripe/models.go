package stripe

import (
	stripeapi "github.com/stripe/stripe-go/v82"
)

// CustomerCreateRequest carries the accepted fields for creating a customer.
// Empty fields are not forwarded to Stripe.
type CustomerCreateRequest struct {
	Email       string            `json:"email,omitempty" validate:"omitempty,email"`
	Name        string            `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone       string            `json:"phone,omitempty" validate:"omitempty,phone"`
	Description string            `json:"description,omitempty" validate:"omitempty,max=500"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CustomerUpdateRequest carries the accepted fields for updating a customer.
// Nil fields are left untouched on the Stripe side, which makes it possible
// to clear a field by pointing at an empty string.
type CustomerUpdateRequest struct {
	Email       *string           `json:"email,omitempty" validate:"omitempty,email"`
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone       *string           `json:"phone,omitempty" validate:"omitempty,phone"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=500"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Customer is the SDK view of a Stripe customer with the fields relevant for
// the internal projects consuming this package.
type Customer struct {
	ID          string            `json:"id"`
	Email       string            `json:"email,omitempty"`
	Name        string            `json:"name,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Description string            `json:"description,omitempty"`
	Created     int64             `json:"created,omitempty"`
	Balance     int64             `json:"balance"`
	Currency    string            `json:"currency,omitempty"`
	Delinquent  bool              `json:"delinquent"`
	Metadata    map[string]string `json:"metadata"`
}

// CustomerResponse is the envelope for single customer operations.
type CustomerResponse struct {
	Data Customer       `json:"data"`
	Meta map[string]any `json:"meta"`
}

// ListMeta carries pagination information for list responses.
type ListMeta struct {
	HasMore    bool   `json:"has_more"`
	TotalCount int    `json:"total_count"`
	Note       string `json:"note,omitempty"`
}

// CustomerListResponse is the envelope for list operations.
type CustomerListResponse struct {
	Data []Customer `json:"data"`
	Meta ListMeta   `json:"meta"`
}

// newCustomer converts a stripe-go customer into the SDK representation.
// The metadata map is always non-nil.
func newCustomer(c *stripeapi.Customer) Customer {
	metadata := map[string]string{}
	for k, v := range c.Metadata {
		metadata[k] = v
	}
	return Customer{
		ID:          c.ID,
		Email:       c.Email,
		Name:        c.Name,
		Phone:       c.Phone,
		Description: c.Description,
		Created:     c.Created,
		Balance:     c.Balance,
		Currency:    string(c.Currency),
		Delinquent:  c.Delinquent,
		Metadata:    metadata,
	}
}

// newCustomerResponse wraps a stripe-go customer into the single-operation
// envelope. The meta map is empty but non-nil, for consistency with list
// responses.
func newCustomerResponse(c *stripeapi.Customer) *CustomerResponse {
	return &CustomerResponse{
		Data: newCustomer(c),
		Meta: map[string]any{},
	}
}

// newCustomerListResponse wraps a page of stripe-go customers into the list
// envelope. TotalCount reflects the current page, not the whole collection.
func newCustomerListResponse(customers []*stripeapi.Customer, hasMore bool, note string) *CustomerListResponse {
	data := make([]Customer, 0, len(customers))
	for _, c := range customers {
		data = append(data, newCustomer(c))
	}
	return &CustomerListResponse{
		Data: data,
		Meta: ListMeta{
			HasMore:    hasMore,
			TotalCount: len(data),
			Note:       note,
		},
	}
}
