package stripe

import (
	"errors"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	stripeapi "github.com/stripe/stripe-go/v82"
)

func TestCreateCustomer(t *testing.T) {
	c := qt.New(t)
	service := testService(t)

	resp, err := service.CreateCustomer(&CustomerCreateRequest{
		Email:       "customer@example.com",
		Name:        "John Doe",
		Phone:       "+1234567890",
		Description: "Premium customer",
		Metadata:    map[string]string{"plan": "premium"},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data.ID, qt.Not(qt.Equals), "")
	c.Assert(resp.Data.Email, qt.Equals, "customer@example.com")
	c.Assert(resp.Data.Name, qt.Equals, "John Doe")
	c.Assert(resp.Data.Phone, qt.Equals, "+1234567890")
	c.Assert(resp.Data.Description, qt.Equals, "Premium customer")
	c.Assert(resp.Data.Metadata, qt.DeepEquals, map[string]string{"plan": "premium"})
	// the meta map is empty but present, for consistency with list responses
	c.Assert(resp.Meta, qt.IsNotNil)
	c.Assert(resp.Meta, qt.HasLen, 0)

	// the form carries exactly the fields that were set
	form := stripeServer.LastForm
	c.Assert(form.Get("email"), qt.Equals, "customer@example.com")
	c.Assert(form.Get("metadata[plan]"), qt.Equals, "premium")

	// empty fields are not forwarded at all
	_, err = service.CreateCustomer(&CustomerCreateRequest{Email: "bare@example.com"})
	c.Assert(err, qt.IsNil)
	form = stripeServer.LastForm
	c.Assert(form.Has("name"), qt.IsFalse)
	c.Assert(form.Has("phone"), qt.IsFalse)
	c.Assert(form.Has("description"), qt.IsFalse)
}

func TestCreateCustomerValidation(t *testing.T) {
	c := qt.New(t)
	service := testService(t)

	cases := []CustomerCreateRequest{
		{Email: "not-an-email"},
		{Phone: "555-1234"},
		{Description: string(make([]byte, 501))},
	}
	for i, req := range cases {
		_, err := service.CreateCustomer(&req)
		c.Assert(err, qt.IsNotNil, qt.Commentf("case %d", i))
		stripeErr, ok := err.(*StripeError)
		c.Assert(ok, qt.IsTrue, qt.Commentf("case %d", i))
		c.Assert(stripeErr.Code, qt.Equals, "validation_failed", qt.Commentf("case %d", i))
	}
	// nothing reached the fake server
	c.Assert(stripeServer.LastForm, qt.IsNil)

	_, err := service.CreateCustomer(nil)
	c.Assert(err, qt.IsNotNil)
}

func TestGetCustomer(t *testing.T) {
	c := qt.New(t)
	service := testService(t)
	ids := stripeServer.Seed(1, "customer@example.com")

	resp, err := service.GetCustomer(ids[0])
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data.ID, qt.Equals, ids[0])
	c.Assert(resp.Data.Email, qt.Equals, "customer@example.com")
	c.Assert(resp.Data.Metadata, qt.IsNotNil)

	// unknown customers map to the customer_not_found code
	_, err = service.GetCustomer("cus_missing")
	c.Assert(err, qt.IsNotNil)
	c.Assert(IsNotFound(err), qt.IsTrue)

	// the original stripe-go error remains reachable
	var apiErr *stripeapi.Error
	c.Assert(errors.As(err, &apiErr), qt.IsTrue)
	c.Assert(apiErr.Code, qt.Equals, stripeapi.ErrorCodeResourceMissing)

	// an empty ID never reaches the API
	_, err = service.GetCustomer("")
	stripeErr, ok := err.(*StripeError)
	c.Assert(ok, qt.IsTrue)
	c.Assert(stripeErr.Code, qt.Equals, "validation_failed")
}

func TestUpdateCustomer(t *testing.T) {
	c := qt.New(t)
	service := testService(t)
	ids := stripeServer.Seed(1, "old@example.com")

	name := "Jane Doe"
	resp, err := service.UpdateCustomer(ids[0], &CustomerUpdateRequest{
		Name:     &name,
		Metadata: map[string]string{"plan": "enterprise"},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data.Name, qt.Equals, "Jane Doe")
	// fields left nil are not forwarded, so the email is untouched
	c.Assert(resp.Data.Email, qt.Equals, "old@example.com")
	c.Assert(stripeServer.LastForm.Has("email"), qt.IsFalse)

	// pointing at an empty string clears the field on the Stripe side
	empty := ""
	resp, err = service.UpdateCustomer(ids[0], &CustomerUpdateRequest{Name: &empty})
	c.Assert(err, qt.IsNil)
	c.Assert(stripeServer.LastForm.Has("name"), qt.IsTrue)
	c.Assert(resp.Data.Name, qt.Equals, "")

	// validation still applies to set pointers
	bad := "not-an-email"
	_, err = service.UpdateCustomer(ids[0], &CustomerUpdateRequest{Email: &bad})
	stripeErr, ok := err.(*StripeError)
	c.Assert(ok, qt.IsTrue)
	c.Assert(stripeErr.Code, qt.Equals, "validation_failed")

	_, err = service.UpdateCustomer("cus_missing", &CustomerUpdateRequest{Name: &name})
	c.Assert(IsNotFound(err), qt.IsTrue)
}

func TestGetCustomersByEmail(t *testing.T) {
	c := qt.New(t)
	service := testService(t)
	stripeServer.Seed(2, "shared@example.com")
	stripeServer.Seed(1, "other@example.com")

	// stripe allows several customers with the same email
	resp, err := service.GetCustomersByEmail("shared@example.com")
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data, qt.HasLen, 2)
	c.Assert(resp.Meta.TotalCount, qt.Equals, 2)
	c.Assert(resp.Meta.Note, qt.Equals, "Found 2 customers")

	resp, err = service.GetCustomersByEmail("other@example.com")
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data, qt.HasLen, 1)
	c.Assert(resp.Meta.Note, qt.Equals, "Found 1 customer")

	// no match is an empty list, not an error
	resp, err = service.GetCustomersByEmail("nobody@example.com")
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data, qt.HasLen, 0)
	c.Assert(resp.Data, qt.IsNotNil)
	c.Assert(resp.Meta.Note, qt.Equals, "Found 0 customers")

	_, err = service.GetCustomersByEmail("")
	c.Assert(err, qt.IsNotNil)
}

func TestListCustomers(t *testing.T) {
	c := qt.New(t)
	service := testService(t)
	stripeServer.Seed(150, "bulk@example.com")

	// a non-positive limit falls back to the default page size
	resp, err := service.ListCustomers(0, "")
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data, qt.HasLen, DefaultListLimit)
	c.Assert(resp.Meta.HasMore, qt.IsTrue)
	c.Assert(resp.Meta.TotalCount, qt.Equals, DefaultListLimit)

	// cursor pagination picks up where the previous page ended
	lastID := resp.Data[len(resp.Data)-1].ID
	resp, err = service.ListCustomers(100, lastID)
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data, qt.HasLen, 50)
	c.Assert(resp.Meta.HasMore, qt.IsFalse)

	// anything above the maximum is capped
	resp, err = service.ListCustomers(500, "")
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data, qt.HasLen, MaxListLimit)

	resp, err = service.ListCustomers(10, "")
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Data, qt.HasLen, 10)
	c.Assert(resp.Meta.HasMore, qt.IsTrue)
}

func TestErrorMapping(t *testing.T) {
	c := qt.New(t)
	service := testService(t)
	stripeServer.FailAuth = true

	_, err := service.GetCustomer("cus_1")
	c.Assert(err, qt.IsNotNil)
	stripeErr, ok := err.(*StripeError)
	c.Assert(ok, qt.IsTrue)
	c.Assert(stripeErr.Code, qt.Equals, "authentication_failed")

	var apiErr *stripeapi.Error
	c.Assert(errors.As(err, &apiErr), qt.IsTrue)

	// authentication failures are not retryable, generic API failures are
	c.Assert(IsRetryableError(stripeErr), qt.IsFalse)
	c.Assert(IsRetryableError(NewStripeError("api_call_failed", "boom", nil)), qt.IsTrue)
	c.Assert(IsRetryableError(fmt.Errorf("plain error")), qt.IsFalse)
}
