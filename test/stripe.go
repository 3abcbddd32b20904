// Package test provides helpers shared by the package test suites, most
// notably an in-memory fake of the Stripe customers API that the stripe-go
// bindings can be pointed at.
package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// StripeCustomer is the wire representation served by the fake API.
type StripeCustomer struct {
	ID          string            `json:"id"`
	Object      string            `json:"object"`
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Description string            `json:"description"`
	Created     int64             `json:"created"`
	Balance     int64             `json:"balance"`
	Currency    string            `json:"currency"`
	Delinquent  bool              `json:"delinquent"`
	Metadata    map[string]string `json:"metadata"`
}

// StripeServer is a minimal in-memory fake of the Stripe customers API. It
// understands the form-encoded requests produced by stripe-go and keeps the
// created customers in insertion order so pagination can be exercised.
type StripeServer struct {
	srv *httptest.Server

	mtx       sync.Mutex
	customers []*StripeCustomer
	counter   int

	// LastForm holds the form values of the last create or update request,
	// so tests can assert exactly which fields were forwarded.
	LastForm url.Values

	// FailAuth makes every request fail with a Stripe invalid-key error.
	FailAuth bool
}

// NewStripeServer starts a fake Stripe API server. The caller owns it and
// must Close it when done.
func NewStripeServer() *StripeServer {
	s := &StripeServer{}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the base URL to use in the stripe-go backend configuration.
func (s *StripeServer) URL() string {
	return s.srv.URL
}

// Close shuts the fake server down.
func (s *StripeServer) Close() {
	s.srv.Close()
}

// Reset drops all stored customers and recorded state.
func (s *StripeServer) Reset() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.customers = nil
	s.counter = 0
	s.LastForm = nil
	s.FailAuth = false
}

// Customer returns a stored customer by ID, or nil.
func (s *StripeServer) Customer(id string) *StripeCustomer {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.lookup(id)
}

// Seed stores n customers with predictable IDs (cus_1..cus_n) and the given
// email, returning their IDs.
func (s *StripeServer) Seed(n int, email string) []string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	var ids []string
	for i := 0; i < n; i++ {
		s.counter++
		c := &StripeCustomer{
			ID:       fmt.Sprintf("cus_%d", s.counter),
			Object:   "customer",
			Email:    email,
			Created:  time.Now().Unix(),
			Metadata: map[string]string{},
		}
		s.customers = append(s.customers, c)
		ids = append(ids, c.ID)
	}
	return ids
}

func (s *StripeServer) lookup(id string) *StripeCustomer {
	for _, c := range s.customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *StripeServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.FailAuth {
		writeStripeError(w, http.StatusUnauthorized, "invalid_request_error", "", "Invalid API Key provided")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeStripeError(w, http.StatusBadRequest, "invalid_request_error", "", "could not parse form")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/customers")
	switch {
	case path == "" && r.Method == http.MethodPost:
		s.createCustomer(w, r)
	case path == "" && r.Method == http.MethodGet:
		s.listCustomers(w, r)
	case strings.HasPrefix(path, "/") && r.Method == http.MethodGet:
		s.getCustomer(w, strings.TrimPrefix(path, "/"))
	case strings.HasPrefix(path, "/") && r.Method == http.MethodPost:
		s.updateCustomer(w, r, strings.TrimPrefix(path, "/"))
	default:
		writeStripeError(w, http.StatusNotFound, "invalid_request_error", "resource_missing", "Unknown endpoint")
	}
}

func (s *StripeServer) createCustomer(w http.ResponseWriter, r *http.Request) {
	s.counter++
	s.LastForm = r.PostForm

	c := &StripeCustomer{
		ID:          fmt.Sprintf("cus_%d", s.counter),
		Object:      "customer",
		Email:       r.PostForm.Get("email"),
		Name:        r.PostForm.Get("name"),
		Phone:       r.PostForm.Get("phone"),
		Description: r.PostForm.Get("description"),
		Created:     time.Now().Unix(),
		Metadata:    formMetadata(r.PostForm),
	}
	s.customers = append(s.customers, c)
	writeJSON(w, c)
}

func (s *StripeServer) getCustomer(w http.ResponseWriter, id string) {
	c := s.lookup(id)
	if c == nil {
		writeStripeError(w, http.StatusNotFound, "invalid_request_error", "resource_missing",
			fmt.Sprintf("No such customer: '%s'", id))
		return
	}
	writeJSON(w, c)
}

func (s *StripeServer) updateCustomer(w http.ResponseWriter, r *http.Request, id string) {
	c := s.lookup(id)
	if c == nil {
		writeStripeError(w, http.StatusNotFound, "invalid_request_error", "resource_missing",
			fmt.Sprintf("No such customer: '%s'", id))
		return
	}
	s.LastForm = r.PostForm

	if _, ok := r.PostForm["email"]; ok {
		c.Email = r.PostForm.Get("email")
	}
	if _, ok := r.PostForm["name"]; ok {
		c.Name = r.PostForm.Get("name")
	}
	if _, ok := r.PostForm["phone"]; ok {
		c.Phone = r.PostForm.Get("phone")
	}
	if _, ok := r.PostForm["description"]; ok {
		c.Description = r.PostForm.Get("description")
	}
	if metadata := formMetadata(r.PostForm); len(metadata) > 0 {
		c.Metadata = metadata
	}
	writeJSON(w, c)
}

func (s *StripeServer) listCustomers(w http.ResponseWriter, r *http.Request) {
	email := r.Form.Get("email")
	startingAfter := r.Form.Get("starting_after")
	limit := len(s.customers)
	if rawLimit := r.Form.Get("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil {
			limit = parsed
		}
	}

	var matches []*StripeCustomer
	skipping := startingAfter != ""
	for _, c := range s.customers {
		if skipping {
			if c.ID == startingAfter {
				skipping = false
			}
			continue
		}
		if email != "" && c.Email != email {
			continue
		}
		matches = append(matches, c)
	}

	hasMore := false
	if len(matches) > limit {
		matches = matches[:limit]
		hasMore = true
	}
	if matches == nil {
		matches = []*StripeCustomer{}
	}

	writeJSON(w, map[string]any{
		"object":   "list",
		"url":      "/v1/customers",
		"has_more": hasMore,
		"data":     matches,
	})
}

// formMetadata extracts metadata[key] entries from a form.
func formMetadata(form url.Values) map[string]string {
	metadata := map[string]string{}
	for key, values := range form {
		if strings.HasPrefix(key, "metadata[") && strings.HasSuffix(key, "]") && len(values) > 0 {
			metadata[key[len("metadata["):len(key)-1]] = values[0]
		}
	}
	return metadata
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeStripeError(w http.ResponseWriter, status int, errType, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"type":    errType,
			"code":    code,
			"message": message,
		},
	})
}
