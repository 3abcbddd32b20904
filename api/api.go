// Package api provides the HTTP facade for the Stripe customer SDK, exposing
// the customer operations over a JWT-protected REST surface.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pamfilico/stripe-sdk/stripe"
	"github.com/pamfilico/stripe-sdk/validator"
	"go.vocdoni.io/dvote/log"
)

// Config holds the API server configuration.
type Config struct {
	Host   string
	Port   int
	Secret string
	Stripe *stripe.Service
}

// API type represents the API HTTP server with JWT authentication capabilities.
type API struct {
	host      string
	port      int
	secret    string
	auth      *jwtauth.JWTAuth
	router    *chi.Mux
	stripe    *stripe.Service
	validator *validator.Validator
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}

	return &API{
		host:      conf.Host,
		port:      conf.Port,
		secret:    conf.Secret,
		auth:      jwtauth.New("HS256", []byte(conf.Secret), nil),
		stripe:    conf.Stripe,
		validator: validator.New(),
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// Router returns the HTTP handler with all the routes and middleware, for
// callers that want to mount or serve it themselves.
func (a *API) Router() http.Handler {
	return a.initRouter()
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	// Create the router with a basic middleware stack
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	r.Use(middleware.Timeout(45 * time.Second))

	// protected routes
	r.Group(func(r chi.Router) {
		// seek, verify and validate JWT tokens
		r.Use(jwtauth.Verifier(a.auth))
		// handle valid JWT tokens
		r.Use(a.authenticator)
		// create a customer
		log.Infow("new route", "method", "POST", "path", customersEndpoint)
		r.With(a.validateInputModel(stripe.CustomerCreateRequest{}), a.InputValidator).
			Post(customersEndpoint, a.createCustomerHandler)
		// list customers, optionally filtered by email
		log.Infow("new route", "method", "GET", "path", customersEndpoint)
		r.Get(customersEndpoint, a.listCustomersHandler)
		// get a customer by ID
		log.Infow("new route", "method", "GET", "path", customerEndpoint)
		r.Get(customerEndpoint, a.getCustomerHandler)
		// update a customer
		log.Infow("new route", "method", "PUT", "path", customerEndpoint)
		r.With(a.validateInputModel(stripe.CustomerUpdateRequest{}), a.InputValidator).
			Put(customerEndpoint, a.updateCustomerHandler)
	})

	// Public routes
	r.Group(func(r chi.Router) {
		log.Infow("new route", "method", "GET", "path", pingEndpoint)
		r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
			httpWriteOK(w)
		})
	})

	a.router = r
	return r
}

// InputValidator is a middleware that validates the request body against the
// model stored in the context. It uses the validator package to validate the model.
func (a *API) InputValidator(next http.Handler) http.Handler {
	return a.validator.InputValidator(next)
}

// validateInputModel is a middleware that adds the model to the request context
// for validation by the InputValidator middleware.
func (a *API) validateInputModel(model interface{}) func(http.Handler) http.Handler {
	return a.validator.AddModelMiddleware(model)
}
