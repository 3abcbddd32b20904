package api

const (
	// public routes

	// GET /ping to check the server is up
	pingEndpoint = "/ping"

	// customer routes

	// POST /customers to create a new customer
	// GET /customers to list customers, optionally filtered by email
	customersEndpoint = "/customers"
	// GET /customers/{customerID} to get a customer by ID
	// PUT /customers/{customerID} to update a customer
	customerEndpoint = "/customers/{customerID}"
)
