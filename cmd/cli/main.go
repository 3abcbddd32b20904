// Package main provides a CLI tool for operating on Stripe customers through
// the SDK. It supports five actions:
// 1. create: create a customer from the provided fields
// 2. get: fetch a customer by ID
// 3. update: update the provided fields of a customer
// 4. find: list the customers matching an email address
// 5. list: page through all customers
package main

import (
	"encoding/json"
	"fmt"

	"github.com/pamfilico/stripe-sdk/stripe"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"
)

func main() {
	// Initialize logger
	log.Init("info", "stdout", nil)

	// Define command-line flags
	flag.StringP("action", "a", "", "Action to perform: create, get, update, find or list (required)")
	flag.String("secret-key", "", "Stripe secret key (sk_...)")
	flag.String("publishable-key", "", "Stripe publishable key (pk_...)")
	flag.StringP("customer", "c", "", "Customer ID (required for get and update)")
	flag.StringP("email", "e", "", "Customer email address")
	flag.StringP("name", "n", "", "Customer name")
	flag.String("phone", "", "Customer phone number")
	flag.String("description", "", "Customer description")
	flag.Int64P("limit", "l", 0, "Page size for list (max 100)")
	flag.String("starting-after", "", "Customer ID used as pagination cursor for list")

	// Parse flags
	flag.Parse()

	// Initialize Viper for environment variable support
	viper.SetEnvPrefix("PAMFILICO")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		log.Fatalf("could not bind flags: %v", err)
	}
	viper.AutomaticEnv()

	// Read configuration
	action := viper.GetString("action")
	customerID := viper.GetString("customer")
	email := viper.GetString("email")

	// The SDK validates the keys, so no need to check them here
	service, err := stripe.New(&stripe.Config{
		SecretKey:      viper.GetString("secret-key"),
		PublishableKey: viper.GetString("publishable-key"),
	})
	if err != nil {
		log.Fatalf("could not create the Stripe service: %v", err)
	}

	var result any
	switch action {
	case "create":
		result, err = service.CreateCustomer(&stripe.CustomerCreateRequest{
			Email:       email,
			Name:        viper.GetString("name"),
			Phone:       viper.GetString("phone"),
			Description: viper.GetString("description"),
		})
	case "get":
		if customerID == "" {
			log.Fatal("customer is required for get")
		}
		result, err = service.GetCustomer(customerID)
	case "update":
		if customerID == "" {
			log.Fatal("customer is required for update")
		}
		req := &stripe.CustomerUpdateRequest{}
		if flag.CommandLine.Changed("email") {
			req.Email = &email
		}
		for _, f := range []struct {
			name  string
			field **string
		}{
			{"name", &req.Name},
			{"phone", &req.Phone},
			{"description", &req.Description},
		} {
			if flag.CommandLine.Changed(f.name) {
				value := viper.GetString(f.name)
				*f.field = &value
			}
		}
		result, err = service.UpdateCustomer(customerID, req)
	case "find":
		if email == "" {
			log.Fatal("email is required for find")
		}
		result, err = service.GetCustomersByEmail(email)
	case "list":
		result, err = service.ListCustomers(viper.GetInt64("limit"), viper.GetString("starting-after"))
	default:
		log.Fatalf("unknown action %q, expected create, get, update, find or list", action)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", action, err)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("could not marshal result: %v", err)
	}
	fmt.Println(string(output))
}
