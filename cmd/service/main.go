package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pamfilico/stripe-sdk/api"
	"github.com/pamfilico/stripe-sdk/stripe"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"
)

func main() {
	log.Init("debug", "stdout", nil)
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 8080, "listen port")
	flag.StringP("secret", "s", "", "API secret used to sign JWT tokens")
	flag.String("stripe-secret-key", "", "Stripe secret key (sk_...)")
	flag.String("stripe-publishable-key", "", "Stripe publishable key (pk_...)")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("PAMFILICO")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	// read the configuration
	host := viper.GetString("host")
	port := viper.GetInt("port")
	secret := viper.GetString("secret")
	if secret == "" {
		log.Fatal("secret is required")
	}
	// initialize the Stripe service; the SDK validates the keys itself
	stripeService, err := stripe.New(&stripe.Config{
		SecretKey:      viper.GetString("stripe-secret-key"),
		PublishableKey: viper.GetString("stripe-publishable-key"),
	})
	if err != nil {
		log.Fatalf("could not create the Stripe service: %v", err)
	}
	// create the local API server
	api.New(&api.Config{
		Host:   host,
		Port:   port,
		Secret: secret,
		Stripe: stripeService,
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
