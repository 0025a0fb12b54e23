// Command createuser registers a user in the configured store, optionally
// with a number of generated blogs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"bloglist/internal/config"
	"bloglist/internal/middleware"
	"bloglist/internal/repository"
	"bloglist/internal/seed"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	defaults := seed.DefaultOptions()
	username := flag.String("username", defaults.Username, "Username of the new user")
	name := flag.String("name", defaults.Name, "Display name of the new user")
	password := flag.String("password", defaults.Password, "Password of the new user")
	blogs := flag.Int("blogs", 0, "Number of fake blogs to create for the user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	middleware.ConfigureLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	user, err := seed.NewSeeder(store, cfg.BcryptCost).CreateUser(ctx, seed.Options{
		Username: *username,
		Name:     *name,
		Password: *password,
		Blogs:    *blogs,
	})
	if err != nil {
		return err
	}

	log.Printf("Created user %s (%s) with %d blogs on %s", user.Username, user.ID, len(user.Blogs), store.Backend)
	return nil
}
