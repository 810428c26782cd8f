package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dayflow-hr/hrms-backend-go/internal/seed"
	"github.com/joho/godotenv"
)

const usage = `usage: seed [flags] <command>

commands:
  demo           create departments, employees and a week of activity
  leave-types    create or reactivate the default leave types
  clean-leaves   cancel and delete every leave request

environment:
  SEED_API_URL   API base URL (default http://localhost:8080/api/v1)
  SEED_EMAIL     login of an admin account
  SEED_PASSWORD  its password

flags:
`

func main() {
	employees := flag.Int("employees", 10, "number of employees created by demo")
	fakerSeed := flag.Uint64("seed", 0, "faker seed, 0 for random")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	apiURL := os.Getenv("SEED_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api/v1"
	}
	email, password := os.Getenv("SEED_EMAIL"), os.Getenv("SEED_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "SEED_EMAIL and SEED_PASSWORD are required")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := seed.NewClient(apiURL, nil)
	if err := client.Login(ctx, email, password); err != nil {
		logger.Error("Login failed", "error", err)
		os.Exit(1)
	}
	seeder := seed.NewSeeder(client, gofakeit.New(*fakerSeed), logger)

	var err error
	switch flag.Arg(0) {
	case "demo":
		_, err = seeder.Demo(ctx, *employees)
	case "leave-types":
		_, err = seeder.LeaveTypes(ctx)
	case "clean-leaves":
		_, err = seeder.CleanLeaves(ctx)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Seeding failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}
