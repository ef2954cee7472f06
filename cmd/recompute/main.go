// Command recompute forces a synchronous flush of one exam session.
//
// Exit codes: 0 success, 2 session not found, 3 reference data missing,
// 4 partial failure (details in the log).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/config"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/database"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/events"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/services"
)

const (
	exitOK              = 0
	exitSessionNotFound = 2
	exitReferenceData   = 3
	exitPartialFailure  = 4
)

func main() {
	sessionID := flag.String("session", "", "exam session ID to recompute")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline for the flush")
	flag.Parse()

	if *sessionID == "" {
		log.Println("Usage: recompute -session <session-id> [-timeout 2m]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Cannot establish database connection:", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	bus := events.NewBus()
	defer bus.Close()
	rec := services.NewRecomputer(services.NewStore(db), bus, 0, 0)

	stats, err := rec.Flush(ctx, *sessionID)
	switch {
	case errors.Is(err, database.ErrSessionNotFound):
		log.Printf("Session %s not found", *sessionID)
		os.Exit(exitSessionNotFound)
	case errors.Is(err, services.ErrReferenceData):
		log.Printf("Reference data missing: %v", err)
		os.Exit(exitReferenceData)
	case err != nil:
		log.Printf("Recompute failed: %v", err)
		os.Exit(1)
	}

	log.Printf("Recomputed %d students (%d failed) in session %s", stats.Students, stats.Failed, *sessionID)
	if stats.Partial() {
		os.Exit(exitPartialFailure)
	}
	os.Exit(exitOK)
}
