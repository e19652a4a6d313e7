package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/meetup-tasks/internal/app"
	"github.com/agalitsyn/meetup-tasks/internal/model"
	"github.com/agalitsyn/meetup-tasks/internal/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := ParseFlags()
	setupLogger(cfg.Debug)

	if cfg.Debug {
		lgr.Printf("DEBUG running with config")
		fmt.Fprintln(os.Stdout, cfg.String())
	}

	store := memory.NewStore()
	if cfg.Demo {
		if err := seedDemoData(ctx, store); err != nil {
			lgr.Printf("ERROR could not seed demo data: %s", err)
			os.Exit(1)
		}
	}

	session := app.NewSession(os.Stdin, os.Stdout, store, store)
	if cfg.Event != "" {
		event, err := store.FetchEventByName(ctx, cfg.Event)
		if err != nil {
			lgr.Printf("ERROR could not find event %q: %s", cfg.Event, err)
			os.Exit(1)
		}
		session.SelectEvent(event.ID)
	}
	session.Start(ctx)
}

func setupLogger(debug bool) {
	opts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if debug {
		opts = append(opts, lgr.Debug, lgr.CallerFile, lgr.CallerFunc)
	}
	lgr.Setup(opts...)
}

// seedDemoData mirrors a fresh session of the original app: two events, two
// tasks, one of them already done.
func seedDemoData(ctx context.Context, store *memory.Store) error {
	meetup := model.NewEvent("TechNexus Monthly Meetup", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	if err := store.CreateEvent(ctx, meetup); err != nil {
		return err
	}
	planning := model.NewEvent("Q1 Planning Session", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if err := store.CreateEvent(ctx, planning); err != nil {
		return err
	}

	venue := model.NewTask(meetup.ID, "Setup venue", "John Doe")
	venue.Description = "Book the conference room for the meetup"
	venue.Phone = "+1234567890"
	venue.Deadline = time.Date(2025, 2, 28, 14, 0, 0, 0, time.UTC)
	venue.Priority = model.TaskPriorityHigh
	if err := store.CreateTask(ctx, venue); err != nil {
		return err
	}

	invites := model.NewTask(meetup.ID, "Send invitations", "Jane Smith")
	invites.Description = "Send email invites to all members"
	invites.Phone = "+1987654321"
	invites.Deadline = time.Date(2025, 2, 25, 10, 0, 0, 0, time.UTC)
	invites.Status = model.TaskStatusDone
	invites.Priority = model.TaskPriorityHigh
	if err := store.CreateTask(ctx, invites); err != nil {
		return err
	}

	return nil
}
