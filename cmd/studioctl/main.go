package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/shutterdesk/studio/internal/apiclient"
	"github.com/shutterdesk/studio/internal/cli"
)

var CLI struct {
	Version  kong.VersionFlag
	APIURL   string `name:"api-url" help:"Studio API base URL." env:"STUDIO_API_URL" default:"http://localhost:8080"`
	Timezone string `help:"Studio timezone (IANA name)." env:"STUDIO_TIMEZONE" default:"Local"`
	Verbose  bool   `short:"v" help:"Log requests and dropped records to stderr."`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Calendar cli.CalendarCmd `cmd:"" help:"Print a month, week or day grid."`
	Bookings struct {
		List   cli.BookingListCmd   `cmd:"" help:"List bookings."`
		Create cli.BookingCreateCmd `cmd:"" help:"Create a confirmed booking."`
		Status cli.BookingStatusCmd `cmd:"" help:"Set a booking's status."`
		Stats  cli.BookingStatsCmd  `cmd:"" help:"Show booking counts per status."`
	} `cmd:"" help:"Manage bookings."`
	Services struct {
		List cli.ServiceListCmd `cmd:"" help:"List services."`
	} `cmd:"" help:"Browse the service catalog."`
	Clients struct {
		List cli.ClientListCmd `cmd:"" help:"List clients."`
	} `cmd:"" help:"Browse clients."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("studioctl"),
		kong.Description("Photography studio booking calendar"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	loc, err := time.LoadLocation(CLI.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid timezone %q: %v\n", CLI.Timezone, err)
		os.Exit(1)
	}

	level := slog.LevelError
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	appCtx := &cli.Context{
		API:      apiclient.New(CLI.APIURL, apiclient.WithLocation(loc), apiclient.WithLogger(log)),
		Location: loc,
		Out:      os.Stdout,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
