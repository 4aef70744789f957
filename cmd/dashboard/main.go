package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"formtrail/internal/dashboard"
	"formtrail/internal/platform/config"
	"formtrail/internal/platform/logger"
)

// main fetches the submission log once and filters it by title. With -query it
// prints one table and exits; otherwise every input line is a new query.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.ClientFromEnv()

	backendURL := flag.String("backend", cfg.BackendURL, "store base URL")
	query := flag.String("query", "", "title filter; prints once and exits")
	flag.Parse()
	oneShot := isFlagSet("query")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logger.New(cfg.Log.Format, cfg.Log.Level)
	view := dashboard.NewView(dashboard.WithLogger(log))

	fmt.Println("Form Submission Logs")
	fmt.Println()
	if err := view.Render(os.Stdout); err != nil {
		os.Exit(1)
	}
	_ = view.Load(ctx, dashboard.NewHTTPLister(*backendURL, &http.Client{Timeout: cfg.Timeout}))

	view.SetQuery(*query)
	if err := view.Render(os.Stdout); err != nil {
		os.Exit(1)
	}
	if oneShot || view.State() != dashboard.StateReady {
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nSearch by title: ")
		if !scanner.Scan() || ctx.Err() != nil {
			fmt.Println()
			return
		}
		view.SetQuery(scanner.Text())
		if err := view.Render(os.Stdout); err != nil {
			os.Exit(1)
		}
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
