package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"formtrail/internal/capture/detector"
	"formtrail/internal/capture/messaging"
	"formtrail/internal/platform/config"
	"formtrail/internal/platform/logger"
)

// main inspects one page and announces it to the background host.
//
//	detector -event submitted -title "Survey - Google Forms" -page confirmation.html
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.ClientFromEnv()

	enricherURL := flag.String("enricher", cfg.EnricherURL, "background host base URL")
	event := flag.String("event", "submitted", "page event: opened or submitted")
	title := flag.String("title", "", "document title of the page")
	pagePath := flag.String("page", "", "HTML of the page; - reads stdin")
	flag.Parse()

	log := logger.New(cfg.Log.Format, cfg.Log.Level)
	d := detector.New(
		messaging.NewHTTPMessenger(*enricherURL, &http.Client{Timeout: cfg.Timeout}),
		detector.WithLogger(log),
	)
	ctx := context.Background()

	switch *event {
	case "opened":
		d.Opened(ctx)
	case "submitted":
		page := detector.Page{Title: *title}
		if *pagePath != "" {
			doc, closeDoc, err := openPage(*pagePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "open page: %v\n", err)
				os.Exit(1)
			}
			defer closeDoc()
			page.Document = doc
		}
		label := d.Submitted(ctx, page)
		fmt.Println(label.String())
	default:
		fmt.Fprintf(os.Stderr, "unknown event %q\n", *event)
		os.Exit(2)
	}
}

func openPage(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
