// Package detector recognizes a completed form submission on the page it runs on
// and announces it to the background host.
package detector

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"formtrail/internal/capture/messaging"
	"formtrail/internal/submission/models"
)

const (
	titleSuffix      = "- Google Forms"
	headerTitleClass = "freebirdFormviewerViewHeaderTitle"
)

// Page is the rendered state of the page the detector inspects.
type Page struct {
	Title    string
	Document io.Reader
}

// Messenger delivers a message to the background host.
type Messenger interface {
	Send(ctx context.Context, msg messaging.Message) error
}

// Detect derives a best-effort form label from the page. It never fails; every
// lookup miss degrades to the unknown label.
func Detect(page Page) models.FormLabel {
	title := strings.TrimSpace(page.Title)
	title = strings.TrimSpace(strings.TrimSuffix(title, titleSuffix))
	if label := models.KnownLabel(title); label.Known() {
		return label
	}

	if page.Document == nil {
		return models.UnknownLabel()
	}
	doc, err := html.Parse(page.Document)
	if err != nil {
		return models.UnknownLabel()
	}
	if n := findByClass(doc, headerTitleClass); n != nil {
		return models.KnownLabel(textContent(n))
	}
	return models.UnknownLabel()
}

func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// Detector emits the page events.
type Detector struct {
	messenger Messenger
	logger    *slog.Logger
	detect    func(Page) models.FormLabel
}

type Option func(*Detector)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// New creates a Detector that sends through messenger.
func New(messenger Messenger, opts ...Option) *Detector {
	d := &Detector{
		messenger: messenger,
		logger:    slog.Default(),
		detect:    Detect,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Submitted runs on a submission confirmation page: it sends exactly one
// FORM_SUBMITTED message. Send failures are logged and dropped.
func (d *Detector) Submitted(ctx context.Context, page Page) models.FormLabel {
	label := d.safeDetect(ctx, page)
	if !label.Known() {
		d.logger.InfoContext(ctx, "form title not found, sending default")
	}
	d.send(ctx, messaging.Submitted(label.String()))
	return label
}

// Opened runs on a form-view page.
func (d *Detector) Opened(ctx context.Context) {
	d.send(ctx, messaging.Opened())
}

func (d *Detector) safeDetect(ctx context.Context, page Page) (label models.FormLabel) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "form detection failed", "error", fmt.Sprint(r))
			label = models.UnknownLabel()
		}
	}()
	return d.detect(page)
}

func (d *Detector) send(ctx context.Context, msg messaging.Message) {
	if err := d.messenger.Send(ctx, msg); err != nil {
		d.logger.WarnContext(ctx, "failed to notify background host",
			"type", string(msg.Type),
			"error", err,
		)
	}
}
