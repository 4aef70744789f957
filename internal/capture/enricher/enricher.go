// Package enricher is the long-lived background host. It turns a FORM_SUBMITTED
// message into a complete record and hands it to the relay.
package enricher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"formtrail/internal/capture/enricher/metrics"
	"formtrail/internal/capture/identity"
	"formtrail/internal/capture/messaging"
	"formtrail/internal/capture/relay"
	"formtrail/internal/submission/models"
)

// ErrUnknownMessage is returned by Dispatch for message types it does not handle.
var ErrUnknownMessage = messaging.ErrUnknownType

// Relay delivers a complete record once.
type Relay interface {
	Send(ctx context.Context, sub models.Submission) relay.Outcome
}

// Enricher handles messages from form pages. Each submission is processed by its
// own goroutine; there is no ordering across submissions.
type Enricher struct {
	identity identity.Capability
	relay    Relay
	clock    func() time.Time
	logger   *slog.Logger
	metrics  *metrics.Metrics
	inflight sync.WaitGroup
}

type Option func(*Enricher)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Enricher) {
		e.metrics = m
	}
}

// WithClock overrides time.Now for the record timestamp.
func WithClock(clock func() time.Time) Option {
	return func(e *Enricher) {
		e.clock = clock
	}
}

// New creates an Enricher. A nil capability behaves as identity.Unavailable.
func New(capability identity.Capability, r Relay, opts ...Option) *Enricher {
	if capability == nil {
		capability = identity.Unavailable{}
	}
	e := &Enricher{
		identity: capability,
		relay:    r,
		clock:    time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispatch accepts msg and returns without waiting for the work it triggers.
// The work is detached from ctx's cancellation.
func (e *Enricher) Dispatch(ctx context.Context, msg messaging.Message) error {
	switch msg.Type {
	case messaging.FormOpened:
		e.countMessage(msg.Type)
		return nil
	case messaging.FormSubmitted:
		e.countMessage(msg.Type)
		workCtx := context.WithoutCancel(ctx)
		title := msg.Title()
		e.inflight.Add(1)
		e.trackInFlight(1)
		go func() {
			defer e.inflight.Done()
			defer e.trackInFlight(-1)
			e.process(workCtx, title)
		}()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}

// Wait blocks until every dispatched submission has been relayed.
func (e *Enricher) Wait() {
	e.inflight.Wait()
}

// process runs identity lookup, record assembly and relay strictly in sequence.
// The timestamp is taken after the identity lookup returns.
func (e *Enricher) process(ctx context.Context, title string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "submission processing panicked", "error", fmt.Sprint(r))
		}
	}()

	who := e.resolveIdentity(ctx)
	sub := models.NewSubmission(who, models.KnownLabel(title), e.clock())

	outcome := e.relay.Send(ctx, sub)
	if e.metrics != nil {
		e.metrics.IncrementOutcome(string(outcome.Kind))
	}

	attrs := []any{
		"title", sub.FormLabel.String(),
		"gmail", sub.Identity.String(),
		"timestamp", models.FormatTimestamp(sub.SubmittedAt),
		"outcome", string(outcome.Kind),
	}
	switch outcome.Kind {
	case relay.KindDelivered:
		e.logger.InfoContext(ctx, "submission relayed", append(attrs, "document_id", outcome.DocumentID)...)
	case relay.KindRejectedByServer:
		e.logger.WarnContext(ctx, "submission rejected by backend", append(attrs, "status", outcome.Status)...)
	default:
		e.logger.ErrorContext(ctx, "failed to send submission to backend", append(attrs, "reason", outcome.Reason)...)
	}
}

func (e *Enricher) resolveIdentity(ctx context.Context) models.Identity {
	profile, err := e.identity.ProfileUserInfo(ctx, identity.AccountAny)
	if err != nil {
		e.logger.WarnContext(ctx, "could not retrieve email", "error", err)
		e.identityFallback()
		return models.UnresolvedIdentity()
	}
	who := models.ResolvedIdentity(profile.Email)
	if !who.Resolved() {
		e.identityFallback()
	}
	return who
}

func (e *Enricher) countMessage(t messaging.MessageType) {
	if e.metrics != nil {
		e.metrics.IncrementMessage(string(t))
	}
}

func (e *Enricher) identityFallback() {
	if e.metrics != nil {
		e.metrics.IncrementIdentityFallback()
	}
}

func (e *Enricher) trackInFlight(delta float64) {
	if e.metrics != nil {
		e.metrics.TrackInFlight(delta)
	}
}
