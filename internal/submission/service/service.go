package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"formtrail/internal/submission/metrics"
	"formtrail/internal/submission/models"
	dErrors "formtrail/pkg/domain-errors"
)

// Public messages are part of the wire contract.
const (
	msgMissingFields    = "Missing required fields."
	msgInvalidTimestamp = "Invalid timestamp."
	msgSaveFailed       = "Failed to save data."
	msgFetchFailed      = "Failed to fetch data."
)

// DefaultNotifyTimeout bounds how long Create waits on the notifier.
const DefaultNotifyTimeout = 250 * time.Millisecond

var tracer = otel.Tracer("formtrail/internal/submission/service")

// Store is the persistence contract: independent inserts and a full listing.
// Implementations must return every record or an error, never a partial set.
type Store interface {
	Insert(ctx context.Context, submission models.Submission) error
	List(ctx context.Context) ([]models.Submission, error)
}

// Notifier is told about every persisted submission.
type Notifier interface {
	SubmissionCreated(ctx context.Context, submission models.Submission) error
}

// Service validates, normalizes and persists submissions.
type Service struct {
	store         Store
	notifier      Notifier
	notifyTimeout time.Duration
	logger        *slog.Logger
	metrics       *metrics.Metrics
	newID         func() uuid.UUID
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithNotifyTimeout overrides DefaultNotifyTimeout.
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

// WithIDGenerator overrides uuid.New, for deterministic tests.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("submission store is required")
	}
	s := &Service{
		store:         store,
		notifyTimeout: DefaultNotifyTimeout,
		logger:        slog.Default(),
		newID:         uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create validates req, assigns an id and persists the record.
//
// All three fields must be present. The timestamp is normalized to its
// canonical form; a timestamp that does not parse is rejected instead of being
// stored.
func (s *Service) Create(ctx context.Context, req models.SubmitRequest) (uuid.UUID, error) {
	ctx, span := tracer.Start(ctx, "submission.Create")
	defer span.End()
	start := time.Now()
	defer s.observeCreate(start)

	sub, err := s.validate(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return uuid.Nil, err
	}
	sub.ID = s.newID()
	span.SetAttributes(attribute.String("submission.id", sub.ID.String()))

	if err := s.store.Insert(ctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "failed to save submission",
			"error", err,
			"submission_id", sub.ID,
		)
		s.incrementRejected("unavailable")
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeUnavailable, msgSaveFailed)
	}

	s.logger.InfoContext(ctx, "submission saved",
		"submission_id", sub.ID,
		"title", sub.FormLabel.String(),
	)
	s.incrementCreated()
	s.notify(ctx, sub)
	return sub.ID, nil
}

func (s *Service) validate(req models.SubmitRequest) (models.Submission, error) {
	gmail := strings.TrimSpace(req.Gmail)
	title := strings.TrimSpace(req.Title)
	timestamp := strings.TrimSpace(req.Timestamp)
	if gmail == "" || title == "" || timestamp == "" {
		s.incrementRejected("missing_field")
		return models.Submission{}, dErrors.New(dErrors.CodeMissingField, msgMissingFields)
	}

	submittedAt, err := models.ParseTimestamp(timestamp)
	if err != nil {
		s.incrementRejected("invalid_timestamp")
		return models.Submission{}, dErrors.Wrap(err, dErrors.CodeValidation, msgInvalidTimestamp)
	}

	return models.NewSubmission(models.ResolvedIdentity(gmail), models.KnownLabel(title), submittedAt), nil
}

// List returns every persisted record, unordered.
func (s *Service) List(ctx context.Context) ([]models.Submission, error) {
	ctx, span := tracer.Start(ctx, "submission.List")
	defer span.End()
	start := time.Now()

	subs, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list submissions", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, msgFetchFailed)
	}
	if subs == nil {
		subs = []models.Submission{}
	}

	span.SetAttributes(attribute.Int("submission.count", len(subs)))
	s.logger.InfoContext(ctx, "submissions listed", "count", len(subs))
	if s.metrics != nil {
		s.metrics.ObserveList(start, len(subs))
	}
	return subs, nil
}

// notify is best effort; a failed notification never fails the create. It
// runs on its own short deadline, detached from the caller's cancellation.
func (s *Service) notify(ctx context.Context, sub models.Submission) {
	if s.notifier == nil {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	if err := s.notifier.SubmissionCreated(nctx, sub); err != nil {
		s.logger.WarnContext(ctx, "failed to publish submission",
			"error", err,
			"submission_id", sub.ID,
		)
	}
}

func (s *Service) observeCreate(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveCreate(start)
	}
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
}

func (s *Service) incrementRejected(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementRejected(reason)
	}
}
