package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Notifier

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"formtrail/internal/submission/metrics"
	"formtrail/internal/submission/models"
	"formtrail/internal/submission/service/mocks"
	"formtrail/internal/submission/store"
	dErrors "formtrail/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockStore    *mocks.MockStore
	mockNotifier *mocks.MockNotifier
	service      *Service
	fixedID      uuid.UUID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.mockNotifier = mocks.NewMockNotifier(s.ctrl)
	s.fixedID = uuid.New()

	var err error
	s.service, err = New(s.mockStore,
		WithNotifier(s.mockNotifier),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithIDGenerator(func() uuid.UUID { return s.fixedID }),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func validRequest() models.SubmitRequest {
	return models.SubmitRequest{
		Gmail:     "user@example.com",
		Title:     "Volunteer Signup",
		Timestamp: "2024-06-01T10:00:00.000Z",
	}
}

func (s *ServiceSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "submission store is required")
	})
}

func (s *ServiceSuite) TestCreate_MissingFields() {
	ctx := context.Background()
	cases := map[string]func(r *models.SubmitRequest){
		"missing gmail":     func(r *models.SubmitRequest) { r.Gmail = "" },
		"missing title":     func(r *models.SubmitRequest) { r.Title = "" },
		"missing timestamp": func(r *models.SubmitRequest) { r.Timestamp = "" },
		"blank title":       func(r *models.SubmitRequest) { r.Title = "   " },
	}
	for name, mutate := range cases {
		s.Run(name, func() {
			req := validRequest()
			mutate(&req)

			id, err := s.service.Create(ctx, req)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeMissingField))
			s.Equal(uuid.Nil, id)
		})
	}
}

func (s *ServiceSuite) TestCreate_RejectsMalformedTimestamp() {
	req := validRequest()
	req.Timestamp = "last tuesday"

	_, err := s.service.Create(context.Background(), req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestCreate_NormalizesAndPersists() {
	req := validRequest()
	req.Timestamp = "2024-06-01T12:00:00.987654+02:00"

	expected := models.Submission{
		ID:          s.fixedID,
		Identity:    models.ResolvedIdentity("user@example.com"),
		FormLabel:   models.KnownLabel("Volunteer Signup"),
		SubmittedAt: time.Date(2024, 6, 1, 10, 0, 0, 987_000_000, time.UTC),
	}
	s.mockStore.EXPECT().Insert(gomock.Any(), expected).Return(nil)
	s.mockNotifier.EXPECT().SubmissionCreated(gomock.Any(), expected).Return(nil)

	id, err := s.service.Create(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(s.fixedID, id)
}

func (s *ServiceSuite) TestCreate_StoreFailureIsUnavailable() {
	s.mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	id, err := s.service.Create(context.Background(), validRequest())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Equal(uuid.Nil, id)
}

func (s *ServiceSuite) TestCreate_NotifierFailureDoesNotFailCreate() {
	s.mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	s.mockNotifier.EXPECT().SubmissionCreated(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	id, err := s.service.Create(context.Background(), validRequest())
	s.Require().NoError(err)
	s.Equal(s.fixedID, id)
}

func (s *ServiceSuite) TestCreate_SlowNotifierDoesNotHoldTheRequest() {
	svc, err := New(s.mockStore,
		WithNotifier(s.mockNotifier),
		WithNotifyTimeout(50*time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithIDGenerator(func() uuid.UUID { return s.fixedID }),
	)
	s.Require().NoError(err)

	s.mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	s.mockNotifier.EXPECT().SubmissionCreated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.Submission) error {
			<-ctx.Done()
			return ctx.Err()
		})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	id, err := svc.Create(ctx, validRequest())
	elapsed := time.Since(start)

	s.Require().NoError(err)
	s.Equal(s.fixedID, id)
	s.Less(elapsed, time.Second, "create must not wait on the request deadline for the notifier")
	s.NoError(ctx.Err())
}

func (s *ServiceSuite) TestCreate_NotifierOutlivesRequestCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Submission) error {
			cancel()
			return nil
		})
	s.mockNotifier.EXPECT().SubmissionCreated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.Submission) error {
			s.NoError(ctx.Err())
			_, hasDeadline := ctx.Deadline()
			s.True(hasDeadline)
			return nil
		})

	id, err := s.service.Create(ctx, validRequest())
	s.Require().NoError(err)
	s.Equal(s.fixedID, id)
}

func (s *ServiceSuite) TestMetrics() {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	svc, err := New(s.mockStore,
		WithMetrics(m),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
	s.Require().NoError(err)
	ctx := context.Background()

	s.mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	_, err = svc.Create(ctx, validRequest())
	s.Require().NoError(err)
	s.Equal(1.0, promtest.ToFloat64(m.SubmissionsCreated))

	missing := validRequest()
	missing.Gmail = ""
	_, err = svc.Create(ctx, missing)
	s.Require().Error(err)
	s.Equal(1.0, promtest.ToFloat64(m.SubmissionsRejected.WithLabelValues("missing_field")))

	badTime := validRequest()
	badTime.Timestamp = "yesterday"
	_, err = svc.Create(ctx, badTime)
	s.Require().Error(err)
	s.Equal(1.0, promtest.ToFloat64(m.SubmissionsRejected.WithLabelValues("invalid_timestamp")))

	s.mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
	_, err = svc.Create(ctx, validRequest())
	s.Require().Error(err)
	s.Equal(1.0, promtest.ToFloat64(m.SubmissionsRejected.WithLabelValues("unavailable")))
	s.Equal(1.0, promtest.ToFloat64(m.SubmissionsCreated))

	s.mockStore.EXPECT().List(gomock.Any()).Return([]models.Submission{{}, {}}, nil)
	_, err = svc.List(ctx)
	s.Require().NoError(err)
	s.Equal(2.0, promtest.ToFloat64(m.ListedRecords))
}

func (s *ServiceSuite) TestList() {
	ctx := context.Background()

	s.Run("store failure is unavailable, not a partial list", func() {
		s.mockStore.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))

		subs, err := s.service.List(ctx)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.Nil(subs)
	})

	s.Run("empty store returns an empty, non-nil slice", func() {
		s.mockStore.EXPECT().List(gomock.Any()).Return(nil, nil)

		subs, err := s.service.List(ctx)
		s.Require().NoError(err)
		s.NotNil(subs)
		s.Empty(subs)
	})
}

// TestCreateThenListWithInMemoryStore exercises the real store so that a
// created id shows up in a subsequent listing.
func TestCreateThenListWithInMemoryStore(t *testing.T) {
	ctx := context.Background()
	svc, err := New(store.NewInMemoryStore())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	first, err := svc.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique ids, got %s twice", first)
	}

	subs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	ids := map[uuid.UUID]bool{}
	for _, sub := range subs {
		ids[sub.ID] = true
	}
	if !ids[first] || !ids[second] {
		t.Fatalf("expected both created ids in listing, got %v", ids)
	}
}
