package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetLastStatusCode() int
	GetLastResponseBody() []byte
	GetResponseField(field string) (interface{}, error)
	SetDocumentID(id string)
	GetDocumentID() string
}

// RegisterSteps registers submission-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &submissionSteps{tc: tc}

	ctx.Step(`^I submit gmail "([^"]*)" title "([^"]*)" timestamp "([^"]*)"$`, steps.submit)
	ctx.Step(`^I submit a record without a "([^"]*)"$`, steps.submitWithout)
	ctx.Step(`^I list the submission logs$`, steps.listLogs)

	ctx.Step(`^the response should carry a document id$`, steps.responseHasDocumentID)
	ctx.Step(`^the logs should contain the submitted record with title "([^"]*)" and timestamp "([^"]*)"$`, steps.logsContainRecord)
}

type submissionSteps struct {
	tc TestContext
}

type logRecord struct {
	ID        string `json:"_id"`
	Gmail     string `json:"gmail"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

func (s *submissionSteps) submit(ctx context.Context, gmail, title, timestamp string) error {
	return s.tc.POST("/submit", map[string]string{
		"gmail":     gmail,
		"title":     title,
		"timestamp": timestamp,
	})
}

func (s *submissionSteps) submitWithout(ctx context.Context, field string) error {
	body := map[string]string{
		"gmail":     "e2e@example.com",
		"title":     "E2E Form",
		"timestamp": "2024-01-01T00:00:00.000Z",
	}
	if _, ok := body[field]; !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	delete(body, field)
	return s.tc.POST("/submit", body)
}

func (s *submissionSteps) listLogs(ctx context.Context) error {
	return s.tc.GET("/logs", nil)
}

func (s *submissionSteps) responseHasDocumentID(ctx context.Context) error {
	v, err := s.tc.GetResponseField("documentId")
	if err != nil {
		return err
	}
	id, ok := v.(string)
	if !ok || strings.TrimSpace(id) == "" {
		return fmt.Errorf("documentId is empty")
	}
	s.tc.SetDocumentID(id)
	return nil
}

func (s *submissionSteps) logsContainRecord(ctx context.Context, title, timestamp string) error {
	var records []logRecord
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &records); err != nil {
		return fmt.Errorf("logs response is not an array: %w", err)
	}
	want := s.tc.GetDocumentID()
	for _, r := range records {
		if r.ID != want {
			continue
		}
		if r.Title != title || r.Timestamp != timestamp {
			return fmt.Errorf("record %s has title %q timestamp %q", want, r.Title, r.Timestamp)
		}
		return nil
	}
	return fmt.Errorf("record %s not found among %d logs", want, len(records))
}
