package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Reporter delivers training completion/failure reports to a webhook.
// A Reporter built without a URL is disabled and drops reports silently.
type Reporter struct {
	client *resty.Client
	url    string
}

// NewReporter creates a new Reporter.
// Parameters:
//   - webhookURL: destination URL; empty disables delivery.
// Returns:
//   - *Reporter: initialized reporter.
func NewReporter(webhookURL string) *Reporter {
	if webhookURL == "" {
		return &Reporter{}
	}
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	return &Reporter{client: client, url: webhookURL}
}

// IsEnabled reports whether a webhook URL is configured.
func (r *Reporter) IsEnabled() bool {
	return r.client != nil
}

// Send posts the report as JSON to the configured webhook.
func (r *Reporter) Send(ctx context.Context, report *TrainReport) error {
	if !r.IsEnabled() {
		return nil
	}
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(report).
		Post(r.url)
	if err != nil {
		return fmt.Errorf("failed to post training report: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("training report webhook returned %s", resp.Status())
	}
	return nil
}
