// Package broker talks to the external IDS connector (TRUE Connector): it
// holds the base resource-description template and registers finished
// descriptions with the broker endpoint.
package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// UpstreamError reports a non-2xx answer from the broker. The status code
// is surfaced to the caller so the HTTP boundary can relay it.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("broker returned status %d: %s", e.StatusCode, e.Body)
}

type TrueConnector struct {
	templateRaw json.RawMessage
	brokerURL   string
	client      *http.Client
	log         *zap.SugaredLogger
}

// NewTrueConnector loads the resource-description template and configures
// the broker client. Outbound calls are bounded by timeout; the original
// system waited forever, which is an operational risk, not a contract.
func NewTrueConnector(templatePath, brokerURL string, timeout time.Duration, log *zap.SugaredLogger) (*TrueConnector, error) {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("true connector template: %w", err)
	}
	var probe map[string]interface{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("true connector template: invalid JSON: %w", err)
	}

	return &TrueConnector{
		templateRaw: json.RawMessage(raw),
		brokerURL:   brokerURL,
		client:      &http.Client{Timeout: timeout},
		log:         log,
	}, nil
}

// DescriptionTemplate returns a fresh copy of the base description. Each
// call unmarshals the raw bytes again so callers can mutate freely.
func (t *TrueConnector) DescriptionTemplate() (map[string]interface{}, error) {
	var template map[string]interface{}
	if err := json.Unmarshal(t.templateRaw, &template); err != nil {
		return nil, err
	}
	return template, nil
}

// Register posts a finished resource description to the broker under the
// given catalog and returns the broker's decoded response body.
func (t *TrueConnector) Register(ctx context.Context, catalogID string, description map[string]interface{}) (map[string]interface{}, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"catalog_id": catalogID,
		"resource":   description,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.brokerURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.log.Errorw("broker registration failed", "status", resp.StatusCode, "url", t.brokerURL)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		// Some broker deployments answer with plain text on success.
		decoded = map[string]interface{}{"response": string(body)}
	}
	return decoded, nil
}
