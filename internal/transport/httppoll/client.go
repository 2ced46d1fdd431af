package httppoll

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PXR05/TongSampahBinLaden/internal/command"
	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/config"
	"github.com/PXR05/TongSampahBinLaden/internal/transport"
)

// Coordinator endpoints.
const (
	telemetryPath = "/api/sensor-data"
	commandPath   = "/api/command"
)

// maxResponseSize bounds how much of a coordinator response is read.
// Command responses are a single small JSON object.
const maxResponseSize = 64 << 10

// Client is the HTTP poll binding of the coordinator link.
//
// Telemetry is POSTed with bearer-token auth; commands are fetched by
// polling with the highest command id already applied, so the coordinator
// can answer "nothing new" with an empty object.
//
// All methods run on the control goroutine; the client holds no locks.
type Client struct {
	baseURL   string
	authToken string
	deviceID  string
	http      *http.Client

	connected bool
}

// New creates the poll binding from configuration.
//
// Parameters:
//   - cfg: Validated node configuration (base URL, auth token, timeout)
//
// Returns:
//   - *Client: Binding ready for Connect
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:   cfg.Transport.HTTP.BaseURL,
		authToken: cfg.Transport.HTTP.AuthToken,
		deviceID:  cfg.Device.ID,
		http: &http.Client{
			Timeout: cfg.HTTPTimeout(),
		},
	}
}

// Connect probes the coordinator with a command fetch.
//
// HTTP has no session to establish; a successful round trip is what
// "connected" means here. The probe uses lastId=0 and discards the body,
// which is safe because command fetches never consume: the same command
// is returned until the node's reported lastId passes it.
func (c *Client) Connect(ctx context.Context) error {
	req, err := c.commandRequest(ctx, 0)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.connected = false
		return fmt.Errorf("%w: %w", transport.ErrReceiveFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode != http.StatusOK {
		c.connected = false
		return fmt.Errorf("%w: probe returned %s", transport.ErrReceiveFailed, resp.Status)
	}

	c.connected = true
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.connected = false
	c.http.CloseIdleConnections()
}

// IsConnected reports whether the last round trip succeeded.
func (c *Client) IsConnected() bool {
	return c.connected
}

// SendTelemetry POSTs one snapshot to the coordinator.
//
// A non-2xx response or transport error marks the link down and drops the
// snapshot; there is no retransmission buffer. An auth rejection is
// surfaced distinctly since retrying cannot fix it.
func (c *Client) SendTelemetry(ctx context.Context, t transport.Telemetry) error {
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("%w: encoding snapshot: %w", transport.ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+telemetryPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", transport.ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		c.connected = false
		return fmt.Errorf("%w: %w", transport.ErrSendFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.connected = false
		return fmt.Errorf("%w: %s", transport.ErrAuthRejected, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.connected = false
		return fmt.Errorf("%w: coordinator returned %s", transport.ErrSendFailed, resp.Status)
	}

	c.connected = true
	return nil
}

// PollOrReceive fetches the next pending command, if any.
//
// The coordinator answers with a single command object, or an empty JSON
// object when nothing newer than lastID is pending. A malformed or
// unknown-action payload is dropped with an error and no state change.
func (c *Client) PollOrReceive(ctx context.Context, lastID uint32) ([]command.Command, error) {
	req, err := c.commandRequest(ctx, lastID)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.connected = false
		return nil, fmt.Errorf("%w: %w", transport.ErrReceiveFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.connected = false
		return nil, fmt.Errorf("%w: reading response: %w", transport.ErrReceiveFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.connected = false
		return nil, fmt.Errorf("%w: coordinator returned %s", transport.ErrReceiveFailed, resp.Status)
	}
	c.connected = true

	// Empty object means no pending command.
	var probe struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", transport.ErrReceiveFailed, err)
	}
	if probe.Action == "" {
		return nil, nil
	}

	cmd, err := command.Decode(body)
	if err != nil {
		return nil, err
	}
	return []command.Command{cmd}, nil
}

func (c *Client) commandRequest(ctx context.Context, lastID uint32) (*http.Request, error) {
	q := url.Values{}
	q.Set("deviceId", c.deviceID)
	q.Set("lastId", strconv.FormatUint(uint64(lastID), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+commandPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", transport.ErrReceiveFailed, err)
	}
	return req, nil
}
