package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/reckot/checkin-station/internal/config"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/utils"
	"github.com/reckot/checkin-station/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// serverCfg.BaseURL, configures the underlying HTTP client with the resolved
// base URL and request timeout, and stores the API token for authenticated
// requests.
//
// Returns an error if serverCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(serverCfg config.Server, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(serverCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server base url: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(serverCfg.RequestTimeout)

	return &httpServerAdapter{client: client, token: strings.TrimSpace(serverCfg.Token), logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Ping implements [ServerAdapter]. It sends HEAD /health/ and reports any
// transport failure as [ErrServerUnreachable]. Non-2xx statuses map to the
// usual sentinel errors.
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Head("/health/")
	if err != nil {
		return fmt.Errorf("%w: health probe: %v", ErrServerUnreachable, err)
	}

	return mapHTTPError(resp)
}

// FetchSnapshot implements [ServerAdapter]. It GETs the offline-data endpoint
// for the given organizer and event and decodes the bulk payload.
func (h *httpServerAdapter) FetchSnapshot(ctx context.Context, orgSlug, eventSlug string) (models.EventSnapshot, error) {
	var snapshot models.EventSnapshot

	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"org": orgSlug, "event": eventSlug}).
		SetResult(&snapshot).
		Get("/api/checkin/{org}/{event}/offline-data/")
	if err != nil {
		return models.EventSnapshot{}, fmt.Errorf("%w: fetch snapshot: %v", ErrServerUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EventSnapshot{}, err
	}

	return snapshot, nil
}

// VerifyTicket implements [ServerAdapter]. It POSTs the ticket code to the
// verify endpoint. On a rejection status (400, 404, 409) the server still
// sends a structured body, which is decoded and returned alongside the mapped
// sentinel error so the caller can show the server's message.
func (h *httpServerAdapter) VerifyTicket(ctx context.Context, orgSlug, eventSlug, code string) (models.VerifyResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{"org": orgSlug, "event": eventSlug}).
		SetBody(models.VerifyRequest{Code: code}).
		Post("/api/checkin/{org}/{event}/verify/")
	if err != nil {
		return models.VerifyResponse{}, fmt.Errorf("%w: verify request: %v", ErrServerUnreachable, err)
	}

	var vr models.VerifyResponse
	decodeErr := json.Unmarshal(resp.Body(), &vr)

	if err = mapHTTPError(resp); err != nil {
		return vr, err
	}
	if decodeErr != nil {
		return models.VerifyResponse{}, fmt.Errorf("decode verify response: %w", decodeErr)
	}

	return vr, nil
}

// SyncCheckin implements [ServerAdapter]. It POSTs one queued check-in to the
// sync endpoint. Returns [ErrConflict] (wrapped) when the server reports the
// ticket as already checked in; the decoded response is returned alongside so
// the caller can read the server's message.
func (h *httpServerAdapter) SyncCheckin(ctx context.Context, req models.CheckinSyncRequest) (models.CheckinSyncResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/checkin/sync/")
	if err != nil {
		return models.CheckinSyncResponse{}, fmt.Errorf("%w: sync checkin request: %v", ErrServerUnreachable, err)
	}

	var sr models.CheckinSyncResponse
	decodeErr := json.Unmarshal(resp.Body(), &sr)

	if err = mapHTTPError(resp); err != nil {
		return sr, err
	}
	if decodeErr != nil {
		return models.CheckinSyncResponse{}, fmt.Errorf("decode sync checkin response: %w", decodeErr)
	}

	return sr, nil
}

// SyncSwag implements [ServerAdapter]. It POSTs one queued swag collection to
// the swag sync endpoint. Only the status matters.
func (h *httpServerAdapter) SyncSwag(ctx context.Context, req models.SwagSyncRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/checkin/swag/sync/")
	if err != nil {
		return fmt.Errorf("%w: sync swag request: %v", ErrServerUnreachable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
