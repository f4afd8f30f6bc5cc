// Package adapter provides transport-layer abstractions for communicating with
// the reckot check-in API.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrNotFound] for 404).
// [ErrServerUnreachable] marks failures where no response arrived at all,
// which is the signal to fall back to the offline path.
package adapter

import (
	"context"

	"github.com/reckot/checkin-station/models"
)

// ServerAdapter defines transport-agnostic communication with the reckot
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Ping probes server reachability with a lightweight HEAD request.
	// A nil return means the server answered with a 2xx status.
	Ping(ctx context.Context) error

	// FetchSnapshot downloads the full offline payload for one event: the
	// event record, every ticket and the swag item catalogue.
	FetchSnapshot(ctx context.Context, orgSlug, eventSlug string) (models.EventSnapshot, error)

	// VerifyTicket verifies and checks in a ticket online. The returned
	// response carries the server's structured outcome; when the server
	// rejects the ticket (404, 409) the response is still populated with the
	// server's message alongside the mapped sentinel error.
	VerifyTicket(ctx context.Context, orgSlug, eventSlug, code string) (models.VerifyResponse, error)

	// SyncCheckin replays one queued offline check-in. Returns [ErrConflict]
	// (wrapped) when the server reports the ticket as already checked in
	// from another device; the response message is populated when the server
	// sent one.
	SyncCheckin(ctx context.Context, req models.CheckinSyncRequest) (models.CheckinSyncResponse, error)

	// SyncSwag replays one queued offline swag collection.
	SyncSwag(ctx context.Context, req models.SwagSyncRequest) error
}
