// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used by the sync engine to talk to
// the study-companion server.
//
// The primary abstraction is [RemoteGateway], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRemoteGateway]) built on resty.
//
// Transport failures and non-2xx statuses are reported as [ErrCommunication]
// (the status code is available through [CommunicationError]); malformed
// bodies are reported as [ErrInvalidResponse]. Callers use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/study-companion/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_gateway_mock.go -package=mock

// RemoteGateway is the client side of the round-based sync protocol.
//
// A round is opened with BeginRound, which returns the round identifier
// used by every following call. Records pushed during a round are only
// kept by the server once the round is confirmed.
type RemoteGateway interface {
	// SetToken stores the bearer token attached to every following request.
	SetToken(token string)

	// Token returns the bearer token currently in use.
	Token() string

	// BeginRound opens a new sync round and returns its identifier.
	BeginRound(ctx context.Context) (string, error)

	// FetchDelta returns the records of dataType that changed on the server
	// since the last confirmed round, or all of them when all is true.
	// Records consisting of only an "id" are deletion markers.
	FetchDelta(ctx context.Context, roundID string, dataType models.DataType, all bool) ([]models.RemoteRecord, error)

	// PushDelta uploads records of dataType and returns one identifier per
	// record in submission order. Deletion markers are answered with nil.
	PushDelta(ctx context.Context, roundID string, dataType models.DataType, records []models.RemoteRecord) ([]*string, error)

	// ConfirmRound asks the server to commit the round.
	ConfirmRound(ctx context.Context, roundID string) (bool, error)

	// SendLog reports a diagnostic message to the server log.
	SendLog(ctx context.Context, entry models.LogEntry) error
}
