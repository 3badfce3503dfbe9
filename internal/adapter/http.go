// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/study-companion/internal/config"
	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/internal/utils"
	"github.com/MKhiriev/study-companion/models"
)

// Header names understood by the sync API.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderDataType  = "datatype"
	HeaderAll       = "all"
)

const defaultRequestTimeout = 15 * time.Second

const (
	pathSync       = "/sync"
	pathSyncRound  = "/sync/{syncID}"
	pathSyncFinish = "/sync/{syncID}/finish"
	pathLog        = "/log"
)

type httpRemoteGateway struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator

	requestTimeout     time.Duration
	syncRequestTimeout time.Duration
	clientVersion      string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteGateway constructs an HTTP/REST implementation of
// [RemoteGateway]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and seeds the bearer token from appCfg.Token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPRemoteGateway(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteGateway, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(userAgent(appCfg.Version))
	client.
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	requestTimeout := adapterCfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	syncTimeout := adapterCfg.SyncRequestTimeout
	if syncTimeout <= 0 {
		syncTimeout = config.DefaultSyncRequestTimeout
	}

	logger.Debug().
		Str("func", "NewHTTPRemoteGateway").
		Str("base_url", baseURL).
		Dur("request_timeout", requestTimeout).
		Dur("sync_request_timeout", syncTimeout).
		Msg("remote gateway configured")

	return &httpRemoteGateway{
		client:             client,
		ids:                utils.NewUUIDGenerator(),
		requestTimeout:     requestTimeout,
		syncRequestTimeout: syncTimeout,
		clientVersion:      appCfg.Version,
		token:              strings.TrimSpace(appCfg.Token),
		logger:             logger,
	}, nil
}

func userAgent(version string) string {
	if version == "" {
		return "study-companion"
	}
	return "study-companion/" + version
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

// SetToken implements [RemoteGateway].
func (h *httpRemoteGateway) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteGateway].
func (h *httpRemoteGateway) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// BeginRound implements [RemoteGateway]. It calls GET /sync and returns the
// sync_id of the response.
func (h *httpRemoteGateway) BeginRound(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.requestTimeout)
	defer cancel()

	resp, err := h.authedRequest(ctx).Get(pathSync)
	if err != nil {
		return "", transportError("begin round", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var round models.RoundResponse
	if err = json.Unmarshal(resp.Body(), &round); err != nil {
		return "", invalidResponse("decode begin round response", err)
	}
	if round.SyncID == "" {
		return "", invalidResponse("begin round", errors.New("missing sync_id"))
	}

	return round.SyncID, nil
}

// FetchDelta implements [RemoteGateway]. It calls GET /sync/{syncID}. The
// data type and the all flag travel both as headers and as query
// parameters.
func (h *httpRemoteGateway) FetchDelta(ctx context.Context, roundID string, dataType models.DataType, all bool) ([]models.RemoteRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, h.requestTimeout)
	defer cancel()

	allValue := strconv.FormatBool(all)
	resp, err := h.authedRequest(ctx).
		SetPathParam("syncID", roundID).
		SetHeader(HeaderDataType, dataType.String()).
		SetHeader(HeaderAll, allValue).
		SetQueryParam(HeaderDataType, dataType.String()).
		SetQueryParam(HeaderAll, allValue).
		Get(pathSyncRound)
	if err != nil {
		return nil, transportError("fetch delta", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var delta models.DeltaResponse
	if err = json.Unmarshal(resp.Body(), &delta); err != nil {
		return nil, invalidResponse("decode fetch delta response", err)
	}
	if delta.Data == nil {
		return nil, invalidResponse("fetch delta", errors.New("missing data"))
	}

	return delta.Data, nil
}

// PushDelta implements [RemoteGateway]. It calls POST /sync/{syncID} with
// the extended sync timeout.
func (h *httpRemoteGateway) PushDelta(ctx context.Context, roundID string, dataType models.DataType, records []models.RemoteRecord) ([]*string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.syncRequestTimeout)
	defer cancel()

	if records == nil {
		records = []models.RemoteRecord{}
	}

	resp, err := h.authedRequest(ctx).
		SetPathParam("syncID", roundID).
		SetHeader("Content-Type", "application/json").
		SetBody(models.PushRequest{DataType: dataType, Data: records}).
		Post(pathSyncRound)
	if err != nil {
		return nil, transportError("push delta", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var pushed models.PushResponse
	if err = json.Unmarshal(resp.Body(), &pushed); err != nil {
		return nil, invalidResponse("decode push delta response", err)
	}
	if pushed.Identifiers == nil {
		return nil, invalidResponse("push delta", errors.New("missing identifiers"))
	}

	return pushed.Identifiers, nil
}

// ConfirmRound implements [RemoteGateway]. It calls GET /sync/{syncID}/finish.
func (h *httpRemoteGateway) ConfirmRound(ctx context.Context, roundID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, h.requestTimeout)
	defer cancel()

	resp, err := h.authedRequest(ctx).
		SetPathParam("syncID", roundID).
		Get(pathSyncFinish)
	if err != nil {
		return false, transportError("confirm round", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	var confirmed models.ConfirmResponse
	if err = json.Unmarshal(resp.Body(), &confirmed); err != nil {
		return false, invalidResponse("decode confirm round response", err)
	}

	return confirmed.Success, nil
}

// SendLog implements [RemoteGateway]. It calls POST /log. The response body
// is ignored.
func (h *httpRemoteGateway) SendLog(ctx context.Context, entry models.LogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, h.requestTimeout)
	defer cancel()

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LogRequest{Msg: entry.Format(), ClientVersion: h.clientVersion}).
		Post(pathLog)
	if err != nil {
		return transportError("send log", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteGateway) authedRequest(ctx context.Context) *resty.Request {
	requestID := h.ids.Generate()
	logger.FromContext(ctx).Debug().
		Str("func", "httpRemoteGateway.authedRequest").
		Str("request_id", requestID).
		Msg("sending request")

	req := h.client.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, requestID)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
