// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"time"
)

// Reserved keys of a record on the wire. Every other key belongs to the
// payload.
const (
	RemoteIDKey               = "id"
	RemoteCreationTimeKey     = "creation_time"
	RemoteModificationTimeKey = "modification_time"
)

// RemoteTimeLayout is the timestamp format used by the sync API.
const RemoteTimeLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	// ErrMissingRemoteID is returned when a downloaded record carries no
	// usable "id".
	ErrMissingRemoteID = errors.New("remote record has no id")

	// ErrInvalidRemoteTime is returned when a timestamp field of a remote
	// record cannot be parsed.
	ErrInvalidRemoteTime = errors.New("remote record has invalid timestamp")
)

// RemoteRecord is the JSON object representation of a record exchanged with
// the server.
type RemoteRecord map[string]any

// ID returns the server identifier of the record.
func (r RemoteRecord) ID() (string, error) {
	raw, ok := r[RemoteIDKey]
	if !ok || raw == nil {
		return "", ErrMissingRemoteID
	}
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", ErrMissingRemoteID
	}
	return id, nil
}

// IsDeletionMarker reports whether the record carries nothing but its id.
// The server answers with such objects for records deleted on its side, and
// the client sends them to request a remote deletion.
func (r RemoteRecord) IsDeletionMarker() bool {
	_, ok := r[RemoteIDKey]
	return ok && len(r) == 1
}

// CreationTime returns the parsed "creation_time", or nil if absent.
func (r RemoteRecord) CreationTime() (*time.Time, error) {
	return r.timeField(RemoteCreationTimeKey)
}

// ModificationTime returns the parsed "modification_time", or nil if absent.
func (r RemoteRecord) ModificationTime() (*time.Time, error) {
	return r.timeField(RemoteModificationTimeKey)
}

// Payload returns the record without its reserved keys.
func (r RemoteRecord) Payload() Payload {
	out := make(Payload, len(r))
	for k, v := range r {
		switch k {
		case RemoteIDKey, RemoteCreationTimeKey, RemoteModificationTimeKey:
			continue
		}
		out[k] = v
	}
	return out
}

func (r RemoteRecord) timeField(key string) (*time.Time, error) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRemoteTime, key)
	}

	t, err := time.Parse(RemoteTimeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRemoteTime, key, err)
		}
	}
	return &t, nil
}

// ToRemoteRecord converts a local record into its wire form.
//
// The second return value is false for a tombstone the server never saw;
// such a record must not be sent at all. A tombstone with a server id
// becomes an id-only deletion marker.
func ToRemoteRecord(rec SyncableRecord) (RemoteRecord, bool) {
	if rec.MarkedForDeletion {
		if !rec.HasRemoteID() {
			return nil, false
		}
		return RemoteRecord{RemoteIDKey: *rec.RemoteID}, true
	}

	out := make(RemoteRecord, len(rec.Payload)+3)
	for k, v := range rec.Payload {
		out[k] = v
	}
	if rec.HasRemoteID() {
		out[RemoteIDKey] = *rec.RemoteID
	}
	if !rec.CreationTime.IsZero() {
		out[RemoteCreationTimeKey] = rec.CreationTime.Format(RemoteTimeLayout)
	}
	if rec.ModificationTime != nil {
		out[RemoteModificationTimeKey] = rec.ModificationTime.Format(RemoteTimeLayout)
	}
	return out, true
}
