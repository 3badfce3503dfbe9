// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SyncableRecord is a single locally persisted item that takes part in
// synchronization.
//
// A record whose LastSyncID is non-nil was acknowledged by the server in
// that round. Any local edit clears LastSyncID again, which is how the
// store finds records that still have to be uploaded.
type SyncableRecord struct {
	// LocalID is the device-local primary key. It is monotonic and never
	// reused.
	LocalID int64 `json:"local_id"`

	// RemoteID is the server-side identifier. It stays nil until the server
	// has accepted an upload of the record.
	RemoteID *string `json:"remote_id,omitempty"`

	// UserID is the owner of the record. Every store query is scoped by it.
	UserID string `json:"user_id"`

	// DataType is the category of the record.
	DataType DataType `json:"data_type"`

	// Payload is the opaque JSON object carried by the record.
	Payload Payload `json:"payload"`

	// LastSyncID is the round id of the last confirmed sync that covered
	// this record, or nil if the record changed since.
	LastSyncID *string `json:"last_sync_id,omitempty"`

	// MarkedForDeletion flags a tombstone. Tombstones are physically
	// removed only after the server confirmed the round that carried them.
	MarkedForDeletion bool `json:"marked_for_deletion"`

	CreationTime     time.Time  `json:"creation_time"`
	ModificationTime *time.Time `json:"modification_time,omitempty"`

	// Revision is bumped by every write to the row. A round commits a record
	// only if the revision it uploaded is still the current one.
	Revision int64 `json:"revision"`
}

// Synced reports whether the record was acknowledged by the server and has
// not been modified locally since.
func (r SyncableRecord) Synced() bool {
	return r.LastSyncID != nil
}

// HasRemoteID reports whether the server already knows the record.
func (r SyncableRecord) HasRemoteID() bool {
	return r.RemoteID != nil && *r.RemoteID != ""
}

// Payload is the opaque JSON object stored in a record. It is persisted as
// JSON text and implements [driver.Valuer] and [sql.Scanner] for that.
type Payload map[string]any

// Value implements [driver.Valuer].
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(p))
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return string(b), nil
}

// Scan implements [sql.Scanner].
func (p *Payload) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = Payload{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("unsupported payload column type")
	}

	out := make(Payload)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("unmarshal payload: %w", err)
		}
	}
	*p = out
	return nil
}

// Clone returns a shallow copy of p.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
