// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/study-companion/internal/service"
	"github.com/MKhiriev/study-companion/models"
)

// syncWorker runs the periodic sync job for one signed-in session.
type syncWorker struct {
	job      service.ClientSyncJob
	session  models.Session
	interval time.Duration
	listener service.SyncListener
}

// NewSyncWorker returns a worker that starts job for session. Rounds it
// triggers are reported to listener.
func NewSyncWorker(job service.ClientSyncJob, session models.Session, interval time.Duration, listener service.SyncListener) Worker {
	return &syncWorker{job: job, session: session, interval: interval, listener: listener}
}

func (w *syncWorker) Run(ctx context.Context) {
	w.job.Start(ctx, w.session, w.interval, w.listener)
}

func (w *syncWorker) Stop() {
	w.job.Stop()
}
