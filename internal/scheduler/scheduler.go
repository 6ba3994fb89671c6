// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the portal's recurring jobs: snapshot backups on a
// cron spec and a daily GeoIP database reload.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/preston16161/dashboarDelta/internal/geoip"
)

// Scheduler handles the recurring background jobs.
type Scheduler struct {
	cron       *cron.Cron
	backups    *Backups
	backupSpec string
	geo        *geoip.Lookup
	logger     *slog.Logger
}

// New creates a scheduler. geo may be nil when GeoIP is disabled.
func New(backups *Backups, backupSpec string, geo *geoip.Lookup, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		backups:    backups,
		backupSpec: backupSpec,
		geo:        geo,
		logger:     logger,
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.backupSpec, func() {
		if _, err := s.backups.RunNow(context.Background()); err != nil {
			s.logger.Error("scheduled backup failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	if s.geo != nil && s.geo.IsEnabled() {
		// Picks up refreshed database files dropped in place.
		if _, err := s.cron.AddFunc("30 4 * * *", func() {
			if err := s.geo.Reload(); err != nil {
				s.logger.Error("geoip reload failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
