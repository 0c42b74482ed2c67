package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/pkg/cache"
	"github.com/agapechurch/chms-backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chms_scheduler_published_total",
			Help: "Content items promoted to PUBLISHED by the scheduler",
		},
		[]string{"content_type"},
	)

	sweepArchivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chms_scheduler_archived_total",
			Help: "Announcements demoted to ARCHIVED by the scheduler",
		},
	)

	sweepFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chms_scheduler_sweep_failures_total",
			Help: "Scheduler sweeps that ended in an error",
		},
		[]string{"sweep"},
	)

	sweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chms_scheduler_sweep_duration_seconds",
			Help:    "Scheduler sweep duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"sweep"},
	)
)

// ContentSweeper is the data-store surface the scheduler depends on
type ContentSweeper interface {
	PublishDueAnnouncements(now time.Time) (int64, error)
	PublishDueDevotionals(now time.Time) (int64, error)
	ArchiveExpiredAnnouncements(now time.Time) (int64, error)
}

// PublishResult reports one publish sweep
type PublishResult struct {
	Success       bool   `json:"success"`
	Announcements int64  `json:"announcements"`
	Devotionals   int64  `json:"devotionals"`
	Error         string `json:"error,omitempty"`
}

// ArchiveResult reports one archive sweep
type ArchiveResult struct {
	Success       bool   `json:"success"`
	Announcements int64  `json:"announcements"`
	Error         string `json:"error,omitempty"`
}

// SweepReport is the combined result of one scheduler run
type SweepReport struct {
	Success       bool          `json:"success"`
	PublishResult PublishResult `json:"publish_result"`
	ArchiveResult ArchiveResult `json:"archive_result"`
	Timestamp     time.Time     `json:"timestamp"`
}

// SchedulerService runs the periodic publish/archive sweeps. Each
// invocation is idempotent: the status predicates in the sweep queries
// mean an item already handled by a concurrent or earlier run simply no
// longer matches.
type SchedulerService interface {
	Run() *SweepReport
}

type schedulerService struct {
	sweeper ContentSweeper
	cache   cache.Service
	now     func() time.Time
}

// NewSchedulerService creates a new SchedulerService
func NewSchedulerService(sweeper ContentSweeper, cacheSvc cache.Service) SchedulerService {
	return &schedulerService{sweeper: sweeper, cache: cacheSvc, now: time.Now}
}

// Run executes the publish and archive sweeps concurrently and joins them.
// The sweeps are independent: one failing never prevents the other.
func (s *schedulerService) Run() *SweepReport {
	now := s.now()
	report := &SweepReport{Timestamp: now}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		report.PublishResult = s.publishSweep(now)
	}()
	go func() {
		defer wg.Done()
		report.ArchiveResult = s.archiveSweep(now)
	}()
	wg.Wait()

	report.Success = report.PublishResult.Success && report.ArchiveResult.Success
	return report
}

func (s *schedulerService) publishSweep(now time.Time) (res PublishResult) {
	start := time.Now()
	defer func() {
		sweepDuration.WithLabelValues("publish").Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			res = PublishResult{Error: fmt.Sprintf("panic: %v", r)}
			sweepFailuresTotal.WithLabelValues("publish").Inc()
			logger.Error("scheduler: publish sweep panicked: %v", r)
		}
	}()

	ann, err := s.sweeper.PublishDueAnnouncements(now)
	if err != nil {
		sweepFailuresTotal.WithLabelValues("publish").Inc()
		logger.Error("scheduler: publish announcements failed: %v", err)
		return PublishResult{Error: err.Error()}
	}
	if ann > 0 {
		sweepPublishedTotal.WithLabelValues(string(domain.ContentTypeAnnouncement)).Add(float64(ann))
		s.invalidateLists(domain.ContentTypeAnnouncement)
	}

	dev, err := s.sweeper.PublishDueDevotionals(now)
	if err != nil {
		// Announcement counts stay: that batch already committed.
		sweepFailuresTotal.WithLabelValues("publish").Inc()
		logger.Error("scheduler: publish devotionals failed: %v", err)
		return PublishResult{Announcements: ann, Error: err.Error()}
	}
	if dev > 0 {
		sweepPublishedTotal.WithLabelValues(string(domain.ContentTypeDevotional)).Add(float64(dev))
		s.invalidateLists(domain.ContentTypeDevotional)
	}

	if ann > 0 || dev > 0 {
		logger.Info("scheduler: published %d announcements, %d devotionals", ann, dev)
	}
	return PublishResult{Success: true, Announcements: ann, Devotionals: dev}
}

func (s *schedulerService) archiveSweep(now time.Time) (res ArchiveResult) {
	start := time.Now()
	defer func() {
		sweepDuration.WithLabelValues("archive").Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			res = ArchiveResult{Error: fmt.Sprintf("panic: %v", r)}
			sweepFailuresTotal.WithLabelValues("archive").Inc()
			logger.Error("scheduler: archive sweep panicked: %v", r)
		}
	}()

	ann, err := s.sweeper.ArchiveExpiredAnnouncements(now)
	if err != nil {
		sweepFailuresTotal.WithLabelValues("archive").Inc()
		logger.Error("scheduler: archive announcements failed: %v", err)
		return ArchiveResult{Error: err.Error()}
	}
	if ann > 0 {
		sweepArchivedTotal.Add(float64(ann))
		s.invalidateLists(domain.ContentTypeAnnouncement)
		logger.Info("scheduler: archived %d announcements", ann)
	}
	return ArchiveResult{Success: true, Announcements: ann}
}

func (s *schedulerService) invalidateLists(ct domain.ContentType) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePublished(context.Background(), string(ct)); err != nil {
		logger.Warn("cache invalidation failed for %s: %v", ct, err)
	}
}
