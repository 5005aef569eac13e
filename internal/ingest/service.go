package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cvehub/cvehub-backend/internal/exploitdb"
	"github.com/cvehub/cvehub-backend/internal/nvd"
	"github.com/cvehub/cvehub-backend/internal/store"
	"github.com/cvehub/cvehub-backend/model"
)

// Caller errors reported synchronously by Start and Stop
var (
	ErrAlreadyRunning = errors.New("ingestion already running")
	ErrNotRunning     = errors.New("ingestion not running")
)

// Feed fetches one page of raw CVE records for a year at a given offset
type Feed interface {
	FetchPage(ctx context.Context, year, startIndex, resultsPerPage int) (*nvd.FeedResponse, error)
}

// DetailResolver resolves exploit metadata for a discovered EDB reference
type DetailResolver interface {
	Resolve(ctx context.Context, edbID, cveID string) exploitdb.Detail
}

// Publisher emits ingestion events to the message bus. Optional; a nil
// publisher disables events.
type Publisher interface {
	PublishCVEIngested(ctx context.Context, cve *model.CVE) error
	PublishExploitDiscovered(ctx context.Context, exploit *model.Exploit) error
}

// Service is the long-lived ingestion pipeline. One instance per process;
// a run is rejected while another is in flight. Construct with NewService
// and share across the API handlers.
type Service struct {
	feed      Feed
	resolver  DetailResolver
	store     store.Store
	publisher Publisher
	logger    *zap.SugaredLogger
	limiter   *rate.Limiter

	errorCooldown time.Duration

	mu          sync.Mutex
	running     bool
	stopReq     bool
	progress    model.IngestProgress
	inflightEDB map[string]bool
}

// NewService wires the pipeline. publisher may be nil.
func NewService(feed Feed, resolver DetailResolver, st store.Store, publisher Publisher, logger *zap.Logger) *Service {
	return &Service{
		feed:          feed,
		resolver:      resolver,
		store:         st,
		publisher:     publisher,
		logger:        logger.Sugar(),
		limiter:       rate.NewLimiter(rate.Every(defaultPageDelay), 1),
		errorCooldown: defaultErrorCooldown,
		progress:      model.IngestProgress{Status: model.StatusIdle, Errors: []string{}},
		inflightEDB:   map[string]bool{},
	}
}

// Start begins an ingestion run in the background and returns immediately.
// It fails with ErrAlreadyRunning if a run is in flight; no state changes
// in that case.
func (s *Service) Start(opts Options) error {
	opts.applyDefaults()

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	now := time.Now().UTC()
	s.running = true
	s.stopReq = false
	s.inflightEDB = map[string]bool{}
	s.progress = model.IngestProgress{
		Status:    model.StatusRunning,
		Errors:    []string{},
		StartedAt: &now,
	}
	s.mu.Unlock()

	s.logger.Infof("ingestion started: years %d..%d descending, maxCVEs=%d, concurrency=%d",
		opts.EndYear, opts.StartYear, opts.MaxCVEs, opts.Concurrency)

	go s.run(opts)

	return nil
}

// Progress returns a copy of the current snapshot. Safe to call from any
// goroutine at any time.
func (s *Service) Progress() model.IngestProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.progress
	snapshot.Errors = append([]string(nil), s.progress.Errors...)
	return snapshot
}

// Stop requests cooperative cancellation and blocks until the in-flight
// run has drained. Fails with ErrNotRunning when no run is in flight.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.stopReq = true
	s.mu.Unlock()

	s.logger.Infof("ingestion stop requested, draining in-flight work")

	// Cancellation is cooperative: the flag is checked at every year, page
	// and chunk boundary, so latency is bounded by the longest task in the
	// current chunk plus any in-progress cooldown.
	for {
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if !running {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (s *Service) stopRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopReq
}

func (s *Service) processedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.ProcessedCVEs
}

func (s *Service) recordError(msg string) {
	s.logger.Warnf("ingestion: %s", msg)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Errors = append(s.progress.Errors, msg)
}

// run drives the whole ingestion. Per-page and per-record failures are
// absorbed into the error list; only a panic escaping the year loop ends
// the run with error status.
func (s *Service) run(opts Options) {
	ctx := context.Background()
	status := model.StatusCompleted

	defer func() {
		if r := recover(); r != nil {
			status = model.StatusError
			s.logger.Errorf("ingestion terminated: %v", r)
			s.mu.Lock()
			s.progress.Errors = append(s.progress.Errors, fmt.Sprintf("fatal: %v", r))
			s.mu.Unlock()
		}

		now := time.Now().UTC()
		s.mu.Lock()
		s.progress.Status = status
		s.progress.FinishedAt = &now
		s.running = false
		processed := s.progress.ProcessedCVEs
		errCount := len(s.progress.Errors)
		s.mu.Unlock()

		s.logger.Infof("ingestion finished: status=%s processed=%d errors=%d", status, processed, errCount)
	}()

	// Most recent vulnerabilities first
	for year := opts.EndYear; year >= opts.StartYear; year-- {
		if s.stopRequested() || s.processedCount() >= opts.MaxCVEs {
			break
		}
		s.ingestYear(ctx, year, opts)
	}
}

// maxPageFailures bounds consecutive failed fetches within one year before
// the walk gives up and moves on to the next year
const maxPageFailures = 5

// ingestYear paginates one year of NVD results in offset order. A failed
// page fetch is recorded, skipped past by a full page width and followed
// by a longer cooldown; a run of maxPageFailures consecutive failures
// abandons the year.
func (s *Service) ingestYear(ctx context.Context, year int, opts Options) {
	startIndex := 0
	firstPage := true
	failures := 0

	for {
		if s.stopRequested() || s.processedCount() >= opts.MaxCVEs {
			return
		}

		// Courtesy pacing between page fetches
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}

		page, err := s.feed.FetchPage(ctx, year, startIndex, opts.PageSize)
		if err != nil {
			s.recordError(fmt.Sprintf("fetch year %d offset %d: %v", year, startIndex, err))
			failures++
			if failures >= maxPageFailures {
				s.recordError(fmt.Sprintf("year %d abandoned after %d consecutive failed pages", year, failures))
				return
			}
			startIndex += opts.PageSize
			s.cooldown()
			continue
		}
		failures = 0

		if firstPage {
			s.mu.Lock()
			s.progress.TotalCVEs += page.TotalResults
			s.mu.Unlock()
			firstPage = false
		}

		if len(page.Vulnerabilities) == 0 {
			return // year exhausted
		}

		s.processPage(ctx, page.Vulnerabilities, opts)

		startIndex += len(page.Vulnerabilities)
		if startIndex >= page.TotalResults {
			return
		}
	}
}

// processPage runs the page's records in chunks of opts.Concurrency
// goroutines, waiting for each chunk to settle before starting the next.
// In-flight work is therefore bounded to exactly Concurrency tasks.
func (s *Service) processPage(ctx context.Context, vulns []nvd.Vulnerability, opts Options) {
	for chunkStart := 0; chunkStart < len(vulns); chunkStart += opts.Concurrency {
		if s.stopRequested() || s.processedCount() >= opts.MaxCVEs {
			return
		}

		chunkEnd := chunkStart + opts.Concurrency
		if chunkEnd > len(vulns) {
			chunkEnd = len(vulns)
		}

		var wg sync.WaitGroup
		for i := chunkStart; i < chunkEnd; i++ {
			wg.Add(1)
			go func(raw nvd.RawCVE) {
				defer wg.Done()
				s.processSingleCVE(ctx, &raw)
			}(vulns[i].CVE)
		}
		wg.Wait()
	}
}

// processSingleCVE normalizes one raw record, upserts the CVE, and stores
// any newly discovered exploit references. Every failure is isolated: it
// lands in the error list and the rest of the chunk proceeds.
func (s *Service) processSingleCVE(ctx context.Context, raw *nvd.RawCVE) {
	if raw.ID == "" {
		return
	}

	canonical := nvd.Normalize(raw)

	stored, err := s.store.UpsertCVE(ctx, canonical)
	if err != nil {
		s.recordError(fmt.Sprintf("upsert %s: %v", raw.ID, err))
		return
	}

	s.mu.Lock()
	s.progress.ProcessedCVEs++
	s.mu.Unlock()

	s.publishCVE(ctx, stored)

	refs := nvd.ExtractExploitRefs(raw)
	if len(refs) == 0 {
		return
	}

	s.mu.Lock()
	s.progress.CVEsWithExploits++
	s.mu.Unlock()

	hasPrimary := stored.ExploitID != nil

	for _, ref := range refs {
		// Records in the same chunk can share an EDB id; the claim keeps
		// the exists-then-insert sequence serialized per id, and the loser
		// skips just as it would after a sequential insert.
		if !s.claimExploit(ref.EdbID) {
			continue
		}
		inserted := s.ingestExploitRef(ctx, canonical.CveID, ref.EdbID)
		s.releaseExploit(ref.EdbID)
		if !inserted {
			continue
		}

		if !hasPrimary {
			if err := s.store.SetPrimaryExploitID(ctx, canonical.CveID, ref.EdbID); err != nil {
				s.recordError(fmt.Sprintf("link exploit EDB-%s to %s: %v", ref.EdbID, raw.ID, err))
				continue
			}
			hasPrimary = true
		}
	}
}

// ingestExploitRef resolves and stores one exploit reference. The caller
// must hold the EDB-id claim. Reports whether a new exploit row was
// inserted.
func (s *Service) ingestExploitRef(ctx context.Context, cveID, edbID string) bool {
	exists, err := s.store.ExploitExists(ctx, edbID)
	if err != nil {
		s.recordError(fmt.Sprintf("exploit check EDB-%s (%s): %v", edbID, cveID, err))
		return false
	}
	if exists {
		return false
	}

	detail := s.resolver.Resolve(ctx, edbID, cveID)

	exploit := model.NewExploit(edbID, cveID)
	exploit.Title = detail.Title
	exploit.Description = detail.Description
	exploit.Type = detail.Type
	exploit.Platform = detail.Platform
	exploit.Author = detail.Author
	exploit.DatePublished = detail.DatePublished
	exploit.SourceURL = detail.SourceURL
	exploit.Source = detail.Source
	// NVD cross-referenced exploits are always marked verified
	exploit.Verified = true

	if err := s.store.InsertExploit(ctx, exploit); err != nil {
		s.recordError(fmt.Sprintf("insert exploit EDB-%s (%s): %v", edbID, cveID, err))
		return false
	}

	s.mu.Lock()
	s.progress.TotalExploits++
	s.mu.Unlock()

	s.publishExploit(ctx, exploit)
	return true
}

func (s *Service) claimExploit(edbID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflightEDB[edbID] {
		return false
	}
	s.inflightEDB[edbID] = true
	return true
}

func (s *Service) releaseExploit(edbID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflightEDB, edbID)
}

func (s *Service) publishCVE(ctx context.Context, cve *model.CVE) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishCVEIngested(ctx, cve); err != nil {
		s.logger.Warnf("publish cve.ingested for %s: %v", cve.CveID, err)
	}
}

func (s *Service) publishExploit(ctx context.Context, exploit *model.Exploit) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExploitDiscovered(ctx, exploit); err != nil {
		s.logger.Warnf("publish exploit.discovered for EDB-%s: %v", exploit.ExploitID, err)
	}
}

// cooldown pauses after a failed page fetch, waking early when a stop is
// requested
func (s *Service) cooldown() {
	deadline := time.Now().Add(s.errorCooldown)
	for time.Now().Before(deadline) {
		if s.stopRequested() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}
