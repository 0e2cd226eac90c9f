package worker

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// ReportBuilder produces the bookings workbook on demand.
type ReportBuilder interface {
	BuildReport(ctx context.Context) (string, error)
}

// ExportWorker rebuilds the bookings report in the background. Requests
// are coalesced: a burst of booking changes yields a single rebuild
// after the debounce window.
type ExportWorker struct {
	builder     ReportBuilder
	retryPolicy RetryPolicy
	requests    chan struct{}
	debounce    time.Duration
	logger      *zerolog.Logger
}

func NewExportWorker(builder ReportBuilder, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	return &ExportWorker{
		builder:     builder,
		retryPolicy: retry.withDefaults(),
		requests:    make(chan struct{}, 1),
		debounce:    time.Duration(models.DefaultExportDebounce) * time.Second,
		logger:      logger,
	}
}

// EnqueueExport schedules a report rebuild. Never blocks: if a rebuild
// is already pending the request is absorbed by it.
func (w *ExportWorker) EnqueueExport(ctx context.Context) error {
	if w.builder == nil {
		return errors.New("export builder is not configured")
	}

	select {
	case w.requests <- struct{}{}:
	default:
	}
	return nil
}

// Start runs the main loop; returns when ctx is done.
func (w *ExportWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("export worker started")
	defer w.logger.Info().Msg("export worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.requests:
		}

		// Окно дебаунса: поглощаем пачку запросов
		if !w.waitDebounce(ctx) {
			return
		}
		w.drainRequests()

		w.runExport(ctx)
	}
}

func (w *ExportWorker) waitDebounce(ctx context.Context) bool {
	if w.debounce <= 0 {
		return true
	}
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (w *ExportWorker) drainRequests() {
	for {
		select {
		case <-w.requests:
		default:
			return
		}
	}
}

func (w *ExportWorker) runExport(ctx context.Context) {
	var lastErr error
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		path, err := w.builder.BuildReport(ctx)
		if err == nil {
			w.logger.Debug().Str("file_path", path).Msg("report rebuilt")
			return
		}
		lastErr = err

		if attempt == w.retryPolicy.MaxRetries {
			break
		}

		delay := w.retryPolicy.NextDelay(attempt)
		w.logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("report build failed, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	w.logger.Error().Err(lastErr).Int("attempts", w.retryPolicy.MaxRetries).Msg("report build gave up")
}
