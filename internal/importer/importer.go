// Package importer loads the legacy CSV exports (cyber incidents, dataset
// metadata, IT tickets) into the platform's collections. Rows fan out to a
// fixed worker pool; malformed rows are skipped and counted rather than
// aborting the run, matching the tolerant behaviour of the legacy loader.
package importer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mdip/intelligence-platform/internal/api/metrics"
	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

const (
	defaultWorkers = 8
	jobBuffer      = 256

	incidentsFile = "cyber_incidents.csv"
	datasetsFile  = "datasets_metadata.csv"
	ticketsFile   = "it_tickets.csv"
)

// Counts reports the outcome of one file's import.
type Counts struct {
	Imported int64
	Skipped  int64
}

// Summary aggregates the outcome of a full import run.
type Summary struct {
	Incidents Counts
	Datasets  Counts
	Tickets   Counts
}

// Total returns the number of rows imported across all files.
func (s Summary) Total() int64 {
	return s.Incidents.Imported + s.Datasets.Imported + s.Tickets.Imported
}

// Loader imports CSV exports through the same repositories the API uses, so
// imported rows get sequence-allocated ids and pass the same invariants.
type Loader struct {
	dir       string
	incidents ports.IncidentRepository
	datasets  ports.DatasetRepository
	tickets   ports.TicketRepository
	workers   int
	log       zerolog.Logger
}

// NewLoader creates a Loader reading from dir. If numWorkers <= 0,
// defaultWorkers is used.
func NewLoader(dir string, incidents ports.IncidentRepository, datasets ports.DatasetRepository, tickets ports.TicketRepository, numWorkers int, log zerolog.Logger) *Loader {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Loader{
		dir:       dir,
		incidents: incidents,
		datasets:  datasets,
		tickets:   tickets,
		workers:   numWorkers,
		log:       log,
	}
}

// ImportAll runs the three imports in sequence and returns per-file counts.
func (l *Loader) ImportAll(ctx context.Context) (Summary, error) {
	var summary Summary
	var err error

	if summary.Incidents, err = l.ImportIncidents(ctx); err != nil {
		return summary, err
	}
	if summary.Datasets, err = l.ImportDatasets(ctx); err != nil {
		return summary, err
	}
	if summary.Tickets, err = l.ImportTickets(ctx); err != nil {
		return summary, err
	}
	return summary, nil
}

// ImportIncidents loads cyber_incidents.csv. The export carries only a
// description, a severity, and a timestamp; the description doubles as the
// title, as the legacy loader did.
func (l *Loader) ImportIncidents(ctx context.Context) (Counts, error) {
	rows, err := loadCSV(l.dir, incidentsFile)
	if err != nil {
		return Counts{}, err
	}

	return l.run(ctx, "incidents", rows, func(ctx context.Context, r row) error {
		severity := domain.Severity(r.get("severity", string(domain.SeverityMedium)))
		if !severity.Valid() {
			return domain.ErrInvalidSeverity
		}

		id, err := l.incidents.NextID(ctx)
		if err != nil {
			return err
		}

		title := r.get("description", "Untitled Incident")
		return l.incidents.Insert(ctx, &domain.Incident{
			ID:           id,
			Title:        title,
			Description:  title,
			Severity:     severity,
			DateReported: r.getTime("timestamp", time.Now().UTC()),
		})
	})
}

// ImportDatasets loads datasets_metadata.csv.
func (l *Loader) ImportDatasets(ctx context.Context) (Counts, error) {
	rows, err := loadCSV(l.dir, datasetsFile)
	if err != nil {
		return Counts{}, err
	}

	return l.run(ctx, "datasets", rows, func(ctx context.Context, r row) error {
		id, err := l.datasets.NextID(ctx)
		if err != nil {
			return err
		}

		return l.datasets.Insert(ctx, &domain.Dataset{
			ID:          id,
			Name:        r.get("name", "Unnamed Dataset"),
			Description: "Uploaded by " + r.get("uploaded_by", "unknown"),
			Rows:        r.getInt("rows", 0),
			CreatedAt:   time.Now().UTC(),
		})
	})
}

// ImportTickets loads it_tickets.csv.
func (l *Loader) ImportTickets(ctx context.Context) (Counts, error) {
	rows, err := loadCSV(l.dir, ticketsFile)
	if err != nil {
		return Counts{}, err
	}

	return l.run(ctx, "tickets", rows, func(ctx context.Context, r row) error {
		description := r.get("description", "")
		if description == "" {
			return domain.ErrEmptyDescription
		}
		priority := domain.TicketPriority(r.get("priority", string(domain.PriorityMedium)))
		if !priority.Valid() {
			return domain.ErrInvalidPriority
		}
		status := domain.TicketStatus(r.get("status", string(domain.TicketOpen)))
		if !status.Valid() {
			return domain.ErrInvalidStatus
		}

		id, err := l.tickets.NextID(ctx)
		if err != nil {
			return err
		}

		return l.tickets.Insert(ctx, &domain.Ticket{
			ID:                  id,
			Description:         description,
			Priority:            priority,
			Status:              status,
			AssignedTo:          r.get("assigned_to", ""),
			CreatedAt:           r.getTime("created_at", time.Now().UTC()),
			ResolutionTimeHours: r.getFloat("resolution_time_hours"),
		})
	})
}

// run fans rows out to the worker pool and waits for completion. Each worker
// drains the shared job channel; a failed row is logged and counted as
// skipped without stopping its siblings.
func (l *Loader) run(ctx context.Context, collection string, rows []row, insert func(ctx context.Context, r row) error) (Counts, error) {
	jobs := make(chan row, jobBuffer)
	var imported, skipped atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < l.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				if err := insert(ctx, r); err != nil {
					skipped.Add(1)
					metrics.ImportRowsTotal.WithLabelValues(collection, "skipped").Inc()
					l.log.Warn().Err(err).Str("collection", collection).Msg("row skipped")
					continue
				}
				imported.Add(1)
				metrics.ImportRowsTotal.WithLabelValues(collection, "imported").Inc()
			}
		}()
	}

	for _, r := range rows {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return Counts{Imported: imported.Load(), Skipped: skipped.Load()}, ctx.Err()
		case jobs <- r:
		}
	}
	close(jobs)
	wg.Wait()

	counts := Counts{Imported: imported.Load(), Skipped: skipped.Load()}
	l.log.Info().
		Str("collection", collection).
		Int64("imported", counts.Imported).
		Int64("skipped", counts.Skipped).
		Msg("import complete")
	return counts, nil
}
