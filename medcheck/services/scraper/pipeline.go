package scraper

import (
	"context"

	"medcheck/medcheck/sources/psql/models"
	"medcheck/medcheck/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConditionStore persists scraped records.
type ConditionStore interface {
	SaveCondition(ctx context.Context, condition *models.Condition) error
}

// Archive keeps raw page snapshots. Optional.
type Archive interface {
	ArchivePage(ctx context.Context, url, html string) (string, error)
}

// Pipeline runs the scrape-parse-store batch: sequential over links, one
// failed page is logged and skipped, never aborting the batch.
type Pipeline struct {
	scraper *Scraper
	fetcher Fetcher
	store   ConditionStore
	archive Archive // nil when no object storage is configured
}

func NewPipeline(s *Scraper, fetcher Fetcher, store ConditionStore, archive Archive) *Pipeline {
	return &Pipeline{scraper: s, fetcher: fetcher, store: store, archive: archive}
}

// Run scrapes the first limit condition links and returns the number of
// records saved. Only the initial link enumeration can fail the batch.
func (p *Pipeline) Run(ctx context.Context, limit int) (int, error) {
	runID := uuid.New().String()[:8]
	log := logging.AppLogger.With(zap.String("run_id", runID))

	links, err := p.scraper.ListConditionLinks(ctx)
	if err != nil {
		return 0, err
	}
	log.Info("condition links found", zap.Int("count", len(links)), zap.Int("limit", limit))

	if limit > 0 && limit < len(links) {
		links = links[:limit]
	}

	saved := 0
	for _, link := range links {
		body, err := p.fetcher.Fetch(ctx, link)
		if err != nil {
			log.Warn("fetch failed, skipping", zap.String("url", link), zap.Error(err))
			continue
		}
		if p.archive != nil {
			if _, err := p.archive.ArchivePage(ctx, link, body); err != nil {
				log.Warn("page archive failed", zap.String("url", link), zap.Error(err))
			}
		}
		record, err := p.scraper.ParseCondition(body)
		if err != nil {
			log.Warn("parse failed, skipping", zap.String("url", link), zap.Error(err))
			continue
		}
		condition := &models.Condition{
			Name:            record.Name,
			Symptoms:        record.Symptoms,
			Recommendations: record.Recommendations,
		}
		if err := p.store.SaveCondition(ctx, condition); err != nil {
			log.Warn("store failed, skipping", zap.String("url", link), zap.Error(err))
			continue
		}
		saved++
		log.Info("condition saved", zap.String("name", record.Name), zap.String("url", link))
	}
	log.Info("scrape batch complete", zap.Int("saved", saved), zap.Int("attempted", len(links)))
	return saved, nil
}
