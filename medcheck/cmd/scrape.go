// Command-line entrypoint for the condition scrape batch. Runs offline,
// independently of the API server, and populates the conditions table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"medcheck/medcheck/config"
	"medcheck/medcheck/services/scraper"
	"medcheck/medcheck/sources/psql"
	"medcheck/medcheck/sources/psql/dao"
	"medcheck/medcheck/sources/storage"
	"medcheck/medcheck/utils/logging"

	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	limit := flag.Int("limit", cfg.ScrapeLimit, "number of condition pages to scrape")
	useBrowser := flag.Bool("browser", false, "fetch pages with headless Chromium instead of plain HTTP")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := psql.NewDatabase(ctx, cfg)
	cancel()
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	var fetcher scraper.Fetcher
	if *useBrowser {
		browser, err := scraper.NewBrowserFetcher(0)
		if err != nil {
			logging.ErrorLogger.Error("browser startup error", zap.Error(err))
			os.Exit(1)
		}
		defer browser.Close()
		fetcher = browser
	} else {
		fetcher = scraper.NewHTTPFetcher(0)
	}

	s, err := scraper.NewScraper(fetcher, cfg.ScrapeListingURL, cfg.ScrapeBaseURL, cfg.ScrapePathPrefix)
	if err != nil {
		logging.ErrorLogger.Error("scraper setup error", zap.Error(err))
		os.Exit(1)
	}

	var archive scraper.Archive
	if cfg.MinIOEndpoint != "" {
		pageArchive, err := storage.NewPageArchive(cfg)
		if err != nil {
			logging.ErrorLogger.Error("page archive setup error", zap.Error(err))
			os.Exit(1)
		}
		archive = pageArchive
	}

	pipeline := scraper.NewPipeline(s, fetcher, dao.NewConditionDAO(db.DB), archive)

	saved, err := pipeline.Run(context.Background(), *limit)
	if err != nil {
		logging.ErrorLogger.Error("scrape batch error", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("Saved %d condition records\n", saved)
}
