package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-sim/internal/catalog"
	"github.com/aatrey56/fpl-sim/internal/config"
	"github.com/aatrey56/fpl-sim/internal/fetch"
	"github.com/aatrey56/fpl-sim/internal/game"
	"github.com/aatrey56/fpl-sim/internal/logger"
	"github.com/aatrey56/fpl-sim/internal/random"
	"github.com/aatrey56/fpl-sim/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}

	var (
		catalogPath = flag.String("catalog", cfg.CatalogPath, "athlete catalog CSV (name,club,position,price)")
		catalogURL  = flag.String("catalog-url", cfg.CatalogURL, "download the catalog from this URL into the raw root")
		refresh     = flag.Bool("refresh", false, "re-download the catalog even if a cached copy exists")
		rawRoot     = flag.String("raw-root", cfg.RawRoot, "root directory for downloaded files")
		derivedRoot = flag.String("derived-root", cfg.DerivedRoot, "root directory for session reports")
		noReports   = flag.Bool("no-reports", false, "do not write session reports")
		seed        = flag.Int64("seed", cfg.Seed, "random seed (0 = random)")
		logLevel    = flag.String("log-level", cfg.LogLevel, "log level")
		logFormat   = flag.String("log-format", cfg.LogFormat, "log format: text|json")
	)
	flag.Parse()

	log := logger.New(os.Stderr, *logLevel, *logFormat)

	cat, err := loadCatalog(log, *catalogPath, *catalogURL, *rawRoot, *refresh)
	if err != nil {
		log.WithError(err).Fatal("catalog load failed")
	}

	rng, usedSeed, err := random.NewRand(*seed)
	if err != nil {
		log.WithError(err).Fatal("seeding random source")
	}
	log.WithField("seed", usedSeed).Debug("random source ready")

	opts := game.Options{Logger: log}
	if !*noReports {
		opts.Reports = store.NewFileStore(*derivedRoot)
	}
	sess := game.New(cat, rng, opts)

	c := newConsole(os.Stdin, os.Stdout, sess)
	c.run()

	if err := sess.Finish(); err != nil {
		log.WithError(err).Error("writing session reports")
	}
}

// loadCatalog reads the catalog from disk, downloading it first when url is set.
func loadCatalog(log *logrus.Logger, path, url, rawRoot string, refresh bool) (*catalog.Catalog, error) {
	if url == "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return catalog.Parse(f)
	}

	client := fetch.NewClient(store.NewFileStore(rawRoot))
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	body, err := client.Catalog(ctx, url, refresh)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"url": url, "bytes": len(body)}).Info("catalog fetched")
	return catalog.ParseBytes(body)
}
