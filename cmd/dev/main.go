package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-sim/internal/catalog"
	"github.com/aatrey56/fpl-sim/internal/config"
	"github.com/aatrey56/fpl-sim/internal/fetch"
	"github.com/aatrey56/fpl-sim/internal/game"
	"github.com/aatrey56/fpl-sim/internal/logger"
	"github.com/aatrey56/fpl-sim/internal/random"
	"github.com/aatrey56/fpl-sim/internal/season"
	"github.com/aatrey56/fpl-sim/internal/store"
)

// SessionOutcome is one autoplayed season.
type SessionOutcome struct {
	SessionID     string         `json:"session_id"`
	Seed          int64          `json:"seed"`
	UserFull      bool           `json:"user_full"`
	BotFull       bool           `json:"bot_full"`
	RoundsPlayed  int            `json:"rounds_played"`
	UserTotal     int            `json:"user_total"`
	OpponentTotal int            `json:"opponent_total"`
	Verdict       season.Verdict `json:"verdict,omitempty"`
	AuditOK       bool           `json:"audit_ok"`
}

type BatchReport struct {
	GeneratedAtUTC string           `json:"generated_at_utc"`
	Catalog        string           `json:"catalog"`
	Sessions       []SessionOutcome `json:"sessions"`
	Wins           int              `json:"wins"`
	Losses         int              `json:"losses"`
	Ties           int              `json:"ties"`
	Incomplete     int              `json:"incomplete"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}

	var (
		catalogPath = flag.String("catalog", cfg.CatalogPath, "athlete catalog CSV")
		catalogURL  = flag.String("catalog-url", cfg.CatalogURL, "download the catalog from this URL into the raw root")
		rawRoot     = flag.String("raw-root", cfg.RawRoot, "root directory for downloaded files")
		derivedRoot = flag.String("derived-root", cfg.DerivedRoot, "root directory for session reports")
		refreshMode = flag.String("refresh", "none", "catalog refresh mode: none|all")
		live        = flag.Bool("live", false, "disable cache and disk writes")
		sessions    = flag.Int("sessions", 1, "number of seasons to autoplay")
		seed        = flag.Int64("seed", cfg.Seed, "seed of the first session; later sessions add 1 (0 = random)")
		logLevel    = flag.String("log-level", cfg.LogLevel, "log level")
	)
	flag.Parse()

	log := logger.New(os.Stderr, *logLevel, cfg.LogFormat)

	mode := *refreshMode
	if mode != "none" && mode != "all" {
		log.Fatalf("invalid refresh mode: %s", mode)
	}

	body, source, err := readCatalog(*catalogPath, *catalogURL, *rawRoot, mode == "all", *live)
	must(log, err)
	log.WithFields(logrus.Fields{"source": source, "bytes": len(body)}).Info("catalog ready")

	var reports *store.FileStore
	if *live {
		log.Info("session reports skipped in live mode")
	} else {
		reports = store.NewFileStore(*derivedRoot)
	}

	report := &BatchReport{
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Catalog:        source,
		Sessions:       make([]SessionOutcome, 0, *sessions),
	}
	for i := 0; i < *sessions; i++ {
		s := *seed
		if s != 0 {
			s += int64(i)
		}
		out, err := autoplay(log, body, s, reports)
		must(log, err)
		report.add(out)
	}

	log.WithFields(logrus.Fields{
		"sessions":   len(report.Sessions),
		"wins":       report.Wins,
		"losses":     report.Losses,
		"ties":       report.Ties,
		"incomplete": report.Incomplete,
	}).Info("batch finished")

	if reports != nil {
		outPath := reports.Path(fmt.Sprintf("batch/%s.json", time.Now().UTC().Format("20060102T150405Z")))
		must(log, writeJSON(outPath, report))
	}
	log.Info("Done.")
}

// readCatalog returns the catalog bytes and where they came from.
func readCatalog(path, url, rawRoot string, force, live bool) ([]byte, string, error) {
	if url == "" {
		b, err := os.ReadFile(path)
		return b, path, err
	}
	client := fetch.NewClient(store.NewFileStore(rawRoot))
	client.UseCache = !live
	client.DisableWrite = live

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	b, err := client.Catalog(ctx, url, force)
	return b, url, err
}

// autoplay drafts the user's squad automatically and plays the whole season.
// Every session starts from a fresh copy of the catalog.
func autoplay(log *logrus.Logger, catalogCSV []byte, seed int64, reports *store.FileStore) (SessionOutcome, error) {
	cat, err := catalog.ParseBytes(catalogCSV)
	if err != nil {
		return SessionOutcome{}, err
	}
	rng, usedSeed, err := random.NewRand(seed)
	if err != nil {
		return SessionOutcome{}, err
	}

	sess := game.New(cat, rng, game.Options{Logger: log, Reports: reports})
	out := SessionOutcome{
		SessionID: sess.ID,
		Seed:      usedSeed,
		BotFull:   sess.OpponentDraft.Full,
		UserFull:  sess.Autofill().Full,
	}

	if out.UserFull {
		for !sess.Done() {
			if _, err := sess.SimulateRound(); err != nil {
				return out, err
			}
		}
	} else if err := sess.Finish(); err != nil {
		return out, err
	}

	st := sess.Status()
	out.RoundsPlayed = st.Round
	out.UserTotal = st.UserTotal
	out.OpponentTotal = st.OpponentTotal
	out.Verdict = st.Verdict
	out.AuditOK = sess.Audit().OK()
	return out, nil
}

func (r *BatchReport) add(o SessionOutcome) {
	r.Sessions = append(r.Sessions, o)
	switch o.Verdict {
	case season.Win:
		r.Wins++
	case season.Lose:
		r.Losses++
	case season.Tie:
		r.Ties++
	default:
		r.Incomplete++
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

func must(log *logrus.Logger, err error) {
	if err != nil {
		if os.IsNotExist(err) {
			log.Fatal("missing catalog; pass --catalog or --catalog-url")
		}
		log.Fatal(err)
	}
}
