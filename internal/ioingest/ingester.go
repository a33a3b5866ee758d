// Package ioingest implements the Ingester interface: it reads local
// source caches and merges their vernacular names into the embedded
// store. This is an impure I/O package; one bad record never aborts a
// source pass.
package ioingest

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/gnames/gnvern/internal/iosources"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/gnvern"
	"github.com/gnames/gnvern/pkg/names"
	"github.com/gnames/gnvern/pkg/parserpool"
	"github.com/gnames/gnvern/pkg/schema"
	"github.com/gnames/gnvern/pkg/sources"
)

// maxErrorLogs caps verbose per-record error logging per source pass.
const maxErrorLogs = 10

// passOrder fixes the processing order: the checklist builds the taxon
// registry, the other sources attach to it.
var passOrder = []string{
	sources.NameCOL,
	sources.NameIUCN,
	sources.NameWikidata,
	sources.NameWikipedia,
}

type ingester struct {
	cfg      *config.Config
	operator db.Operator
	registry *Registry
	pool     parserpool.Pool
	ledger   runLedger
}

// New creates a new Ingester.
func New(
	cfg *config.Config,
	op db.Operator,
	pool parserpool.Pool,
) gnvern.Ingester {
	return &ingester{
		cfg:      cfg,
		operator: op,
		registry: NewRegistry(),
		pool:     pool,
	}
}

// Ingest runs one pass per configured source. Sources fail
// independently; the whole operation errors only when every requested
// source fails.
func (ing *ingester) Ingest(ctx context.Context) error {
	if ing.operator.DB() == nil {
		return NotConnectedError()
	}

	startTime := time.Now()
	slog.Info("Starting common-name ingest")

	src := iosources.New(ing.cfg)
	sourcesConfig, err := src.Load()
	if err != nil {
		return err
	}

	toProcess, err := ing.collectSources(sourcesConfig)
	if err != nil {
		return err
	}

	successCount := 0
	errorCount := 0
	for i, source := range toProcess {
		sourceStart := time.Now()

		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Data Source [%d/%d]: %s", i+1, len(toProcess),
			sourceTitle(source))
		fmt.Println(strings.Repeat("─", 60))

		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		if err := ing.processSource(ctx, source); err != nil {
			errorCount++
			slog.Error("Failed to process source",
				"source", source.Name,
				"error", err,
			)
			continue
		}

		successCount++
		elapsed := time.Since(sourceStart)
		slog.Info("Source processed",
			"source", source.Name,
			"duration", gnfmt.TimeString(elapsed.Seconds()),
		)
		gn.Info("Completed in %s", gnfmt.TimeString(elapsed.Seconds()))
	}

	totalDuration := time.Since(startTime)
	slog.Info("Ingest complete",
		"success", successCount,
		"errors", errorCount,
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info(`Ingest complete
Sources succeeded: %d, failed %d, total %d.
Elapsed time: <em>%s</em>
`,
		successCount,
		errorCount,
		len(toProcess),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if errorCount > 0 && successCount == 0 {
		return AllSourcesFailedError(errorCount)
	}
	if errorCount > 0 {
		slog.Warn("Some sources failed to process",
			"failed", errorCount,
			"succeeded", successCount)
	}
	return nil
}

// collectSources filters configured sources to the requested names and
// orders them so the checklist runs first.
func (ing *ingester) collectSources(
	sourcesConfig *sources.SourcesConfig,
) ([]sources.DataSourceConfig, error) {
	requested := make(map[string]bool)
	for _, name := range ing.cfg.Ingest.Sources {
		name = strings.ToLower(name)
		if name == "all" {
			requested = nil
			break
		}
		requested[name] = true
	}

	var toProcess []sources.DataSourceConfig
	for _, name := range passOrder {
		if len(requested) > 0 && !requested[name] {
			continue
		}
		if src := sourcesConfig.ByName(name); src != nil {
			toProcess = append(toProcess, *src)
		}
	}

	if len(toProcess) == 0 {
		return nil, NoSourcesError(ing.cfg.Ingest.Sources)
	}
	if len(requested) == 0 {
		slog.Info("Processing all sources", "count", len(toProcess))
	}
	return toProcess, nil
}

// processSource runs one ledger-tracked pass over one source cache.
// The ledger row is written outside the data transaction: a crash
// mid-pass leaves it in running status as an audit trail.
func (ing *ingester) processSource(
	ctx context.Context,
	source sources.DataSourceConfig,
) error {
	cache, err := openCache(source)
	if err != nil {
		return err
	}
	defer cache.Close()

	conn := ing.operator.DB()
	runID, runUUID, err := ing.ledger.BeginRun(ctx, conn, source.Name)
	if err != nil {
		return err
	}
	slog.Info("Started import run",
		"run_uuid", runUUID,
		"source", source.Name,
	)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return TxError(source.Name, "begin", err)
	}

	var stats passStats
	if source.Name == sources.NameCOL {
		err = ing.checklistPass(ctx, tx, cache, source, &stats)
	} else {
		err = ing.attachPass(ctx, tx, cache, source, &stats)
	}
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return TxError(source.Name, "commit", err)
	}

	notes := fmt.Sprintf(
		"skipped (no matching taxon): %d", stats.skipped,
	)
	if err := ing.ledger.CompleteRun(
		ctx, conn, runID, stats, notes,
	); err != nil {
		return err
	}

	gn.Message(
		"<em>%s: processed %s, added %s, updated %s, "+
			"skipped %s, errors %s</em>",
		source.Name,
		humanize.Comma(int64(stats.processed)),
		humanize.Comma(int64(stats.added)),
		humanize.Comma(int64(stats.updated)),
		humanize.Comma(int64(stats.skipped)),
		humanize.Comma(int64(stats.errors)),
	)
	return nil
}

// attachPass handles the sources that attach names to existing taxa:
// iucn, wikidata and wikipedia.
func (ing *ingester) attachPass(
	ctx context.Context,
	tx *sql.Tx,
	cache *sql.DB,
	source sources.DataSourceConfig,
	stats *passStats,
) error {
	var extract extractFunc
	var countTable string
	switch source.Name {
	case sources.NameIUCN:
		extract, countTable = extractIUCN, "assessments"
	case sources.NameWikidata:
		extract, countTable = extractWikidata, "entities"
	case sources.NameWikipedia:
		extract, countTable = extractWikipedia, "pages"
	default:
		return NoSourcesError([]string{source.Name})
	}

	total, err := countRows(ctx, cache, countTable, ing.cfg.Ingest.Limit)
	if err != nil {
		return err
	}
	bar := newProgressBar(total, "Ingesting "+source.Name+": ")
	defer bar.Finish()

	handler := func(ext Extraction, perr error) error {
		stats.processed++
		bar.Add(1)

		if perr != nil {
			stats.errors++
			if stats.errors <= maxErrorLogs {
				slog.Error("Failed to parse source record",
					"source", source.Name,
					"error", perr,
				)
			}
			return nil
		}

		taxonID, err := ing.registry.FindTaxonByScientificName(
			ctx, tx, ext.ScientificName, ext.Kingdom,
		)
		if err != nil {
			return err
		}
		if taxonID == 0 {
			stats.skipped++
			return nil
		}

		if err := ing.insertCrossRefs(ctx, tx, taxonID, ext); err != nil {
			return err
		}
		return ing.upsertCandidates(
			ctx, tx, taxonID, ext.Candidates, source, stats,
		)
	}

	return extract(ctx, cache, ing.cfg.Ingest.Limit, handler)
}

// checklistPass builds the taxon registry from the col cache: accepted
// usages, then synonym usages, then vernacular names.
func (ing *ingester) checklistPass(
	ctx context.Context,
	tx *sql.Tx,
	cache *sql.DB,
	source sources.DataSourceConfig,
	stats *passStats,
) error {
	pass := &colPass{
		registry:        ing.registry,
		pool:            ing.pool,
		includeSynonyms: ing.cfg.Ingest.IncludeSynonyms,
	}
	limit := ing.cfg.Ingest.Limit

	total, err := countRows(ctx, cache, "name_usage", limit)
	if err != nil {
		return err
	}
	bar := newProgressBar(total, "Ingesting taxa: ")

	err = pass.usages(ctx, cache, colAcceptedStatuses, limit,
		func(u colUsage) error {
			stats.processed++
			bar.Add(1)
			_, added, err := pass.upsertAcceptedUsage(ctx, tx, u)
			if err != nil {
				stats.errors++
				if stats.errors <= maxErrorLogs {
					slog.Error("Failed to ingest checklist usage",
						"usage_id", u.id,
						"error", err,
					)
				}
				return nil
			}
			if added {
				stats.added++
			} else {
				stats.updated++
			}
			return nil
		})
	bar.Finish()
	if err != nil {
		return err
	}

	if ing.cfg.Ingest.IncludeSynonyms {
		err = pass.usages(ctx, cache, []string{"synonym"}, limit,
			func(u colUsage) error {
				stats.processed++
				linked, err := pass.upsertSynonymUsage(ctx, tx, u)
				if err != nil {
					stats.errors++
					if stats.errors <= maxErrorLogs {
						slog.Error("Failed to ingest synonym",
							"usage_id", u.id,
							"error", err,
						)
					}
					return nil
				}
				if !linked {
					stats.skipped++
				}
				return nil
			})
		if err != nil {
			return err
		}
	}

	vernTotal, err := countRows(ctx, cache, "vernacular", limit)
	if err != nil {
		return err
	}
	vernBar := newProgressBar(vernTotal, "Ingesting vernaculars: ")
	defer vernBar.Finish()

	return pass.vernaculars(ctx, cache, limit,
		func(ext Extraction, perr error) error {
			stats.processed++
			vernBar.Add(1)

			if perr != nil {
				stats.errors++
				if stats.errors <= maxErrorLogs {
					slog.Error("Failed to parse vernacular row",
						"source", source.Name,
						"error", perr,
					)
				}
				return nil
			}

			taxonID, err := ing.registry.FindTaxonByScientificName(
				ctx, tx, ext.ScientificName, ext.Kingdom,
			)
			if err != nil {
				return err
			}
			if taxonID == 0 {
				stats.skipped++
				return nil
			}
			return ing.upsertCandidates(
				ctx, tx, taxonID, ext.Candidates, source, stats,
			)
		})
}

// upsertCandidates filters and stores the vernacular candidates of one
// extraction. Blank and scientific-looking names are silent skips.
func (ing *ingester) upsertCandidates(
	ctx context.Context,
	tx *sql.Tx,
	taxonID int64,
	cands []Candidate,
	source sources.DataSourceConfig,
	stats *passStats,
) error {
	for _, cand := range cands {
		raw := gnlib.FixUtf8(strings.TrimSpace(cand.Name))
		norm := names.NormalizeCommonNameForMatching(raw)
		if norm == "" {
			continue
		}
		if names.LooksLikeScientificName(raw) {
			continue
		}

		// Knowledge-base labels often duplicate the scientific name.
		if cand.Source == sources.WikidataLabel {
			known, err := ing.registry.IsKnownScientificName(
				ctx, tx, names.NormalizeScientificName(raw),
			)
			if err != nil {
				return err
			}
			if known {
				continue
			}
		}

		lang := normalizeLanguage(cand.Language)
		if lang == "" && cand.Language == "" {
			lang = source.Language
		}
		if lang == "" {
			continue
		}

		cn := schema.CommonName{
			TaxonID:          taxonID,
			RawName:          raw,
			NormalizedName:   norm,
			Language:         lang,
			Source:           cand.Source,
			SourceIdentifier: cand.Identifier,
			IsPreferred:      cand.Preferred,
		}
		added, err := ing.registry.UpsertCommonName(ctx, tx, cn)
		if err != nil {
			return err
		}
		if added {
			stats.added++
		} else {
			stats.updated++
		}
	}
	return nil
}

// insertCrossRefs stores the external identifiers of one extraction.
func (ing *ingester) insertCrossRefs(
	ctx context.Context,
	tx *sql.Tx,
	taxonID int64,
	ext Extraction,
) error {
	for provider, id := range ext.ExternalIDs {
		x := schema.CrossReference{
			TaxonID:    taxonID,
			Source:     provider,
			ExternalID: id,
			MatchType:  schema.MatchExact,
		}
		if err := ing.registry.InsertCrossReference(ctx, tx, x); err != nil {
			return err
		}
	}
	return nil
}

// openCache opens a source cache database read-only.
func openCache(source sources.DataSourceConfig) (*sql.DB, error) {
	conn, err := sql.Open(
		"sqlite", "file:"+source.Cache+"?mode=ro",
	)
	if err != nil {
		return nil, CacheOpenError(source.Name, source.Cache, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, CacheOpenError(source.Name, source.Cache, err)
	}
	return conn, nil
}

// countRows counts cache rows for progress reporting, honoring the
// ingest limit.
func countRows(
	ctx context.Context,
	cache *sql.DB,
	table string,
	limit int,
) (int, error) {
	var total int
	query := "SELECT count(*) FROM " + table
	err := cache.QueryRowContext(ctx, query).Scan(&total)
	if err != nil {
		return 0, QueryError("count "+table, err)
	}
	if limit > 0 && limit < total {
		total = limit
	}
	return total, nil
}

func sourceTitle(source sources.DataSourceConfig) string {
	if source.Title != "" {
		return source.Title
	}
	return source.Name
}
