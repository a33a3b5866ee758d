package ioreport

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
)

type summaryCounts struct {
	mu sync.Mutex

	taxa       int64
	validTaxa  int64
	synonyms   int64
	languages  int64
	xrefs      int64
	runs       int64
	namesBySrc map[string]int64
	conflicts  map[string]int64
}

// reportSummary prints database-wide counts. The read-only count
// queries run concurrently.
func (r *reporter) reportSummary(ctx context.Context, conn *sql.DB) error {
	sum := summaryCounts{
		namesBySrc: make(map[string]int64),
		conflicts:  make(map[string]int64),
	}

	g, ctx := errgroup.WithContext(ctx)

	count := func(query string, dst *int64) func() error {
		return func() error {
			var n int64
			err := conn.QueryRowContext(ctx, query).Scan(&n)
			if err != nil {
				return QueryError("summary", err)
			}
			sum.mu.Lock()
			*dst = n
			sum.mu.Unlock()
			return nil
		}
	}

	g.Go(count(`SELECT count(*) FROM taxa`, &sum.taxa))
	g.Go(count(
		`SELECT count(*) FROM taxa WHERE validity_status = 'valid'`,
		&sum.validTaxa,
	))
	g.Go(count(
		`SELECT count(*) FROM scientific_name_synonyms`, &sum.synonyms,
	))
	g.Go(count(
		`SELECT count(DISTINCT language) FROM common_names`,
		&sum.languages,
	))
	g.Go(count(
		`SELECT count(*) FROM taxon_cross_references`, &sum.xrefs,
	))
	g.Go(count(`SELECT count(*) FROM import_runs`, &sum.runs))

	g.Go(func() error {
		return groupCount(ctx, conn,
			`SELECT source, count(*) FROM common_names GROUP BY source`,
			&sum.mu, sum.namesBySrc,
		)
	})
	g.Go(func() error {
		return groupCount(ctx, conn,
			`SELECT conflict_type, count(*) FROM common_name_conflicts
			 GROUP BY conflict_type`,
			&sum.mu, sum.conflicts,
		)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	var totalNames int64
	for _, n := range sum.namesBySrc {
		totalNames += n
	}

	type metric struct {
		name  string
		count int64
	}
	metrics := []metric{
		{"taxa", sum.taxa},
		{"taxa (valid)", sum.validTaxa},
		{"scientific-name synonyms", sum.synonyms},
		{"common names", totalNames},
	}
	for _, src := range sortedKeys(sum.namesBySrc) {
		metrics = append(metrics, metric{
			fmt.Sprintf("common names: %s", src), sum.namesBySrc[src],
		})
	}
	metrics = append(metrics,
		metric{"languages", sum.languages},
		metric{"cross-references", sum.xrefs},
	)
	for _, typ := range sortedKeys(sum.conflicts) {
		metrics = append(metrics, metric{
			fmt.Sprintf("conflicts: %s", typ), sum.conflicts[typ],
		})
	}
	metrics = append(metrics, metric{"import runs", sum.runs})

	table := tablewriter.NewTable(os.Stdout)
	table.Header("METRIC", "COUNT")
	for _, m := range metrics {
		err := table.Append(m.name, humanize.Comma(m.count))
		if err != nil {
			return QueryError("render summary", err)
		}
	}
	if err := table.Render(); err != nil {
		return QueryError("render summary", err)
	}
	gn.Message("Database: %s", r.cfg.Database.Path)
	return nil
}

func groupCount(
	ctx context.Context,
	conn *sql.DB,
	query string,
	mu *sync.Mutex,
	dst map[string]int64,
) error {
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return QueryError("summary", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return QueryError("summary", err)
		}
		mu.Lock()
		dst[key] = n
		mu.Unlock()
	}
	return rows.Err()
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
