package ioresolve

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/names"
	"github.com/gnames/gnvern/pkg/schema"
)

// LoadCapsRules reads the full caps_rules table into a lowercase-word
// lookup map. The table is small (thousands of words); resolution
// batches load it once.
func LoadCapsRules(
	ctx context.Context,
	q db.DBTX,
) (map[string]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT word, display FROM caps_rules")
	if err != nil {
		return nil, CapsRulesError("load", err)
	}
	defer rows.Close()

	res := make(map[string]string)
	for rows.Next() {
		var word, display string
		if err := rows.Scan(&word, &display); err != nil {
			return nil, CapsRulesError("load", err)
		}
		res[word] = display
	}
	if err := rows.Err(); err != nil {
		return nil, CapsRulesError("load", err)
	}
	return res, nil
}

// displayName renders one candidate: the cached display_name when
// present, else the raw name run through the caps rules.
func displayName(c Candidate, rules map[string]string) string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return names.ApplyCapitalization(c.RawName, func(w string) (string, bool) {
		fixed, ok := rules[w]
		return fixed, ok
	})
}

// seedCapsRules loads a caps file: one correctly capitalized word per
// line, '#' comments and blank lines skipped. The lowercase form is the
// key; existing rules for the same word are overwritten with
// provenance caps_txt.
func seedCapsRules(
	ctx context.Context,
	q db.DBTX,
	path string,
) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, CapsRulesError("open seed file", err)
	}
	defer f.Close()

	query := `
		INSERT INTO caps_rules (word, display, source)
		VALUES (?, ?, ?)
		ON CONFLICT (word) DO UPDATE SET
			display = excluded.display,
			source = excluded.source
	`

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return count, CapsRulesError("seed", ctx.Err())
		default:
		}

		display := strings.TrimSpace(scanner.Text())
		if display == "" || strings.HasPrefix(display, "#") {
			continue
		}
		word := strings.ToLower(display)
		if word == display {
			// A fully lowercase entry carries no casing information.
			continue
		}
		_, err := q.ExecContext(ctx, query, word, display,
			schema.CapsSourceTxt)
		if err != nil {
			return count, CapsRulesError("seed", err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, CapsRulesError("read seed file", err)
	}
	return count, nil
}
