package ioreport

import (
	"context"
	"database/sql"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnvern/internal/ioresolve"
	"github.com/gnames/gnvern/pkg/names"
	"github.com/olekukonko/tablewriter"
)

// capsSuggestionLimit bounds the caps report to the most frequent
// rule gaps.
const capsSuggestionLimit = 50

// capsSuggestion aggregates one rule-gap word across raw names.
type capsSuggestion struct {
	word     string
	display  string
	count    int
	examples []string
}

// reportCaps suggests missing capitalization rules: words that appear
// capitalized inside raw common names but have no caps_rules entry.
// Suggestions only; the rule set is never auto-mutated.
func (r *reporter) reportCaps(ctx context.Context, conn *sql.DB) error {
	rules, err := ioresolve.LoadCapsRules(ctx, conn)
	if err != nil {
		return err
	}
	hasRule := func(w string) bool {
		_, ok := rules[w]
		return ok
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT raw_name FROM common_names WHERE language = ?
	`, r.cfg.Resolve.Language)
	if err != nil {
		return QueryError("caps scan", err)
	}
	defer rows.Close()

	found := make(map[string]*capsSuggestion)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return QueryError("caps scan", err)
		}

		for _, word := range names.FindMissingCapsWords(raw, hasRule) {
			display := capitalizedForm(raw, word)
			if display == "" {
				// Never seen with a capital: no casing signal.
				continue
			}
			s, ok := found[word]
			if !ok {
				s = &capsSuggestion{word: word, display: display}
				found[word] = s
			}
			s.count++
			if len(s.examples) < 3 {
				s.examples = append(s.examples, raw)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return QueryError("caps scan", err)
	}

	if len(found) == 0 {
		gn.Message("No missing capitalization rules detected")
		return nil
	}

	suggestions := make([]*capsSuggestion, 0, len(found))
	for _, s := range found {
		suggestions = append(suggestions, s)
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].count != suggestions[j].count {
			return suggestions[i].count > suggestions[j].count
		}
		return suggestions[i].word < suggestions[j].word
	})
	if len(suggestions) > capsSuggestionLimit {
		suggestions = suggestions[:capsSuggestionLimit]
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("WORD", "SUGGESTED", "SEEN", "EXAMPLES")
	for _, s := range suggestions {
		err := table.Append(s.word, s.display,
			humanize.Comma(int64(s.count)),
			strings.Join(s.examples, "; "))
		if err != nil {
			return QueryError("render caps report", err)
		}
	}
	if err := table.Render(); err != nil {
		return QueryError("render caps report", err)
	}
	gn.Message(
		"<em>%s candidate rule(s); review and seed with --seed</em>",
		humanize.Comma(int64(len(found))))
	return nil
}

// capitalizedForm finds the token of raw whose lowercase core matches
// word and which carries an uppercase letter, returning the observed
// casing. Empty when the word only ever appears lowercase.
func capitalizedForm(raw, word string) string {
	for _, token := range strings.Fields(raw) {
		core := strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if strings.ToLower(core) != word {
			continue
		}
		for _, r := range core {
			if unicode.IsUpper(r) {
				return core
			}
		}
	}
	return ""
}
