package ioresolve

import (
	"context"
	"sort"
	"strings"

	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/sources"
)

// Candidate is one common-name row competing for best-name selection.
type Candidate struct {
	CommonNameID   int64
	RawName        string
	NormalizedName string
	DisplayName    string
	Source         string
	Language       string
	Preferred      bool
	NameUUID       string
}

// Selection is the outcome for one taxon.
type Selection struct {
	Candidate Candidate

	// Ambiguous is set when the chosen name is in the ambiguous set;
	// only possible with allowAmbiguous.
	Ambiguous bool
}

// SortCandidates orders candidates by (priority asc, preferred desc,
// raw name case-insensitive ordinal asc). The last criterion makes the
// choice deterministic among ties.
func SortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		pi := sources.Priority(cands[i].Source, cands[i].Preferred)
		pj := sources.Priority(cands[j].Source, cands[j].Preferred)
		if pi != pj {
			return pi < pj
		}
		if cands[i].Preferred != cands[j].Preferred {
			return cands[i].Preferred
		}
		return strings.ToLower(cands[i].RawName) <
			strings.ToLower(cands[j].RawName)
	})
}

// SelectBestName picks one candidate. The first non-ambiguous candidate
// in priority order wins; with allowAmbiguous the first candidate wins
// outright and is flagged. Returns nil when no candidate qualifies.
func SelectBestName(
	cands []Candidate,
	ambiguous map[string]bool,
	allowAmbiguous bool,
) *Selection {
	if len(cands) == 0 {
		return nil
	}
	SortCandidates(cands)

	if allowAmbiguous {
		c := cands[0]
		return &Selection{
			Candidate: c,
			Ambiguous: ambiguous[c.NormalizedName],
		}
	}
	for _, c := range cands {
		if !ambiguous[c.NormalizedName] {
			return &Selection{Candidate: c}
		}
	}
	return nil
}

// taxonCandidates loads the common-name rows of one taxon for one
// language.
func taxonCandidates(
	ctx context.Context,
	q db.DBTX,
	taxonID int64,
	language string,
) ([]Candidate, error) {
	query := `
		SELECT id, raw_name, normalized_name,
			COALESCE(display_name, ''), source, language, is_preferred
		FROM common_names
		WHERE taxon_id = ? AND language = ?
	`
	rows, err := q.QueryContext(ctx, query, taxonID, language)
	if err != nil {
		return nil, SelectionError(taxonID, err)
	}
	defer rows.Close()

	var res []Candidate
	for rows.Next() {
		var c Candidate
		err := rows.Scan(
			&c.CommonNameID, &c.RawName, &c.NormalizedName,
			&c.DisplayName, &c.Source, &c.Language, &c.Preferred,
		)
		if err != nil {
			return nil, SelectionError(taxonID, err)
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, SelectionError(taxonID, err)
	}
	return res, nil
}
