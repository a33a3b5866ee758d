package sources

// PriorityUnknown ranks any source outside the table.
const PriorityUnknown = 99

// Priority returns the selection rank of a common-name source; lower is
// better. The table is a fixed judgment call inherited from years of
// comparing providers. Do not reorder it: selection results are part of
// the observable behavior, and any change needs sign-off.
//
//	wikipedia_title   1
//	wikipedia_taxobox 2
//	wikidata_label    3
//	iucn (preferred)  4
//	iucn (other)      5
//	wikidata          6
//	col               7
func Priority(source string, preferred bool) int {
	switch source {
	case WikipediaTitle:
		return 1
	case WikipediaTaxobox:
		return 2
	case WikidataLabel:
		return 3
	case IUCN:
		if preferred {
			return 4
		}
		return 5
	case Wikidata:
		return 6
	case COL:
		return 7
	}
	return PriorityUnknown
}
