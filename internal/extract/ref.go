package extract

import (
	"strings"

	"github.com/radio-control/cmexport/internal/nrm"
)

// CellRefMarker introduces the home cell id inside a relation reference string,
// as in "...,vsDataNRCellCU=NR01,vsDataNRFreqRelation=1".
const CellRefMarker = nrm.TypeNRCellCU + "="

const refSeparator = ','

// ParseHomeCellRef extracts the home cell id from a compound reference.
//
// The id is the run of characters after CellRefMarker up to the next ',' or the end
// of the string. An occurrence of the marker with nothing before the separator is
// skipped in favour of the next one.
func ParseHomeCellRef(ref string) (string, bool) {
	rest := ref
	for {
		i := strings.Index(rest, CellRefMarker)
		if i < 0 {
			return "", false
		}
		rest = rest[i+len(CellRefMarker):]
		end := strings.IndexByte(rest, refSeparator)
		if end < 0 {
			end = len(rest)
		}
		if end > 0 {
			return rest[:end], true
		}
	}
}
