package extract

import (
	"github.com/radio-control/cmexport/internal/cmdoc"
	"github.com/radio-control/cmexport/internal/nrm"
)

// Relation is one row of the neighbor-relation list.
type Relation struct {
	HomeGNBID        string
	HomeCellID       string
	HomeGlobalCellID string
	Label            string
}

// RelationExtractor resolves relation containers against the cell lookups.
type RelationExtractor struct {
	catalog *nrm.Catalog
	lookups *CellLookups
}

// NewRelationExtractor returns an extractor. lookups must be complete, which holds
// once CellExtractor.Extract has returned.
func NewRelationExtractor(cat *nrm.Catalog, lookups *CellLookups) *RelationExtractor {
	return &RelationExtractor{catalog: cat, lookups: lookups}
}

// Extract returns one Relation per relation container that has both a label and
// a parsable home cell reference, in document order.
func (e *RelationExtractor) Extract() []Relation {
	var out []Relation
	for _, c := range e.catalog.OfKind(nrm.KindRelation) {
		if r, ok := e.resolve(c.Block); ok {
			out = append(out, r)
		}
	}
	return out
}

func (e *RelationExtractor) resolve(block *cmdoc.Node) (Relation, bool) {
	label := cmdoc.Value(block, nrm.FieldCellRelationID)
	homeCellID, ok := ParseHomeCellRef(cmdoc.Value(block, nrm.FieldFreqRelationRef))
	if !ok || label == "" {
		return Relation{}, false
	}
	gnbID, _ := e.lookups.GNBID(homeCellID)
	nci, _ := e.lookups.GlobalCellID(homeCellID)
	return Relation{
		HomeGNBID:        gnbID,
		HomeCellID:       homeCellID,
		HomeGlobalCellID: nci,
		Label:            label,
	}, true
}
