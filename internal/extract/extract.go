package extract

import (
	"github.com/radio-control/cmexport/internal/cmdoc"
	"github.com/radio-control/cmexport/internal/nrm"
)

// Stats counts what an extraction run saw and produced.
type Stats struct {
	Containers       int `json:"containers"`
	Carriers         int `json:"carriers"`
	Contexts         int `json:"contexts"`
	CellNodes        int `json:"cellNodes"`
	Cells            int `json:"cells"`
	RelationNodes    int `json:"relationNodes"`
	Relations        int `json:"relations"`
	DroppedRelations int `json:"droppedRelations"`

	// Kinds counts classified containers by kind name.
	Kinds map[string]int `json:"kinds"`
}

// Result holds both record collections and the intermediate indexes.
type Result struct {
	Cells     []Cell
	Relations []Relation
	Carriers  *CarrierIndex
	Lookups   *CellLookups
	Stats     Stats
}

// Extract runs all stages over a loaded document.
func Extract(doc *cmdoc.Document) *Result {
	cat := nrm.NewCatalog(doc.Root)

	carriers := BuildCarrierIndex(cat)
	cells := NewCellExtractor(cat, carriers).Extract(doc.Root)
	relations := NewRelationExtractor(cat, cells.Lookups).Extract()

	return &Result{
		Cells:     cells.Cells,
		Relations: relations,
		Carriers:  carriers,
		Lookups:   cells.Lookups,
		Stats: Stats{
			Containers:       cat.Len(),
			Carriers:         carriers.Len(),
			Contexts:         cells.Contexts,
			CellNodes:        cells.CellNodes,
			Cells:            len(cells.Cells),
			RelationNodes:    cat.Count(nrm.KindRelation),
			Relations:        len(relations),
			DroppedRelations: cat.Count(nrm.KindRelation) - len(relations),
			Kinds:            kindCounts(cat),
		},
	}
}

func kindCounts(cat *nrm.Catalog) map[string]int {
	out := make(map[string]int)
	for _, c := range cat.All() {
		out[c.Kind.String()]++
	}
	return out
}

// CellsPerContext counts cell rows by MeContext id.
func (r *Result) CellsPerContext() map[string]int {
	out := make(map[string]int)
	for _, c := range r.Cells {
		out[c.ContextID]++
	}
	return out
}
