package extract

import (
	"github.com/radio-control/cmexport/internal/cmdoc"
	"github.com/radio-control/cmexport/internal/nrm"
)

// Cell is one row of the cell inventory.
type Cell struct {
	GlobalCellID        string
	LocalCellID         string
	TAC                 string
	GNBID               string
	Latitude            string
	Longitude           string
	ArfcnUL             string
	ArfcnDL             string
	FrequencyBand       string
	CellRange           string
	OperationalState    string
	AdministrativeState string

	// CellID is the nRCellDUId of the cell. Carriers and relations refer to
	// cells by this id.
	CellID string
	// ContextID is the id attribute of the enclosing MeContext.
	ContextID string
}

// CellLookups maps cell ids to the gNB id and global cell id of the cell.
type CellLookups struct {
	gnbID        map[string]string
	globalCellID map[string]string
}

func newCellLookups() *CellLookups {
	return &CellLookups{
		gnbID:        make(map[string]string),
		globalCellID: make(map[string]string),
	}
}

// GNBID returns the gNB id recorded for a cell.
func (l *CellLookups) GNBID(cellID string) (string, bool) {
	if l == nil {
		return "", false
	}
	v, ok := l.gnbID[cellID]
	return v, ok
}

// GlobalCellID returns the nCI recorded for a cell.
func (l *CellLookups) GlobalCellID(cellID string) (string, bool) {
	if l == nil {
		return "", false
	}
	v, ok := l.globalCellID[cellID]
	return v, ok
}

// Len returns the number of cell ids recorded.
func (l *CellLookups) Len() int {
	if l == nil {
		return 0
	}
	return len(l.gnbID)
}

func (l *CellLookups) record(c Cell) {
	if c.CellID == "" {
		return
	}
	l.gnbID[c.CellID] = c.GNBID
	l.globalCellID[c.CellID] = c.GlobalCellID
}

// CellResult is the output of a cell extraction pass.
type CellResult struct {
	Cells   []Cell
	Lookups *CellLookups
	// Contexts is the number of MeContext elements walked.
	Contexts int
	// CellNodes is the number of distinct cell blocks the scan accepted.
	CellNodes int
}

// CellExtractor walks MeContext elements and emits one Cell per cell block.
type CellExtractor struct {
	catalog  *nrm.Catalog
	carriers *CarrierIndex
}

// NewCellExtractor returns an extractor joining cells against carriers.
func NewCellExtractor(cat *nrm.Catalog, carriers *CarrierIndex) *CellExtractor {
	return &CellExtractor{catalog: cat, carriers: carriers}
}

// Extract walks every MeContext below root in document order.
//
// Within a context, the gNB id is taken from the last DU-function container under
// the managed element, and applies to every cell of the context. Cells are the
// cell containers nested inside another container under the managed element.
func (e *CellExtractor) Extract(root *cmdoc.Node) CellResult {
	res := CellResult{Lookups: newCellLookups()}
	for _, ctx := range root.Descendants(nrm.TagMeContext) {
		res.Contexts++
		res.Cells = e.extractContext(ctx, res.Lookups, res.Cells)
	}
	res.CellNodes = len(res.Cells)
	return res
}

func (e *CellExtractor) extractContext(ctx *cmdoc.Node, lookups *CellLookups, out []Cell) []Cell {
	me := ctx.Child(nrm.TagManagedElement)
	if me == nil {
		return out
	}

	var gnbID string
	var blocks []*cmdoc.Node
	seen := make(map[*cmdoc.Node]bool)
	me.Walk(func(n *cmdoc.Node) bool {
		if n.Name != nrm.TagVsDataContainer {
			return true
		}
		c := e.classify(n)
		switch c.Kind {
		case nrm.KindDUFunction:
			gnbID = cmdoc.Value(c.Block, nrm.FieldGNBID)
		case nrm.KindCell:
			// An untyped wrapper classifies through the cell below it and
			// shares its block.
			if c.Block != nil && !seen[c.Block] && n.HasAncestorWithin(nrm.TagVsDataContainer, me) {
				seen[c.Block] = true
				blocks = append(blocks, c.Block)
			}
		}
		return true
	})

	contextID := ctx.ID()
	for _, block := range blocks {
		cell := e.newCell(block, gnbID, contextID)
		lookups.record(cell)
		out = append(out, cell)
	}
	return out
}

func (e *CellExtractor) classify(n *cmdoc.Node) nrm.Container {
	if c, ok := e.catalog.Lookup(n); ok {
		return c
	}
	return nrm.Classify(n)
}

func (e *CellExtractor) newCell(block *cmdoc.Node, gnbID, contextID string) Cell {
	cellID := cmdoc.Value(block, nrm.FieldNRCellDUID)
	carrier, _ := e.carriers.Get(cellID)
	return Cell{
		GlobalCellID:        cmdoc.Value(block, nrm.FieldNCI),
		LocalCellID:         cmdoc.Value(block, nrm.FieldCellLocalID),
		TAC:                 cmdoc.Value(block, nrm.FieldNRTAC),
		GNBID:               gnbID,
		Latitude:            carrier.Latitude,
		Longitude:           carrier.Longitude,
		ArfcnUL:             carrier.ArfcnUL,
		ArfcnDL:             carrier.ArfcnDL,
		FrequencyBand:       carrier.FrequencyDL,
		CellRange:           cmdoc.Value(block, nrm.FieldCellRange),
		OperationalState:    cmdoc.Value(block, nrm.FieldOperationalState),
		AdministrativeState: cmdoc.Value(block, nrm.FieldAdministrativeState),
		CellID:              cellID,
		ContextID:           contextID,
	}
}
