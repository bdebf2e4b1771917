package extract

import (
	"github.com/radio-control/cmexport/internal/cmdoc"
	"github.com/radio-control/cmexport/internal/nrm"
)

// Carrier holds the frequency and position attributes of a sector carrier.
type Carrier struct {
	SectorID    string
	FrequencyDL string
	Latitude    string
	Longitude   string
	ArfcnUL     string
	ArfcnDL     string
}

// CarrierIndex maps sector carrier ids to carriers. It is read-only once built.
type CarrierIndex struct {
	byID map[string]Carrier
}

// Get returns the carrier with the given id.
func (x *CarrierIndex) Get(id string) (Carrier, bool) {
	if x == nil || id == "" {
		return Carrier{}, false
	}
	c, ok := x.byID[id]
	return c, ok
}

// Len returns the number of indexed carriers.
func (x *CarrierIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.byID)
}

// CarrierIndexBuilder accumulates carriers. A later carrier with the same id
// replaces the earlier one.
type CarrierIndexBuilder struct {
	byID map[string]Carrier
}

// NewCarrierIndexBuilder returns an empty builder.
func NewCarrierIndexBuilder() *CarrierIndexBuilder {
	return &CarrierIndexBuilder{byID: make(map[string]Carrier)}
}

// Add indexes a carrier container. Other kinds and carriers without an id are
// skipped, reported by a false return.
func (b *CarrierIndexBuilder) Add(c nrm.Container) bool {
	if c.Kind != nrm.KindCarrier || c.Block == nil {
		return false
	}
	id := cmdoc.Value(c.Block, nrm.FieldSectorCarrierID)
	if id == "" {
		return false
	}
	b.byID[id] = Carrier{
		SectorID:    id,
		FrequencyDL: cmdoc.Value(c.Block, nrm.FieldFrequencyDL),
		Latitude:    cmdoc.Value(c.Block, nrm.FieldLatitude),
		Longitude:   cmdoc.Value(c.Block, nrm.FieldLongitude),
		ArfcnUL:     cmdoc.Value(c.Block, nrm.FieldArfcnUL),
		ArfcnDL:     cmdoc.Value(c.Block, nrm.FieldArfcnDL),
	}
	return true
}

// Build returns the index. The builder starts over empty afterwards, so further
// Adds never reach an index already handed out.
func (b *CarrierIndexBuilder) Build() *CarrierIndex {
	x := &CarrierIndex{byID: b.byID}
	b.byID = make(map[string]Carrier)
	return x
}

// BuildCarrierIndex indexes every carrier container of the catalog in document order.
func BuildCarrierIndex(cat *nrm.Catalog) *CarrierIndex {
	b := NewCarrierIndexBuilder()
	for _, c := range cat.OfKind(nrm.KindCarrier) {
		b.Add(c)
	}
	return b.Build()
}
