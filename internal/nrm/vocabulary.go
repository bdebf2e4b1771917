package nrm

import "github.com/radio-control/cmexport/internal/cmdoc"

// Generic NRM element names.
var (
	TagMeContext       = cmdoc.Generic("MeContext")
	TagManagedElement  = cmdoc.Generic("ManagedElement")
	TagVsDataContainer = cmdoc.Generic("VsDataContainer")
	TagAttributes      = cmdoc.Generic("attributes")
	TagVsDataType      = cmdoc.Generic("vsDataType")
)

// Type tag values and vendor attribute block names.
const (
	TypeGNBDUFunction   = "vsDataGNBDUFunction"
	TypeNRCellDU        = "vsDataNRCellDU"
	TypeNRSectorCarrier = "vsDataNRSectorCarrier"
	TypeNRCellRelation  = "vsDataNRCellRelation"
	TypeNRCellCU        = "vsDataNRCellCU"
)

// Vendor field names.
const (
	FieldGNBID               = "gNBId"
	FieldNCI                 = "nCI"
	FieldNRCellDUID          = "nRCellDUId"
	FieldCellLocalID         = "cellLocalId"
	FieldNRTAC               = "nRTAC"
	FieldCellRange           = "cellRange"
	FieldOperationalState    = "operationalState"
	FieldAdministrativeState = "administrativeState"
	FieldSectorCarrierID     = "nRSectorCarrierId"
	FieldFrequencyDL         = "frequencyDL"
	FieldLatitude            = "latitude"
	FieldLongitude           = "longitude"
	FieldArfcnUL             = "arfcnUL"
	FieldArfcnDL             = "arfcnDL"
	FieldCellRelationID      = "nRCellRelationId"
	FieldFreqRelationRef     = "nRFreqRelationRef"
)
