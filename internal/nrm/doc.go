// Package nrm classifies the generic containers of a bulk CM export.
//
// Every xn:VsDataContainer carries its real type in an inner xn:vsDataType tag and a
// vendor attribute block named after that type. Classify resolves both once, so the
// extraction stages switch on Kind instead of re-reading tags.
package nrm
