// Package extract turns a classified CM tree into cell and neighbor-relation records.
//
// Stages run in a fixed order, each handing its product to the next one explicitly:
//
//	CarrierIndexBuilder.Build -> CellExtractor.Extract -> RelationExtractor.Extract
//
// Missing fields never fail a stage. They show up as empty strings in the records, and
// joins that cannot be resolved leave the joined fields empty.
package extract
