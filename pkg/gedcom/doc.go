// Package gedcom imports GEDCOM 5.5 files into people snapshots.
//
// The parser is line-oriented and tolerant: it reads INDI records (NAME,
// SEX, BIRT/DEAT dates) and FAM records (HUSB, WIFE, CHIL) and skips every
// tag it does not recognize, so exports from different genealogy programs
// import without errors. Family records expand into explicit spouse, parent,
// child, and sibling relations on both sides, producing a self-contained
// snapshot. References to individuals missing from the file are dropped.
package gedcom
