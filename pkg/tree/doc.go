// Package tree defines the generic ordered value tree produced by projecting
// fields over a record. Every adapter consumes this one structure: scalars,
// insertion-ordered maps, lists and the DataMissing marker. Map keys record
// their origin (field label, collection index, or raw data key) so display
// transforms such as capitalization can target labels only.
package tree
