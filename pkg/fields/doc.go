// Package fields is the declarative vocabulary of displayable fields. A
// declaration names a path into a record, a label and visibility rules; the
// variants are:
//
//   - Plain: label -> resolved value
//   - ID: like Plain, hidden unless Context.ShowIDs is set
//   - Label: label -> mapping rendered from a nested Definition
//   - Collection: label -> numbered mapping (1, 2, …) or list of mappings
//   - KeyValueList: a Collection whose elements are rendered by one KeyValue
//   - KeyValue: label-less leaf passing an element's name/value through
//
// Each field renders to zero or more tree entries. A path that does not
// resolve omits the field unless WithHideMissing(false) was given, in which
// case the tree.DataMissing marker is rendered. WithHideBlank(true) omits
// present-but-empty values. Fields never mutate the records they read.
package fields
