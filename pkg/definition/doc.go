// Package definition loads output definitions from declaration files so that
// commands can describe their columns without Go code.
//
// A file maps definition names to ordered field lists:
//
//	definitions:
//	  host:
//	    - {type: id, path: id, label: Id}
//	    - {path: name, label: Name}
//	    - type: label
//	      path: address
//	      label: Address
//	      fields:
//	        - {path: city, label: City}
//	    - {type: key_value_list, path: params, label: Parameters}
//
// Paths are dotted strings or lists of keys. Type defaults to "field".
package definition
