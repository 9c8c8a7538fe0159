// Package packet decodes, evaluates and encodes the nested transmission
// packet format carried over a bits.Stream.
//
// Ownership boundary:
// - packet tree types
// - recursive-descent decoder and its limits
// - version-sum and expression traversals
// - encoder used for synthetic transmissions
package packet
