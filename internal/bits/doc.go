// Package bits owns the bit-level view over hex-encoded transmissions.
//
// Ownership boundary:
// - hex to bit expansion
// - cursor-checked MSB-first reads
// - bit accumulation for encoders
package bits
