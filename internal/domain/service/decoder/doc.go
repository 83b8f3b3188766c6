// Package decoder turns raw FIX tag=value text into a DecodedMessage.
//
// The pipeline is a single synchronous pass:
//
//	Tokenize -> Resolve (per field) -> Classify (per resolved field) -> assemble
//
// Every step is a pure function of its inputs and the read-only dictionary, so a
// Decoder may be shared by any number of goroutines. Only a missing dictionary
// stops a decode; malformed chunks and unknown tags are dropped and decoding
// continues. Checksum verification is separate from decoding and reports a
// ChecksumResult instead of failing the decode.
package decoder
