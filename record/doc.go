// Package record reads and writes record files: sequences of length-prefixed,
// checksummed protobuf Struct messages.
//
// Each record on disk is
//
//	uint64  length           (little endian)
//	uint32  masked crc32c of the length bytes
//	[]byte  payload          (proto-encoded google.protobuf.Struct)
//	uint32  masked crc32c of the payload
//
// The framing is the one used by TFRecord files, so the checksums can be
// verified by existing tooling. Fields of the Struct hold the named values,
// e.g. "source" and "target" for a parallel corpus.
package record
