package record

import (
	"encoding/binary"
	"hash/crc32"
)

const (
	headerSize = 8 + 4
	footerSize = 4
	maskDelta  = 0xa282ead8

	// MaxRecordSize bounds a single payload; larger lengths are treated as corruption.
	MaxRecordSize = 256 << 20
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// maskedCRC returns the rotated, offset CRC32C of b.
func maskedCRC(b []byte) uint32 {
	crc := crc32.Checksum(b, castagnoli)
	return ((crc >> 15) | (crc << 17)) + maskDelta
}

func putHeader(dst []byte, n uint64) {
	binary.LittleEndian.PutUint64(dst[:8], n)
	binary.LittleEndian.PutUint32(dst[8:12], maskedCRC(dst[:8]))
}
