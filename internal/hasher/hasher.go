package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/Super-Rogatory/simple-image-quantization/internal/pixbuf"
	"github.com/cespare/xxhash/v2"
)

// DefaultHexLen is the fingerprint length used in reports: 16 hex chars
// (the full 64 bits).
const DefaultHexLen = 16

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen characters (0 means full length).
func ContentHash(data []byte, hexLen int) string {
	return truncate(xxhash.Sum64(data), hexLen)
}

// Fingerprint hashes a pixel buffer together with its dimensions, so two
// rasters with the same bytes but different shapes never collide.
func Fingerprint(buf *pixbuf.Buffer, hexLen int) string {
	var dims [16]byte
	binary.BigEndian.PutUint64(dims[:8], uint64(buf.Width))
	binary.BigEndian.PutUint64(dims[8:], uint64(buf.Height))

	d := xxhash.New()
	d.Write(dims[:])
	d.Write(buf.Pix)
	return truncate(d.Sum64(), hexLen)
}

func truncate(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
