package layout

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest fingerprints a placement list from the raw float bits, so two runs
// agree only when they are bit-for-bit identical.
func Digest(ps []Placement) uint64 {
	h := xxhash.New()
	var tmp [8]byte
	put := func(f float64) {
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(f))
		h.Write(tmp[:])
	}
	binary.LittleEndian.PutUint64(tmp[:], uint64(len(ps)))
	h.Write(tmp[:])
	for _, p := range ps {
		put(p.Position[0])
		put(p.Position[1])
		put(p.Position[2])
		put(p.Yaw)
	}
	return h.Sum64()
}
