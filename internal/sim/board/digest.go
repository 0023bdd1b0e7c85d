package board

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
)

type hashWriter interface {
	Write(p []byte) (n int, err error)
}

// Digest hashes the z counter, the deck queues and every token in id order.
// Two engines built from the same config and seed that saw the same gestures
// have equal digests.
func (e *Engine) Digest() string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteI64(h, &tmp, int64(e.zCounter))

	digestWriteU64(h, &tmp, uint64(len(e.queues)))
	for _, q := range e.queues {
		digestWriteU64(h, &tmp, uint64(len(q)))
		for _, f := range q {
			digestWriteString(h, &tmp, f.ID)
		}
	}

	ids := make([]string, 0, len(e.tokens))
	for id := range e.tokens {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	digestWriteU64(h, &tmp, uint64(len(ids)))
	for _, id := range ids {
		digestToken(h, &tmp, e.tokens[id])
	}

	return hex.EncodeToString(h.Sum(nil))
}

func digestToken(h hashWriter, tmp *[8]byte, t Token) {
	b := t.Common()
	digestWriteString(h, tmp, string(t.Kind()))
	digestWriteString(h, tmp, b.ID)
	digestWriteF64(h, tmp, b.Position.X)
	digestWriteF64(h, tmp, b.Position.Y)
	digestWriteI64(h, tmp, int64(b.ZIndex))

	switch v := t.(type) {
	case PlayerToken:
		digestWriteString(h, tmp, v.Asset)
		digestWriteString(h, tmp, v.Label)
		digestWriteF64(h, tmp, v.Size)
	case OxygenToken:
		digestWriteString(h, tmp, v.Asset)
		digestWriteF64(h, tmp, v.Size)
		h.Write([]byte{boolByte(v.IsSupply)})
	case TileToken:
		digestWriteString(h, tmp, v.Front)
		digestWriteString(h, tmp, v.Back)
		digestWriteF64(h, tmp, v.Width)
		digestWriteF64(h, tmp, v.Height)
		h.Write([]byte{boolByte(v.IsFaceUp), boolByte(v.IsOnDeck)})
		digestWriteI64(h, tmp, int64(v.DeckIndex))
	}
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteI64(h hashWriter, tmp *[8]byte, v int64) {
	digestWriteU64(h, tmp, uint64(v))
}

func digestWriteF64(h hashWriter, tmp *[8]byte, v float64) {
	digestWriteU64(h, tmp, math.Float64bits(v))
}

func digestWriteString(h hashWriter, tmp *[8]byte, s string) {
	digestWriteU64(h, tmp, uint64(len(s)))
	h.Write([]byte(s))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
