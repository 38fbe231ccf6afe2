// Package gameid generates the identifiers handed out by the engine: round
// ids, player ids and card ids.
//
// Ids are UUIDv7 values rendered as 26-character Crockford base32 strings,
// so they sort by creation time and stay short enough for log lines.
package gameid

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource is the subset of *rand.Rand used for deterministic ids.
type RandSource interface {
	Uint64() uint64
}

// Generator hands out ids. The zero value is not usable; use NewGenerator.
type Generator struct {
	reader io.Reader
}

// NewGenerator creates a generator. With a nil source ids draw on crypto/rand;
// with a seeded source the random portion of every id is reproducible.
func NewGenerator(src RandSource) *Generator {
	if src == nil {
		return &Generator{}
	}
	return &Generator{reader: &randReader{src: src}}
}

// Generate creates a new id from crypto randomness.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new id using the generator's source.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.reader == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewV7FromReader(g.reader)
	}
	if err != nil {
		panic("failed to generate id: " + err.Error())
	}
	return encodeBase32(id)
}

// randReader adapts a RandSource to io.Reader for uuid.NewV7FromReader.
type randReader struct {
	src RandSource
	buf [8]byte
	n   int
}

func (r *randReader) Read(p []byte) (int, error) {
	for i := range p {
		if r.n == 0 {
			v := r.src.Uint64()
			for j := range r.buf {
				r.buf[j] = byte(v >> (8 * j))
			}
			r.n = len(r.buf)
		}
		p[i] = r.buf[len(r.buf)-r.n]
		r.n--
	}
	return len(p), nil
}

// encodeBase32 encodes a 128-bit UUID as a 26-character base32 string
func encodeBase32(data uuid.UUID) string {
	result := make([]byte, 26)

	// 26 groups of 5 bits cover 130 bits; the final two are zero padding.
	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8

		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}

		result[i] = alphabet[value]
	}

	return string(result)
}

// Validate checks if an id is well formed (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("id must be exactly 26 characters, got %d", len(id))
	}

	for i, char := range id {
		valid := false
		for _, validChar := range alphabet {
			if char == validChar {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
