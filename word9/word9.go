// Package word9 packs 9-bit display words into an 8-bit SPI byte stream.
//
// Every group of 8 words becomes 9 bytes.
package word9

import "encoding/binary"

const (
	// GroupWords is the number of words in one packed group.
	GroupWords = 8
	// GroupBytes is the size of one packed group.
	GroupBytes = 9

	// Flag is the data/command bit of a word.
	Flag = 0x0100
	// Mask keeps the meaningful bits of a word.
	Mask = 0x01FF
)

// Word returns the 9-bit word carrying b with the flag set to flag.
func Word(flag bool, b byte) uint16 {
	w := uint16(b)
	if flag {
		w |= Flag
	}
	return w
}

// PackedLen returns the number of bytes Pack writes for n words.
//
// A trailing partial group is padded with zero words.
func PackedLen(n int) int {
	return (n + GroupWords - 1) / GroupWords * GroupBytes
}

// Pack packs src into dst and returns the number of bytes written.
//
// It panics if dst is shorter than PackedLen(len(src)).
func Pack(dst []byte, src []uint16) int {
	n := PackedLen(len(src))
	if len(dst) < n {
		panic("word9: dst too short")
	}
	var g [GroupWords]uint16
	o := 0
	for i := 0; i < len(src); i += GroupWords {
		// Zero pads the last group.
		g = [GroupWords]uint16{}
		copy(g[:], src[i:])
		packGroup(dst[o:o+GroupBytes], &g)
		o += GroupBytes
	}
	return n
}

// packGroup writes one 9 byte group.
//
// The first seven words fill bits 63 to 1 of the accumulator. The flag of
// the last word lands in bit 0 and its payload becomes the 9th byte.
func packGroup(dst []byte, g *[GroupWords]uint16) {
	var acc uint64
	bit := 63
	for _, w := range g[:GroupWords-1] {
		acc |= uint64(w>>8&1) << bit
		bit -= 8
		acc |= uint64(w&0xFF) << bit
		bit--
	}
	acc |= uint64(g[GroupWords-1] >> 8 & 1)
	binary.BigEndian.PutUint64(dst, acc)
	dst[8] = byte(g[GroupWords-1])
}

// Unpack decodes the whole groups of src into dst and returns the number of
// words written.
//
// It panics if dst can't hold them.
func Unpack(dst []uint16, src []byte) int {
	groups := len(src) / GroupBytes
	if len(dst) < groups*GroupWords {
		panic("word9: dst too short")
	}
	o := 0
	for i := 0; i < groups; i++ {
		b := src[i*GroupBytes:]
		acc := binary.BigEndian.Uint64(b)
		bit := 63
		for j := 0; j < GroupWords-1; j++ {
			dst[o] = uint16(acc>>(bit-8)) & Mask
			bit -= 9
			o++
		}
		dst[o] = uint16(acc&1)<<8 | uint16(b[8])
		o++
	}
	return o
}
