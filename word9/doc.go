// Package word9 packs 9-bit display words into an 8-bit SPI byte stream.
//
// Controllers wired for 3-wire SPI expect 9 bits per unit: a data/command
// flag followed by 8 payload bits. Hardware that only shifts whole bytes can
// still drive them by concatenating the 9-bit units MSB first, so that every
// group of 8 words becomes exactly 9 bytes.
//
// A word is stored in a uint16 with the flag in bit 8 and the payload in bits
// 0-7. Higher bits are ignored.
//
// Layout of one group, w0..w7 being the words and f/d their flag and payload:
//
//	bit 63          bit 54                 bit 9        bit 0
//	f0 d0[7..0]     f1 d1[7..0]  ...       f6 d6[7..0]  f7     (8 bytes, big endian)
//	d7[7..0]                                                   (9th byte)
//
// Example usage:
//
//	src := []uint16{word9.Word(false, 0x2A), word9.Word(true, 0x00), ...}
//	dst := make([]byte, word9.PackedLen(len(src)))
//	n := word9.Pack(dst, src)
//	conn.Tx(dst[:n], nil)
package word9
