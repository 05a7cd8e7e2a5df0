package cpu

// InstructionLength decodes the length in bytes of an instruction from its
// first 16-bit parcel. Compressed instructions never have both low bits set.
func InstructionLength(parcel uint16) int {
	if parcel&0b11 == 0b11 {
		return 4
	}

	return 2
}
