package crc32

import "golang.org/x/sys/cpu"

// supportsSSE42 mirrors quicker_sfv::crc::supportsSse42(): true on
// essentially every x86-64 CPU in service today.
func supportsSSE42() bool {
	return cpu.X86.HasSSE42
}

// supportsAVX512 mirrors quicker_sfv::crc::supportsAvx512(): AVX512F
// and VPCLMULQDQ (plus the baseline PCLMULQDQ) must all be present.
func supportsAVX512() bool {
	return cpu.X86.HasAVX512F && cpu.X86.HasAVX512VPCLMULQDQ && cpu.X86.HasPCLMULQDQ
}
