//go:build linux

package cler

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapDouble reserves a 2*byteSize virtual address range and maps the same
// byteSize-length shared memory object (an anonymous memfd) into both
// halves, so that mem[i] and mem[i+byteSize] alias the same physical page.
// byteSize must be a multiple of the system page size.
func mmapDouble(byteSize int) (mem []byte, closeFn func() error, err error) {
	if byteSize <= 0 {
		return nil, nil, fmt.Errorf("cler: doubly-mapped size must be positive, got %d", byteSize)
	}
	pageSize := unix.Getpagesize()
	if byteSize%pageSize != 0 {
		return nil, nil, fmt.Errorf("cler: doubly-mapped byte size %d is not a multiple of the page size %d", byteSize, pageSize)
	}

	fd, err := unix.MemfdCreate("cler-dbf", unix.MFD_CLOEXEC)
	if err != nil {
		return nil, nil, fmt.Errorf("cler: memfd_create: %w", err)
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, int64(byteSize)); err != nil {
		return nil, nil, fmt.Errorf("cler: ftruncate: %w", err)
	}

	// Reserve a contiguous 2*byteSize region so both halves land next to
	// each other; the kernel picks the address, we just keep it.
	reservation, err := unix.Mmap(-1, 0, 2*byteSize, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, nil, fmt.Errorf("cler: reserve mmap: %w", err)
	}
	base := uintptr(unsafe.Pointer(&reservation[0]))

	if err := mmapFixed(fd, base, byteSize); err != nil {
		_ = unix.Munmap(reservation)
		return nil, nil, fmt.Errorf("cler: first mapping: %w", err)
	}
	if err := mmapFixed(fd, base+uintptr(byteSize), byteSize); err != nil {
		_ = unix.Munmap(reservation)
		return nil, nil, fmt.Errorf("cler: mirror mapping: %w", err)
	}

	full := unsafe.Slice((*byte)(unsafe.Pointer(base)), 2*byteSize)
	closeFn = func() error {
		return unix.Munmap(full)
	}
	return full, closeFn, nil
}

// mmapFixed re-maps fd over [addr, addr+length) using MAP_FIXED, overlaying
// the PROT_NONE reservation made for it with a real, shared mapping of the
// same backing pages used elsewhere in the reservation.
func mmapFixed(fd int, addr uintptr, length int) error {
	_, _, errno := unix.Syscall6(
		unix.SYS_MMAP,
		addr,
		uintptr(length),
		uintptr(unix.PROT_READ|unix.PROT_WRITE),
		uintptr(unix.MAP_SHARED|unix.MAP_FIXED),
		uintptr(fd),
		0,
	)
	if errno != 0 {
		return errno
	}
	return nil
}
