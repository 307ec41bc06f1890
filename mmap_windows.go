//go:build windows

package cler

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mmapDouble maps the same byteSize-length file mapping object into two
// consecutive views of virtual memory, so that mem[i] and mem[i+byteSize]
// alias the same physical page. Windows has no MAP_FIXED; instead this
// reserves a placeholder region with VirtualAlloc(MEM_RESERVE), frees it
// immediately (VirtualFree with MEM_RELEASE releases the address range but
// not the guarantee another thread won't claim it -- acceptable here since
// the two MapViewOfFileEx calls that follow happen back to back with no
// other allocations in between), then maps the two views at the freed
// address and address+byteSize.
func mmapDouble(byteSize int) (mem []byte, closeFn func() error, err error) {
	if byteSize <= 0 {
		return nil, nil, fmt.Errorf("cler: doubly-mapped size must be positive, got %d", byteSize)
	}

	var sysInfo windows.SystemInfo
	windows.GetSystemInfo(&sysInfo)
	allocGranularity := int(sysInfo.PageSize)
	if allocGranularity > 0 && byteSize%allocGranularity != 0 {
		return nil, nil, fmt.Errorf("cler: doubly-mapped byte size %d is not a multiple of the page size %d", byteSize, allocGranularity)
	}

	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, uint32(byteSize), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("cler: CreateFileMapping: %w", err)
	}

	reserved, err := windows.VirtualAlloc(0, uintptr(2*byteSize), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, nil, fmt.Errorf("cler: VirtualAlloc reserve: %w", err)
	}
	if err := windows.VirtualFree(reserved, 0, windows.MEM_RELEASE); err != nil {
		_ = windows.CloseHandle(h)
		return nil, nil, fmt.Errorf("cler: VirtualFree: %w", err)
	}

	first, err := windows.MapViewOfFileEx(h, windows.FILE_MAP_ALL_ACCESS, 0, 0, uintptr(byteSize), reserved)
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, nil, fmt.Errorf("cler: MapViewOfFileEx first: %w", err)
	}
	second, err := windows.MapViewOfFileEx(h, windows.FILE_MAP_ALL_ACCESS, 0, 0, uintptr(byteSize), reserved+uintptr(byteSize))
	if err != nil {
		_ = windows.UnmapViewOfFile(first)
		_ = windows.CloseHandle(h)
		return nil, nil, fmt.Errorf("cler: MapViewOfFileEx mirror: %w", err)
	}

	full := unsafe.Slice((*byte)(unsafe.Pointer(first)), 2*byteSize)
	closeFn = func() error {
		err1 := windows.UnmapViewOfFile(first)
		err2 := windows.UnmapViewOfFile(second)
		err3 := windows.CloseHandle(h)
		if err1 != nil {
			return err1
		}
		if err2 != nil {
			return err2
		}
		return err3
	}
	return full, closeFn, nil
}
