//go:build !linux && !darwin && !windows

package cler

import "fmt"

// mmapDouble reports that this platform has no virtual-memory double-mapping
// primitive wired up. ChannelDBF falls back to a copy-on-wrap emulation
// (see channel_dbf.go) rather than failing outright, so this error is only
// ever observed internally.
func mmapDouble(byteSize int) (mem []byte, closeFn func() error, err error) {
	return nil, nil, fmt.Errorf("cler: doubly-mapped channels are not supported on this platform")
}
