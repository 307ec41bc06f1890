//go:build cler_freertos || cler_threadx || cler_zephyr

// This file documents the RTOS task-policy knobs the CLER C++ kernel
// exposes per target (FreeRTOS, ThreadX, Zephyr). None of them are
// reachable from a hosted Go binary -- there is no Go toolchain targeting
// these RTOS kernels' native task APIs -- so these types exist only to
// record the configuration surface a port would need to fill in, gated
// behind build tags that are never set by this module's own build.

package cler

// FreeRTOSTaskPolicy documents the FreeRTOS task-policy knobs: stack size
// (words) and priority, both configured at task-policy construction since
// FreeRTOS fixes them at xTaskCreate time.
type FreeRTOSTaskPolicy struct {
	StackSizeWords uint32
	Priority       uint32
}

func (p *FreeRTOSTaskPolicy) Spawn(fn func()) TaskHandle { panic("cler: FreeRTOS task policy has no Go implementation") }
func (p *FreeRTOSTaskPolicy) Join(h TaskHandle)          { panic("cler: FreeRTOS task policy has no Go implementation") }
func (p *FreeRTOSTaskPolicy) Yield()                     { panic("cler: FreeRTOS task policy has no Go implementation") }
func (p *FreeRTOSTaskPolicy) SleepUS(us int64)           { panic("cler: FreeRTOS task policy has no Go implementation") }

// ThreadXTaskPolicy documents the ThreadX task-policy knobs: stack size,
// priority, preemption threshold, and time slice, matching
// tx_thread_create's parameter list.
type ThreadXTaskPolicy struct {
	StackSizeBytes      uint32
	Priority             uint32
	PreemptionThreshold  uint32
	TimeSliceTicks       uint32
}

func (p *ThreadXTaskPolicy) Spawn(fn func()) TaskHandle { panic("cler: ThreadX task policy has no Go implementation") }
func (p *ThreadXTaskPolicy) Join(h TaskHandle)          { panic("cler: ThreadX task policy has no Go implementation") }
func (p *ThreadXTaskPolicy) Yield()                     { panic("cler: ThreadX task policy has no Go implementation") }
func (p *ThreadXTaskPolicy) SleepUS(us int64)           { panic("cler: ThreadX task policy has no Go implementation") }

// ZephyrTaskPolicy documents the Zephyr task-policy knobs: stack size and
// priority, matching k_thread_create's parameter list.
type ZephyrTaskPolicy struct {
	StackSizeBytes uint32
	Priority       int32
}

func (p *ZephyrTaskPolicy) Spawn(fn func()) TaskHandle { panic("cler: Zephyr task policy has no Go implementation") }
func (p *ZephyrTaskPolicy) Join(h TaskHandle)          { panic("cler: Zephyr task policy has no Go implementation") }
func (p *ZephyrTaskPolicy) Yield()                     { panic("cler: Zephyr task policy has no Go implementation") }
func (p *ZephyrTaskPolicy) SleepUS(us int64)           { panic("cler: Zephyr task policy has no Go implementation") }
