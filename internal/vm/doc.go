// Package vm implements the CHIP-8 virtual machine core.
//
// A Machine owns the complete interpreter state: 4KB of memory with the
// built-in font at 0x000, the registers V0-VF, I and PC, a 16 level call
// stack, the delay and sound timers, the keypad and the 64x32 framebuffer.
//
// The host drives the machine through a small set of operations:
//
//	m := vm.New(vm.WithSeed(1))
//	if err := m.Load(rom); err != nil {
//		return err
//	}
//	for frame := 0; ; frame++ {
//		for range cyclesPerFrame {
//			if err := m.Step(); err != nil {
//				return err
//			}
//		}
//		m.TickTimers()
//		render(m.Framebuffer())
//	}
//
// Step executes exactly one instruction. Timers are never decremented by
// instructions, the host calls TickTimers at 60 Hz. The key wait
// instruction does not block: while no key is pressed it rewinds PC so the
// same instruction is fetched again by the next Step.
//
// A Step that fails leaves the machine state unchanged, including PC, so the
// host can decide to halt, or to continue with SkipInstruction.
package vm
