package system

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Budget is how many frames the host renders at once.
type Budget struct {
	Workers  int
	CPUs     int
	FreeMem  uint64
	FrameMem uint64
}

// WorkerBudget sizes the render worker count: one per logical CPU, capped so
// that in-flight frames (a render buffer plus a queued one per worker) fit in
// half of the available memory. requested > 0 wins over the computed value.
func WorkerBudget(requested, width, height int) Budget {
	b := Budget{Workers: requested, CPUs: 1, FrameMem: uint64(width) * uint64(height) * 4}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		b.CPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		b.FreeMem = vm.Available
	}
	if requested > 0 {
		return b
	}
	b.Workers = budgetFor(b.CPUs, b.FreeMem, b.FrameMem)
	return b
}

func budgetFor(cpus int, free, frame uint64) int {
	workers := max(cpus, 1)
	if free > 0 && frame > 0 {
		byMem := int(free / 2 / (frame * 2))
		workers = min(workers, max(byMem, 1))
	}
	return workers
}
