package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Resources is a snapshot of the host capacity relevant to rendering.
type Resources struct {
	LogicalCPUs     int
	AvailableMemory uint64
}

// Probe reads the current host resources. Values gopsutil cannot read fall
// back to the Go runtime view (CPUs) or zero (memory, meaning unknown).
func Probe() Resources {
	r := Resources{LogicalCPUs: runtime.NumCPU()}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		r.LogicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		r.AvailableMemory = vm.Available
	}
	return r
}

// framesPerWorker is how many frame buffers a worker may hold at once:
// the one it draws into plus the one waiting in the reorder window.
const framesPerWorker = 2

// memoryShare of the available memory may go to frame buffers.
const memoryShare = 4

// RecommendedWorkers оценивает число воркеров рендера: по ядру на воркер,
// но не больше, чем помещается в четверть свободной памяти.
func (r Resources) RecommendedWorkers(frameBytes int) int {
	workers := r.LogicalCPUs
	if workers < 1 {
		workers = 1
	}
	if r.AvailableMemory > 0 && frameBytes > 0 {
		budget := r.AvailableMemory / memoryShare
		byMemory := int(budget / uint64(frameBytes*framesPerWorker))
		if byMemory < workers {
			workers = byMemory
		}
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// RecommendedWorkers probes the host and sizes the pool for frames of
// width x height RGBA pixels.
func RecommendedWorkers(width, height int) int {
	return Probe().RecommendedWorkers(width * height * 4)
}
