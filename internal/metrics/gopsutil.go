package metrics

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/fxjung/pushover-watchdog/internal/domain"
)

// RAMSource samples system memory via gopsutil. "Used" is total minus
// available, which counts reclaimable caches as free.
type RAMSource struct{}

func NewRAMSource() *RAMSource { return &RAMSource{} }

func (r *RAMSource) Name() string { return "RAM" }

func (r *RAMSource) Sample(ctx context.Context) (domain.Sample, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("virtual memory: %w", err)
	}
	used := uint64(0)
	if vm.Available < vm.Total {
		used = vm.Total - vm.Available
	}
	return domain.NewSample(used, vm.Total), nil
}

// DiskSource samples the filesystem containing Path via gopsutil.
type DiskSource struct {
	Path string
}

func NewDiskSource(path string) *DiskSource { return &DiskSource{Path: path} }

func (d *DiskSource) Name() string { return fmt.Sprintf("Disk(%s)", d.Path) }

func (d *DiskSource) Sample(ctx context.Context) (domain.Sample, error) {
	du, err := disk.UsageWithContext(ctx, d.Path)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("disk usage %s: %w", d.Path, err)
	}
	return domain.NewSample(du.Used, du.Total), nil
}
