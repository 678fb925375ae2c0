// Package systeminfo collects the host snapshot embedded in report
// headers.
package systeminfo

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"veracity/logger"
)

type SystemInfo struct {
	Hostname        string `json:"hostname,omitempty"`
	OS              string `json:"os,omitempty"`
	Platform        string `json:"platform,omitempty"`
	PlatformVersion string `json:"platform_version,omitempty"`
	KernelVersion   string `json:"kernel_version,omitempty"`
	Architecture    string `json:"architecture,omitempty"`
	CPUCount        int    `json:"cpu_count,omitempty"`
	TotalMemory     uint64 `json:"total_memory,omitempty"`
	AvailableMemory uint64 `json:"available_memory,omitempty"`
}

// Collect gathers the snapshot best-effort: individual probe failures
// are logged and leave their fields zero.
func Collect(ctx context.Context) *SystemInfo {
	info := &SystemInfo{Architecture: runtime.GOARCH}

	if h, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = h.Hostname
		info.OS = h.OS
		info.Platform = h.Platform
		info.PlatformVersion = h.PlatformVersion
		info.KernelVersion = h.KernelVersion
	} else {
		logger.Debugf("Failed to collect host info: %v", err)
	}

	if count, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.CPUCount = count
	} else {
		info.CPUCount = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.TotalMemory = vm.Total
		info.AvailableMemory = vm.Available
	} else {
		logger.Debugf("Failed to collect memory info: %v", err)
	}

	return info
}
