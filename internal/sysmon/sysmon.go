// Package sysmon samples system-wide CPU and memory usage and describes the
// host the benchmark runs on.
package sysmon

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = clampPercent(vmem.UsedPercent)
	}
	return s
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// HostInfo describes the machine for the report header.
type HostInfo struct {
	Model         string
	LogicalCores  int
	PhysicalCores int
	TotalMemory   uint64
	Features      []string
}

// DescribeHost gathers static host information. Fields gopsutil cannot
// read are left at their zero value, except LogicalCores which falls back
// to runtime.NumCPU.
func DescribeHost() HostInfo {
	info := HostInfo{LogicalCores: runtime.NumCPU(), Features: SIMDFeatures()}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.Model = strings.TrimSpace(infos[0].ModelName)
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.LogicalCores = n
	}
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		info.PhysicalCores = n
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		info.TotalMemory = vmem.Total
	}
	return info
}

// SIMDFeatures lists the vector extensions the CPU advertises.
func SIMDFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(xcpu.X86.HasSSE2, "sse2")
		add(xcpu.X86.HasSSE41, "sse4.1")
		add(xcpu.X86.HasAVX, "avx")
		add(xcpu.X86.HasAVX2, "avx2")
		add(xcpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(xcpu.ARM64.HasASIMD, "asimd")
		add(xcpu.ARM64.HasSVE, "sve")
	}
	return features
}
