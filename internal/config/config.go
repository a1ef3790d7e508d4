package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Variant      string
	Vertical     bool
	SheetPath    string
	OutputVideo  string
	Width        int
	Height       int
	FPS          int
	StartFrame   int
	EndFrame     int // exclusive, 0 = until the end of the composition
	Workers      int
	AudioPath    string
	AudioVolume  float64
	VideoEncoder string
	Quality      int
	ShowStats    bool
	MetricsFile  string
	BuildVersion string
}

// FrameRange resolves the configured range against a composition length.
func (c *Config) FrameRange(total int) (start, end int, err error) {
	start, end = c.StartFrame, c.EndFrame
	if end == 0 {
		end = total
	}
	if start < 0 || end > total || start >= end {
		return 0, 0, Invalid("frame range", "[%d,%d) is not inside [0,%d)", start, end, total)
	}
	return start, end, nil
}

// Validate checks the options that do not depend on the composition.
func (c *Config) Validate() error {
	var problems []string
	if c.Width < 0 || c.Height < 0 {
		problems = append(problems, fmt.Sprintf("size %dx%d", c.Width, c.Height))
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		problems = append(problems, fmt.Sprintf("size %dx%d must be even for yuv420p", c.Width, c.Height))
	}
	if c.FPS < 0 {
		problems = append(problems, fmt.Sprintf("fps %d", c.FPS))
	}
	if c.Workers < 0 {
		problems = append(problems, fmt.Sprintf("workers %d", c.Workers))
	}
	if c.AudioVolume < 0 {
		problems = append(problems, fmt.Sprintf("audio volume %.2f", c.AudioVolume))
	}
	if c.StartFrame < 0 || (c.EndFrame != 0 && c.EndFrame <= c.StartFrame) {
		problems = append(problems, fmt.Sprintf("frame range [%d,%d)", c.StartFrame, c.EndFrame))
	}
	if len(problems) > 0 {
		return Invalid("render options", "%s", strings.Join(problems, "; "))
	}
	return nil
}
