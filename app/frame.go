package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dash/gpu"
	"dash/hal"
)

// Surface is where a frame is presented.
type Surface interface {
	Size() (w, h int)
	MakeCurrent() error
	Swap() error
}

// FrameStats summarises frame times. It is informational only; frames are
// not paced.
type FrameStats struct {
	Frames uint64
	Last   time.Duration
	Min    time.Duration
	Max    time.Duration
}

func (s *FrameStats) add(d time.Duration) {
	s.Frames++
	s.Last = d
	if s.Frames == 1 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
}

// Frame renders a context to a surface, one frame per Step.
type Frame struct {
	dev     gpu.Device
	surface Surface
	rc      *gpu.RenderContext
	stats   FrameStats
	now     func() time.Time
}

// NewFrame makes the surface current and sets the viewport to its size.
// The size is read once; the surface is not expected to resize.
func NewFrame(dev gpu.Device, s Surface, rc *gpu.RenderContext) (*Frame, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if err := s.MakeCurrent(); err != nil {
		return nil, fmt.Errorf("make current: %w", err)
	}
	w, h := s.Size()
	dev.Viewport(0, 0, w, h)
	return &Frame{dev: dev, surface: s, rc: rc, now: time.Now}, nil
}

// Step clears to the context's clear color, dispatches every stage and
// presents the result.
func (f *Frame) Step() error {
	start := f.now()

	c := f.rc.ClearColor
	f.dev.ClearColor(c[0], c[1], c[2], c[3])
	f.dev.Clear()
	if err := f.render(); err != nil {
		return fmt.Errorf("frame %d: %w", f.stats.Frames, err)
	}
	if err := f.surface.Swap(); err != nil {
		return fmt.Errorf("frame %d: swap: %w", f.stats.Frames, err)
	}

	f.stats.add(f.now().Sub(start))
	return nil
}

// render dispatches the context. With more than one stage each stage's
// program is activated before its command list runs; a single stage keeps
// the program activated when it was loaded.
func (f *Frame) render() error {
	if len(f.rc.Stages) < 2 {
		return f.rc.Render(f.dev)
	}
	if err := f.rc.Validate(); err != nil {
		return err
	}
	for i, stage := range f.rc.Stages {
		stage.Activate()
		if err := gpu.Render(f.dev, f.rc.Stages[i:i+1], f.rc.Commands[i:i+1]); err != nil {
			return fmt.Errorf("stage %d: %w", i, err)
		}
	}
	return nil
}

func (f *Frame) Stats() FrameStats { return f.stats }

// Run calls step until it fails or ctx is done. A step returning
// hal.ErrStop ends the loop without error.
func Run(ctx context.Context, step func() error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := step(); err != nil {
			if errors.Is(err, hal.ErrStop) {
				return nil
			}
			return err
		}
	}
}
