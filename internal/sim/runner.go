package sim

import (
	"context"
	"fmt"

	"github.com/LucasVChaves/cloth-sim/internal/config"
	"github.com/LucasVChaves/cloth-sim/internal/metrics"
)

// Result holds the metric series recorded by a headless run.
type Result struct {
	Frames int
	Times  []float64
	Series map[string][]float64
	Final  map[string]float64
}

// Run simulates frames steps of dt seconds each with no pointer input,
// observing the given metrics after every frame. Used by the CLI run,
// bench, and export commands.
func Run(ctx context.Context, cfg *config.Config, frames int, dt float64, ms []metrics.Metric) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", frames)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", dt)
	}

	s := New(cfg)
	result := &Result{
		Frames: frames,
		Times:  make([]float64, 0, frames),
		Series: make(map[string][]float64, len(ms)),
		Final:  make(map[string]float64, len(ms)),
	}

	for _, m := range ms {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, frames)
	}

	t := 0.0
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Update(cfg, PointerState{}, dt)
		t += dt

		result.Times = append(result.Times, t)
		for _, m := range ms {
			m.Observe(s.Cloth(), dt)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
	}

	for _, m := range ms {
		result.Final[m.Name()] = m.Value()
	}

	return result, nil
}
