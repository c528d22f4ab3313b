package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a generation pass.
type Phase int

const (
	PhaseTile Phase = iota
	PhaseLayers
	PhaseStats
	PhaseOutput
	numPhases
)

var phaseNames = [numPhases]string{"tile", "layers", "stats", "output"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

const noPhase Phase = -1

// passSample is the timing and sample count of one pass, split by phase.
type passSample struct {
	total   time.Duration
	elapsed [numPhases]time.Duration
	samples [numPhases]int
}

// PerfCollector measures generation passes over a rolling window. Each phase
// reports how many field samples it produced, so throughput is available per
// phase as well as per pass.
type PerfCollector struct {
	window []passSample
	next   int
	filled int
	passes int

	cur        passSample
	passStart  time.Time
	phaseStart time.Time
	active     Phase

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize passes.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 16
	}
	return &PerfCollector{
		window: make([]passSample, windowSize),
		active: noPhase,
		now:    time.Now,
	}
}

// StartPass begins timing a new pass.
func (p *PerfCollector) StartPass() {
	p.passStart = p.now()
	p.cur = passSample{}
	p.active = noPhase
}

// StartPhase ends the running phase, if any, and starts timing phase.
// samples is the number of field samples the phase will produce.
func (p *PerfCollector) StartPhase(phase Phase, samples int) {
	now := p.closePhase()
	p.cur.samples[phase] += samples
	p.phaseStart = now
	p.active = phase
}

// EndPass closes the running phase and records the pass.
func (p *PerfCollector) EndPass() {
	now := p.closePhase()
	p.cur.total = now.Sub(p.passStart)

	p.window[p.next] = p.cur
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
	p.passes++
	p.active = noPhase
}

func (p *PerfCollector) closePhase() time.Time {
	now := p.now()
	if p.active != noPhase {
		p.cur.elapsed[p.active] += now.Sub(p.phaseStart)
	}
	return now
}

// Passes returns the number of passes recorded since creation.
func (p *PerfCollector) Passes() int {
	return p.passes
}

// PhaseSummary is the windowed summary of one phase.
type PhaseSummary struct {
	Avg           time.Duration
	Pct           float64 // Share of total pass time
	SamplesPerSec float64 // Zero when the phase produced no samples
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgPassDuration time.Duration
	MinPassDuration time.Duration
	MaxPassDuration time.Duration
	PassesPerSecond float64
	SamplesPerSec   float64 // All phases' samples over total pass time

	Phases [numPhases]PhaseSummary
}

// Phase returns the summary for phase.
func (s PerfStats) Phase(phase Phase) PhaseSummary {
	return s.Phases[phase]
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var elapsed [numPhases]time.Duration
	var samples [numPhases]int
	allSamples := 0
	for i, w := range p.window[:p.filled] {
		total += w.total
		if i == 0 || w.total < s.MinPassDuration {
			s.MinPassDuration = w.total
		}
		if w.total > s.MaxPassDuration {
			s.MaxPassDuration = w.total
		}
		for ph := range numPhases {
			elapsed[ph] += w.elapsed[ph]
			samples[ph] += w.samples[ph]
			allSamples += w.samples[ph]
		}
	}

	n := time.Duration(p.filled)
	s.AvgPassDuration = total / n
	if total > 0 {
		s.PassesPerSecond = float64(p.filled) / total.Seconds()
		s.SamplesPerSec = float64(allSamples) / total.Seconds()
	}

	for ph := range numPhases {
		ps := &s.Phases[ph]
		ps.Avg = elapsed[ph] / n
		if total > 0 {
			ps.Pct = float64(elapsed[ph]) / float64(total) * 100
		}
		if elapsed[ph] > 0 {
			ps.SamplesPerSec = float64(samples[ph]) / elapsed[ph].Seconds()
		}
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_pass_us", s.AvgPassDuration.Microseconds()),
		slog.Int64("min_pass_us", s.MinPassDuration.Microseconds()),
		slog.Int64("max_pass_us", s.MaxPassDuration.Microseconds()),
		slog.Float64("passes_per_sec", s.PassesPerSecond),
		slog.Float64("msamples_per_sec", s.SamplesPerSec/1e6),
	}

	for ph := range numPhases {
		ps := s.Phases[ph]
		if ps.Pct <= 0.1 {
			continue
		}
		name := ph.String()
		attrs = append(attrs, slog.Float64(name+"_pct", float64(int(ps.Pct*10))/10))
		if ps.SamplesPerSec > 0 {
			attrs = append(attrs, slog.Float64(name+"_msamples_per_sec", ps.SamplesPerSec/1e6))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Pass                 int     `csv:"pass"`
	AvgPassUS            int64   `csv:"avg_pass_us"`
	MinPassUS            int64   `csv:"min_pass_us"`
	MaxPassUS            int64   `csv:"max_pass_us"`
	PassesPerSec         float64 `csv:"passes_per_sec"`
	MSamplesPerSec       float64 `csv:"msamples_per_sec"`
	TilePct              float64 `csv:"tile_pct"`
	LayersPct            float64 `csv:"layers_pct"`
	StatsPct             float64 `csv:"stats_pct"`
	OutputPct            float64 `csv:"output_pct"`
	TileMSamplesPerSec   float64 `csv:"tile_msamples_per_sec"`
	LayersMSamplesPerSec float64 `csv:"layers_msamples_per_sec"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(pass int) PerfStatsCSV {
	return PerfStatsCSV{
		Pass:                 pass,
		AvgPassUS:            s.AvgPassDuration.Microseconds(),
		MinPassUS:            s.MinPassDuration.Microseconds(),
		MaxPassUS:            s.MaxPassDuration.Microseconds(),
		PassesPerSec:         s.PassesPerSecond,
		MSamplesPerSec:       s.SamplesPerSec / 1e6,
		TilePct:              s.Phases[PhaseTile].Pct,
		LayersPct:            s.Phases[PhaseLayers].Pct,
		StatsPct:             s.Phases[PhaseStats].Pct,
		OutputPct:            s.Phases[PhaseOutput].Pct,
		TileMSamplesPerSec:   s.Phases[PhaseTile].SamplesPerSec / 1e6,
		LayersMSamplesPerSec: s.Phases[PhaseLayers].SamplesPerSec / 1e6,
	}
}
