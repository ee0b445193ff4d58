package core

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/julianBogado1/disksim/internal/geom"
)

// stallLimit is how many consecutive zero-length time steps the engine
// tolerates before declaring the run numerically stuck.
const stallLimit = 16

// Snapshot is the externally observable state published after every
// processed event. Particles is a deep copy and safe to retain.
type Snapshot struct {
	Step      uint64
	Time      float64
	Event     Event
	Particles []Particle
}

// StepWriter consumes snapshots in step order. Implementations may
// block; they must not retain references into the engine.
type StepWriter interface {
	WriteStep(Snapshot) error
}

// Config bounds a run.
type Config struct {
	// Steps is the number of events to process.
	Steps uint64
	// Workers caps the predictor fan-out after each collision. Zero
	// means one worker per CPU.
	Workers int
}

// Engine owns the particles, the obstacles and the event queue, and
// advances simulated time one collision at a time. It is not safe for
// concurrent use.
type Engine struct {
	log *zap.Logger
	cfg Config

	particles []*Particle
	segments  []geom.Segment
	vertices  []geom.Vertex

	queue  eventHeap
	now    float64
	step   uint64
	stall  int
	primed bool
}

// New builds an engine over an already validated initial state. The
// engine takes ownership of the particle slice.
func New(cfg Config, particles []*Particle, segments []geom.Segment, vertices []geom.Vertex, log *zap.Logger) (*Engine, error) {
	if len(particles) == 0 {
		return nil, fmt.Errorf("%w: no particles", ErrInvalidState)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no container walls", ErrInvalidState)
	}
	for i, p := range particles {
		if p.ID != i {
			return nil, fmt.Errorf("%w: particle at index %d has id %d", ErrInvalidState, i, p.ID)
		}
	}
	for i, s := range segments {
		if s.ID != i {
			return nil, fmt.Errorf("%w: segment at index %d has id %d", ErrInvalidState, i, s.ID)
		}
	}
	for i, v := range vertices {
		if v.ID != i {
			return nil, fmt.Errorf("%w: vertex at index %d has id %d", ErrInvalidState, i, v.ID)
		}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		log:       log,
		cfg:       cfg,
		particles: particles,
		segments:  segments,
		vertices:  vertices,
		queue:     make(eventHeap, 0, len(particles)*8),
	}, nil
}

// Now is the current simulated time.
func (e *Engine) Now() float64 { return e.now }

// Step is the index of the next snapshot to be emitted.
func (e *Engine) Step() uint64 { return e.step }

// Particles returns a deep copy of the current particle state.
func (e *Engine) Particles() []Particle { return copyParticles(e.particles) }

// QueueLen reports the heap size including stale entries.
func (e *Engine) QueueLen() int { return e.queue.Len() }

// prime seeds the queue with an event for every unordered particle pair
// and every particle/obstacle pair.
func (e *Engine) prime() {
	for i, p := range e.particles {
		for _, q := range e.particles[i+1:] {
			if t, ok := TimeToParticle(p, q); ok {
				e.pushPair(p, q, e.now+t)
			}
		}
		e.pushObstacles(p)
	}
	e.primed = true
	e.log.Debug("event queue primed",
		zap.Int("particles", len(e.particles)),
		zap.Int("events", e.queue.Len()))
}

func (e *Engine) pushPair(p, q *Particle, at float64) {
	e.queue.push(Event{
		Time:         at,
		Kind:         KindParticle,
		Subject:      p.ID,
		Target:       q.ID,
		subjectToken: p.Collisions,
		targetToken:  q.Collisions,
	})
}

func (e *Engine) pushObstacles(p *Particle) {
	for _, ev := range e.predictObstacles(p) {
		e.queue.push(ev)
	}
}

// predictObstacles collects wall and vertex events for p without
// touching the heap, so it can run off the scheduler goroutine.
func (e *Engine) predictObstacles(p *Particle) []Event {
	var out []Event
	for _, s := range e.segments {
		if t, ok := TimeToSegment(p, s); ok {
			out = append(out, Event{
				Time:         e.now + t,
				Kind:         KindWall,
				Subject:      p.ID,
				Target:       s.ID,
				subjectToken: p.Collisions,
			})
		}
	}
	for _, v := range e.vertices {
		if t, ok := TimeToVertex(p, v); ok {
			out = append(out, Event{
				Time:         e.now + t,
				Kind:         KindVertex,
				Subject:      p.ID,
				Target:       v.ID,
				subjectToken: p.Collisions,
			})
		}
	}
	return out
}

// predictAll collects every future event for p: other particles, walls
// and vertices. Pure with respect to engine state.
func (e *Engine) predictAll(p *Particle) []Event {
	var out []Event
	for _, q := range e.particles {
		if q.ID == p.ID {
			continue
		}
		if t, ok := TimeToParticle(p, q); ok {
			out = append(out, Event{
				Time:         e.now + t,
				Kind:         KindParticle,
				Subject:      p.ID,
				Target:       q.ID,
				subjectToken: p.Collisions,
				targetToken:  q.Collisions,
			})
		}
	}
	return append(out, e.predictObstacles(p)...)
}

// stale reports whether the event no longer matches its participants'
// collision counts.
func (e *Engine) stale(ev Event) bool {
	if e.particles[ev.Subject].Collisions != ev.subjectToken {
		return true
	}
	if ev.Kind == KindParticle && e.particles[ev.Target].Collisions != ev.targetToken {
		return true
	}
	return false
}

// Advance processes exactly one valid event and returns its snapshot.
// Stale queue entries are discarded silently along the way.
func (e *Engine) Advance(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !e.primed {
		e.prime()
	}

	for {
		ev, ok := e.queue.pop()
		if !ok {
			return nil, fmt.Errorf("%w at step %d (t=%.6f)", ErrHeapExhausted, e.step, e.now)
		}
		if ev.Time < e.now {
			e.log.Warn("event from the past discarded",
				zap.Float64("event_time", ev.Time),
				zap.Float64("now", e.now))
			continue
		}
		if e.stale(ev) {
			continue
		}

		dt := ev.Time - e.now
		for _, p := range e.particles {
			p.Drift(dt)
		}
		e.now = ev.Time

		if dt <= stallEps(e.now) {
			e.stall++
			if e.stall > stallLimit {
				e.dumpState()
				return nil, fmt.Errorf("%w: %d consecutive events at t=%.14f",
					ErrNumericalStall, e.stall, e.now)
			}
		} else {
			e.stall = 0
		}

		e.respond(ev)
		e.reschedule(ev)

		snap := &Snapshot{
			Step:      e.step,
			Time:      e.now,
			Event:     ev,
			Particles: copyParticles(e.particles),
		}
		e.step++
		return snap, nil
	}
}

func (e *Engine) respond(ev Event) {
	p := e.particles[ev.Subject]
	switch ev.Kind {
	case KindParticle:
		bounceParticles(p, e.particles[ev.Target])
	case KindWall:
		bounceSegment(p, e.segments[ev.Target])
	case KindVertex:
		bounceVertex(p, e.vertices[ev.Target])
	}
}

// reschedule recomputes future events for the event's participants.
// Each participant's candidate list is an independent pure function of
// the post-collision state, so the lists are built concurrently; only
// the merge below touches the heap.
func (e *Engine) reschedule(ev Event) {
	involved := []*Particle{e.particles[ev.Subject]}
	if ev.Kind == KindParticle {
		involved = append(involved, e.particles[ev.Target])
	}

	if e.cfg.Workers <= 1 || len(involved) == 1 {
		for _, p := range involved {
			for _, ne := range e.predictAll(p) {
				e.queue.push(ne)
			}
		}
		return
	}

	batches := make([][]Event, len(involved))
	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	for i, p := range involved {
		i, p := i, p
		g.Go(func() error {
			batches[i] = e.predictAll(p)
			return nil
		})
	}
	_ = g.Wait()

	for _, batch := range batches {
		for _, ne := range batch {
			e.queue.push(ne)
		}
	}
}

// Run advances until the configured step count, writing every snapshot
// to w. A sink error aborts the run; a context cancellation returns
// cleanly without a partial snapshot.
func (e *Engine) Run(ctx context.Context, w StepWriter) error {
	for e.step < e.cfg.Steps {
		snap, err := e.Advance(ctx)
		if err != nil {
			return err
		}
		if w == nil {
			continue
		}
		if err := w.WriteStep(*snap); err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrSinkFailure, snap.Step, err)
		}
	}
	e.log.Info("run complete",
		zap.Uint64("steps", e.step),
		zap.Float64("time", e.now),
		zap.Int("queue", e.queue.Len()))
	return nil
}

// stallEps is the time resolution below which an event is considered
// simultaneous with the previous one.
func stallEps(now float64) float64 {
	return 1e-15 * (1 + now)
}

func (e *Engine) dumpState() {
	for _, p := range e.particles {
		e.log.Error("stalled particle state",
			zap.Int("id", p.ID),
			zap.Float64("x", p.Position.X),
			zap.Float64("y", p.Position.Y),
			zap.Float64("vx", p.Velocity.X),
			zap.Float64("vy", p.Velocity.Y),
			zap.Uint64("collisions", p.Collisions))
	}
}
