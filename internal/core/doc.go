// Package core implements an event-driven molecular dynamics engine
// for a 2D gas of hard disks in a fixed axis-aligned container.
//
// Instead of stepping time on a grid, the engine keeps a priority queue
// of predicted collisions and jumps from one contact to the next:
//
//   - [TimeToParticle], [TimeToSegment], [TimeToVertex] predict, in
//     closed form, when a disk next touches another disk, a wall, or a
//     concave corner.
//   - [Engine.Advance] pops the earliest still-valid event, drifts all
//     disks to its time, applies the elastic response and reschedules
//     the participants.
//   - Each processed event yields a [Snapshot] with a deep copy of the
//     particle state, published to a [StepWriter] in strict step order.
//
// Queued events are never removed eagerly. Every particle carries a
// collision count; events record the counts of their participants at
// prediction time and are dropped at pop time when the counts have
// moved on.
//
// Engine instances are single-threaded: events are strictly
// time-ordered and each mutates shared particle state. The only
// concurrency inside the engine is the pure predictor fan-out after a
// collision, merged back into the heap before the next event.
package core
