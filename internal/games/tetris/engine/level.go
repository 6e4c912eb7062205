package engine

import "time"

// LevelPolicy maps a cumulative score to a level and a gravity interval.
// Implementations must be monotonic: the level never decreases and the
// interval never increases as score grows.
type LevelPolicy interface {
	LevelForScore(score int) int
	GravityForScore(score int) time.Duration
}

// TablePolicy is a threshold table: the start level holds below
// FirstThreshold, then one more level is gained every Step points past it.
// Gravity starts at Base and shrinks by Decrement per level, never dropping
// below Floor.
type TablePolicy struct {
	FirstThreshold int
	Step           int
	StartLevel     int // Level reported at score 0; values below 1 mean 1
	Base           time.Duration
	Decrement      time.Duration
	Floor          time.Duration
	Fixed          bool // Pin the level at StartLevel regardless of score
}

// DefaultPolicy returns the reference table: levels start counting at 1000
// points and advance every 500 (level 2 at 1500), with 400ms gravity reduced
// by 30ms per level down to 120ms.
func DefaultPolicy() TablePolicy {
	return TablePolicy{
		FirstThreshold: 1000,
		Step:           500,
		StartLevel:     1,
		Base:           400 * time.Millisecond,
		Decrement:      30 * time.Millisecond,
		Floor:          120 * time.Millisecond,
	}
}

// LevelForScore returns the level (>= 1) reached at score.
func (p TablePolicy) LevelForScore(score int) int {
	start := max(p.StartLevel, 1)
	if p.Fixed || score < p.FirstThreshold {
		return start
	}
	step := max(p.Step, 1)
	return start + (score-p.FirstThreshold)/step
}

// GravityForScore returns the gravity interval for the level reached at score.
func (p TablePolicy) GravityForScore(score int) time.Duration {
	return p.GravityForLevel(p.LevelForScore(score))
}

// GravityForLevel returns the gravity interval for level, floored at Floor.
func (p TablePolicy) GravityForLevel(level int) time.Duration {
	level = max(level, 1)
	d := p.Base - time.Duration(level-1)*p.Decrement
	return max(d, p.Floor)
}

var _ LevelPolicy = TablePolicy{}
