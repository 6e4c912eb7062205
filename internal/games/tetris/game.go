// Package tetris adapts the falling-block engine to the platform's
// fixed-tick Game interface: it turns input frames into engine commands,
// runs gravity off the tick counter and sequences lock, clear, score and
// spawn.
package tetris

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects the level progression.
type Mode int

const (
	ModeMarathon Mode = iota // Level follows the score
	ModeZen                  // Level stays at the configured start level
)

// noticeSeconds is how long a HUD notice stays up.
const noticeSeconds = 1.5

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset applied on the next Reset.
// Unknown names clear the preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game runs one falling-block session on top of engine.Board.
type Game struct {
	mode Mode

	cfg       config.TetrisConfig
	cfgLocked bool // cfg was injected and must not be reloaded
	preset    config.DifficultyPreset
	policy    engine.LevelPolicy
	runtime   core.RuntimeConfig

	rng    *rand.Rand
	board  *engine.Board
	source func(*rand.Rand) engine.KindSource // nil means a uniform engine.Queue

	tick         uint64
	gravityTicks int // Ticks since the last gravity step
	level        int
	lines        int
	pieces       int
	spawns       *intmap.Map[engine.Kind, int]

	lastBonus   int
	notice      string
	noticeTicks int

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a marathon game that loads its config on Reset.
func New() *Game {
	return &Game{mode: ModeMarathon}
}

// NewZen creates a game whose level never advances.
func NewZen() *Game {
	return &Game{mode: ModeZen}
}

// NewWithConfig creates a game bound to cfg instead of the config files.
func NewWithConfig(mode Mode, cfg config.TetrisConfig) *Game {
	return &Game{mode: mode, cfg: cfg, cfgLocked: true}
}

// SetPreset overrides the package-wide difficulty preset for this game.
// It takes effect on the next Reset and is ignored for injected configs.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return "tetris_zen"
	}
	return "tetris"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Tetris (Zen)"
	}
	return "Tetris"
}

// Reset starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime

	if !g.cfgLocked {
		cfg, err := config.LoadTetris(configPath)
		if err != nil {
			cfg = config.DefaultTetrisConfig()
		}
		preset := difficultyPreset
		if g.preset != "" {
			preset = g.preset
		}
		if preset != "" {
			config.ApplyTetrisPreset(&cfg, preset)
		}
		g.cfg = cfg
	}
	if g.mode == ModeZen {
		g.cfg.Difficulty.Enabled = false
	}
	g.policy = g.cfg.Policy()

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	b := g.cfg.Board
	src := engine.WithRand(g.rng)
	if g.source != nil {
		src = engine.WithSource(g.source(g.rng))
	}
	g.board = engine.NewBoard(b.Rows, b.Cols, src, engine.WithSpawn(b.SpawnCol, b.SpawnRow))

	g.tick = 0
	g.gravityTicks = 0
	g.lines = 0
	g.pieces = 0
	g.lastBonus = 0
	g.notice = ""
	g.noticeTicks = 0
	g.paused = false
	g.tooSmall = runtime.ScreenW > 0 && runtime.ScreenH > 0 &&
		!g.fits(runtime.ScreenW, runtime.ScreenH)
	if g.spawns == nil {
		g.spawns = intmap.New[engine.Kind, int](8)
	} else {
		g.spawns.Clear()
	}

	g.gameOver = g.board.ResetSession()
	g.level = g.policy.LevelForScore(0)
	g.countSpawn()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// A new game can be started from the game over screen or while paused.
	if in.Has(core.ActionRestart) && (g.gameOver || g.paused) {
		g.restart()
		return core.StepResult{State: g.State()}
	}
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.noticeTicks > 0 {
		g.noticeTicks--
		if g.noticeTicks == 0 {
			g.notice = ""
		}
	}

	var res core.StepResult
	g.applyInput(in, &res)
	if !g.gameOver {
		g.applyGravity(&res)
	}
	res.State = g.State()
	return res
}

// Resize tells the game the size of the terminal it renders into. Play is
// suspended while the board does not fit.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.tooSmall = !g.fits(width, height)
}

// restart begins a new session with a fresh seed drawn from the old one.
func (g *Game) restart() {
	rt := g.runtime
	rt.Seed = g.rng.Int63()
	g.Reset(rt)
}

// applyInput runs the frame's commands in a fixed order: hold, shifts,
// rotation, soft drops, hard drop. Processing stops at game over.
func (g *Game) applyInput(in core.InputFrame, res *core.StepResult) {
	if in.Has(core.ActionHold) {
		g.hold()
		if g.gameOver {
			return
		}
	}

	for range in.Count(core.ActionLeft) {
		g.board.MoveLeft()
	}
	for range in.Count(core.ActionRight) {
		g.board.MoveRight()
	}
	for range in.Count(core.ActionUp) {
		g.board.Rotate()
	}

	for range in.Count(core.ActionDown) {
		g.softDrop(res)
		if g.gameOver {
			return
		}
	}

	if in.Has(core.ActionJump) {
		g.hardDrop(res)
	}
}

// hold stores or swaps the active piece. Whatever enters play, a fresh
// piece or the one coming back from the slot, counts as a spawn.
func (g *Game) hold() {
	if g.board.HoldUsed() {
		return
	}
	if g.board.HoldOrSwap() {
		g.gameOver = true
		return
	}
	g.countSpawn()
}

// softDrop moves the piece one row. A blocked soft drop locks the piece.
func (g *Game) softDrop(res *core.StepResult) {
	if g.board.MoveDown() {
		g.board.AddScore(g.cfg.Scoring.SoftDropPoints)
		g.updateLevel()
		return
	}
	g.settle(res)
}

// hardDrop drops the piece to the floor and locks it at once.
func (g *Game) hardDrop(res *core.StepResult) {
	rows := 0
	for g.board.MoveDown() {
		rows++
	}
	g.board.AddScore(rows * g.cfg.Scoring.HardDropPointsPerRow)
	g.settle(res)
}

func (g *Game) applyGravity(res *core.StepResult) {
	g.gravityTicks++
	if g.gravityTicks < g.gravityInterval() {
		return
	}
	g.gravityTicks = 0
	if !g.board.MoveDown() {
		g.settle(res)
	}
}

// gravityInterval converts the policy's gravity duration into ticks.
func (g *Game) gravityInterval() int {
	d := g.policy.GravityForScore(g.board.Score())
	ticks := int(d * time.Duration(g.runtime.TickRate) / time.Second)
	return max(ticks, 1)
}

// settle locks the active piece, clears rows, scores them and spawns the
// next piece.
func (g *Game) settle(res *core.StepResult) {
	g.board.LockActivePiece()
	g.pieces++
	res.Locked = true

	cleared := g.board.ClearCompletedRows()
	if cleared.Removed > 0 {
		g.lines += cleared.Removed
		g.board.AddScore(cleared.Bonus)
		g.lastBonus = cleared.Bonus
		res.Cleared += cleared.Removed
		g.setNotice(fmt.Sprintf("+%d", cleared.Bonus))
	}
	g.updateLevel()
	g.gravityTicks = 0

	if g.board.SpawnNewPiece() {
		g.gameOver = true
		return
	}
	g.countSpawn()
}

func (g *Game) updateLevel() {
	level := g.policy.LevelForScore(g.board.Score())
	if level > g.level {
		g.level = level
		g.setNotice(fmt.Sprintf("LEVEL %d", level))
	}
}

func (g *Game) setNotice(text string) {
	g.notice = text
	g.noticeTicks = max(int(noticeSeconds*float64(g.runtime.TickRate)), 1)
}

func (g *Game) countSpawn() {
	k := g.board.Active()
	if !k.Valid() {
		return
	}
	n, _ := g.spawns.Get(k)
	g.spawns.Put(k, n+1)
}

// SpawnCount returns how many pieces of kind k entered play this session.
func (g *Game) SpawnCount(k engine.Kind) int {
	if g.spawns == nil {
		return 0
	}
	n, _ := g.spawns.Get(k)
	return n
}

// Config returns the configuration of the current session.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Board exposes the engine for read-only queries.
func (g *Game) Board() *engine.Board {
	return g.board
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.board != nil {
		score = g.board.Score()
	}
	return core.GameState{
		Score:    score,
		Level:    g.level,
		Lines:    g.lines,
		Pieces:   g.pieces,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the games with the registry
func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_zen", func() registry.Game {
		return NewZen()
	})
}
