package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nicklatkovich/ktane-eight/internal/platform/id"
	"github.com/nicklatkovich/ktane-eight/internal/platform/timeouts"
	"github.com/nicklatkovich/ktane-eight/internal/random"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/bomb"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/domain/command"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/domain/puzzle"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/observability/diagnostics"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/storage"
	eightsqlite "github.com/nicklatkovich/ktane-eight/internal/services/eight/storage/sqlite"
	"golang.org/x/sync/errgroup"
)

// RuntimeConfig controls console runtime startup.
type RuntimeConfig struct {
	DBPath       string
	BombPath     string
	PollInterval time.Duration
	Seed         int64
	ModuleNumber int

	// In, Out and Log default to stdin, stdout and stderr.
	In  io.Reader
	Out io.Writer
	Log io.Writer
}

const (
	defaultDBPath = "data/eight.db"
	historyLimit  = 10
)

// Run opens the store, builds the bomb and the engine, and plays the module
// from console input until the input ends or ctx is cancelled.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg = cfg.normalized()

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create eight storage dir: %w", err)
		}
	}
	store, err := eightsqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open eight sqlite store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close eight sqlite store: %v", closeErr)
		}
	}()

	scenario, err := bomb.LoadScenario(cfg.BombPath)
	if err != nil {
		return fmt.Errorf("load bomb: %w", err)
	}
	b, err := bomb.New(scenario)
	if err != nil {
		return fmt.Errorf("build bomb: %w", err)
	}

	session, err := NewSession(cfg, b, store)
	if err != nil {
		return err
	}
	b.Start()
	return session.Play(ctx, cfg.In, cfg.Out)
}

func (c RuntimeConfig) normalized() RuntimeConfig {
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = defaultDBPath
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.ModuleNumber <= 0 {
		c.ModuleNumber = 1
	}
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Log == nil {
		c.Log = os.Stderr
	}
	return c
}

// Session is one module played on one bomb.
type Session struct {
	ID     string
	Number int
	Seed   int64

	bomb   *bomb.Bomb
	store  storage.Store
	module *Module
}

// NewSession wires the engine to the bomb, the diagnostic log and the store.
// A nil store keeps diagnostics in the log only.
func NewSession(cfg RuntimeConfig, b *bomb.Bomb, store storage.Store) (*Session, error) {
	cfg = cfg.normalized()
	sessionID, err := id.NewID()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	seed, generated, err := random.ResolveSeed(cfg.Seed)
	if err != nil {
		return nil, err
	}

	logger := log.New(cfg.Log, "", log.LstdFlags)
	if generated {
		logger.Printf("[Eight #%d] Session %s seeded with %d", cfg.ModuleNumber, sessionID, seed)
	}
	emitter := diagnostics.NewEmitter(logger, store, sessionID, cfg.ModuleNumber)
	engine, err := puzzle.New(b, b, puzzle.WithSeed(seed), puzzle.WithObserver(emitter))
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return &Session{
		ID:     sessionID,
		Number: cfg.ModuleNumber,
		Seed:   seed,
		bomb:   b,
		store:  store,
		module: NewModule(engine, WithPollInterval(cfg.PollInterval)),
	}, nil
}

// Module returns the session's module loop.
func (s *Session) Module() *Module {
	return s.module
}

// Play runs the module loop and the console reader together. It returns when
// the input ends, ctx is cancelled, or the bomb explodes.
func (s *Session) Play(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.module.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return s.console(gctx, in, out)
	})
	return g.Wait()
}

func (s *Session) console(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	snapshot, err := s.module.Snapshot(ctx)
	if err != nil {
		return nil
	}
	s.printBoard(out, snapshot)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read console: %w", err)
					}
				default:
				}
				return nil
			}
			done, err := s.handle(ctx, out, line)
			if err != nil || done {
				return err
			}
		}
	}
}

// handle runs one console line. It reports true once the session is over.
func (s *Session) handle(ctx context.Context, out io.Writer, line string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return false, nil
	case "help":
		fmt.Fprintln(out, command.HelpMessage)
		fmt.Fprintln(out, "`status` - show the bomb | `history` - list recent rounds | `quit` - leave")
		return false, nil
	case "quit", "exit":
		return true, nil
	case "status":
		s.printStatus(out)
		return false, nil
	case "history":
		return false, s.printHistory(ctx, out)
	}

	result, err := s.module.Execute(ctx, line)
	if err != nil {
		if ctx.Err() != nil {
			return true, nil
		}
		return true, err
	}
	if !result.Parsed {
		fmt.Fprintln(out, "Unrecognized command, type `help`.")
		return false, nil
	}
	if result.Command.Press {
		fmt.Fprintf(out, "%s\n", result.Outcome)
	}
	s.printBoard(out, result.Snapshot)

	status := s.bomb.Status()
	switch {
	case result.Snapshot.Solved:
		fmt.Fprintln(out, "Module disarmed.")
		return true, nil
	case status.Exploded():
		fmt.Fprintln(out, "The bomb exploded.")
		return true, nil
	}
	return false, nil
}

func (s *Session) printBoard(out io.Writer, snapshot puzzle.Snapshot) {
	fmt.Fprintln(out, FormatBoard(snapshot))
}

func (s *Session) printStatus(out io.Writer) {
	status := s.bomb.Status()
	fmt.Fprintf(out, "Time %s | Strikes %d/%d | Solved %d/%d\n",
		FormatClock(status.RemainingSeconds),
		status.Strikes, status.MaxStrikes,
		status.Solved, status.Modules,
	)
}

func (s *Session) printHistory(ctx context.Context, out io.Writer) error {
	if s.store == nil {
		fmt.Fprintln(out, "No history store configured.")
		return nil
	}
	readCtx, cancel := context.WithTimeout(ctx, timeouts.StoreRead)
	defer cancel()
	rounds, err := s.store.ListRounds(readCtx, s.ID, historyLimit)
	if err != nil {
		log.Printf("list rounds: %v", err)
		fmt.Fprintln(out, "History unavailable.")
		return nil
	}
	if len(rounds) == 0 {
		fmt.Fprintln(out, "No rounds yet.")
		return nil
	}
	for _, round := range rounds {
		fmt.Fprintf(out, "%s  stage %s  %-8s  %s  (%d left)\n",
			round.CreatedAt.Local().Format(time.TimeOnly),
			round.Stage,
			round.Digits,
			round.Verdict,
			round.NotDisabled,
		)
	}
	return nil
}

// FormatBoard renders the display as the player sees it: the stage digit,
// then each slot, with a blank for disabled slots and '_' for removed ones.
func FormatBoard(snapshot puzzle.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%c] ", snapshot.Stage)
	for i, c := range []byte(snapshot.Display()) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c)
	}
	b.WriteString("\n    ")
	for i := 1; i <= puzzle.SlotCount; i++ {
		if i > 1 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", i)
	}
	return b.String()
}

// FormatClock renders seconds as m:ss, with a leading minus once overrun.
func FormatClock(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%02d", sign, seconds/60, seconds%60)
}
