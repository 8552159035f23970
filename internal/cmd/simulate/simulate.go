// Package simulate parses simulate command configuration and plays games.
package simulate

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	entrypoint "github.com/louisbranch/boardwalk/internal/platform/cmd"
	"github.com/louisbranch/boardwalk/internal/platform/logging"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/board"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/chance"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/dice"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/turn"
	"github.com/louisbranch/boardwalk/internal/services/game/session"
	"github.com/louisbranch/boardwalk/internal/services/game/storage"
	"github.com/louisbranch/boardwalk/internal/services/game/storage/sqlite"
	"github.com/louisbranch/boardwalk/internal/services/game/strategy"
	"github.com/louisbranch/boardwalk/internal/services/game/strategy/lua"
)

// NameLua selects the scripted chooser.
const NameLua = "lua"

// Config holds simulate command configuration.
type Config struct {
	Players      []string `env:"BOARDWALK_PLAYERS"       envDefault:"alice,bob,carol" envSeparator:","`
	Strategies   []string `env:"BOARDWALK_STRATEGIES"    envDefault:"greedy"          envSeparator:","`
	LuaScript    string   `env:"BOARDWALK_LUA_SCRIPT"`
	Games        int      `env:"BOARDWALK_GAMES"         envDefault:"1"`
	MaxTurns     int      `env:"BOARDWALK_MAX_TURNS"     envDefault:"150"`
	StartBalance int      `env:"BOARDWALK_START_BALANCE" envDefault:"1500"`
	StepLimit    int      `env:"BOARDWALK_STEP_LIMIT"    envDefault:"1000"`
	Seed         int64    `env:"BOARDWALK_SEED"          envDefault:"0"`
	BoardPath    string   `env:"BOARDWALK_BOARD_PATH"`
	DBPath       string   `env:"BOARDWALK_DB_PATH"`
	LogLevel     string   `env:"BOARDWALK_LOG_LEVEL"     envDefault:"info"`
	LogFormat    string   `env:"BOARDWALK_LOG_FORMAT"    envDefault:"console"`
}

// ParseConfig parses environment and flags into a Config. Flags win.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.Func("players", "comma separated player ids", listFlag(&cfg.Players))
	fs.Func("strategies", "comma separated strategies, cycled over players ("+strings.Join(append(strategy.Names(), NameLua), ", ")+")", listFlag(&cfg.Strategies))
	fs.StringVar(&cfg.LuaScript, "lua", cfg.LuaScript, "Lua script for the lua strategy")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "number of games to play")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "turn cap per game")
	fs.IntVar(&cfg.StartBalance, "start-balance", cfg.StartBalance, "opening balance")
	fs.IntVar(&cfg.StepLimit, "step-limit", cfg.StepLimit, "engine steps allowed per turn")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the first game (0 picks one)")
	fs.StringVar(&cfg.BoardPath, "board", cfg.BoardPath, "YAML board file (default: classic board)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite journal path (default: no journal)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func listFlag(target *[]string) func(string) error {
	return func(value string) error {
		*target = splitList(value)
		return nil
	}
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (c Config) validate() error {
	switch {
	case len(c.Players) < 2:
		return errors.New("at least two players are required")
	case len(c.Strategies) == 0:
		return errors.New("at least one strategy is required")
	case c.Games <= 0:
		return errors.New("games must be positive")
	}
	for _, name := range c.Strategies {
		if strings.EqualFold(strings.TrimSpace(name), NameLua) && c.LuaScript == "" {
			return errors.New("the lua strategy needs -lua")
		}
	}
	return nil
}

// Run plays cfg.Games games and writes their standings to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceSimulate, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return play(ctx, cfg, logger, out)
	})
}

func play(ctx context.Context, cfg Config, logger *zap.Logger, out io.Writer) error {
	b, specs, err := loadBoard(cfg.BoardPath)
	if err != nil {
		return err
	}
	deck, err := chance.NewDeck(b, specs)
	if err != nil {
		return err
	}

	var journal storage.Journal
	if cfg.DBPath != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()
		journal = store
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			return err
		}
	}

	report := newReport(out)
	for i := 0; i < cfg.Games; i++ {
		gameSeed := seed + int64(i)
		seats, err := seatPlayers(cfg, gameSeed)
		if err != nil {
			return err
		}
		opts := []session.Option{session.WithLogger(logger)}
		if journal != nil {
			opts = append(opts, session.WithJournal(journal))
		}
		s, err := session.New(session.Config{
			MaxTurns:     cfg.MaxTurns,
			StartBalance: cfg.StartBalance,
			StepLimit:    cfg.StepLimit,
			Seed:         gameSeed,
		}, b, deck, seats, opts...)
		if err != nil {
			return err
		}
		result, err := s.Run(ctx)
		if err != nil {
			return fmt.Errorf("game %d (seed %d): %w", i+1, gameSeed, err)
		}
		if err := report.Game(result); err != nil {
			return err
		}
	}
	return report.Summary()
}

func loadBoard(path string) (*board.Board, []board.ChanceSpec, error) {
	if path == "" {
		return board.Classic()
	}
	return board.LoadFile(path)
}

// seatPlayers assigns strategies to players in order, cycling the list.
func seatPlayers(cfg Config, seed int64) ([]session.Seat, error) {
	seats := make([]session.Seat, len(cfg.Players))
	for i, pid := range cfg.Players {
		name := cfg.Strategies[i%len(cfg.Strategies)]
		chooser, err := chooserFor(name, cfg.LuaScript, seed+int64(i))
		if err != nil {
			return nil, err
		}
		seats[i] = session.Seat{ID: player.ID(pid), Chooser: chooser}
	}
	return seats, nil
}

func chooserFor(name, script string, seed int64) (turn.Chooser, error) {
	if strings.EqualFold(strings.TrimSpace(name), NameLua) {
		return lua.Load(script)
	}
	return strategy.ByName(name, seed)
}
