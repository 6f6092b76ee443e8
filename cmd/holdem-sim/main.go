package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/room"
	"github.com/lox/holdem-engine/store/memstore"
)

var CLI struct {
	Config  string `short:"c" help:"Path to HCL table configuration file"`
	Players int    `short:"p" default:"4" help:"Number of bots at the table (overrides config)"`
	Balance int    `default:"100" help:"Starting balance per bot (overrides config)"`
	BaseBet int    `default:"10" help:"Starting base bet (overrides config)"`
	Policy  string `default:"caller" enum:"caller,random" help:"Bot policy: caller, random"`
	Deals   int    `short:"d" default:"0" help:"Stop after this many deals (0 plays to game end)"`
	Seed    int64  `short:"s" default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

// TableConfig is the optional HCL table block; CLI flags that were set
// explicitly win over it.
type TableConfig struct {
	Players int    `hcl:"players,optional"`
	Balance int    `hcl:"balance,optional"`
	BaseBet int    `hcl:"base_bet,optional"`
	Policy  string `hcl:"policy,optional"`
}

type simConfig struct {
	Table *TableConfig `hcl:"table,block"`
}

func loadTableConfig(path string) (*TableConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", path, diags.Error())
	}

	var cfg simConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", path, diags.Error())
	}
	if cfg.Table == nil {
		cfg.Table = &TableConfig{}
	}
	return cfg.Table, nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	bustStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func main() {
	kctx := kong.Parse(&CLI)

	if CLI.Config != "" {
		tc, err := loadTableConfig(CLI.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			kctx.Exit(1)
		}
		if tc.Players > 0 {
			CLI.Players = tc.Players
		}
		if tc.Balance > 0 {
			CLI.Balance = tc.Balance
		}
		if tc.BaseBet > 0 {
			CLI.BaseBet = tc.BaseBet
		}
		if tc.Policy != "" {
			CLI.Policy = tc.Policy
		}
	}

	if CLI.Players < 2 {
		fmt.Fprintln(os.Stderr, "Need at least two players")
		kctx.Exit(1)
	}

	if CLI.Seed == 0 {
		CLI.Seed = time.Now().UnixNano()
	}

	level := log.WarnLevel
	if CLI.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	fmt.Printf("Simulating: %d bots, %d chips each, base bet %d, policy %s (seed %d)\n\n",
		CLI.Players, CLI.Balance, CLI.BaseBet, CLI.Policy, CLI.Seed)

	result, err := runGame(context.Background(), logger)
	if err != nil {
		logger.Error("Simulation failed", "error", err)
		kctx.Exit(1)
	}

	printSummary(result)
}

// gameResult accumulates what the event stream reports over a whole game
type gameResult struct {
	deals      int
	actions    int
	winnings   map[string]int
	balances   map[string]int
	pot        int
	gameEnded  bool
	dealsLimit bool
}

func runGame(ctx context.Context, logger *log.Logger) (*gameResult, error) {
	rng := randutil.New(CLI.Seed)

	r, err := room.Create(ctx, room.Config{
		Store:           memstore.New(),
		StartingBaseBet: CLI.BaseBet,
		Logger:          logger,
		Rand:            rng,
	}, "sim")
	if err != nil {
		return nil, err
	}

	bots := make(map[string]*bot, CLI.Players)
	for i := 0; i < CLI.Players; i++ {
		id := fmt.Sprintf("bot-%d", i+1)
		if _, err := r.AddPlayer(ctx, id, CLI.Balance, nil); err != nil {
			return nil, err
		}
		bots[id] = newBot(id, CLI.Policy, rng)
	}

	result := &gameResult{
		winnings: make(map[string]int),
		balances: make(map[string]int),
	}

	r.Events().Subscribe(room.SubscriberFunc(func(event room.Event) {
		switch e := event.(type) {
		case room.NextDealEvent:
			result.deals++
			logger.Info("Deal started", "deal", result.deals, "dealer", e.DealerID)
		case room.DealEndedEvent:
			for id, amount := range e.Winners {
				result.winnings[id] += amount
			}
			logger.Info("Deal ended", "winners", e.Winners)
		case room.GameEndedEvent:
			result.gameEnded = true
		}
	}))

	if err := r.DealCards(ctx); err != nil {
		return nil, err
	}

	// the room chains deals itself; we keep acting for whoever's turn it is
	// until the game ends or the deal limit is hit
	for !result.gameEnded {
		if CLI.Deals > 0 && result.deals > CLI.Deals {
			result.dealsLimit = true
			break
		}

		p := r.CurrentPlayer()
		if err := bots[p.ID].act(ctx, r, p); err != nil {
			return nil, fmt.Errorf("bot %s: %w", p.ID, err)
		}
		result.actions++
	}

	for _, p := range r.Players {
		result.balances[p.ID] = p.Balance
	}
	result.pot = r.PotAmount()
	return result, nil
}

func printSummary(result *gameResult) {
	fmt.Println(headerStyle.Render("=== SIMULATION RESULT ==="))

	outcome := "game ended"
	if result.dealsLimit {
		outcome = "deal limit reached"
	}
	fmt.Printf("Deals: %d  Actions: %d  Outcome: %s\n\n", result.deals, result.actions, outcome)

	fmt.Println(headerStyle.Render("PLAYER      BALANCE     WON"))
	for i := 0; i < CLI.Players; i++ {
		id := fmt.Sprintf("bot-%d", i+1)
		balance := result.balances[id]

		line := fmt.Sprintf("%-10s  %7d  %6d", id, balance, result.winnings[id])
		switch {
		case balance == 0:
			fmt.Println(bustStyle.Render(line + "  (busted)"))
		case balance > CLI.Balance:
			fmt.Println(winStyle.Render(line))
		default:
			fmt.Println(playerStyle.Render(line))
		}
	}

	total := result.pot
	for _, balance := range result.balances {
		total += balance
	}
	fmt.Printf("\nChips in play: %d (started with %d)\n", total, CLI.Players*CLI.Balance)
}
