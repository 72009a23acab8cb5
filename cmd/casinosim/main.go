package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"BlockCasino/internal/game/baccarat"
	"BlockCasino/internal/game/blackjack"
	"BlockCasino/internal/game/dealer"
	"BlockCasino/internal/game/roulette"
	"BlockCasino/internal/game/table"
	"BlockCasino/internal/simulator"
	"BlockCasino/internal/store"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

type CLI struct {
	Game    string  `default:"blackjack" enum:"blackjack,baccarat,roulette" help:"Game to simulate: blackjack, baccarat, roulette"`
	Rounds  int     `default:"1000" help:"Rounds per player"`
	Players int     `default:"4" help:"Concurrent players"`
	Bet     float64 `default:"10" help:"Flat stake per round"`
	Chips   float64 `default:"100000" help:"Starting chips per player"`
	Seed    int64   `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool    `short:"v" help:"Verbose logging"`
}

// Report 所有玩家的汇总
type Report struct {
	Rounds   int
	Wagered  float64
	Credited float64
}

func (r Report) Net() float64 {
	return r.Credited - r.Wagered
}

// HouseEdge 每单位下注庄家的期望收益
func (r Report) HouseEdge() float64 {
	if r.Wagered == 0 {
		return 0
	}
	return -r.Net() / r.Wagered
}

type roundResult struct {
	chips  float64
	ledger table.Ledger
	net    float64
}

// player 用固定策略打完一局
type player func(ctx context.Context, addr string) (roundResult, error)

func newPlayer(cli CLI, st *store.Store, d *dealer.Dealer, logger *log.Logger) (player, error) {
	sim := simulator.Instant()
	switch cli.Game {
	case store.Blackjack:
		e := blackjack.NewEngine(st, d, sim, logger, cli.Chips)
		return func(ctx context.Context, addr string) (roundResult, error) {
			return playBlackjack(ctx, e, addr, cli.Bet)
		}, nil
	case store.Baccarat:
		e := baccarat.NewEngine(st, d, sim, logger, cli.Chips)
		return func(ctx context.Context, addr string) (roundResult, error) {
			return playBaccarat(ctx, e, addr, cli.Bet)
		}, nil
	case store.Roulette:
		e := roulette.NewEngine(st, d, sim, logger, cli.Chips)
		return func(ctx context.Context, addr string) (roundResult, error) {
			return playRoulette(ctx, e, addr, cli.Bet)
		}, nil
	}
	return nil, fmt.Errorf("unknown game %q", cli.Game)
}

func rejected(j table.Journal) error {
	if j.Rejected() {
		return fmt.Errorf("action rejected: %v", j)
	}
	return nil
}

// playBlackjack 庄家规则打法：17 以下要牌，不买保险，接受平赔
func playBlackjack(ctx context.Context, e *blackjack.Engine, addr string, bet float64) (roundResult, error) {
	v, err := e.PlaceBet(ctx, addr, bet)
	if err != nil {
		return roundResult{}, err
	}
	if err := rejected(v.Log); err != nil {
		return roundResult{}, err
	}
	if v, err = e.Deal(ctx, addr); err != nil {
		return roundResult{}, err
	}
	for steps := 0; v.State != blackjack.RoundOver; steps++ {
		if steps > 100 {
			return roundResult{}, fmt.Errorf("round stuck in %s", v.State)
		}
		if err := rejected(v.Log); err != nil {
			return roundResult{}, err
		}
		switch v.State {
		case blackjack.InsuranceBetting:
			v, err = e.DecideInsurance(ctx, addr, false)
		case blackjack.EvenMoneyChoice:
			v, err = e.DecideEvenMoney(ctx, addr, true)
		case blackjack.PlayerTurn:
			if v.Hands[v.ActiveHand].Value < 17 {
				v, err = e.Hit(ctx, addr)
			} else {
				v, err = e.Stand(ctx, addr)
			}
		default:
			return roundResult{}, fmt.Errorf("unexpected state %s", v.State)
		}
		if err != nil {
			return roundResult{}, err
		}
	}
	res := roundResult{chips: v.Chips, ledger: v.Ledger, net: v.NetRoundWinnings}
	_, err = e.NextRound(ctx, addr)
	return res, err
}

func playBaccarat(ctx context.Context, e *baccarat.Engine, addr string, bet float64) (roundResult, error) {
	v, err := e.PlaceBet(ctx, addr, baccarat.BetBanker, bet)
	if err != nil {
		return roundResult{}, err
	}
	if err := rejected(v.Log); err != nil {
		return roundResult{}, err
	}
	if v, err = e.Deal(ctx, addr); err != nil {
		return roundResult{}, err
	}
	if err := rejected(v.Log); err != nil {
		return roundResult{}, err
	}
	res := roundResult{chips: v.Chips, ledger: v.Ledger, net: v.NetRoundWinnings}
	_, err = e.NextRound(ctx, addr)
	return res, err
}

func playRoulette(ctx context.Context, e *roulette.Engine, addr string, bet float64) (roundResult, error) {
	v, err := e.PlaceBet(ctx, addr, roulette.Bet{Kind: roulette.RedBet}, bet)
	if err != nil {
		return roundResult{}, err
	}
	if err := rejected(v.Log); err != nil {
		return roundResult{}, err
	}
	if v, err = e.Spin(ctx, addr); err != nil {
		return roundResult{}, err
	}
	if err := rejected(v.Log); err != nil {
		return roundResult{}, err
	}
	if v, err = e.CalculatePayouts(ctx, addr); err != nil {
		return roundResult{}, err
	}
	res := roundResult{chips: v.Chips, ledger: v.Ledger, net: v.NetRoundWinnings}
	_, err = e.NextRound(ctx, addr)
	return res, err
}

// simulate 每个玩家一个 goroutine，逐局校验筹码守恒
func simulate(ctx context.Context, cli CLI, logger *log.Logger) (Report, error) {
	st := store.New(store.NewMemoryRepo(), logger)
	play, err := newPlayer(cli, st, dealer.NewDealer(cli.Seed), logger)
	if err != nil {
		return Report{}, err
	}

	var (
		mu     sync.Mutex
		report Report
	)
	g, ctx := errgroup.WithContext(ctx)
	for p := 0; p < cli.Players; p++ {
		addr := fmt.Sprintf("sim-%03d", p)
		g.Go(func() error {
			chips := cli.Chips
			for round := 0; round < cli.Rounds && chips >= cli.Bet; round++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := play(ctx, addr)
				if err != nil {
					return fmt.Errorf("%s round %d: %w", addr, round, err)
				}
				if math.Abs(res.ledger.Net()-res.net) > 1e-6 || math.Abs(chips+res.net-res.chips) > 1e-6 {
					return fmt.Errorf("%s round %d: chips not conserved (before %v, net %v, after %v)",
						addr, round, chips, res.net, res.chips)
				}
				chips = res.chips

				mu.Lock()
				report.Rounds++
				report.Wagered += res.ledger.Wagered
				report.Credited += res.ledger.Credited
				mu.Unlock()
			}
			logger.Debug("player finished", "player", addr, "chips", chips)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		// 引擎每个动作都会打 debug 日志
		logger.SetLevel(log.WarnLevel)
	}

	start := time.Now()
	report, err := simulate(context.Background(), cli, logger)
	kctx.FatalIfErrorf(err)

	fmt.Printf("game:       %s (seed %d)\n", cli.Game, cli.Seed)
	fmt.Printf("rounds:     %d across %d players in %s\n", report.Rounds, cli.Players, time.Since(start).Round(time.Millisecond))
	fmt.Printf("wagered:    %.2f\n", report.Wagered)
	fmt.Printf("credited:   %.2f\n", report.Credited)
	fmt.Printf("net:        %+.2f\n", report.Net())
	fmt.Printf("house edge: %.3f%%\n", report.HouseEdge()*100)
}
