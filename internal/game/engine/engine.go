// Package engine 串起每个游戏动作的请求往返：
// 读取记录 → 规则变换 → 保存 → 脱敏 → 模拟延迟后返回副本。
package engine

import (
	"context"
	"sync"
	"time"

	"BlockCasino/internal/game/table"
	"BlockCasino/internal/simulator"
	"BlockCasino/internal/store"

	"github.com/charmbracelet/log"
)

// Snapshot 返回给调用方的脱敏视图
type Snapshot[V any] interface {
	simulator.Cloner[V]
	Advisories() table.Journal
}

// Harness 每个游戏一个实例
type Harness[R any, V Snapshot[V]] struct {
	game     string
	store    *store.Store
	sim      *simulator.Simulator
	log      *log.Logger
	defaults func() R
	sanitize func(R) V

	// 同一玩家的读-改-写串行执行，不覆盖模拟延迟
	locks sync.Map
}

func NewHarness[R any, V Snapshot[V]](
	game string,
	st *store.Store,
	sim *simulator.Simulator,
	logger *log.Logger,
	defaults func() R,
	sanitize func(R) V,
) *Harness[R, V] {
	if logger == nil {
		logger = log.Default()
	}
	return &Harness[R, V]{
		game:     game,
		store:    st,
		sim:      sim,
		log:      logger.With("game", game),
		defaults: defaults,
		sanitize: sanitize,
	}
}

func (h *Harness[R, V]) lock(player string) *sync.Mutex {
	mu, _ := h.locks.LoadOrStore(player, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// View 只读当前记录
func (h *Harness[R, V]) View(ctx context.Context, player string) (V, error) {
	var zero V
	rec, err := store.Load(ctx, h.store, player, h.game, h.defaults())
	if err != nil {
		h.log.Error("load failed", "player", player, "err", err)
		return zero, err
	}
	return simulator.Respond(h.sim, h.sanitize(rec)), nil
}

// Do 执行一个动作；规则层的拒绝写在快照的提示里，error 只表示存储故障
func (h *Harness[R, V]) Do(ctx context.Context, player, action string, mutate func(*R)) (V, error) {
	var zero V
	start := time.Now()

	view, err := func() (V, error) {
		mu := h.lock(player)
		mu.Lock()
		defer mu.Unlock()

		rec, err := store.Load(ctx, h.store, player, h.game, h.defaults())
		if err != nil {
			return zero, err
		}
		mutate(&rec)
		if err := h.store.Save(ctx, player, h.game, rec); err != nil {
			return zero, err
		}
		return h.sanitize(rec), nil
	}()
	if err != nil {
		h.log.Error("action failed", "player", player, "action", action, "err", err)
		return zero, err
	}

	if notes := view.Advisories(); notes.Rejected() {
		h.log.Debug("action rejected", "player", player, "action", action, "log", notes)
	} else {
		h.log.Debug("action applied", "player", player, "action", action, "took", time.Since(start))
	}
	return simulator.Respond(h.sim, view), nil
}
