package manager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"BlockCasino/internal/game/baccarat"
	"BlockCasino/internal/game/blackjack"
	"BlockCasino/internal/game/chat"
	"BlockCasino/internal/game/roulette"
	"BlockCasino/internal/websocket"

	"github.com/charmbracelet/log"
)

// Engines 各游戏引擎；为 nil 的游戏不注册事件
type Engines struct {
	Blackjack *blackjack.Engine
	Baccarat  *baccarat.Engine
	Roulette  *roulette.Engine
	Chat      *chat.Engine
}

// handler 执行一个事件，返回要推送的快照
type handler func(ctx context.Context, player string, data json.RawMessage) (any, error)

type route struct {
	reply string
	run   handler
}

var (
	errBadPayload   = errors.New("bad payload")
	errUnknownEvent = errors.New("unknown event")
)

// GameManager 把 websocket 事件分发到各游戏引擎
type GameManager struct {
	mu       sync.Mutex
	inFlight map[string]bool // player address → 是否有动作未返回
	routes   map[string]route
	hub      websocket.HubInterface
	log      *log.Logger
	wg       sync.WaitGroup
}

func NewGameManager(hub websocket.HubInterface, engines Engines, logger *log.Logger) *GameManager {
	if logger == nil {
		logger = log.Default()
	}
	m := &GameManager{
		inFlight: make(map[string]bool),
		routes:   make(map[string]route),
		hub:      hub,
		log:      logger.With("component", "manager"),
	}
	if engines.Blackjack != nil {
		m.registerBlackjack(engines.Blackjack)
	}
	if engines.Baccarat != nil {
		m.registerBaccarat(engines.Baccarat)
	}
	if engines.Roulette != nil {
		m.registerRoulette(engines.Roulette)
	}
	if engines.Chat != nil {
		m.registerChat(engines.Chat)
	}
	return m
}

func (m *GameManager) handle(event, reply string, run handler) {
	m.routes[event] = route{reply: reply, run: run}
}

// Events 已注册的事件名
func (m *GameManager) Events() []string {
	out := make([]string, 0, len(m.routes))
	for e := range m.routes {
		out = append(out, e)
	}
	return out
}

// HandlePlayerMessage 统一入口（来自 Hub.OnIncoming），不阻塞 Hub
//
// 同一玩家同时只能有一个动作在途，第二个直接回 action_rejected。
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	r, ok := m.routes[msg.Event]
	if !ok {
		m.sendError(msg.From, msg.Event, fmt.Errorf("%w %q", errUnknownEvent, msg.Event))
		return
	}

	m.mu.Lock()
	if m.inFlight[msg.From] {
		m.mu.Unlock()
		m.log.Debug("action rejected, previous one in flight", "player", msg.From, "event", msg.Event)
		m.hub.SendToPlayer(msg.From, websocket.OutgoingMessage{
			Event: "action_rejected",
			Data:  map[string]any{"event": msg.Event, "reason": "previous action still in flight"},
		})
		return
	}
	m.inFlight[msg.From] = true
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer func() {
			m.mu.Lock()
			delete(m.inFlight, msg.From)
			m.mu.Unlock()
		}()
		m.dispatch(msg, r)
	}()
}

func (m *GameManager) dispatch(msg websocket.IncomingMessage, r route) {
	view, err := r.run(context.Background(), msg.From, msg.Data)
	if err != nil {
		m.sendError(msg.From, msg.Event, err)
		return
	}
	m.hub.SendToPlayer(msg.From, websocket.OutgoingMessage{Event: r.reply, Data: view})
}

func (m *GameManager) sendError(player, event string, err error) {
	if !errors.Is(err, errBadPayload) && !errors.Is(err, errUnknownEvent) {
		m.log.Error("event failed", "player", player, "event", event, "err", err)
	}
	m.hub.SendToPlayer(player, websocket.OutgoingMessage{
		Event: "error",
		Data:  map[string]any{"event": event, "error": err.Error()},
	})
}

// Wait 等待所有在途动作完成
func (m *GameManager) Wait() {
	m.wg.Wait()
}

func decode[T any](data json.RawMessage) (T, error) {
	var v T
	if len(data) == 0 || string(data) == "null" {
		return v, fmt.Errorf("%w: missing data", errBadPayload)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return v, nil
}

type amountPayload struct {
	Amount float64 `json:"amount"`
}

type choicePayload struct {
	Accept bool `json:"accept"`
}
