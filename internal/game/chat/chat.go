// Package chat 保存玩家与牌桌的聊天记录，只保留最近的消息。
package chat

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"BlockCasino/internal/game/engine"
	"BlockCasino/internal/game/table"
	"BlockCasino/internal/simulator"
	"BlockCasino/internal/store"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

const (
	HistorySize = 50
	MaxLength   = 500
)

type Message struct {
	ID   string    `json:"id"`
	From string    `json:"from"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type Record struct {
	Messages []Message     `json:"messages"`
	Log      table.Journal `json:"log"`
}

type View struct {
	Messages []Message     `json:"messages"`
	Log      table.Journal `json:"log"`
}

func Sanitize(r Record) View {
	return View{Messages: slices.Clone(r.Messages), Log: slices.Clone(r.Log)}
}

func (v View) Clone() View {
	return Sanitize(Record(v))
}

func (v View) Advisories() table.Journal {
	return v.Log
}

func (r *Record) post(from, text string, at time.Time) {
	r.Log = nil
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		r.Log.Add(table.CatError, "message is empty")
		return
	case utf8.RuneCountInString(text) > MaxLength:
		r.Log.Add(table.CatError, "message longer than %d characters", MaxLength)
		return
	}
	r.Messages = append(r.Messages, Message{ID: uuid.NewString(), From: from, Text: text, At: at})
	if n := len(r.Messages); n > HistorySize {
		r.Messages = slices.Clone(r.Messages[n-HistorySize:])
	}
}

type Engine struct {
	h     *engine.Harness[Record, View]
	clock quartz.Clock
}

func NewEngine(st *store.Store, sim *simulator.Simulator, clock quartz.Clock, logger *log.Logger) *Engine {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Engine{
		h: engine.NewHarness(store.Chat, st, sim, logger,
			func() Record { return Record{} },
			Sanitize,
		),
		clock: clock,
	}
}

func (e *Engine) History(ctx context.Context, player string) (View, error) {
	return e.h.View(ctx, player)
}

func (e *Engine) Send(ctx context.Context, player, text string) (View, error) {
	at := e.clock.Now().UTC()
	return e.h.Do(ctx, player, "send", func(r *Record) { r.post(player, text, at) })
}
