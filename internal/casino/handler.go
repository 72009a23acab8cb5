// Package casino 暴露各游戏引擎的 HTTP 动作接口。
//
// 规则层的拒绝仍返回 200 和快照（见快照里的 log），只有请求体错误返回 400、
// 存储故障返回 500。
package casino

import (
	"context"
	"net/http"

	"BlockCasino/internal/game/baccarat"
	"BlockCasino/internal/game/blackjack"
	"BlockCasino/internal/game/roulette"
	"BlockCasino/internal/middleware"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	blackjack *blackjack.Engine
	baccarat  *baccarat.Engine
	roulette  *roulette.Engine
	log       *log.Logger
}

func NewHandler(bj *blackjack.Engine, bc *baccarat.Engine, rl *roulette.Engine, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{blackjack: bj, baccarat: bc, roulette: rl, log: logger.With("component", "http")}
}

// Register 挂到已经过 JWT 校验的路由组上
func (h *Handler) Register(api gin.IRouter) {
	bj := api.Group("/blackjack")
	bj.GET("/state", action(h, h.blackjack.State))
	bj.PUT("/settings", withBody(h, h.blackjack.UpdateSettings))
	bj.POST("/bet", withBody(h, func(ctx context.Context, p string, a AmountRequest) (blackjack.View, error) {
		return h.blackjack.PlaceBet(ctx, p, a.Amount)
	}))
	bj.POST("/bet/clear", action(h, h.blackjack.ClearBet))
	bj.POST("/bet/repeat", action(h, h.blackjack.RepeatBet))
	bj.POST("/bet/max", action(h, h.blackjack.MaxBet))
	bj.POST("/deal", action(h, h.blackjack.Deal))
	bj.POST("/insurance", withBody(h, func(ctx context.Context, p string, c ChoiceRequest) (blackjack.View, error) {
		return h.blackjack.DecideInsurance(ctx, p, *c.Accept)
	}))
	bj.POST("/even-money", withBody(h, func(ctx context.Context, p string, c ChoiceRequest) (blackjack.View, error) {
		return h.blackjack.DecideEvenMoney(ctx, p, *c.Accept)
	}))
	bj.POST("/hit", action(h, h.blackjack.Hit))
	bj.POST("/stand", action(h, h.blackjack.Stand))
	bj.POST("/double", action(h, h.blackjack.Double))
	bj.POST("/split", action(h, h.blackjack.Split))
	bj.POST("/surrender", action(h, h.blackjack.Surrender))
	bj.POST("/next-round", action(h, h.blackjack.NextRound))

	bc := api.Group("/baccarat")
	bc.GET("/state", action(h, h.baccarat.State))
	bc.PUT("/settings", withBody(h, h.baccarat.UpdateSettings))
	bc.POST("/bet", withBody(h, func(ctx context.Context, p string, b BaccaratBetRequest) (baccarat.View, error) {
		return h.baccarat.PlaceBet(ctx, p, b.Type, b.Amount)
	}))
	bc.POST("/bet/clear", action(h, h.baccarat.ClearBets))
	bc.POST("/bet/repeat", action(h, h.baccarat.RepeatLastBet))
	bc.POST("/deal", action(h, h.baccarat.Deal))
	bc.POST("/next-round", action(h, h.baccarat.NextRound))

	rl := api.Group("/roulette")
	rl.GET("/state", action(h, h.roulette.State))
	rl.PUT("/settings", withBody(h, h.roulette.UpdateSettings))
	rl.POST("/bet", h.rouletteBet)
	rl.POST("/bet/clear", action(h, h.roulette.ClearBets))
	rl.POST("/bet/repeat", action(h, h.roulette.RepeatLastBet))
	rl.POST("/spin", action(h, h.roulette.Spin))
	rl.POST("/payouts", action(h, h.roulette.CalculatePayouts))
	rl.POST("/next-round", action(h, h.roulette.NextRound))
}

type AmountRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

type ChoiceRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

type BaccaratBetRequest struct {
	Type   baccarat.BetType `json:"type" binding:"required"`
	Amount float64          `json:"amount" binding:"required"`
}

type RouletteBetRequest struct {
	Bet    string  `json:"bet" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// POST /api/roulette/bet  body: {bet: "corner_1-2-4-5", amount}
func (h *Handler) rouletteBet(c *gin.Context) {
	var req RouletteBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bet, err := roulette.ParseBet(req.Bet)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := h.roulette.PlaceBet(c.Request.Context(), player(c), bet, req.Amount)
	h.respond(c, v, err)
}

func player(c *gin.Context) string {
	return c.GetString(middleware.AddressKey)
}

func (h *Handler) respond(c *gin.Context, v any, err error) {
	if err != nil {
		h.log.Error("request failed", "path", c.FullPath(), "player", player(c), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func action[V any](h *Handler, f func(context.Context, string) (V, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := f(c.Request.Context(), player(c))
		h.respond(c, v, err)
	}
}

func withBody[B, V any](h *Handler, f func(context.Context, string, B) (V, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body B
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		v, err := f(c.Request.Context(), player(c), body)
		h.respond(c, v, err)
	}
}
