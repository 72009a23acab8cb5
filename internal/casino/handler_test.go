package casino

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"BlockCasino/internal/auth"
	"BlockCasino/internal/game/baccarat"
	"BlockCasino/internal/game/blackjack"
	"BlockCasino/internal/game/dealer"
	"BlockCasino/internal/game/roulette"
	"BlockCasino/internal/middleware"
	"BlockCasino/internal/simulator"
	"BlockCasino/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func newServer(t *testing.T, repo store.Repo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.New(repo, nil)
	d := dealer.NewDealer(9)
	sim := simulator.Instant()
	h := NewHandler(
		blackjack.NewEngine(st, d, sim, nil, 1000),
		baccarat.NewEngine(st, d, sim, nil, 1000),
		roulette.NewEngine(st, d, sim, nil, 1000),
		nil,
	)
	r := gin.New()
	h.Register(r.Group("/api", middleware.JwtAuthMiddleware(secret)))
	return r
}

func token(t *testing.T, addr string) string {
	t.Helper()
	tok, err := auth.IssueToken(secret, addr, time.Now())
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, r *gin.Engine, tok, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRequiresToken(t *testing.T) {
	r := newServer(t, store.NewMemoryRepo())
	w := call(t, r, "", http.MethodGet, "/api/blackjack/state", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBlackjackFlow(t *testing.T) {
	r := newServer(t, store.NewMemoryRepo())
	tok := token(t, "0xA")

	w := call(t, r, tok, http.MethodPost, "/api/blackjack/bet", AmountRequest{Amount: 50})
	require.Equal(t, http.StatusOK, w.Code)
	v := decodeBody[blackjack.View](t, w)
	assert.Equal(t, 50.0, v.Bet)
	assert.Equal(t, 950.0, v.Chips)

	w = call(t, r, tok, http.MethodPost, "/api/blackjack/deal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	v = decodeBody[blackjack.View](t, w)
	assert.NotEqual(t, blackjack.Betting, v.State)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "deck")

	// 其他玩家看不到 0xA 的局面
	w = call(t, r, token(t, "0xB"), http.MethodGet, "/api/blackjack/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, blackjack.Betting, decodeBody[blackjack.View](t, w).State)
}

func TestRuleRejectionIsStill200(t *testing.T) {
	r := newServer(t, store.NewMemoryRepo())
	tok := token(t, "0xA")

	w := call(t, r, tok, http.MethodPost, "/api/blackjack/hit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	v := decodeBody[blackjack.View](t, w)
	assert.True(t, v.Log.Rejected())
	assert.Equal(t, blackjack.Betting, v.State)
}

func TestBadBodies(t *testing.T) {
	r := newServer(t, store.NewMemoryRepo())
	tok := token(t, "0xA")

	assert.Equal(t, http.StatusBadRequest, call(t, r, tok, http.MethodPost, "/api/blackjack/bet", map[string]any{}).Code)
	assert.Equal(t, http.StatusBadRequest, call(t, r, tok, http.MethodPost, "/api/blackjack/insurance", map[string]any{}).Code)
	assert.Equal(t, http.StatusBadRequest, call(t, r, tok, http.MethodPost, "/api/roulette/bet", RouletteBetRequest{Bet: "corner_1-2-3-4", Amount: 5}).Code)
	assert.Equal(t, http.StatusBadRequest, call(t, r, tok, http.MethodPost, "/api/baccarat/bet", map[string]any{"amount": 5}).Code)
}

func TestBaccaratAndRouletteFlow(t *testing.T) {
	r := newServer(t, store.NewMemoryRepo())
	tok := token(t, "0xA")

	w := call(t, r, tok, http.MethodPost, "/api/baccarat/bet", BaccaratBetRequest{Type: baccarat.BetTie, Amount: 10})
	require.Equal(t, http.StatusOK, w.Code)
	w = call(t, r, tok, http.MethodPost, "/api/baccarat/deal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	bv := decodeBody[baccarat.View](t, w)
	assert.Equal(t, baccarat.RoundOver, bv.State)
	assert.Len(t, bv.History, 1)

	w = call(t, r, tok, http.MethodPost, "/api/roulette/bet", RouletteBetRequest{Bet: "dozen_2", Amount: 10})
	require.Equal(t, http.StatusOK, w.Code)
	w = call(t, r, tok, http.MethodPost, "/api/roulette/spin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = call(t, r, tok, http.MethodPost, "/api/roulette/payouts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rv := decodeBody[roulette.View](t, w)
	assert.Equal(t, roulette.Payout, rv.State)
	assert.InDelta(t, 1000+rv.NetRoundWinnings, rv.Chips, 1e-9)

	w = call(t, r, tok, http.MethodPut, "/api/roulette/settings", roulette.Settings{MinBet: 1, MaxBet: 100})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, roulette.Betting, decodeBody[roulette.View](t, w).State)
}

type brokenRepo struct{}

func (brokenRepo) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func (brokenRepo) Save(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func TestStoreFailureIs500(t *testing.T) {
	r := newServer(t, brokenRepo{})
	w := call(t, r, token(t, "0xA"), http.MethodGet, "/api/roulette/state", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")
}
