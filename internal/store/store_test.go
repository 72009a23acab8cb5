package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSettings struct {
	Decks     int  `json:"decks"`
	HitSoft17 bool `json:"hitSoft17"`
}

type testRecord struct {
	Settings testSettings `json:"settings"`
	Chips    float64      `json:"chips"`
	History  []string     `json:"history"`
}

func defaults() testRecord {
	return testRecord{Settings: testSettings{Decks: 6, HitSoft17: true}, Chips: 1000}
}

func runStoreFlow(t *testing.T, repo Repo) {
	ctx := context.Background()
	s := New(repo, nil)

	// 无记录 -> 默认值
	rec, err := Load(ctx, s, "0xA", Blackjack, defaults())
	require.NoError(t, err)
	assert.Equal(t, defaults(), rec)

	rec.Chips = 250
	rec.History = []string{"win"}
	rec.Settings.Decks = 2
	require.NoError(t, s.Save(ctx, "0xA", Blackjack, rec))

	got, err := Load(ctx, s, "0xA", Blackjack, defaults())
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// 不同玩家、不同游戏互不影响
	other, err := Load(ctx, s, "0xB", Blackjack, defaults())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, other.Chips)
	bac, err := Load(ctx, s, "0xA", Baccarat, defaults())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, bac.Chips)

	// 后写覆盖
	rec.Chips = 10
	require.NoError(t, s.Save(ctx, "0xA", Blackjack, rec))
	got, err = Load(ctx, s, "0xA", Blackjack, defaults())
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Chips)
}

func TestMemoryRepo_StoreFlow(t *testing.T) {
	runStoreFlow(t, NewMemoryRepo())
}

func TestRedisRepo_StoreFlow(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	runStoreFlow(t, NewRedisRepo(rdb))

	assert.True(t, mr.Exists("casino:0xA:blackjack"), "record key should exist in redis")
	assert.False(t, mr.Exists("casino:0xB:blackjack"), "loading defaults must not write")
}

func TestLoadBackfillsNewFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	s := New(repo, nil)

	// 旧版本记录缺少 hitSoft17 与 history
	require.NoError(t, repo.Save(ctx, recordKey("0xA", Roulette), []byte(`{"settings":{"decks":1},"chips":42}`)))

	got, err := Load(ctx, s, "0xA", Roulette, defaults())
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.Chips)
	assert.Equal(t, 1, got.Settings.Decks)
	assert.True(t, got.Settings.HitSoft17, "missing settings field should keep its default")
}

func TestUnknownGame(t *testing.T) {
	s := New(NewMemoryRepo(), nil)
	_, err := Load(context.Background(), s, "0xA", "poker", defaults())
	assert.ErrorIs(t, err, ErrUnknownGame)
	assert.ErrorIs(t, s.Save(context.Background(), "0xA", "poker", defaults()), ErrUnknownGame)
}

func TestMemoryRepoCopiesData(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	data := []byte(`{"chips":1}`)
	require.NoError(t, repo.Save(ctx, "k", data))
	data[2] = 'X'

	got, ok, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"chips":1}`, string(got))
}

func TestOpenMemoryAndUnknown(t *testing.T) {
	repo, err := Open(context.Background(), Backend{Kind: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, repo)

	_, err = Open(context.Background(), Backend{Kind: "etcd"})
	assert.Error(t, err)
}

func TestOpenRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	repo, err := Open(context.Background(), Backend{Kind: "redis", RedisAddr: mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), "k", []byte("v")))
	assert.True(t, mr.Exists("k"))
}
