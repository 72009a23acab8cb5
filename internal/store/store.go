package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"BlockCasino/internal/storage"

	"github.com/charmbracelet/log"
)

// 每个游戏一条独立记录
const (
	Blackjack = "blackjack"
	Baccarat  = "baccarat"
	Roulette  = "roulette"
	Chat      = "chat"
)

var ErrUnknownGame = errors.New("unknown game")

var games = map[string]bool{Blackjack: true, Baccarat: true, Roulette: true, Chat: true}

type Store struct {
	repo Repo
	log  *log.Logger
}

func New(repo Repo, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{repo: repo, log: logger}
}

func recordKey(player, game string) string {
	return fmt.Sprintf("casino:%s:%s", player, game)
}

// Load 在 defaults 之上解码已存记录
//
// 已存字段覆盖默认值，记录里缺失的字段（例如新增的 settings 项）保留默认值；
// 没有记录时直接返回 defaults。
func Load[T any](ctx context.Context, s *Store, player, game string, defaults T) (T, error) {
	if !games[game] {
		return defaults, fmt.Errorf("load %q: %w", game, ErrUnknownGame)
	}
	data, ok, err := s.repo.Load(ctx, recordKey(player, game))
	if err != nil {
		return defaults, fmt.Errorf("load %s/%s: %w", player, game, err)
	}
	if !ok {
		s.log.Debug("no stored record, using defaults", "player", player, "game", game)
		return defaults, nil
	}
	rec := defaults
	if err := json.Unmarshal(data, &rec); err != nil {
		return defaults, fmt.Errorf("decode %s/%s: %w", player, game, err)
	}
	return rec, nil
}

// Save 整条覆盖
func (s *Store) Save(ctx context.Context, player, game string, rec any) error {
	if !games[game] {
		return fmt.Errorf("save %q: %w", game, ErrUnknownGame)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", player, game, err)
	}
	if err := s.repo.Save(ctx, recordKey(player, game), data); err != nil {
		return fmt.Errorf("save %s/%s: %w", player, game, err)
	}
	return nil
}

// Backend 连接参数，对应 config.C 中的 store/redis/database 段
type Backend struct {
	Kind          string // memory | redis | postgres
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
}

// Open 按配置选择存储实现
func Open(ctx context.Context, b Backend) (Repo, error) {
	switch b.Kind {
	case "", "memory":
		return NewMemoryRepo(), nil
	case "redis":
		rdb, err := storage.OpenRedis(ctx, b.RedisAddr, b.RedisPassword, b.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisRepo(rdb), nil
	case "postgres":
		db, err := storage.OpenPostgres(ctx, b.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return NewPostgresRepo(db), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", b.Kind)
}
