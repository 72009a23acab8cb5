package main

import (
	"context"
	"net/http"
	"time"

	"BlockCasino/config"
	"BlockCasino/internal/auth"
	"BlockCasino/internal/casino"
	"BlockCasino/internal/game/baccarat"
	"BlockCasino/internal/game/blackjack"
	"BlockCasino/internal/game/chat"
	"BlockCasino/internal/game/dealer"
	"BlockCasino/internal/game/manager"
	"BlockCasino/internal/game/roulette"
	"BlockCasino/internal/middleware"
	"BlockCasino/internal/simulator"
	"BlockCasino/internal/store"
	"BlockCasino/internal/utils"
	"BlockCasino/internal/websocket"

	"github.com/coder/quartz"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.Load(); err != nil {
		utils.Print.Fatal("Failed to load config", "err", err)
	}
	logger := utils.Init(config.C.Log.Level)

	//-------------------------------------------------------
	// 1. 初始化存储
	//-------------------------------------------------------
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, err := store.Open(ctx, store.Backend{
		Kind:          config.C.Store.Backend,
		RedisAddr:     config.C.Redis.Addr,
		RedisPassword: config.C.Redis.Password,
		RedisDB:       config.C.Redis.DB,
		PostgresDSN:   config.C.Database.DSN,
	})
	cancel()
	if err != nil {
		logger.Fatal("Store init failed", "backend", config.C.Store.Backend, "err", err)
	}
	st := store.New(repo, logger.With("component", "store"))

	//-------------------------------------------------------
	// 2. 初始化引擎
	//-------------------------------------------------------
	seed := config.C.Casino.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	clock := quartz.NewReal()
	d := dealer.NewDealer(seed)
	sim := simulator.New(clock, time.Duration(config.C.Casino.LatencyMs)*time.Millisecond)
	chips := config.C.Casino.StartingChips

	engines := manager.Engines{
		Blackjack: blackjack.NewEngine(st, d, sim, logger, chips),
		Baccarat:  baccarat.NewEngine(st, d, sim, logger, chips),
		Roulette:  roulette.NewEngine(st, d, sim, logger, chips),
		Chat:      chat.NewEngine(st, sim, clock, logger),
	}

	//-------------------------------------------------------
	// 3. 初始化 Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//-------------------------------------------------------
	// 4. 初始化 Hub 与 GameManager
	//-------------------------------------------------------
	hub := websocket.NewHub(logger)
	gameMgr := manager.NewGameManager(hub, engines, logger)
	hub.OnIncoming = gameMgr.HandlePlayerMessage
	go hub.Run()

	authGroup := r.Group("/auth")
	{
		ah := auth.NewHandler([]byte(config.C.JWT.Secret), auth.NewNonceStore(clock, 0), logger)
		authGroup.GET("/nonce", ah.Nonce)
		authGroup.POST("/nonce", ah.Nonce)
		authGroup.POST("/login", ah.Login)
	}

	//-------------------------------------------------------
	// 5. 需要 JWT 的入口：WebSocket 与 HTTP 动作
	//-------------------------------------------------------
	secret := []byte(config.C.JWT.Secret)
	authed := r.Group("/", middleware.JwtAuthMiddleware(secret))
	{
		authed.GET("/ws", websocket.ServeWS(hub))
		casino.NewHandler(engines.Blackjack, engines.Baccarat, engines.Roulette, logger).
			Register(authed.Group("/api"))
	}

	//-------------------------------------------------------
	// 6. 启动服务器
	//-------------------------------------------------------
	logger.Info("Server running", "port", config.C.Server.Port, "store", config.C.Store.Backend, "latency", sim.Delay())
	if err := r.Run(config.C.Server.Port); err != nil {
		logger.Fatal("Server stopped", "err", err)
	}
}
