package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads .env files in development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/auth"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/config"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/database"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/handler"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/middleware"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/oauth"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/queue"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connect failed: %v", err)
    }
    defer db.Close()

    // Repositories. The role repo gets the built-in role table so it can
    // seed admin/manager/agent on first use.
    userRepo := repository.NewUserRepo(db)
    roleRepo := repository.NewRoleRepo(db, auth.DefaultRolePermissions)
    hotelRepo := repository.NewHotelRepo(db)
    ticketRepo := repository.NewTicketRepo(db)
    auditRepo := repository.NewAuditRepo(db)
    settingRepo := repository.NewSettingRepo(db)
    sessionRepo := repository.NewSessionRepo(db)

    // The shared resolution pipeline both guards run: cookie codec,
    // user materializer, permission aggregator.
    codec := auth.NewTokenCodec(cfg.AuthSecret, cfg.CookieName)
    ensure := &auth.Materializer{
        Users:       userRepo,
        DefaultRole: "agent",
        AssignTenant: auth.FixedTenant(cfg.DefaultHotelID),
    }
    svc := &auth.Service{
        Codec:        codec,
        Materializer: ensure,
        Aggregator:   auth.NewAggregator(userRepo, nil),
        Sessions:     sessionRepo,
    }

    // Google login is optional; with a nil exchanger the Google routes
    // answer 503.
    var google oauth.Exchanger
    if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
        google = oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
    }

    // Redis backs the login rate limiter and the public response cache.
    // A nil client disables both rather than blocking startup.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and response cache disabled")
    }
    limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    // Audit events flow through RabbitMQ; the consumer drains them into
    // the audit_logs table and keeps reconnecting across broker restarts.
    go func() {
        if err := queue.StartAuditConsumer(auditRepo); err != nil {
            log.Printf("audit consumer stopped: %v", err)
        }
    }()

    authHandler := handler.NewAuthHandler(cfg, userRepo, sessionRepo, codec, ensure, google)
    ticketHandler := handler.NewTicketHandler(ticketRepo)
    hotelHandler := handler.NewHotelHandler(hotelRepo)
    auditHandler := handler.NewAuditHandler(auditRepo)
    settingHandler := handler.NewSettingHandler(settingRepo)
    userHandler := handler.NewUserHandler(cfg, userRepo, sessionRepo)
    roleHandler := handler.NewRoleHandler(roleRepo)

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAuth(e, authHandler, svc, limiter)
    router.RegisterPublic(e, hotelHandler, cache)
    router.RegisterAPI(e, svc, ticketHandler, hotelHandler, auditHandler, settingHandler)
    router.RegisterAdmin(e, svc, userHandler, roleHandler)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
