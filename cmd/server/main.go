package main

import (
	"log"
	"time"

	_ "github.com/katarmal-ram/huntqr/docs"
	"github.com/katarmal-ram/huntqr/internal/config"
	"github.com/katarmal-ram/huntqr/internal/database"
	"github.com/katarmal-ram/huntqr/internal/handlers"
	"github.com/katarmal-ram/huntqr/internal/middleware"
	"github.com/katarmal-ram/huntqr/internal/services"
	"github.com/katarmal-ram/huntqr/internal/storage"
	"github.com/katarmal-ram/huntqr/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           huntqr API
// @version         1.0
// @description     Timed scavenger-hunt game engine: teams redeem single-use codes for randomized point deltas with live standings.
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	var store storage.Store
	switch cfg.StoreDriver {
	case "memory":
		log.Println("using in-memory store; state is lost on restart")
		store = storage.NewMemoryStore()
	default:
		db := database.Connect(cfg)
		database.AutoMigrate(db)
		store = storage.NewGormStore(db)
	}

	hub := ws.NewHub()

	authService := services.NewAuthService(cfg.JWTSecret)
	teamService := services.NewTeamService(store)
	sessionService := services.NewSessionService(store, hub, teamService)
	codeService := services.NewCodeService(store)
	scoringService := services.NewScoringService(services.NewLockedRand(time.Now().UnixNano()))
	gameService := services.NewGameService(store, sessionService, codeService, scoringService, teamService, hub)

	sessionHandler := handlers.NewSessionHandler(sessionService)
	codeHandler := handlers.NewCodeHandler(codeService, sessionService)
	teamHandler := handlers.NewTeamHandler(teamService, sessionService)
	playerHandler := handlers.NewPlayerHandler(gameService, authService)
	exportHandler := handlers.NewExportHandler(gameService, sessionService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Key"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/session/:id", wsHandler.HandleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/session", sessionHandler.GetSession)
		api.GET("/teams", teamHandler.ListTeams)

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.AdminKey))
		{
			admin.POST("/session", sessionHandler.CreateSession)
			admin.GET("/session", sessionHandler.GetSession)
			admin.POST("/session/start", sessionHandler.StartSession)
			admin.POST("/session/end", sessionHandler.EndSession)
			admin.GET("/codes", codeHandler.ListCodes)
			admin.POST("/codes", codeHandler.AddCode)
			admin.DELETE("/codes/:id", codeHandler.DeleteCode)
			admin.GET("/teams", teamHandler.ListTeams)
			admin.POST("/teams", teamHandler.CreateTeam)
			admin.GET("/scans", exportHandler.ListScans)
			admin.GET("/export-csv", exportHandler.ExportCSV)
		}

		player := api.Group("/player")
		{
			player.POST("/join", playerHandler.Join)

			authed := player.Group("")
			authed.Use(middleware.PlayerAuth(authService))
			{
				authed.GET("/me", playerHandler.Me)
				authed.POST("/scan", playerHandler.Redeem)
			}
		}
	}

	log.Printf("server listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
