package main

import (
	"os"

	"github.com/benbeisheim/shapechess-backend/internal/config"
	"github.com/benbeisheim/shapechess-backend/internal/controller"
	"github.com/benbeisheim/shapechess-backend/internal/service"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	gameManager := service.NewGameManager(cfg.MatchmakingInterval)
	defer gameManager.Close()

	app := controller.NewApp(cfg, service.NewGameService(gameManager))

	log.Infof("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
