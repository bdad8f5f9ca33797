package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/leirbagxis/ChannelGate/internal/api/routes"
	"github.com/leirbagxis/ChannelGate/internal/cache"
	"github.com/leirbagxis/ChannelGate/internal/container"
	"github.com/leirbagxis/ChannelGate/pkg/config"
	"gorm.io/gorm"
)

func StartApi(db *gorm.DB) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := container.NewAppContainer(db)
	app.Manager.Restore(ctx)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "x-api-key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router, app)

	srv := &http.Server{
		Addr:    ":" + config.Port,
		Handler: router,
	}

	go func() {
		log.Printf("🌐 ChannelGate API running on http://localhost:%s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🔻 Shutting down API...")

	if err := cache.CloseRedis(); err != nil {
		log.Printf("Error closing Redis: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Limits.ShutdownTimeout())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
