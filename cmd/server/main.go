package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"ponto_backend/internal/router"
	"ponto_backend/internal/store"
	"ponto_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Local .env files are optional.
	_ = godotenv.Load()

	// Initialize Logger
	utils.InitLogger()

	st, err := buildStore()
	if err != nil {
		utils.LogError(err, "Failed to initialize document store")
		log.Fatalf("Failed to initialize document store: %v", err)
	}

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router.Setup(engine, st, router.ConfigFromEnv())

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStore selects the document store driver from the environment:
// a JSON file by default, or the single-row Postgres document when
// STORE_DRIVER=postgres.
func buildStore() (store.Store, error) {
	driver := utils.Getenv("STORE_DRIVER", "file")
	if driver == "postgres" {
		dbHost := utils.Getenv("DB_HOST", "localhost")
		dbPort := utils.Getenv("DB_PORT", "5432")
		dbUser := utils.Getenv("DB_USER", "ponto_user")
		dbPassword := utils.Getenv("DB_PASSWORD", "ponto_password")
		dbName := utils.Getenv("DB_NAME", "ponto_db")
		dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")

		db, err := store.OpenPostgres(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
		if err != nil {
			return nil, err
		}
		utils.LogInfo("Database initialized", map[string]interface{}{"driver": "postgres"})
		return store.NewPostgresStore(db)
	}

	path := utils.Getenv("STORE_PATH", "ponto.json")
	utils.LogInfo("Document store initialized", map[string]interface{}{"driver": "file", "path": path})
	return store.NewFileStore(path), nil
}
