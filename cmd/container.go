package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hirewire/resumeparser/internal/ai/structurer"
	"github.com/hirewire/resumeparser/pkg/logx"
	"github.com/hirewire/resumeparser/resume/resumeapi"
	"github.com/hirewire/resumeparser/resume/resumeinfra"
	"github.com/hirewire/resumeparser/resume/resumesrv"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const defaultModel = "gpt-4o"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB *sqlx.DB

	// Services
	ResumeService *resumesrv.Service

	// API Handlers
	ResumeHandlers *resumeapi.Handlers
}

// NewContainer initializes the dependency container. A missing inference
// credential is a startup-fatal configuration error, never a per-request
// failure.
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		logx.Debugf("no .env file loaded: %v", err)
	}

	dbHost := envOrDefault("DB_HOST", "localhost")
	dbPort := envOrDefault("DB_PORT", "5432")
	dbUser := envOrDefault("DB_USER", "postgres")
	dbPass := os.Getenv("DB_PASS")
	dbName := envOrDefault("DB_NAME", "resumes")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db
}

func (c *Container) initServices() {
	// Read once at startup and treated as immutable afterwards.
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logx.Fatal("OPENAI_API_KEY is not set")
	}
	model := envOrDefault("OPENAI_MODEL", defaultModel)

	repo := resumeinfra.NewPostgresResumeRepository(c.DB)
	client := structurer.NewClient(apiKey, model)

	c.ResumeService = resumesrv.NewService(repo, client)
	c.ResumeHandlers = resumeapi.NewHandlers(c.ResumeService)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
