package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/internal/extract"
	"github.com/ThirupathiS-45/Recruitment-Agent/internal/textx"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/fsx"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/fsx/fsxs3"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/iam/auth"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/logx"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate/candidateapi"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate/candidateinfra"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate/candidatesrv"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest/ingestapi"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest/ingestinfra"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest/ingestsrv"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest/worker"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/job"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/job/jobapi"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/job/jobinfra"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/job/jobsrv"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching/matchingapi"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching/matchinginfra"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching/matchingsrv"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/taxonomy"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container wires infrastructure, repositories, services and handlers.
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	S3Client   *s3.Client
	FileSystem fsx.FileSystem

	// Shared configuration
	Taxonomy *taxonomy.Taxonomy

	// Repositories
	CandidateRepo candidate.Repository
	JobRepo       job.Repository
	MatchRepo     matching.Repository
	BatchRepo     ingest.BatchJobRepository
	BatchQueue    ingest.BatchQueue

	// Services
	CandidateService *candidatesrv.Service
	JobService       *jobsrv.JobService
	MatchingEngine   *matchingsrv.Engine
	IngestService    *ingestsrv.Service
	BatchWorker      *worker.BatchWorker

	// Auth
	TokenService          auth.TokenService
	APIKeyService         *auth.APIKeyService
	UnifiedAuthMiddleware *auth.UnifiedAuthMiddleware

	// HTTP Handlers
	CandidateHandlers *candidateapi.Handlers
	JobHandlers       *jobapi.Handlers
	MatchingHandlers  *matchingapi.Handlers
	IngestHandlers    *ingestapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	if err := godotenv.Load(); err != nil {
		logx.Infof("No .env file found, using environment variables")
	}

	c := &Container{}
	c.initInfrastructure()
	c.initAuth()
	c.initServices()
	c.initHandlers()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
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

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "resumes")

	// 4. Shared skill taxonomy
	c.Taxonomy = taxonomy.Default()
}

func (c *Container) initAuth() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Fatalf("JWT_SECRET is required")
	}
	c.TokenService = auth.NewJWTService(jwtSecret, "recruitment-agent", 24*time.Hour)

	c.APIKeyService = auth.NewAPIKeyService()
	if hash := os.Getenv("PIPELINE_API_KEY_HASH"); hash != "" {
		c.APIKeyService.RegisterKey("pipeline", hash, auth.ScopeGroups["pipeline_operator"])
	}
	if hash := os.Getenv("ADMIN_API_KEY_HASH"); hash != "" {
		c.APIKeyService.RegisterKey("admin", hash, auth.ScopeGroups["recruiter"])
	}

	c.UnifiedAuthMiddleware = auth.NewUnifiedAuthMiddleware(c.TokenService, c.APIKeyService)
}

func (c *Container) initServices() {
	// Repositories
	c.CandidateRepo = candidateinfra.NewPostgresCandidateRepository(c.DB)
	c.JobRepo = jobinfra.NewPostgresJobRepository(c.DB)
	c.MatchRepo = matchinginfra.NewPostgresMatchRepository(c.DB)
	c.BatchRepo = ingestinfra.NewPostgresBatchJobRepository(c.DB)
	c.BatchQueue = ingestinfra.NewRedisQueue(c.Redis, "ingest:batches")

	// Domain services
	c.CandidateService = candidatesrv.NewService(c.CandidateRepo)
	c.JobService = jobsrv.NewJobService(c.JobRepo)
	c.MatchingEngine = matchingsrv.NewEngine(
		matchingsrv.DefaultConfig(),
		c.Taxonomy,
		c.JobRepo,
		c.CandidateRepo,
		c.MatchRepo,
	)

	// Ingestion pipeline
	pipeline := ingestsrv.NewPipeline(
		ingestsrv.DefaultConfig(),
		textx.NewDocumentExtractor(),
		extract.New(c.Taxonomy),
		c.CandidateRepo,
		c.JobRepo,
		c.MatchingEngine,
	)
	c.IngestService = ingestsrv.NewService(pipeline, c.BatchRepo, c.BatchQueue, c.FileSystem)

	workers := 3
	if raw := os.Getenv("INGEST_WORKERS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			workers = parsed
		}
	}
	c.BatchWorker = worker.NewBatchWorker(c.IngestService, c.BatchQueue, workers)
}

func (c *Container) initHandlers() {
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.MatchingHandlers = matchingapi.NewHandlers(c.MatchingEngine)
	c.IngestHandlers = ingestapi.NewHandlers(c.IngestService)
}
