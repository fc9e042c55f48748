package server

import (
	"context"
	"database/sql"
	"log"

	"github.com/gin-gonic/gin"

	"jobshield-backend/internal/analyses"
	"jobshield-backend/internal/catalog"
	"jobshield-backend/internal/classifier"
	"jobshield-backend/internal/company"
	"jobshield-backend/internal/reports"
	"jobshield-backend/internal/risk"
	"jobshield-backend/internal/rules"
	"jobshield-backend/internal/salary"
	"jobshield-backend/internal/services/health"
	"jobshield-backend/internal/shared/config"
	"jobshield-backend/internal/shared/metrics"
	"jobshield-backend/internal/shared/server/middleware"
	"jobshield-backend/internal/shared/server/respond"
	"jobshield-backend/internal/shared/storage/db"
	"jobshield-backend/internal/shared/storage/object"
	localstore "jobshield-backend/internal/shared/storage/object/local"
	s3store "jobshield-backend/internal/shared/storage/object/s3"
	"jobshield-backend/internal/spamlines"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
			},
		}),
	)

	// Dependencies
	store := newObjectStore(cfg)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	cat := loadCatalog(cfg.CatalogPath)
	model := loadClassifier(cfg.ModelPath)

	var analysisRepo analyses.Repo
	if sqlDB != nil {
		analysisRepo = &analyses.PGRepo{DB: sqlDB}
	} else {
		analysisRepo = analyses.NewMemoryRepo()
	}

	analysisSvc := &analyses.Service{
		Repo:       analysisRepo,
		Classifier: model,
		Matcher:    rules.NewMatcher(cat),
		SpamLines:  spamlines.NewScorer(cat),
		Salary:     salary.NewDetector(cat),
		Verifier: company.NewVerifier(cfg.RegistryTimeout,
			company.NewOpenCorporates(cfg.RegistryBaseURL, cfg.RegistryAPIKey),
			&company.MCARegistry{},
		),
		Aggregator: risk.NewAggregator(cat),
		Reports:    reports.NewGenerator(store),
	}
	analysisHandler := analyses.NewHandler(analysisSvc, store)
	healthSvc := health.NewService(model)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	api.GET("/metrics", metrics.Handler())
	analysisHandler.RegisterRoutes(api)

	return r
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

func loadCatalog(path string) *catalog.Catalog {
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.Load(path)
	if err != nil {
		log.Printf("failed to load catalog %s, using defaults: %v", path, err)
		return catalog.Default()
	}
	return cat
}

func loadClassifier(path string) *classifier.Classifier {
	model, err := classifier.Load(path)
	if err != nil {
		log.Printf("classifier model not loaded from %s: %v", path, err)
	}
	return model
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
