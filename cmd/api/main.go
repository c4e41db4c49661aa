package main

import (
	"fmt"
	"log"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"github.com/peoplepulse/perform-backend-go/internal/config"
	"github.com/peoplepulse/perform-backend-go/internal/domain/draft"
	appHTTP "github.com/peoplepulse/perform-backend-go/internal/handler/http"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/database"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/jwt"
	"github.com/peoplepulse/perform-backend-go/internal/repository/memory"
	"github.com/peoplepulse/perform-backend-go/internal/repository/postgresql"
	"github.com/peoplepulse/perform-backend-go/internal/repository/redis"
	draftService "github.com/peoplepulse/perform-backend-go/internal/service/draft"
	kpiService "github.com/peoplepulse/perform-backend-go/internal/service/kpi"
	notificationService "github.com/peoplepulse/perform-backend-go/internal/service/notification"
	reviewService "github.com/peoplepulse/perform-backend-go/internal/service/review"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	settingsRepo := postgresql.NewCompanySettingsRepository(db)
	kpiRepo := postgresql.NewKPIRepository(db)
	templateRepo := postgresql.NewKPITemplateRepository(db)
	reviewRepo := postgresql.NewReviewRepository(db)
	ratingOptionRepo := postgresql.NewRatingOptionRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	var draftRepo draft.Repository
	switch cfg.Draft.Store {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Draft.RedisAddr,
			Password: cfg.Draft.RedisPassword,
			DB:       cfg.Draft.RedisDB,
		})
		draftRepo = redis.NewDraftRepository(client, cfg.Draft.TTL)
	case "memory":
		draftRepo = memory.NewDraftRepository()
	default:
		log.Fatal("Unsupported draft store: ", cfg.Draft.Store)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	kpiSvc := kpiService.NewKPIService(db, kpiRepo, templateRepo, employeeRepo, draftRepo, notificationSvc)
	reviewSvc := reviewService.NewReviewService(db, reviewRepo, ratingOptionRepo, kpiRepo, employeeRepo, settingsRepo, draftRepo, notificationSvc)
	draftSvc := draftService.NewDraftService(draftRepo)

	kpiHandler := appHTTP.NewKPIHandler(kpiSvc)
	reviewHandler := appHTTP.NewReviewHandler(reviewSvc)
	draftHandler := appHTTP.NewDraftHandler(draftSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		JWTService,
		kpiHandler,
		reviewHandler,
		draftHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
