package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/coursequiz/config"
	"github.com/lshigami/coursequiz/database"
	_ "github.com/lshigami/coursequiz/docs"
	adminctrl "github.com/lshigami/coursequiz/internal/controller/admin"
	userctrl "github.com/lshigami/coursequiz/internal/controller/user"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/lshigami/coursequiz/internal/event"
	"github.com/lshigami/coursequiz/internal/logger"
	"github.com/lshigami/coursequiz/internal/model"
	"github.com/lshigami/coursequiz/internal/repository"
	"github.com/lshigami/coursequiz/internal/service"
	"github.com/lshigami/coursequiz/internal/storage"
	"github.com/lshigami/coursequiz/internal/synthesis"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Course Quiz API
// @version 1.0
// @description Course document upload, multiple-choice quiz synthesis and scoring, and payment intents.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewEventPublisher,
			storage.NewDocumentStore,
			service.NewRedisClient,
			service.NewGenerationLocker,
			service.NewPaymentProcessor,
			service.NewTextExtractor,
			func() *synthesis.Synthesizer { return synthesis.NewSynthesizer(synthesis.DefaultSource()) },
		),

		fx.Provide(
			repository.NewCourseRepository,
			repository.NewQuestionRepository,
			repository.NewQuizRepository,
			repository.NewQuizAttemptRepository,
			repository.NewTransactionRepository,
		),

		fx.Provide(
			service.NewCourseService,
			service.NewQuizService,
			service.NewScoringService,
			service.NewPaymentService,
		),

		fx.Provide(
			adminctrl.NewCourseController,
			userctrl.NewQuizController,
			userctrl.NewPaymentController,
		),

		fx.Invoke(ApplyLogConfig),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

// ApplyLogConfig re-applies logging with values from .env, which logger.Init
// cannot see because it runs before config is loaded.
func ApplyLogConfig(cfg *config.Config) {
	logger.Configure(cfg.Log.Level, cfg.Log.Pretty)
}

func NewEventPublisher(lc fx.Lifecycle, cfg *config.Config) (event.Publisher, error) {
	publisher, err := event.NewPublisher(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}

func NewGinEngine(cfg *config.Config) (*gin.Engine, error) {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.MaxMultipartMemory = adminctrl.MaxUploadSize

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	courseCtrl *adminctrl.CourseController,
	quizCtrl *userctrl.QuizController,
	paymentCtrl *userctrl.PaymentController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/courses", courseCtrl.UploadCourse)
		adminAPIGroup.GET("/courses", courseCtrl.ListCourses)
		adminAPIGroup.GET("/courses/:course_id/document", courseCtrl.DownloadCourseDocument)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.POST("/quizzes/generate", quizCtrl.GenerateQuiz)
		userAPIGroup.GET("/quizzes/:quiz_id", quizCtrl.GetQuiz)
		userAPIGroup.POST("/quizzes/:quiz_id/submit", quizCtrl.SubmitQuiz)
		userAPIGroup.GET("/quizzes/:quiz_id/attempts", quizCtrl.ListAttempts)

		userAPIGroup.POST("/payments/create", paymentCtrl.CreatePayment)
		userAPIGroup.POST("/payments/confirm", paymentCtrl.ConfirmPayment)
		userAPIGroup.GET("/payments/history", paymentCtrl.GetPaymentHistory)
		userAPIGroup.GET("/payments/invoice/:payment_id", paymentCtrl.GetInvoice)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Course quiz API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Course{},
		&model.Question{},
		&model.Quiz{},
		&model.QuizAttempt{},
		&model.Transaction{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
