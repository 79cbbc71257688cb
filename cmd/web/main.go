package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/catalog"
	"github.com/rajivgeraev/flippy-motors/internal/config"
	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/pages"
	"github.com/rajivgeraev/flippy-motors/internal/services/auth"
	"github.com/rajivgeraev/flippy-motors/internal/services/cloudinary"
	"github.com/rajivgeraev/flippy-motors/internal/services/feedback"
	"github.com/rajivgeraev/flippy-motors/internal/services/recommendation"
	"github.com/rajivgeraev/flippy-motors/internal/services/vehicle"
	"github.com/rajivgeraev/flippy-motors/internal/session"
	"github.com/rajivgeraev/flippy-motors/internal/storage"
	"github.com/rajivgeraev/flippy-motors/internal/utils"
)

// sessionIdle время, после которого сессия выгружается из памяти
const sessionIdle = 30 * time.Minute

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	// Открываем хранилище клиентского состояния
	backend, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("❌ Ошибка при открытии хранилища %s: %v", cfg.StorageDriver, err)
	}
	defer backend.Close()
	log.Printf("✅ Хранилище сессий: %s", cfg.StorageDriver)

	manager := session.NewManager(backend, sessionIdle)
	defer manager.Close()

	// Создаём экземпляр Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Flippy Motors",
		ErrorHandler: middleware.ErrorHandler,
		// Значения из запроса живут дольше обработчика (сессии, фоновые события)
		Immutable: true,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", apiclient.HeaderRequestID},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: false,
	}))

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"sessions": manager.Len(),
		})
	})

	jwtService := utils.NewJWTService(cfg.SessionSecret)
	app.Use(middleware.SessionMiddleware(jwtService, manager, cfg.IsProduction()))

	// Создаём сервисы
	api := apiclient.New(cfg)
	authService := auth.NewAuthService(api)
	vehicleService := vehicle.NewVehicleService(api)
	recommendationService := recommendation.NewRecommendationService(api)
	feedbackService := feedback.NewFeedbackService(api)
	cloudinaryService := cloudinary.NewCloudinaryService(cfg)

	// Демонстрационные данные на случай недоступного бэкенда
	var fallback catalog.Source
	if cfg.MockFallback {
		stub, err := catalog.NewMockSource()
		if err != nil {
			log.Fatalf("❌ Ошибка загрузки демонстрационных данных: %v", err)
		}
		fallback = stub
		log.Println("⚠️ Включён откат на демонстрационные данные")
	}

	pagesService := pages.NewPagesService(vehicleService, recommendationService, feedbackService, cloudinaryService, fallback)

	// Регистрируем маршруты
	authService.SetupRoutes(app)
	vehicleService.SetupRoutes(app)
	recommendationService.SetupRoutes(app)
	feedbackService.SetupRoutes(app)
	pagesService.SetupRoutes(app)

	// Останавливаем сервер по сигналу, чтобы закрыть хранилище
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Останавливаем сервер...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Ошибка остановки сервера: %v", err)
		}
	}()

	// Запускаем сервер
	log.Printf("✅ Flippy Motors запущен на порту %s, бэкенд %s", cfg.Port, cfg.APIURL)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ Сервер остановлен с ошибкой: %v", err)
	}
}
