package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища клиентского состояния
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMySQL    = "mysql"
)

// Config структура конфигурации
type Config struct {
	Port             string
	AppEnv           string
	APIURL           string
	APITimeout       time.Duration
	SessionSecret    string
	StorageDriver    string
	SQLitePath       string
	DatabaseURL      string
	DatabaseConfig   DatabaseConfig
	MySQLDSN         string
	MockFallback     bool
	CloudinaryConfig CloudinaryConfig
}

// DatabaseConfig содержит конфигурацию PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// CloudinaryConfig содержит конфигурацию для Cloudinary
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Enabled сообщает, настроен ли Cloudinary
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != ""
}

// LoadConfig загружает конфигурацию сервера. В production SESSION_SECRET обязателен.
func LoadConfig() *Config {
	cfg := load()

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			log.Fatal("❌ Ошибка: Не задана обязательная переменная SESSION_SECRET")
		}
		log.Println("⚠️ SESSION_SECRET не задан, сессии не переживут перезапуск")
		cfg.SessionSecret = randomSecret()
	}
	return cfg
}

// LoadCLIConfig загружает конфигурацию консольного клиента, которому не нужен SESSION_SECRET
func LoadCLIConfig() *Config {
	return load()
}

// load загружает переменные из .env и окружения
func load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env файл не найден, используем переменные окружения")
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("PGHOST", "localhost"),
		Port:     getEnv("PGPORT", "5432"),
		User:     getEnv("PGUSER", "flippy_user"),
		Password: getEnv("PGPASSWORD", "flippy_pass"),
		Name:     getEnv("PGDATABASE", "flippy_motors"),
		SSLMode:  getEnv("PGSSLMODE", "disable"),
	}

	// Формируем строку подключения к базе данных
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name, dbConfig.SSLMode)

	appEnv := getEnv("APP_ENV", "production") // По умолчанию production

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         appEnv,
		APIURL:         getEnv("API_URL", "http://localhost:8000/api/v1"),
		APITimeout:     getDuration("API_TIMEOUT", 15*time.Second),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		StorageDriver:  getEnv("STORAGE_DRIVER", StorageSQLite),
		SQLitePath:     getEnv("SQLITE_PATH", "./flippy_motors.db"),
		DatabaseURL:    getEnv("DATABASE_URL", dbURL),
		DatabaseConfig: dbConfig,
		MySQLDSN:       getEnv("MYSQL_DSN", "flippy:flippy@tcp(localhost:3306)/flippy_motors?parseTime=true"),
		MockFallback:   getBool("MOCK_FALLBACK", appEnv != "production"),
		CloudinaryConfig: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite, StoragePostgres, StorageMySQL:
	default:
		log.Printf("⚠️ Неизвестный STORAGE_DRIVER %q, используем %s", cfg.StorageDriver, StorageSQLite)
		cfg.StorageDriver = StorageSQLite
	}

	return cfg
}

// IsProduction сообщает, запущено ли приложение в production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// getEnv получает переменную окружения или использует дефолтное значение
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("❌ Не удалось сгенерировать секрет: %v", err)
	}
	return hex.EncodeToString(b)
}
