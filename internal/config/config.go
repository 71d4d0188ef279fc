package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values

	"github.com/joho/godotenv" // For loading .env files
)

// Default origins allowed to call the API from local frontends
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:8000",
	"http://localhost:5173",
	"http://localhost:5174",
}

// Config holds the application configuration
type Config struct {
	AppPort      string   // Application port
	DBDriver     string   // Database driver: sqlite or mysql
	DBPath       string   // SQLite database file
	DBUser       string   // Database user
	DBPassword   string   // Database password
	DBHost       string   // Database host
	DBPort       string   // Database port
	DBName       string   // Database name
	StaticDir    string   // Directory holding uploaded images
	CORSOrigins  []string // Origins allowed by the CORS policy
	JWTSecret    string   // JWT secret key, tokens are disabled when empty
	RedisAddr    string   // Redis server address, events are disabled when empty
	RedisPass    string   // Redis password
	RedisDB      int      // Redis database number
	EventsStream string   // Redis stream receiving domain events
	LogLevel     string   // Logrus level
	IsProd       bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:      getEnv("APP_PORT", "8000"),              // Application port
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),           // Database driver
		DBPath:       getEnv("DB_PATH", "pens.db"),            // SQLite database file
		DBUser:       os.Getenv("DB_USER"),                    // Database user
		DBPassword:   os.Getenv("DB_PASSWORD"),                // Database password
		DBHost:       os.Getenv("DB_HOST"),                    // Database host
		DBPort:       os.Getenv("DB_PORT"),                    // Database port
		DBName:       os.Getenv("DB_NAME"),                    // Database name
		StaticDir:    getEnv("STATIC_DIR", "static"),          // Asset directory
		CORSOrigins:  getList("CORS_ORIGINS", defaultOrigins), // Allowed origins
		JWTSecret:    os.Getenv("JWT_SECRET"),                 // JWT secret key
		RedisAddr:    os.Getenv("REDIS_ADDR"),                 // Redis server address
		RedisPass:    os.Getenv("REDIS_PASS"),                 // Redis password
		RedisDB:      redisDB,                                 // Redis database number
		EventsStream: getEnv("EVENTS_STREAM", "pens:events"),  // Redis stream key
		LogLevel:     getEnv("LOG_LEVEL", "info"),             // Log level
		IsProd:       os.Getenv("IS_PROD") == "true",          // Is production environment
	}
}

// MySQLDSN builds the Data Source Name for the mysql driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or def when it is unset or empty
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getList splits a comma separated variable, falling back to def
func getList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
