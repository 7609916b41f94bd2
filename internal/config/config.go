package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string // Application port
	CookiePassword string // Session token signing secret
	CookieName     string // Session cookie name
	GoogleAPIKey   string // Map widget API key
	DBDriver       string // Database driver: mysql or sqlite
	DBUser         string // Database user
	DBPassword     string // Database password
	DBHost         string // Database host
	DBPort         string // Database port
	DBName         string // Database name
	DBPath         string // SQLite database file
	RedisAddr      string // Redis server address, empty disables the cache
	RedisPass      string // Redis password
	RedisDB        int    // Redis database number
	PublicDir      string // Static files root, images live under PublicDir/images
	IsProd         bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        getenv("APP_PORT", "3000"),       // Application port
		CookiePassword: os.Getenv("COOKIE_PASSWORD"),     // Session token signing secret
		CookieName:     getenv("COOKIE_NAME", "islands"), // Session cookie name
		GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),      // Map widget API key
		DBDriver:       getenv("DB_DRIVER", "mysql"),     // Database driver
		DBUser:         os.Getenv("DB_USER"),             // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),         // Database password
		DBHost:         os.Getenv("DB_HOST"),             // Database host
		DBPort:         os.Getenv("DB_PORT"),             // Database port
		DBName:         os.Getenv("DB_NAME"),             // Database name
		DBPath:         getenv("DB_PATH", "islands.db"),  // SQLite database file
		RedisAddr:      os.Getenv("REDIS_ADDR"),          // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),          // Redis password
		RedisDB:        redisDB,                          // Redis database number
		PublicDir:      getenv("PUBLIC_DIR", "public"),   // Static files root
		IsProd:         os.Getenv("IS_PROD") == "true",   // Is production environment
	}
}

// DSN builds the MySQL Data Source Name from the configured parts
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getenv returns the environment value for key or def when unset
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
