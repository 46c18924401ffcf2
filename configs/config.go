package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Resy   ResyConfig
	Places PlacesConfig
	Search SearchConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ResyConfig holds credentials and endpoints for the upstream reservation
// platform. Credential storage itself lives outside this service; these are
// handed in through the environment.
type ResyConfig struct {
	BaseURL string
	// BookingBaseURL is the consumer booking site, used for outbound links.
	BookingBaseURL string
	APIKey         string
	AuthToken      string
	CitySlug       string
	PageSize       int
	Timeout        time.Duration
}

type PlacesConfig struct {
	BaseURL string
	APIKey  string
	// City appended to photo lookups ("NAME restaurant CITY").
	City string
}

type SearchConfig struct {
	// CacheTTL bounds how long an aggregated result set serves pages.
	CacheTTL time.Duration
	// MaxFetches caps upstream pages per aggregation.
	MaxFetches int
	// EnrichmentConcurrency is the availability worker-pool width.
	EnrichmentConcurrency int
	// ClassifyInterval paces classification calls as a courtesy to the
	// upstream's rate limits.
	ClassifyInterval time.Duration
	// SlotLimit caps how many time slots a classification returns.
	SlotLimit int
	// RequestTimeout is the outer deadline over one aggregate+enrich flow;
	// per-call transport timeouts alone leave the pipeline unbounded.
	RequestTimeout time.Duration
	// Default geo center used when no bounding box is given.
	DefaultLatitude  float64
	DefaultLongitude float64
	DefaultRadius    int
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Resy: ResyConfig{
			BaseURL:        getEnv("RESY_BASE_URL", "https://api.resy.com"),
			BookingBaseURL: getEnv("RESY_BOOKING_BASE_URL", "https://resy.com/cities/ny"),
			APIKey:         getEnvRequired("RESY_API_KEY"),
			AuthToken:      getEnvRequired("RESY_AUTH_TOKEN"),
			CitySlug:       getEnv("RESY_CITY_SLUG", "new-york-ny"),
			PageSize:       getIntEnv("RESY_PAGE_SIZE", 20),
			Timeout:        getDurationEnv("RESY_TIMEOUT", 10*time.Second),
		},
		Places: PlacesConfig{
			BaseURL: getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api"),
			APIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
			City:    getEnv("PLACES_CITY", "New York"),
		},
		Search: SearchConfig{
			CacheTTL:              getDurationEnv("SEARCH_CACHE_TTL", 300*time.Second),
			MaxFetches:            getIntEnv("SEARCH_MAX_FETCHES", 10),
			EnrichmentConcurrency: getIntEnv("ENRICHMENT_CONCURRENCY", 3),
			ClassifyInterval:      getDurationEnv("CLASSIFY_INTERVAL", 100*time.Millisecond),
			SlotLimit:             getIntEnv("SLOT_LIMIT", 8),
			RequestTimeout:        getDurationEnv("SEARCH_REQUEST_TIMEOUT", 30*time.Second),
			DefaultLatitude:       getFloatEnv("SEARCH_DEFAULT_LAT", 40.758896),
			DefaultLongitude:      getFloatEnv("SEARCH_DEFAULT_LNG", -73.985130),
			DefaultRadius:         getIntEnv("SEARCH_DEFAULT_RADIUS", 16100),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
