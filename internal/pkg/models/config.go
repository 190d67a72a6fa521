package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	Logger   LoggerConfig
	NewRelic NewRelicConfig
	Geo      GeoConfig
	Match    MatchConfig
	Dispatch DispatchConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// StorageConfig selects the persistence backend: "postgres" or "memory"
type StorageConfig struct {
	Driver string
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL        string
	QueueGroup string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// LoggerConfig contains zap logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// NewRelicConfig contains APM configuration
type NewRelicConfig struct {
	Enabled     bool
	AppName     string
	LicenseKey  string
	ForwardLogs bool
}

// GeoConfig contains tile and roster settings
type GeoConfig struct {
	Precision          uint
	MinMovementMeters  float64
	LocationTTLSeconds int
}

// MatchConfig contains candidate search and scoring settings
type MatchConfig struct {
	SearchRadiusKm        float64
	AvgSpeedKmh           float64
	DefaultAcceptanceRate float64
	Scoring               ScoringConfig
}

// DispatchConfig contains offer round settings
type DispatchConfig struct {
	TopN        int
	Timeout     time.Duration
	MaxRounds   int
	Concurrency int
}
