package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads .env (local only) and the process environment into a Config
func InitConfig(configPath string) *models.Config {
	if GetEnv("APP_ENV", "local") == "local" && configPath != "" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return Load(NewViper())
}

// NewViper returns a viper instance bound to the environment with every default set
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

var defaults = map[string]interface{}{
	"APP_NAME":    "dispatch",
	"APP_ENV":     "local",
	"APP_DEBUG":   true,
	"APP_VERSION": "development",

	"SERVER_HOST":             "0.0.0.0",
	"SERVER_PORT":             9990,
	"SERVER_READ_TIMEOUT":     15,
	"SERVER_WRITE_TIMEOUT":    15,
	"SERVER_SHUTDOWN_TIMEOUT": 30,

	"STORAGE_DRIVER": "postgres",

	"DB_DRIVER":     "pgx",
	"DB_HOST":       "localhost",
	"DB_PORT":       5432,
	"DB_USERNAME":   "postgres",
	"DB_PASSWORD":   "",
	"DB_DATABASE":   "dispatch",
	"DB_SSL_MODE":   "disable",
	"DB_MAX_CONNS":  20,
	"DB_IDLE_CONNS": 5,

	"REDIS_HOST":      "localhost",
	"REDIS_PORT":      6379,
	"REDIS_PASSWORD":  "",
	"REDIS_DB":        0,
	"REDIS_POOL_SIZE": 20,

	"NATS_URL":         "nats://localhost:4222",
	"NATS_QUEUE_GROUP": "dispatch",

	"JWT_SECRET":     "",
	"JWT_EXPIRATION": 60,
	"JWT_ISSUER":     "dispatch",

	"LOG_LEVEL":     "info",
	"LOG_FILE_PATH": "",

	"NEW_RELIC_ENABLED":      false,
	"NEW_RELIC_APP_NAME":     "dispatch",
	"NEW_RELIC_LICENSE_KEY":  "",
	"NEW_RELIC_FORWARD_LOGS": false,

	"GEO_PRECISION":                6,
	"LOCATION_MIN_MOVEMENT_METERS": 10.0,
	"LOCATION_TTL_SECONDS":         120,

	"MATCH_SEARCH_RADIUS_KM":        5.0,
	"MATCH_AVG_SPEED_KMH":           30.0,
	"MATCH_DEFAULT_ACCEPTANCE_RATE": 0.8,
	"MATCH_ETA_WEIGHT":              0.5,
	"MATCH_RATING_WEIGHT":           0.3,
	"MATCH_ACCEPTANCE_WEIGHT":       0.2,
	"MATCH_SERVICE_BONUS":           0.1,

	"DISPATCH_TOP_N":           3,
	"DISPATCH_TIMEOUT_SECONDS": 15,
	"DISPATCH_MAX_ROUNDS":      2,
	"DISPATCH_CONCURRENCY":     8,
}

// Load builds a Config from a viper instance
func Load(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	configs.Storage.Driver = strings.ToLower(v.GetString("STORAGE_DRIVER"))

	configs.Database.Driver = v.GetString("DB_DRIVER")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	configs.NATS.URL = v.GetString("NATS_URL")
	configs.NATS.QueueGroup = v.GetString("NATS_QUEUE_GROUP")

	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")

	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.ForwardLogs = v.GetBool("NEW_RELIC_FORWARD_LOGS")

	configs.Geo.Precision = v.GetUint("GEO_PRECISION")
	configs.Geo.MinMovementMeters = v.GetFloat64("LOCATION_MIN_MOVEMENT_METERS")
	configs.Geo.LocationTTLSeconds = v.GetInt("LOCATION_TTL_SECONDS")

	configs.Match.SearchRadiusKm = v.GetFloat64("MATCH_SEARCH_RADIUS_KM")
	configs.Match.AvgSpeedKmh = v.GetFloat64("MATCH_AVG_SPEED_KMH")
	configs.Match.DefaultAcceptanceRate = v.GetFloat64("MATCH_DEFAULT_ACCEPTANCE_RATE")
	configs.Match.Scoring = models.ScoringConfig{
		ETAWeight:        v.GetFloat64("MATCH_ETA_WEIGHT"),
		RatingWeight:     v.GetFloat64("MATCH_RATING_WEIGHT"),
		AcceptanceWeight: v.GetFloat64("MATCH_ACCEPTANCE_WEIGHT"),
		ServiceBonus:     v.GetFloat64("MATCH_SERVICE_BONUS"),
	}

	configs.Dispatch.TopN = v.GetInt("DISPATCH_TOP_N")
	configs.Dispatch.Timeout = time.Duration(v.GetInt("DISPATCH_TIMEOUT_SECONDS")) * time.Second
	configs.Dispatch.MaxRounds = v.GetInt("DISPATCH_MAX_ROUNDS")
	configs.Dispatch.Concurrency = v.GetInt("DISPATCH_CONCURRENCY")

	return configs
}

// Validate rejects configurations the engine cannot run with
func Validate(configs *models.Config) error {
	if err := configs.Match.Scoring.Validate(); err != nil {
		return err
	}
	if configs.Dispatch.TopN <= 0 || configs.Dispatch.MaxRounds <= 0 || configs.Dispatch.Timeout <= 0 {
		return models.ErrInvalidRequest
	}
	if configs.Storage.Driver != "postgres" && configs.Storage.Driver != "memory" {
		return models.ErrInvalidRequest
	}
	return nil
}

// GetEnv returns the environment value for key or defaultValue when unset
func GetEnv(key, defaultValue string) string {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(key, defaultValue)
	return v.GetString(key)
}
