package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported values for DBDRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`

	DBDriver       string `json:"dbdriver"`
	DBHost         string `json:"dbhost"`
	DBPort         uint16 `json:"dbport"`
	DBName         string `json:"dbname"`
	DBUSER         string `json:"dbuser"`
	DBPass         string `json:"dbpass"`
	DBSSLMode      string `json:"dbsslmode"`
	DBMaxOpenConns int    `json:"dbmaxopenconns"`
	DBMaxIdleConns int    `json:"dbmaxidleconns"`

	LogLevel  string `json:"loglevel"`
	LogPretty bool   `json:"logpretty"`

	RateLimitLimit    int           `json:"ratelimitlimit"`
	RateLimitWindow   time.Duration `json:"ratelimitwindow"`
	CORSOrigins       []string      `json:"corsorigins"`
	RequestLogPersist bool          `json:"requestlogpersist"`
}

// IsTest reports whether the process runs with APPENV=test.
func (c *Config) IsTest() bool {
	return c.AppEnv == "test"
}

var config *Config
var once sync.Once

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
// A missing .env file is fine; the process environment is used as is.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("failed to parse .env file")
		}

		appPort, err := strconv.ParseUint(getEnv("APPPORT", "8000"), 10, 16)
		if err != nil {
			appPort = 8000
		}
		driver := strings.ToLower(getEnv("DBDRIVER", DriverMySQL))
		defaultDBPort := "3306"
		if driver == DriverPostgres {
			defaultDBPort = "5432"
		}
		dbPort, _ := strconv.ParseUint(getEnv("DBPORT", defaultDBPort), 10, 16)

		window, err := time.ParseDuration(getEnv("RATELIMIT_WINDOW", "1m"))
		if err != nil {
			window = time.Minute
		}

		var origins []string
		for _, o := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}

		config = &Config{
			AppName: getEnv("APPNAME", "hospital-records"),
			AppEnv:  getEnv("APPENV", "development"),
			AppPort: uint16(appPort),
			GinMode: getEnv("GINMODE", "debug"),

			DBDriver:       driver,
			DBHost:         getEnv("DBHOST", "127.0.0.1"),
			DBPort:         uint16(dbPort),
			DBName:         getEnv("DBNAME", "hospital"),
			DBUSER:         os.Getenv("DBUSER"),
			DBPass:         os.Getenv("DBPASS"),
			DBSSLMode:      getEnv("DBSSLMODE", "disable"),
			DBMaxOpenConns: getEnvInt("DBMAXOPENCONNS", 25),
			DBMaxIdleConns: getEnvInt("DBMAXIDLECONNS", 5),

			LogLevel:  getEnv("LOGLEVEL", "info"),
			LogPretty: getEnvBool("LOGPRETTY", false),

			RateLimitLimit:    getEnvInt("RATELIMIT_LIMIT", 120),
			RateLimitWindow:   window,
			CORSOrigins:       origins,
			RequestLogPersist: getEnvBool("REQUESTLOG_PERSIST", false),
		}
	})
	return config
}

// ResetConfigForTest drops the cached configuration so the next LoadConfig re-reads the environment.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}

// DSN builds the data source name for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			c.DBHost, c.DBUSER, c.DBPass, c.DBName, c.DBPort, c.DBSSLMode)
	case DriverSQLite:
		return fmt.Sprintf("file:%s.db?_foreign_keys=1", c.DBName)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", c.DBUSER, c.DBPass, c.DBHost, c.DBPort, c.DBName)
	}
}

func dialector(cfg *Config) (gorm.Dialector, error) {
	if cfg.IsTest() {
		// Each connection of the pool must see the same in-memory database.
		dsn := fmt.Sprintf("file:hospital_test_%d?mode=memory&cache=shared&_foreign_keys=1", time.Now().UnixNano())
		return sqlite.Open(dsn), nil
	}
	switch cfg.DBDriver {
	case DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}
}

// ConnectDatabase opens the connection pool for the configured driver.
// It is called once at startup; the returned handle is shared by every request.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()

	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.IsTest() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// CloseDatabase releases the connection pool.
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
