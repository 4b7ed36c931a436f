package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Admin         AdminConfig
	Gemini        GeminiConfig
	Wizard        WizardConfig
	Analytics     AnalyticsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CRUMB_APP_ENV" required:"true"`
	Port         string `envconfig:"CRUMB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CRUMB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CRUMB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CRUMB_DB_DSN"`
	Driver string `envconfig:"CRUMB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CRUMB_DB_HOST"`
	LegacyPort     int    `envconfig:"CRUMB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CRUMB_DB_USER"`
	LegacyPassword string `envconfig:"CRUMB_DB_PASSWORD"`
	LegacyName     string `envconfig:"CRUMB_DB_NAME"`
	LegacySSLMode  string `envconfig:"CRUMB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CRUMB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CRUMB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CRUMB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CRUMB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CRUMB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CRUMB_REDIS_ADDR"`
	Password     string        `envconfig:"CRUMB_REDIS_PASSWORD"`
	DB           int           `envconfig:"CRUMB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CRUMB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CRUMB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CRUMB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CRUMB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CRUMB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CRUMB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CRUMB_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CRUMB_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"CRUMB_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CRUMB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CRUMB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CRUMB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CRUMB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CRUMB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CRUMB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"CRUMB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CRUMB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"CRUMB_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"CRUMB_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"CRUMB_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CRUMB_AUTO_MIGRATE" default:"false"`
}

type AdminConfig struct {
	// AllowedEmails promotes matching accounts to the admin role at login.
	AllowedEmails []string `envconfig:"CRUMB_ADMIN_EMAILS"`
}

// IsAllowed reports whether the email is on the admin allow-list.
func (a AdminConfig) IsAllowed(email string) bool {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return false
	}
	for _, candidate := range a.AllowedEmails {
		if strings.ToLower(strings.TrimSpace(candidate)) == needle {
			return true
		}
	}
	return false
}

type GeminiConfig struct {
	APIKey  string        `envconfig:"CRUMB_GEMINI_API_KEY"`
	Model   string        `envconfig:"CRUMB_GEMINI_MODEL" default:"gemini-2.0-flash-preview-image-generation"`
	Timeout time.Duration `envconfig:"CRUMB_GEMINI_TIMEOUT" default:"45s"`
}

type WizardConfig struct {
	DraftTTL         time.Duration `envconfig:"CRUMB_WIZARD_DRAFT_TTL" default:"24h"`
	MaxItems         int           `envconfig:"CRUMB_WIZARD_MAX_ITEMS" default:"5"`
	MaxImageBytes    int           `envconfig:"CRUMB_WIZARD_MAX_IMAGE_BYTES" default:"4194304"`
	MessageMaxLength int           `envconfig:"CRUMB_WIZARD_MESSAGE_MAX_LENGTH" default:"500"`
}

type AnalyticsConfig struct {
	Timezone string `envconfig:"CRUMB_ANALYTICS_TIMEZONE" default:"UTC"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
