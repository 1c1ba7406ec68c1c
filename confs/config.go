package confs

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// OTP flow modes. "real" issues and verifies persisted codes through the
// notifier; "bypass" skips delivery and accepts any well-formed code.
const (
	OTPModeReal   = "real"
	OTPModeBypass = "bypass"
)

// Notifier providers.
const (
	NotifierSMTP  = "smtp"
	NotifierGmail = "gmail"
)

// Config holds every runtime setting. It is populated once in main and
// passed to constructors; nothing reads the environment after LoadConfig.
type Config struct {
	Port string `env:"PORT" envDefault:"3536"`

	// Either a full connection string or discrete parameters.
	DBURL      string `env:"DB_URL"`
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"waterbill-server"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`

	// real or bypass; see usecases.AuthUseCase.
	OTPMode   string        `env:"OTP_MODE" envDefault:"real"`
	OTPExpiry time.Duration `env:"OTP_EXPIRY" envDefault:"10m"`

	// smtp or gmail.
	NotifierProvider string `env:"NOTIFIER_PROVIDER" envDefault:"smtp"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRefreshToken string `env:"GOOGLE_REFRESH_TOKEN"`
	EmailUser          string `env:"EMAIL_USER"`
}

// LoadConfig loads environment variables from a .env file if present,
// parses them into a Config and validates essential settings.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("could not load .env")
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}

	switch c.OTPMode {
	case OTPModeReal, OTPModeBypass:
	default:
		return fmt.Errorf("invalid OTP_MODE %q: must be %q or %q", c.OTPMode, OTPModeReal, OTPModeBypass)
	}

	switch c.NotifierProvider {
	case NotifierSMTP:
		if c.OTPMode == OTPModeReal && (c.SMTPHost == "" || c.SMTPFrom == "") {
			return fmt.Errorf("SMTP_HOST and SMTP_FROM are required when NOTIFIER_PROVIDER=smtp")
		}
	case NotifierGmail:
		if c.OTPMode == OTPModeReal && (c.GoogleClientID == "" || c.GoogleClientSecret == "" || c.GoogleRefreshToken == "" || c.EmailUser == "") {
			return fmt.Errorf("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REFRESH_TOKEN and EMAIL_USER are required when NOTIFIER_PROVIDER=gmail")
		}
	default:
		return fmt.Errorf("invalid NOTIFIER_PROVIDER %q: must be %q or %q", c.NotifierProvider, NotifierSMTP, NotifierGmail)
	}

	return nil
}

// HTTPAddress returns the host:port pair the HTTP server binds to.
func (c *Config) HTTPAddress() string {
	return "0.0.0.0:" + c.Port
}
