package config

import (
	"crypto"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const jwtSigningAlgorithmEd25519 = "EdDSA"

// Customer stores
const (
	LeadsBackendPostgres = "postgres"
	LeadsBackendMongo    = "mongo"
)

type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type PostgresCfg struct {
	User           string        `env:"POSTGRES_USER,required"`
	Password       string        `env:"POSTGRES_PASSWORD,required"`
	Host           string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port           int           `env:"POSTGRES_PORT" envDefault:"5432"`
	Database       string        `env:"POSTGRES_DB,required"`
	SslMode        string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PoolMaxConn    int           `env:"POSTGRES_POOL_MAX_CONN" envDefault:"20"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" envDefault:"5s"`
}

type MongoCfg struct {
	User           string        `env:"MONGO_USER"`
	Password       string        `env:"MONGO_PASSWORD"`
	Host           string        `env:"MONGO_HOST" envDefault:"localhost"`
	Port           int           `env:"MONGO_PORT" envDefault:"27017"`
	MaxPoolSize    int           `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"5s"`
}

type RedisCfg struct {
	Addr               string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password           string        `env:"REDIS_PASSWORD"`
	DB                 int           `env:"REDIS_DB" envDefault:"0"`
	WebhookResponseTTL time.Duration `env:"REDIS_WEBHOOK_RESPONSE_TTL" envDefault:"72h"`
}

// AmqpCfg configures notifications, an empty url disables them
type AmqpCfg struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE" envDefault:"congress.registration"`
}

type WebhookCfg struct {
	PhoneLookupURL       string        `env:"WEBHOOK_PHONE_LOOKUP_URL,required"`
	PayPalCaptureURL     string        `env:"WEBHOOK_PAYPAL_CAPTURE_URL,required"`
	StripeOrderURL       string        `env:"WEBHOOK_STRIPE_ORDER_URL,required"`
	ReceiptUploadURL     string        `env:"WEBHOOK_RECEIPT_UPLOAD_URL,required"`
	Timeout              time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"30s"`
	PayPalCaptureTimeout time.Duration `env:"WEBHOOK_PAYPAL_CAPTURE_TIMEOUT" envDefault:"15s"`
}

type SessionCfg struct {
	Issuer         string        `env:"SESSION_JWT_ISSUER" envDefault:"congress-registration"`
	TimeToLive     time.Duration `env:"SESSION_JWT_TIME_TO_LIVE" envDefault:"2h"`
	PrivateKeyFile string        `env:"SESSION_JWT_PRIVATE_KEY_FILE,required"`
	PublicKeyFile  string        `env:"SESSION_JWT_PUBLIC_KEY_FILE,required"`
	CookieName     string        `env:"SESSION_COOKIE_NAME" envDefault:"checkout_session"`
	Https          bool          `env:"SESSION_HTTPS" envDefault:"false"`
	SigningMethod  jwt.SigningMethod
	PrivateKey     crypto.PrivateKey
	PublicKey      crypto.PublicKey
}

type CheckoutCfg struct {
	StripeSuccessURL    string        `env:"CHECKOUT_STRIPE_SUCCESS_URL,required"`
	StripeCancelURL     string        `env:"CHECKOUT_STRIPE_CANCEL_URL,required"`
	PaymentPollInterval time.Duration `env:"CHECKOUT_PAYMENT_POLL_INTERVAL" envDefault:"3s"`
}

type Config struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LeadsBackend string `env:"LEADS_BACKEND" envDefault:"postgres"`
	HTTPCfg      HTTPCfg
	PostgresCfg  PostgresCfg
	MongoCfg     MongoCfg
	RedisCfg     RedisCfg
	AmqpCfg      AmqpCfg
	WebhookCfg   WebhookCfg
	SessionCfg   SessionCfg
	CheckoutCfg  CheckoutCfg
}

// Build loads .env when present and parses the environment
func Build() (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load .env file - %w", err)
		}
		logrus.Debug("no .env file found, using system environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	if cfg.LeadsBackend != LeadsBackendPostgres && cfg.LeadsBackend != LeadsBackendMongo {
		return cfg, fmt.Errorf("unsupported LEADS_BACKEND %q, expected %s or %s", cfg.LeadsBackend, LeadsBackendPostgres, LeadsBackendMongo)
	}

	if err := cfg.SessionCfg.loadKeys(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *SessionCfg) loadKeys() error {
	c.SigningMethod = jwt.GetSigningMethod(jwtSigningAlgorithmEd25519)

	privateKeyBytes, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read private key file for session - %w", err)
	}

	privateKey, err := jwt.ParseEdPrivateKeyFromPEM(privateKeyBytes)
	if err != nil {
		return fmt.Errorf("failed to parse private key for session - %w", err)
	}
	c.PrivateKey = privateKey

	publicKeyBytes, err := os.ReadFile(c.PublicKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read public key file for session - %w", err)
	}

	publicKey, err := jwt.ParseEdPublicKeyFromPEM(publicKeyBytes)
	if err != nil {
		return fmt.Errorf("failed to parse public key for session - %w", err)
	}
	c.PublicKey = publicKey

	return nil
}
