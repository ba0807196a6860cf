package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API          *APIConfig          `mapstructure:"api"`
	Gin          *GinConfig          `mapstructure:"gin"`
	Postgres     *PostgresConfig     `mapstructure:"postgres"`
	Registration *RegistrationConfig `mapstructure:"registration"`
	Stripe       *StripeConfig       `mapstructure:"stripe"`
	Mail         *MailConfig         `mapstructure:"mail"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RegistrationConfig holds the policy knobs of the registration engine.
type RegistrationConfig struct {
	Timezone string `mapstructure:"timezone"`
	// AllowOngoingSeries keeps a recurring series open after its first
	// occurrence has started, as long as a future occurrence remains.
	AllowOngoingSeries bool   `mapstructure:"allow_ongoing_series"`
	NoteMaxLength      int    `mapstructure:"note_max_length"`
	DefaultDelivery    string `mapstructure:"default_delivery"`
}

type StripeConfig struct {
	SecretKey  string `mapstructure:"secret_key"`
	Currency   string `mapstructure:"currency"`
	SuccessURL string `mapstructure:"success_url"`
	CancelURL  string `mapstructure:"cancel_url"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Load reads the yaml file at path. Every key can be overridden by an
// environment variable named after it, e.g. STRIPE_SECRET_KEY.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("registration.timezone", "UTC")
	v.SetDefault("registration.allow_ongoing_series", true)
	v.SetDefault("registration.note_max_length", 400)
	v.SetDefault("registration.default_delivery", "immediate")
	v.SetDefault("stripe.currency", "eur")
	v.SetDefault("mail.port", 587)
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return fmt.Errorf("api.jwt_signing_key is required")
	}
	if _, err := c.Registration.Location(); err != nil {
		return err
	}

	if err := validation.ValidateStruct(c.Registration,
		validation.Field(&c.Registration.DefaultDelivery, validation.Required, validation.In("immediate", "deferred")),
		validation.Field(&c.Registration.NoteMaxLength, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("invalid registration config -> %w", err)
	}
	if c.Stripe != nil {
		if err := validation.ValidateStruct(c.Stripe,
			validation.Field(&c.Stripe.SuccessURL, is.URL),
			validation.Field(&c.Stripe.CancelURL, is.URL),
		); err != nil {
			return fmt.Errorf("invalid stripe config -> %w", err)
		}
	}
	if c.Mail != nil {
		if err := validation.ValidateStruct(c.Mail,
			validation.Field(&c.Mail.From, is.Email),
		); err != nil {
			return fmt.Errorf("invalid mail config -> %w", err)
		}
	}

	return nil
}

// Location resolves the timezone used to label occurrences and to expand
// recurring series across DST changes.
func (c *RegistrationConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid registration.timezone %q -> %w", c.Timezone, err)
	}

	return loc, nil
}
