package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	GoogleConfig struct {
		ClientID     string
		ClientSecret string
		RedirectURL  string
	}

	Config struct {
		Env      string // DEV (local; default), TEST, QA, PROD
		Build    string
		Debug    bool
		TestMode bool
		WorkDir  string

		AppName          string
		SecretKey        string
		FromEmail        string
		AdmissionsEmail  string
		FrontendBaseURL  string
		SendgridAPIKey   string
		RollbarToken     string
		SubmitTimeout    time.Duration
		MaxResumeBytes   int64
		TestimonialDelay time.Duration

		Server ServerConfig
		Google GoogleConfig
	}
)

// ErrMissingSecretKey is returned when PROD runs without a configured secretKey.
var ErrMissingSecretKey = errors.New("config: secretKey must be set in PROD")

// devSecretKey signs tokens outside PROD only.
const devSecretKey = "x8#e2l)k@f$3t9z!q1vm^7w0(a+6r%ud4n=s5o*jbh"

// NewConfig reads the configuration from defaults, `config/.env.<env>` and the environment.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "Ishanya")
	v.SetDefault("defaultFromEmail", "Ishanya <noreply@localhost>")
	v.SetDefault("admissionsEmail", "Ishanya Admissions <admissions@localhost>")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("google.clientId", "")
	v.SetDefault("google.clientSecret", "")
	v.SetDefault("google.redirectUrl", "http://localhost:8000/v1/auth/google/callback")
	v.SetDefault("site.testimonialInterval", 5*time.Second)
	v.SetDefault("submission.timeout", 10*time.Second)
	v.SetDefault("upload.maxResumeBytes", int64(5<<20))

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	if env == "PROD" {
		v.SetDefault("debug", false)
		v.SetDefault("secretKey", "")
	} else {
		v.SetDefault("debug", true)
		v.SetDefault("secretKey", devSecretKey)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	workDir := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		WorkDir:          workDir,
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		FromEmail:        v.GetString("defaultFromEmail"),
		AdmissionsEmail:  v.GetString("admissionsEmail"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		SubmitTimeout:    v.GetDuration("submission.timeout"),
		MaxResumeBytes:   v.GetInt64("upload.maxResumeBytes"),
		TestimonialDelay: v.GetDuration("site.testimonialInterval"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
		},
		Google: GoogleConfig{
			ClientID:     v.GetString("google.clientId"),
			ClientSecret: v.GetString("google.clientSecret"),
			RedirectURL:  v.GetString("google.redirectUrl"),
		},
	}
	if err := conf.Check(); err != nil {
		log.Fatal(err)
	}
	return conf
}

// Check reports settings that must not fall back to defaults.
func (conf *Config) Check() error {
	if conf.Env == "PROD" && strings.TrimSpace(conf.SecretKey) == "" {
		return ErrMissingSecretKey
	}
	return nil
}

func (conf *Config) DefaultFromEmail() mail.Address { return parseAddress(conf.FromEmail) }
func (conf *Config) AdmissionsAddress() mail.Address { return parseAddress(conf.AdmissionsEmail) }

// GoogleEnabled reports whether third-party sign-in is configured.
func (conf *Config) GoogleEnabled() bool {
	return conf.Google.ClientID != "" && conf.Google.ClientSecret != ""
}

func parseAddress(s string) mail.Address {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return mail.Address{Address: s}
	}
	return *addr
}
