package config

import (
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Addr          string
	DBUrl         string
	TokenSecret   string
	TokenTTL      time.Duration
	AdminUser     string
	AdminPassword string
	SurveyFile    string
	WindowFile    string
	PDFFont       string
	LogFormat     string
	Debug         bool
}

// Load reads a .env file when present, then parses the command line.
// Every flag defaults to its SURVEY_* environment variable.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "config.dotenv")
	}
	return ParseFlags(args)
}

func ParseFlags(args []string) (cfg Config, err error) {
	fs := flag.NewFlagSet("interview-survey", flag.ContinueOnError)

	var host string
	fs.StringVar(&host, "host", env("SURVEY_HOST", "0.0.0.0"), "listen host name")
	var port uint
	fs.UintVar(&port, "port", envUint("SURVEY_PORT", 5000), "listen port number")
	fs.StringVar(&cfg.DBUrl, "db-url", env("SURVEY_DB_URL", "survey.sqlite"), "path to SQLite3 DB file")
	fs.StringVar(&cfg.TokenSecret, "token-secret", env("SURVEY_TOKEN_SECRET", ""), "secret key for token encryption and decryption")
	var ttl uint
	fs.UintVar(&ttl, "token-ttl", envUint("SURVEY_TOKEN_TTL", 1800), "admin session TTL in seconds")
	fs.StringVar(&cfg.AdminUser, "admin-user", env("SURVEY_ADMIN_USER", ""), "admin user to create or update at startup")
	fs.StringVar(&cfg.AdminPassword, "admin-password", env("SURVEY_ADMIN_PASSWORD", ""), "password of -admin-user")
	fs.StringVar(&cfg.SurveyFile, "survey", env("SURVEY_DEFINITION", ""), "YAML survey definition (default: built-in)")
	fs.StringVar(&cfg.WindowFile, "survey-window", env("SURVEY_WINDOW", "survey_window.json"), "JSON file with open_start_at/open_end_at")
	fs.StringVar(&cfg.PDFFont, "pdf-font", env("SURVEY_PDF_FONT", ""), "TTF font used for PDF export")
	fs.StringVar(&cfg.LogFormat, "log-format", env("SURVEY_LOG_FORMAT", "text"), "log format: text or json")
	fs.BoolVar(&cfg.Debug, "debug", envBool("SURVEY_DEBUG"), "log at DEBUG level")
	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	err = cfg.validate()
	return
}

func (cfg Config) validate() error {
	var result *multierror.Error
	if cfg.TokenSecret == "" {
		result = multierror.Append(result, errors.New("missing parameter -token-secret"))
	}
	if (cfg.AdminUser == "") != (cfg.AdminPassword == "") {
		result = multierror.Append(result, errors.New("-admin-user and -admin-password go together"))
	}
	if cfg.TokenTTL <= 0 {
		result = multierror.Append(result, errors.New("-token-ttl must be positive"))
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		result = multierror.Append(result, errors.Errorf("unknown -log-format %q", cfg.LogFormat))
	}
	return result.ErrorOrNil()
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envUint(key string, def uint) uint {
	if v, err := strconv.ParseUint(os.Getenv(key), 10, 32); err == nil {
		return uint(v)
	}
	return def
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}
