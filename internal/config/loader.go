package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "ASA"

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Z_][A-Z0-9_]*)`)

var validLevels = map[string]bool{
	"debug":    true,
	"info":     true,
	"warn":     true,
	"warning":  true,
	"error":    true,
	"critical": true,
}

// Load reads and parses a configuration file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	return Parse(data)
}

// Parse parses configuration from YAML data, applies defaults and validates it.
// ${VAR_NAME} and $VAR_NAME are replaced with environment values first, so
// credentials can stay out of the file.
func Parse(data []byte) (*Config, error) {
	data = substituteEnvVars(data)

	cfg := Defaults()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// FromEnv builds a configuration from ASA_HOST, ASA_USERNAME, ASA_PASSWORD,
// ASA_VERIFY_CERT, ASA_TIMEOUT, ASA_PAGE_LIMIT and ASA_LOG_LEVEL.
func FromEnv() (*Config, error) {
	defaults := Defaults()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("verify_cert", false)
	v.SetDefault("timeout", defaults.Device.Timeout)
	v.SetDefault("page_limit", defaults.Device.PageLimit)
	v.SetDefault("log_level", defaults.Logging.Level)

	cfg := Config{
		Device: DeviceConfig{
			Host:       v.GetString("host"),
			Username:   v.GetString("username"),
			Password:   v.GetString("password"),
			VerifyCert: v.GetBool("verify_cert"),
			Timeout:    v.GetDuration("timeout"),
			PageLimit:  v.GetInt("page_limit"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("log_level"),
		},
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid environment configuration")
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} and $VAR_NAME patterns with environment variable values.
func substituteEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		matchStr := string(match)

		var varName string
		if strings.HasPrefix(matchStr, "${") {
			varName = matchStr[2 : len(matchStr)-1]
		} else {
			varName = matchStr[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return []byte(value)
		}

		// Unset variables stay verbatim and fail validation if required
		return match
	})
}

// applyDefaults fills zero values with defaults.
func applyDefaults(cfg *Config) {
	defaults := Defaults()

	if cfg.Device.Timeout == 0 {
		cfg.Device.Timeout = defaults.Device.Timeout
	}
	if cfg.Device.PageLimit == 0 {
		cfg.Device.PageLimit = defaults.Device.PageLimit
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
}

// validate checks the configuration and reports every problem at once.
func validate(cfg *Config) error {
	var problems []string

	host := strings.TrimSpace(cfg.Device.Host)
	switch {
	case host == "":
		problems = append(problems, "device.host is required")
	case strings.Contains(host, "://"):
		problems = append(problems, "device.host must not include a scheme: "+host)
	case envVarPattern.MatchString(host):
		problems = append(problems, "device.host references an unset variable: "+host)
	}

	if cfg.Device.Username == "" {
		problems = append(problems, "device.username is required")
	}

	if cfg.Device.Timeout < 0 {
		problems = append(problems, "device.timeout must not be negative")
	}

	if cfg.Device.PageLimit < 0 {
		problems = append(problems, "device.page_limit must not be negative")
	}

	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		problems = append(problems, "invalid log level: "+cfg.Logging.Level+" (must be debug, info, warning, error or critical)")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	return nil
}
