package config

import (
	"net/url"
	"os"
)

// SecretSource represents where a sensitive value comes from.
type SecretSource string

const (
	SourceEnv    SecretSource = "env"
	SourceConfig SecretSource = "config"
	SourceNone   SecretSource = "none"
)

// SecretStatus describes a sensitive setting without revealing it.
type SecretStatus struct {
	Name   string       `json:"name"`
	Source SecretSource `json:"source"`
	IsSet  bool         `json:"is_set"`
	Masked string       `json:"masked,omitempty"`
}

// CheckSecrets returns the status of the settings that may carry credentials.
func CheckSecrets(cfg *Config) []SecretStatus {
	return []SecretStatus{
		checkSecret("Database DSN", cfg.Database.DSN, maskDSN(cfg.Database.DSN), envPrefix+"_DATABASE_DSN", "DATABASE_URL"),
		checkSecret("SEC User-Agent", cfg.SEC.UserAgent, cfg.SEC.UserAgent, envPrefix+"_SEC_USER_AGENT"),
	}
}

func checkSecret(name, value, masked string, envVars ...string) SecretStatus {
	status := SecretStatus{Name: name, IsSet: value != "", Source: SourceNone}
	if value == "" {
		return status
	}
	status.Source = SourceConfig
	for _, env := range envVars {
		if os.Getenv(env) != "" {
			status.Source = SourceEnv
			break
		}
	}
	status.Masked = masked
	return status
}

// maskDSN hides the password of a URL-style DSN. Key/value DSNs are masked whole.
func maskDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return maskKey(dsn)
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

// maskKey masks a value for display, showing only the first and last 3 chars.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}

// Redacted returns a copy of cfg that is safe to print.
func (c Config) Redacted() Config {
	out := c
	out.Database.DSN = maskDSN(c.Database.DSN)
	out.Server.CORSOrigins = append([]string(nil), c.Server.CORSOrigins...)
	return out
}
