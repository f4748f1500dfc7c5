package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type EnvironmentVariable struct {
	API_PORT                int
	UPSTREAM_BASE_URL       string
	UPSTREAM_API_URL        string
	JWT_SECRET              []byte
	DB_POSTGRESQL_WRITE_DSN string
	DB_POSTGRESQL_READ1_DSN string
	SMTP_HOST               string
	SMTP_PORT               string
	SMTP_USERNAME           string
	SMTP_PASSWORD           string
	SENDER_EMAIL            string
	ALLOWED_CORS_HOSTS      []string

	API_DEFAULT_CALL_LIMIT int
	DEFAULT_PER_PAGE       int
	MAX_PER_PAGE           int

	// Cache TTLs in seconds. Rankings pages stay short because the
	// refresh scheduler rewrites them every cycle anyway.
	CACHE_TTL_SECONDS          int
	RANKINGS_CACHE_TTL_SECONDS int

	UPSTREAM_TIMEOUT_SECONDS int
	REFRESH_THROTTLE_SECONDS int
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}
		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(envValue)
		case int:
			parsed, err := strconv.Atoi(envValue)
			if err != nil {
				fmt.Printf("Invalid SYSENV %s: %v\n", envKey, err)
				continue
			}
			v.Field(i).SetInt(int64(parsed))
		case []byte:
			v.Field(i).SetBytes([]byte(envValue))
		case []string:
			parts := strings.Split(envValue, ",")
			for j := range parts {
				parts[j] = strings.TrimSpace(parts[j])
			}
			v.Field(i).Set(reflect.ValueOf(parts))
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{
	API_PORT:                   8080,
	UPSTREAM_BASE_URL:          "https://www.openpowerlifting.org",
	UPSTREAM_API_URL:           "https://www.openpowerlifting.org/api",
	API_DEFAULT_CALL_LIMIT:     1000,
	DEFAULT_PER_PAGE:           100,
	MAX_PER_PAGE:               500,
	CACHE_TTL_SECONDS:          3600,
	RANKINGS_CACHE_TTL_SECONDS: 90,
	UPSTREAM_TIMEOUT_SECONDS:   15,
	REFRESH_THROTTLE_SECONDS:   3,
}
