package agent

import (
	"bufio"
	"os"
	"strings"
)

// envVarCache stores variables loaded from .env files. Real
// environment variables always take precedence over the cache.
var envVarCache = make(map[string]string)

func loadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if _, exists := os.LookupEnv(key); !exists {
			envVarCache[key] = value
		}
	}
	return scanner.Err()
}

// LoadEnvFile loads a .env file into the cache. Missing files are not
// an error.
func LoadEnvFile(path string) error {
	return loadEnvFile(path)
}

// ExpandEnv expands ${VAR} references against the environment and any
// loaded .env files
func ExpandEnv(s string) string {
	if len(envVarCache) == 0 {
		_ = loadEnvFile(".env")
	}
	return os.Expand(s, GetEnvValue)
}

// GetEnvValue resolves a variable from the environment or the .env
// cache, empty when unset
func GetEnvValue(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return envVarCache[key]
}
