package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("BASKETRACK_SERVER_PORT")
		os.Unsetenv("BASKETRACK_SERVER_ENVIRONMENT")
		os.Unsetenv("BASKETRACK_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("BASKETRACK_DATABASE_URL")
		os.Unsetenv("BASKETRACK_CACHE_TYPE")
		os.Unsetenv("BASKETRACK_CACHE_REDIS_ADDR")
		os.Unsetenv("BASKETRACK_CACHE_TTL")
		os.Unsetenv("BASKETRACK_CARTAPI_BASE_URL")
		os.Unsetenv("BASKETRACK_CARTAPI_API_KEY")
		os.Unsetenv("BASKETRACK_CARTAPI_TIMEOUT")
		os.Unsetenv("BASKETRACK_MATCHING_MAX_CANDIDATES")
		os.Unsetenv("BASKETRACK_MATCHING_INGREDIENT_TIMEOUT")
		os.Unsetenv("BASKETRACK_RATELIMIT_PER_IP")
		os.Unsetenv("BASKETRACK_LOGGING_LEVEL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required cart service URL
		os.Setenv("BASKETRACK_CARTAPI_BASE_URL", "https://cart.example.com")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Database.URL == "" {
			t.Error("Database.URL is empty, want default DSN")
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 2*time.Minute {
			t.Errorf("Cache.TTL = %v, want 2m", cfg.Cache.TTL)
		}
		if cfg.CartAPI.Timeout != 10*time.Second {
			t.Errorf("CartAPI.Timeout = %v, want 10s", cfg.CartAPI.Timeout)
		}
		if cfg.Matching.MaxCandidates != 20 {
			t.Errorf("Matching.MaxCandidates = %d, want 20", cfg.Matching.MaxCandidates)
		}
		if cfg.Matching.IngredientTimeout != 3*time.Second {
			t.Errorf("Matching.IngredientTimeout = %v, want 3s", cfg.Matching.IngredientTimeout)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("BASKETRACK_SERVER_PORT", "9090")
		os.Setenv("BASKETRACK_SERVER_ENVIRONMENT", "production")
		os.Setenv("BASKETRACK_DATABASE_URL", "postgres://user:pass@db:5432/basket?sslmode=disable")
		os.Setenv("BASKETRACK_CACHE_TYPE", "redis")
		os.Setenv("BASKETRACK_CACHE_REDIS_ADDR", "redis:6379")
		os.Setenv("BASKETRACK_CACHE_TTL", "10m")
		os.Setenv("BASKETRACK_CARTAPI_BASE_URL", "https://cart.internal")
		os.Setenv("BASKETRACK_CARTAPI_API_KEY", "secret-key")
		os.Setenv("BASKETRACK_CARTAPI_TIMEOUT", "5s")
		os.Setenv("BASKETRACK_MATCHING_MAX_CANDIDATES", "30")
		os.Setenv("BASKETRACK_MATCHING_INGREDIENT_TIMEOUT", "1s")
		os.Setenv("BASKETRACK_RATELIMIT_PER_IP", "200")
		os.Setenv("BASKETRACK_LOGGING_LEVEL", "debug")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Database.URL != "postgres://user:pass@db:5432/basket?sslmode=disable" {
			t.Errorf("Database.URL = %s, want custom DSN", cfg.Database.URL)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisAddr != "redis:6379" {
			t.Errorf("Cache.RedisAddr = %s, want redis:6379", cfg.Cache.RedisAddr)
		}
		if cfg.Cache.TTL != 10*time.Minute {
			t.Errorf("Cache.TTL = %v, want 10m", cfg.Cache.TTL)
		}
		if cfg.CartAPI.BaseURL != "https://cart.internal" {
			t.Errorf("CartAPI.BaseURL = %s, want https://cart.internal", cfg.CartAPI.BaseURL)
		}
		if cfg.CartAPI.APIKey != "secret-key" {
			t.Errorf("CartAPI.APIKey = %s, want secret-key", cfg.CartAPI.APIKey)
		}
		if cfg.CartAPI.Timeout != 5*time.Second {
			t.Errorf("CartAPI.Timeout = %v, want 5s", cfg.CartAPI.Timeout)
		}
		if cfg.Matching.MaxCandidates != 30 {
			t.Errorf("Matching.MaxCandidates = %d, want 30", cfg.Matching.MaxCandidates)
		}
		if cfg.Matching.IngredientTimeout != time.Second {
			t.Errorf("Matching.IngredientTimeout = %v, want 1s", cfg.Matching.IngredientTimeout)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
		}
	})

	t.Run("fails validation when cart API base URL is missing", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing cart API base URL")
		}
		if err != nil && err.Error() != "invalid configuration: cart API base URL is required (set BASKETRACK_CARTAPI_BASE_URL)" {
			t.Errorf("Load() error = %v, want 'cart API base URL is required'", err)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("BASKETRACK_CARTAPI_BASE_URL", "https://cart.example.com")
		os.Setenv("BASKETRACK_CACHE_TYPE", "invalid")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation for non-positive max candidates", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("BASKETRACK_CARTAPI_BASE_URL", "https://cart.example.com")
		os.Setenv("BASKETRACK_MATCHING_MAX_CANDIDATES", "0")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for zero max candidates")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		// Save current directory
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		// Create temp directory
		tempDir := t.TempDir()
		os.Chdir(tempDir)

		err := loadEnvFile()
		if err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		// Save current directory
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		// Create temp directory
		tempDir := t.TempDir()
		os.Chdir(tempDir)

		// Create .env file
		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2=value2

# Another comment
TEST_VAR_3=value3
`
		err := os.WriteFile(".env", []byte(envContent), 0644)
		if err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		// Clear any existing values
		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_VAR_3")

		err = loadEnvFile()
		if err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_VAR_3") != "value3" {
			t.Errorf("TEST_VAR_3 = %s, want value3", os.Getenv("TEST_VAR_3"))
		}

		// Cleanup
		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_VAR_3")
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		// Save current directory
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		// Create temp directory
		tempDir := t.TempDir()
		os.Chdir(tempDir)

		// Set existing env var
		os.Setenv("TEST_OVERRIDE", "existing-value")

		// Create .env file that tries to override
		envContent := "TEST_OVERRIDE=new-value"
		err := os.WriteFile(".env", []byte(envContent), 0644)
		if err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		err = loadEnvFile()
		if err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		// Should still have original value
		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}

		os.Unsetenv("TEST_OVERRIDE")
	})
}

func TestValidate(t *testing.T) {
	validConfig := func() *Config {
		return &Config{
			Database: DatabaseConfig{URL: "postgres://localhost:5432/basketrack"},
			CartAPI:  CartAPIConfig{BaseURL: "https://cart.example.com"},
			Cache:    CacheConfig{Type: "memory"},
			Matching: MatchingConfig{MaxCandidates: 20},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		err := validate(validConfig())
		if err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when database URL is empty", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.URL = ""

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for empty database URL")
		}
	})

	t.Run("fails when cart API base URL is empty", func(t *testing.T) {
		cfg := validConfig()
		cfg.CartAPI.BaseURL = ""

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for empty cart API base URL")
		}
	})

	t.Run("fails for invalid cache type", func(t *testing.T) {
		cfg := validConfig()
		cfg.Cache.Type = "invalid-type"

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for invalid cache type")
		}
	})

	t.Run("validates redis cache type with address", func(t *testing.T) {
		cfg := validConfig()
		cfg.Cache.Type = "redis"
		cfg.Cache.RedisAddr = "localhost:6379"

		err := validate(cfg)
		if err != nil {
			t.Errorf("validate() error = %v, want nil for valid redis config", err)
		}
	})

	t.Run("fails for redis cache without address", func(t *testing.T) {
		cfg := validConfig()
		cfg.Cache.Type = "redis"
		cfg.Cache.RedisAddr = ""

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for redis without address")
		}
	})

	t.Run("fails for non-positive max candidates", func(t *testing.T) {
		cfg := validConfig()
		cfg.Matching.MaxCandidates = 0

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for zero max candidates")
		}
	})
}
