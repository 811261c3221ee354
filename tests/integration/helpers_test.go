//go:build integration

package integration

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/referralcoordination/backend/pkg/config"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func requireEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if os.Getenv(key) == "" {
			t.Skipf("Skipping integration test: %s not set", key)
		}
	}
}

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	cfg := &config.RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_REDIS_PORT", 6379),
		Password: getEnv("TEST_REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("TEST_REDIS_DB", 0),
	}

	client, err := redis.NewClient(cfg)
	require.NoError(t, err, "Failed to create redis client")
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// newTestPostgresClient connects and applies the schema, then empties the
// referral tables so every test starts clean
func newTestPostgresClient(t *testing.T) *postgres.Client {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "referral_coordination_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	client, err := postgres.NewClient(cfg)
	require.NoError(t, err, "Failed to create postgres client")
	t.Cleanup(func() { _ = client.Close() })

	schema, err := os.ReadFile("../../migrations/001_init.sql")
	require.NoError(t, err)
	_, err = client.DB().Exec(string(schema))
	require.NoError(t, err)

	_, err = client.DB().Exec("TRUNCATE referral_matches, referrals, providers")
	require.NoError(t, err)
	return client
}

func testProvider(id string, rating float64, slots int) *entities.Provider {
	return &entities.Provider{
		ID:                    id,
		Name:                  "Provider " + id,
		ServiceTypes:          []string{"Mental Health Therapy"},
		CountiesServed:        []string{"Hennepin", "Ramsey"},
		InsuranceAccepted:     []string{"Medicaid", "Blue Cross"},
		LanguagesSpoken:       []string{"English", "Spanish"},
		AccessibilityFeatures: []string{"Wheelchair Access"},
		Capacity:              entities.CapacityHigh,
		AvailableSlots:        slots,
		Rating:                rating,
		ProviderSize:          entities.ProviderSizeMedium,
		IsActive:              true,
	}
}

func waitForEvent(t *testing.T, ch <-chan *entities.ReferralEvent) *entities.ReferralEvent {
	t.Helper()
	select {
	case event := <-ch:
		require.NotNil(t, event)
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for referral event")
		return nil
	}
}

func subscribe(t *testing.T, subscribeFn func(ctx context.Context) (<-chan *entities.ReferralEvent, error)) <-chan *entities.ReferralEvent {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch, err := subscribeFn(ctx)
	require.NoError(t, err)
	// let the subscription reach the server before anything is published
	time.Sleep(50 * time.Millisecond)
	return ch
}
