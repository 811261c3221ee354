package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/cache"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/database"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/search"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/observability"
	"github.com/zatekoja/referralcoordination/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger("seed", cfg.Server.Environment)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	ctx := context.Background()

	var searchIndex providers.ProviderSearchIndex
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, seeding PostgreSQL only")
		} else {
			adapter := search.NewTypesenseAdapter(tsClient)
			if err := adapter.InitSchema(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to init Typesense schema")
			}
			searchIndex = adapter
		}
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				referral_matches,
				referrals,
				providers
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	providerService := services.NewProviderService(database.NewProviderAdapter(pgClient), searchIndex, nil)
	matchAdapter := database.NewMatchAdapter(pgClient)
	referralService := services.NewReferralService(database.NewReferralAdapter(pgClient), matchAdapter, nil)

	seedProviders := []*entities.Provider{
		{
			Name:                  "Northside Counseling Collective",
			ServiceTypes:          []string{"Mental Health Therapy", "Substance Use Counseling"},
			CountiesServed:        []string{"Hennepin", "Anoka"},
			InsuranceAccepted:     []string{"Medicaid", "BlueCross"},
			LanguagesSpoken:       []string{"English", "Somali"},
			AccessibilityFeatures: []string{"wheelchair", "telehealth"},
			Capacity:              entities.CapacityHigh,
			AvailableSlots:        8,
			Rating:                4.6,
			ProviderSize:          entities.ProviderSizeMedium,
			IsActive:              true,
		},
		{
			Name:              "Riverside Family Services",
			ServiceTypes:      []string{"Mental Health Therapy", "Family Counseling"},
			CountiesServed:    []string{"Ramsey", "Hennepin"},
			InsuranceAccepted: []string{"Medicaid", "Medicare"},
			LanguagesSpoken:   []string{"English", "Spanish", "Hmong"},
			Capacity:          entities.CapacityMedium,
			AvailableSlots:    3,
			Rating:            4.2,
			ProviderSize:      entities.ProviderSizeSmall,
			IsActive:          true,
		},
		{
			Name:                  "Metro Housing Partners",
			ServiceTypes:          []string{"Housing Assistance"},
			CountiesServed:        []string{"Hennepin", "Ramsey", "Dakota"},
			InsuranceAccepted:     []string{"Medicaid"},
			LanguagesSpoken:       []string{"English"},
			AccessibilityFeatures: []string{"wheelchair"},
			Capacity:              entities.CapacityLow,
			AvailableSlots:        1,
			Rating:                3.9,
			ProviderSize:          entities.ProviderSizeLarge,
			IsActive:              true,
		},
		{
			Name:              "Dakota Recovery Center",
			ServiceTypes:      []string{"Substance Use Counseling"},
			CountiesServed:    []string{"Dakota"},
			InsuranceAccepted: []string{"BlueCross", "Aetna"},
			LanguagesSpoken:   []string{"English"},
			Capacity:          entities.CapacityHigh,
			AvailableSlots:    0,
			Rating:            4.8,
			ProviderSize:      entities.ProviderSizeMedium,
			IsActive:          true,
		},
	}

	for _, p := range seedProviders {
		if err := providerService.CreateProvider(ctx, p); err != nil {
			log.Error().Err(err).Str("name", p.Name).Msg("Failed to create provider")
		}
	}

	seedReferrals := []*entities.Referral{
		{
			ServiceType:        "Mental Health Therapy",
			Urgency:            entities.UrgencyHigh,
			Counties:           []string{"Hennepin"},
			InsuranceRequired:  []string{"Medicaid"},
			LanguagesRequired:  []string{"Somali"},
			AccessibilityNeeds: []string{"telehealth"},
			CreatedBy:          "seed",
		},
		{
			ServiceType:       "Housing Assistance",
			Urgency:           entities.UrgencyCritical,
			Counties:          []string{"Ramsey"},
			InsuranceRequired: []string{"Medicaid"},
			CreatedBy:         "seed",
			Notes:             "Client loses current placement at end of month",
		},
		{
			ServiceType: "Substance Use Counseling",
			Urgency:     entities.UrgencyLow,
			Counties:    []string{"Dakota"},
			CreatedBy:   "seed",
		},
	}

	for _, r := range seedReferrals {
		if err := referralService.CreateReferral(ctx, r); err != nil {
			log.Error().Err(err).Str("service_type", r.ServiceType).Msg("Failed to create referral")
		}
	}

	// A running API may hold provider responses from before the reseed
	if redisClient, err := redis.NewClient(&cfg.Redis); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, skipping cache invalidation")
	} else {
		invalidator := services.NewCacheInvalidationService(cache.NewRedisAdapter(redisClient), nil)
		if err := invalidator.InvalidateAllProviders(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate provider caches")
		}
		redisClient.Close()
	}

	log.Info().
		Int("providers", len(seedProviders)).
		Int("referrals", len(seedReferrals)).
		Msg("Seeding complete")
}
