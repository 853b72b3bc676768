package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"shipment-tracker/internal/features/shipments/adapters"
	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/lookup"
	"shipment-tracker/internal/features/shipments/ports"
)

type commandContext struct {
	apiURLFlag  *string
	timeoutFlag *time.Duration

	fetcherOnce sync.Once
	fetcher     ports.ShipmentFetcher
}

func newCommandContext(apiURLFlag *string, timeoutFlag *time.Duration) *commandContext {
	return &commandContext{
		apiURLFlag:  apiURLFlag,
		timeoutFlag: timeoutFlag,
	}
}

func (c *commandContext) shipmentFetcher() ports.ShipmentFetcher {
	c.fetcherOnce.Do(func() {
		apiURL := defaultAPIURL
		if c.apiURLFlag != nil && strings.TrimSpace(*c.apiURLFlag) != "" {
			apiURL = strings.TrimSpace(*c.apiURLFlag)
		}
		timeout := 10 * time.Second
		if c.timeoutFlag != nil && *c.timeoutFlag > 0 {
			timeout = *c.timeoutFlag
		}
		c.fetcher = adapters.NewHTTPShipmentFetcher(apiURL, timeout)
	})
	return c.fetcher
}

// resolve fetches a fresh snapshot and matches query against it.
func (c *commandContext) resolve(ctx context.Context, query string, resolver lookup.Resolver) ([]domain.Shipment, error) {
	snapshot, err := c.shipmentFetcher().List(ctx)
	if err != nil {
		return nil, err
	}
	return resolver.Resolve(query, snapshot)
}
