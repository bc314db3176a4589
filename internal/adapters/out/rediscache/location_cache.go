// Package rediscache keeps the live tracking projection in Redis.
//
// Each order under delivery is one hash:
//
//	location:<orderId>  latitude, longitude, timestamp (RFC 3339, UTC)
//
// Every write restarts the key's expiration, so an entry disappears on its own once the
// driver stops reporting.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

const (
	keyPrefix = "location:"

	fieldLatitude  = "latitude"
	fieldLongitude = "longitude"
	fieldTimestamp = "timestamp"

	DefaultTTL = 5 * time.Minute
)

// LocationCache implements ports.LocationCache on Redis hashes.
type LocationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLocationCache(client *redis.Client, ttl time.Duration) *LocationCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LocationCache{client: client, ttl: ttl}
}

func Key(orderID int64) string {
	return keyPrefix + strconv.FormatInt(orderID, 10)
}

// Put writes the hash and its expiration in one MULTI/EXEC block.
func (c *LocationCache) Put(ctx context.Context, orderID int64, location ports.TrackedLocation) error {
	key := Key(orderID)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			fieldLatitude:  strconv.FormatFloat(location.Latitude, 'f', -1, 64),
			fieldLongitude: strconv.FormatFloat(location.Longitude, 'f', -1, 64),
			fieldTimestamp: location.Timestamp.UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return errs.NewUpstreamUnavailableError("location cache", err)
	}

	return nil
}

func (c *LocationCache) Get(ctx context.Context, orderID int64) (ports.TrackedLocation, bool, error) {
	fields, err := c.client.HGetAll(ctx, Key(orderID)).Result()
	if err != nil {
		return ports.TrackedLocation{}, false, errs.NewUpstreamUnavailableError("location cache", err)
	}
	if len(fields) == 0 {
		return ports.TrackedLocation{}, false, nil
	}

	location, err := parse(fields)
	if err != nil {
		return ports.TrackedLocation{}, false, errs.NewValueIsInvalidErrorWithCause(Key(orderID), err)
	}

	return location, true, nil
}

func (c *LocationCache) Delete(ctx context.Context, orderID int64) error {
	if err := c.client.Del(ctx, Key(orderID)).Err(); err != nil {
		return errs.NewUpstreamUnavailableError("location cache", err)
	}
	return nil
}

func parse(fields map[string]string) (ports.TrackedLocation, error) {
	latitude, latErr := strconv.ParseFloat(fields[fieldLatitude], 64)
	longitude, lonErr := strconv.ParseFloat(fields[fieldLongitude], 64)
	timestamp, tsErr := time.Parse(time.RFC3339Nano, fields[fieldTimestamp])

	if err := errors.Join(latErr, lonErr, tsErr); err != nil {
		return ports.TrackedLocation{}, fmt.Errorf("malformed entry: %w", err)
	}

	return ports.TrackedLocation{
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: timestamp.UTC(),
	}, nil
}
