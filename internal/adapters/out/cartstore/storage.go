// Package cartstore keeps shopping carts in Redis as JSON documents that
// expire after a period of inactivity.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "cart:"

type lineDTO struct {
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	PricePerQuantity int             `json:"price_per_quantity"`
	Unit             string          `json:"unit"`
	Quantity         int             `json:"quantity"`
	RegionID         string          `json:"region_id"`
}

// RedisCartStorage stores one key per user. Every save refreshes the TTL.
type RedisCartStorage struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCartStorage(client redis.UniversalClient, ttl time.Duration) *RedisCartStorage {
	return &RedisCartStorage{client: client, ttl: ttl}
}

func (s *RedisCartStorage) Load(ctx context.Context, userID kernel.UUID) ([]cart.Line, error) {
	payload, err := s.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.WrapDependency("redis", err)
	}

	var dtos []lineDTO
	if err = json.Unmarshal(payload, &dtos); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("cart", err)
	}

	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		line, convErr := dto.toDomain()
		if convErr != nil {
			return nil, convErr
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *RedisCartStorage) Save(ctx context.Context, userID kernel.UUID, lines []cart.Line) error {
	dtos := make([]lineDTO, 0, len(lines))
	for _, line := range lines {
		dtos = append(dtos, fromDomain(line))
	}

	payload, err := json.Marshal(dtos)
	if err != nil {
		return err
	}
	return errs.WrapDependency("redis", s.client.Set(ctx, key(userID), payload, s.ttl).Err())
}

func (s *RedisCartStorage) Delete(ctx context.Context, userID kernel.UUID) error {
	return errs.WrapDependency("redis", s.client.Del(ctx, key(userID)).Err())
}

func key(userID kernel.UUID) string {
	return keyPrefix + userID.String()
}

func fromDomain(line cart.Line) lineDTO {
	return lineDTO{
		ProductID:        line.ProductID.String(),
		Name:             line.Name,
		Price:            line.Price,
		PricePerQuantity: line.PricePerQuantity,
		Unit:             line.Unit,
		Quantity:         line.Quantity,
		RegionID:         line.RegionID.String(),
	}
}

func (dto lineDTO) toDomain() (cart.Line, error) {
	productID, err := kernel.UUIDFromString(dto.ProductID)
	if err != nil {
		return cart.Line{}, err
	}
	regionID, err := kernel.UUIDFromString(dto.RegionID)
	if err != nil {
		return cart.Line{}, err
	}
	return cart.Line{
		ProductID:        productID,
		Name:             dto.Name,
		Price:            dto.Price,
		PricePerQuantity: dto.PricePerQuantity,
		Unit:             dto.Unit,
		Quantity:         dto.Quantity,
		RegionID:         regionID,
	}, nil
}
