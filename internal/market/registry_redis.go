package market

import (
	"strconv"

	"github.com/gomodule/redigo/redis"
	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
)

// RedisResourceStore keeps one hash per resource under RESOURCE:<id>. It is
// the durable registry backend used when the node is configured with redis.
type RedisResourceStore struct {
	pool *redis.Pool
}

func NewRedisResourceStore(pool *redis.Pool) *RedisResourceStore {
	return &RedisResourceStore{pool: pool}
}

func (r *RedisResourceStore) Get(id string) (*models.Resource, error) {
	conn := r.pool.Get()
	defer conn.Close()

	return r.retrieve(conn, constants.REDIS_RESOURCE_PREFIX+id)
}

func (r *RedisResourceStore) ListByProvider(providerId string) ([]*models.Resource, error) {
	return r.scan(func(resource *models.Resource) bool {
		return resource.ProviderId == providerId
	})
}

func (r *RedisResourceStore) ListActive() ([]*models.Resource, error) {
	return r.scan(func(resource *models.Resource) bool {
		return resource.Status == constants.ResourceStatusActive
	})
}

func (r *RedisResourceStore) List() ([]*models.Resource, error) {
	return r.scan(func(resource *models.Resource) bool {
		return true
	})
}

func (r *RedisResourceStore) Upsert(resource *models.Resource) error {
	conn := r.pool.Get()
	defer conn.Close()

	key := constants.REDIS_RESOURCE_PREFIX + resource.Id

	fullArgs := []interface{}{key}
	fields := map[string]string{
		"id":             resource.Id,
		"provider":       resource.Provider,
		"provider_id":    resource.ProviderId,
		"wallet_address": resource.WalletAddress,
		"location":       resource.Location,
		"cpu_cores":      strconv.Itoa(resource.CpuCores),
		"gpu_memory":     strconv.Itoa(resource.GpuMemory),
		"cpu_price":      strconv.FormatFloat(resource.CpuPrice, 'f', -1, 64),
		"gpu_price":      strconv.FormatFloat(resource.GpuPrice, 'f', -1, 64),
		"availability":   strconv.Itoa(resource.Availability),
		"rating":         strconv.FormatFloat(resource.Rating, 'f', -1, 64),
		"status":         resource.Status,
		"created_at":     resource.CreatedAt,
		"updated_at":     resource.UpdatedAt,
	}
	for field, val := range fields {
		fullArgs = append(fullArgs, field, val)
	}

	_, err := conn.Do("HSET", fullArgs...)
	return err
}

func (r *RedisResourceStore) Remove(id string) error {
	conn := r.pool.Get()
	defer conn.Close()

	key := constants.REDIS_RESOURCE_PREFIX + id
	deleted, err := redis.Int(conn.Do("DEL", key))
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrResourceNotFound
	}
	return nil
}

func (r *RedisResourceStore) scan(keep func(*models.Resource) bool) ([]*models.Resource, error) {
	conn := r.pool.Get()
	defer conn.Close()

	prefix := constants.REDIS_RESOURCE_PREFIX + "*"
	keys, err := redis.Strings(conn.Do("KEYS", prefix))
	if err != nil {
		return nil, err
	}

	var result []*models.Resource
	for _, key := range keys {
		resource, err := r.retrieve(conn, key)
		if err != nil {
			if err == ErrResourceNotFound {
				continue
			}
			return nil, err
		}
		if keep(resource) {
			result = append(result, resource)
		}
	}
	return result, nil
}

func (r *RedisResourceStore) retrieve(conn redis.Conn, key string) (*models.Resource, error) {
	fields, err := redis.StringMap(conn.Do("HGETALL", key))
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrResourceNotFound
	}

	cpuCores, _ := strconv.Atoi(fields["cpu_cores"])
	gpuMemory, _ := strconv.Atoi(fields["gpu_memory"])
	cpuPrice, _ := strconv.ParseFloat(fields["cpu_price"], 64)
	gpuPrice, _ := strconv.ParseFloat(fields["gpu_price"], 64)
	availability, _ := strconv.Atoi(fields["availability"])
	rating, _ := strconv.ParseFloat(fields["rating"], 64)

	return &models.Resource{
		Id:            fields["id"],
		Provider:      fields["provider"],
		ProviderId:    fields["provider_id"],
		WalletAddress: fields["wallet_address"],
		Location:      fields["location"],
		CpuCores:      cpuCores,
		GpuMemory:     gpuMemory,
		CpuPrice:      cpuPrice,
		GpuPrice:      gpuPrice,
		Availability:  availability,
		Rating:        rating,
		Status:        fields["status"],
		CreatedAt:     fields["created_at"],
		UpdatedAt:     fields["updated_at"],
	}, nil
}
