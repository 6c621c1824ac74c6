package market

import (
	"context"
	"sync"
	"time"

	"github.com/gridmarket/go-compute-market/conf"

	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
	"github.com/gocelery/gocelery"
	"github.com/gomodule/redigo/redis"
)

var redisPool *redis.Pool
var celeryService *CeleryService
var celeryOnce sync.Once

type CeleryService struct {
	cli *gocelery.CeleryClient
}

func newRedisPool(url string, password string) *redis.Pool {
	redisPool = &redis.Pool{
		MaxIdle:     5,                 // maximum number of idle connections in the pool
		MaxActive:   0,                 // maximum number of connections allocated by the pool at a given time
		IdleTimeout: 240 * time.Second, // close connections after remaining idle for this duration
		Dial: func() (redis.Conn, error) {
			var conn redis.Conn
			var err error
			if password != "" {
				conn, err = redis.DialURL(url, redis.DialPassword(password))
			} else {
				conn, err = redis.DialURL(url)
			}
			if err != nil {
				return nil, err
			}
			return conn, err
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			_, err := c.Do("PING")
			return err
		},
	}
	return redisPool
}

func GetRedisPool() *redis.Pool {
	if redisPool == nil {
		newRedisPool(conf.GetConfig().REDIS.RedisUrl, conf.GetConfig().REDIS.RedisPassword)
	}
	return redisPool
}

func NewCeleryService() *CeleryService {
	celeryOnce.Do(
		func() {
			pool := GetRedisPool()
			celeryClient, err := gocelery.NewCeleryClient(
				gocelery.NewRedisBroker(pool),
				gocelery.NewRedisBackend(pool),
				10)
			if err != nil {
				logs.GetLogger().Fatalf("Failed init celery service, error: %+v", err)
			}
			celeryService = &CeleryService{
				cli: celeryClient,
			}
		})

	return celeryService
}

func (s *CeleryService) RegisterTask(taskName string, task interface{}) {
	s.cli.Register(taskName, task)
}

func (s *CeleryService) DelayTask(taskName string, params ...interface{}) (*gocelery.AsyncResult, error) {
	return s.cli.Delay(taskName, params...)
}

func (s *CeleryService) Start() {
	s.cli.StartWorker()
}

func (s *CeleryService) Stop() {
	s.cli.StopWorker()
}

// SettleTask is the celery worker body for queued settlements. It runs the
// same Complete transition the HTTP handler does, so every guard (running
// status, at-most-once ledger write) still applies. Returns the receipt, or
// an empty string when the settlement could not run.
func SettleTask(taskId string) string {
	logs.GetLogger().Infof("settling task: %s", taskId)
	_, tx, err := marketController.CompleteTask(context.Background(), taskId, nil)
	if err != nil {
		logs.GetLogger().Errorf("queued settlement failed, task: %s, error: %+v", taskId, err)
		return ""
	}
	return tx.TransactionHash
}
