package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetRedis(t *testing.T) {
	t.Helper()
	ResetRedisClientForTest()
	t.Cleanup(ResetRedisClientForTest)
}

func TestConnectRedis_Disabled(t *testing.T) {
	loadFresh(t, map[string]string{"APPENV": "development", "REDIS_ENABLED": "false"})
	resetRedis(t)

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnectRedis_DefaultIsDisabled(t *testing.T) {
	loadFresh(t, map[string]string{"APPENV": "development", "REDIS_ENABLED": ""})
	resetRedis(t)

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnectRedis_SkippedInTestEnv(t *testing.T) {
	loadFresh(t, map[string]string{"APPENV": "test", "REDIS_ENABLED": "true"})
	resetRedis(t)

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnectRedis_ConcurrentCalls(t *testing.T) {
	loadFresh(t, map[string]string{"APPENV": "development", "REDIS_ENABLED": "false"})
	resetRedis(t)

	type callResult struct {
		rdb interface{}
		err error
	}
	done := make(chan callResult, 5)
	for i := 0; i < 5; i++ {
		go func() {
			rdb, err := ConnectRedis()
			done <- callResult{rdb: rdb, err: err}
		}()
	}

	for i := 0; i < 5; i++ {
		res := <-done
		assert.NoError(t, res.err)
		assert.Nil(t, res.rdb)
	}
}

func TestRedisTestHelpers_SetAndReset(t *testing.T) {
	resetRedis(t)

	SetRedisClientForTest(nil)
	assert.Nil(t, GetRedisClient())
	assert.NoError(t, CloseRedis())

	ResetRedisClientForTest()
	assert.Nil(t, GetRedisClient())
}
