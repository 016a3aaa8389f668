package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/vastra/config"
)

func TestLogDriver(t *testing.T) {
	t.Cleanup(func() { config.Set("LOG_DRIVER", "") })

	assert.Equal(t, "stdout", config.LogDriver())

	config.Set("LOG_DRIVER", "Mongo")
	assert.Equal(t, "mongo", config.LogDriver())
}

func TestMongoDefaults(t *testing.T) {
	assert.Equal(t, "mongodb://localhost:27017", config.MongoURI())
	assert.Equal(t, "vastra", config.MongoDatabase())
	assert.Equal(t, "logs", config.MongoLogCollection())
}
