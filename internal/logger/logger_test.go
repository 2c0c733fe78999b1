package logger_test

import (
	"testing"

	"watchmatch/backend/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestLReturnsNonNilWithoutInit(t *testing.T) {
	assert.NotNil(t, logger.L())
}

func TestInitAcceptsFormats(t *testing.T) {
	logger.Init(logger.Config{Level: "debug", Format: "json"})
	assert.NotNil(t, logger.L())

	logger.Init(logger.Config{Level: "bogus", Format: "text"})
	assert.NotNil(t, logger.L())
}

func TestWithAddsAttributes(t *testing.T) {
	child := logger.With("component", "test")
	assert.NotNil(t, child)
}
