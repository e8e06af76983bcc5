package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ervinbosenbacher/ironsearch/pkg/logger"
)

func TestNewReturnsUsableLogger(t *testing.T) {
	log := logger.New("ironsearch-test")
	require.NotNil(t, log)
	assert.NotPanics(t, func() { log.Infow("test message", "key", "value") })
}

func TestNopDiscardsOutput(t *testing.T) {
	log := logger.Nop()
	require.NotNil(t, log)
	assert.NotPanics(t, func() { log.Infow("discarded", "key", "value") })
}
