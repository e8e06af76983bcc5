package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ervinbosenbacher/ironsearch/pkg/analysis"
)

func TestKeywordEmitsWholeValueOnce(t *testing.T) {
	var k analysis.Keyword
	require.NoError(t, k.Reset("hello world"))

	require.True(t, k.Next())
	assert.Equal(t, "hello world", string(k.Term()))
	assert.False(t, k.Next())
}

func TestKeywordRejectsNonString(t *testing.T) {
	var k analysis.Keyword
	err := k.Reset(42)
	assert.Error(t, err)
}

func TestKeywordResetReusable(t *testing.T) {
	var k analysis.Keyword
	require.NoError(t, k.Reset("first"))
	require.True(t, k.Next())
	require.NoError(t, k.Reset("second"))
	require.True(t, k.Next())
	assert.Equal(t, "second", string(k.Term()))
}
