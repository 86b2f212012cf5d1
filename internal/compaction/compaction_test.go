package compaction

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShouldRun(t *testing.T) {
	p := NewDefaultPolicy()

	require.False(t, p.ShouldRun(10, 0), "no operations yet, nothing to compact")
	require.False(t, p.ShouldRun(8, 10), "0.8 ratio is above threshold")
	require.True(t, p.ShouldRun(7, 10), "0.7 ratio sits exactly at threshold")
	require.True(t, p.ShouldRun(1, 100), "heavy churn on one key should trigger")
}

func TestShouldRunCustomThreshold(t *testing.T) {
	p := Policy{Threshold: 0.5}
	require.True(t, p.ShouldRun(5, 10))
	require.False(t, p.ShouldRun(6, 10))
}
