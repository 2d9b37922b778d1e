package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightService_ResolveMonths(t *testing.T) {
	s := &InsightService{now: func() time.Time {
		return time.Date(2025, time.February, 14, 15, 30, 0, 0, time.Local)
	}}

	q, err := s.resolve(InsightQuery{Months: 3})
	require.NoError(t, err)
	require.NotNil(t, q.Start)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.Local), *q.Start)
	assert.Nil(t, q.End)

	q, err = s.resolve(InsightQuery{Months: 1})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local), *q.Start)

	// Explicit bounds win over Months.
	end := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	q, err = s.resolve(InsightQuery{End: &end, Months: 6})
	require.NoError(t, err)
	assert.Nil(t, q.Start)

	q, err = s.resolve(InsightQuery{})
	require.NoError(t, err)
	assert.Nil(t, q.Start)
	assert.Nil(t, q.End)
}
