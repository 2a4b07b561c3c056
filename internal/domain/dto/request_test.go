package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderRequest_ParseDate(t *testing.T) {
	req := GenerateOrderRequest{Name: "Week 12", Date: "2026-03-02", DayIDs: []int64{1}}

	date, err := req.ParseDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), date)
}

func TestGenerateOrderRequest_ParseDate_Invalid(t *testing.T) {
	for _, raw := range []string{"02/03/2026", "2026-3-2", "2026-13-01", "tomorrow", ""} {
		req := GenerateOrderRequest{Date: raw}
		_, err := req.ParseDate()
		assert.Error(t, err, raw)
	}
}
