package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	assert.Equal(t, now.Unix(), tt.Unix())
	assert.Equal(t, now.UnixMilli(), tt.UnixMilli())
	assert.Equal(t, now.UnixMicro(), tt.UnixMicro())
	assert.Equal(t, now.UnixNano(), tt.UnixNano())
}

func TestTime_JSON(t *testing.T) {
	tt := Time(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(struct {
		At Time `json:"at"`
	}{At: tt})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2100-01-01T00:00:00Z"}`, string(data))

	var back struct {
		At Time `json:"at"`
	}
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, time.Time(back.At).Equal(time.Time(tt)))

	zero, err := json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(zero))
}

func TestTime_Scan(t *testing.T) {
	var tt Time
	require.NoError(t, tt.Scan("2026-03-04 05:06:07"))
	assert.Equal(t, 2026, time.Time(tt).Year())

	require.NoError(t, tt.Scan([]byte("2026-03-04T05:06:07Z")))
	assert.Equal(t, 7, time.Time(tt).Second())

	require.NoError(t, tt.Scan(nil))
	assert.True(t, time.Time(tt).IsZero())

	assert.Error(t, tt.Scan("yesterday"))
	assert.Error(t, tt.Scan(42))
}
