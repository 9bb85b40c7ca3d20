package logger_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"parcel-tracking/database/dbtest"
	"parcel-tracking/logger"
	logModel "parcel-tracking/models/log"
	"parcel-tracking/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsAndPrefixes(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, "info")
	defer logger.SetOutput(&bytes.Buffer{}, "info")

	logger.Debug("hidden")
	logger.Info("parcel moved")
	logger.Error("publish failed", errors.New("broker down"))
	logger.Infow("transition", "tracking_number", "TN-1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "parcel moved")
	assert.Contains(t, out, "publish failed: broker down")
	assert.Contains(t, out, "TN-1")
}

func TestAsyncLoggerPersistsEntries(t *testing.T) {
	db := dbtest.Open(t)
	al := logger.NewAsyncLogger(db)
	go al.ProcessLog()

	al.Log(types.LogEntry{
		RequestID:  "req-1",
		Method:     "POST",
		URL:        "/api/parcels",
		StatusCode: 201,
		CreatedAt:  time.Now().UTC(),
	})
	al.Close()

	var rows []logModel.Log
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "req-1", rows[0].RequestID)
	assert.Equal(t, 201, rows[0].StatusCode)
}

func TestNilAsyncLoggerIsSafe(t *testing.T) {
	var al *logger.AsyncLogger
	assert.NotPanics(t, func() { al.Log(types.LogEntry{Method: "GET"}) })
}

func TestAsyncLoggerDropsEntriesAfterClose(t *testing.T) {
	db := dbtest.Open(t)
	al := logger.NewAsyncLogger(db)
	go al.ProcessLog()
	al.Close()

	assert.NotPanics(t, func() {
		al.Log(types.LogEntry{Method: "GET", URL: "/api/parcels", CreatedAt: time.Now().UTC()})
	})
	assert.NotPanics(t, al.Close)

	var n int64
	require.NoError(t, db.Model(&logModel.Log{}).Count(&n).Error)
	assert.Zero(t, n)
}
