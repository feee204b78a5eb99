package logger

import (
	"context"
	"testing"
	"time"

	common_models "amigo-admin/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type chanSink struct {
	records chan common_models.Log
}

func (s *chanSink) InsertLog(_ context.Context, record common_models.Log) error {
	s.records <- record
	return nil
}

func TestDBCoreForwardsEntries(t *testing.T) {
	sink := &chanSink{records: make(chan common_models.Log, 4)}
	writer := newDBLogWriter(sink, "amigo-admin-test", 4)
	defer writer.Close()

	observed, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(NewDBCore(observed, writer), zap.AddCaller()).With(zap.String("uid", "admin-1"))

	log.Warn("bulk dispatch finished", zap.String("ip", "10.0.0.1"), zap.Int("failed", 2))

	select {
	case record := <-sink.records:
		assert.Equal(t, "amigo-admin-test", record.AppId)
		assert.Equal(t, "bulk dispatch finished", record.Message)
		assert.Equal(t, "10.0.0.1", record.IpAddress)
		assert.Equal(t, "admin-1", record.UserId)
		assert.Equal(t, 30, record.LogLevelId)
	case <-time.After(2 * time.Second):
		t.Fatal("log record was not written")
	}

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "bulk dispatch finished", logs.All()[0].Message)
}

func TestDBCoreRespectsLevel(t *testing.T) {
	sink := &chanSink{records: make(chan common_models.Log, 1)}
	writer := newDBLogWriter(sink, "test", 1)
	defer writer.Close()

	observed, _ := observer.New(zapcore.WarnLevel)
	zap.New(NewDBCore(observed, writer)).Info("ignored")

	select {
	case record := <-sink.records:
		t.Fatalf("unexpected record %q", record.Message)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAddLogAfterClose(t *testing.T) {
	writer := newDBLogWriter(&chanSink{records: make(chan common_models.Log, 1)}, "test", 1)
	writer.Close()

	assert.NotPanics(t, func() {
		writer.AddLog(LogEntry{Message: "late"})
		writer.Close()
	})
}

func TestMapLevelToInt(t *testing.T) {
	assert.Equal(t, 10, mapLevelToInt(zapcore.DebugLevel))
	assert.Equal(t, 40, mapLevelToInt(zapcore.ErrorLevel))
	assert.Equal(t, 20, mapLevelToInt(zapcore.DPanicLevel))
}
