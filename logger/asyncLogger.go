package logger

import (
	log_model "parcel-tracking/models/log"
	"parcel-tracking/services/metrics"
	"parcel-tracking/types"
	"sync"

	"gorm.io/gorm"
)

// AsyncLogger persists API request logs off the request path.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
	done    chan struct{}
	once    sync.Once

	// mu guards closed and the channel close against late senders.
	mu     sync.RWMutex
	closed bool
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100), // Buffered channel to hold log entries
		done:    make(chan struct{}),
	}
}

func (logger *AsyncLogger) ProcessLog() {
	defer close(logger.done)
	Debug("Starting asynchronous logger...")

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			RequestID:       logEntry.RequestID,
			Method:          logEntry.Method,
			URL:             logEntry.URL,
			RequestBody:     logEntry.RequestBody,
			ResponseBody:    logEntry.ResponseBody,
			RequestHeaders:  logEntry.RequestHeaders,
			ResponseHeaders: logEntry.ResponseHeaders,
			StatusCode:      logEntry.StatusCode,
			CreatedAt:       logEntry.CreatedAt,
		}

		if err := logger.db.Create(&dbLog).Error; err != nil {
			Error("Failed to insert new log entry", err)
		}
	}
}

// Log queues an entry. A full buffer drops the entry rather than stall the
// request that produced it, and so does a logger that is already closed.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	if logger == nil {
		return
	}

	logger.mu.RLock()
	defer logger.mu.RUnlock()
	if logger.closed {
		metrics.DroppedLogEntries.Inc()
		return
	}

	select {
	case logger.channel <- entry:
	default:
		metrics.DroppedLogEntries.Inc()
		Warning("Request log buffer full, dropping entry for " + entry.Method + " " + entry.URL)
	}
}

// Close stops accepting entries and waits for ProcessLog to drain.
func (logger *AsyncLogger) Close() {
	logger.once.Do(func() {
		logger.mu.Lock()
		logger.closed = true
		close(logger.channel)
		logger.mu.Unlock()
	})
	<-logger.done
}
