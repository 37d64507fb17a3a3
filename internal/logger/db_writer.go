package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap/zapcore"
)

const authzLogCollection = "authz_logs"

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level     zapcore.Level
	Message   string
	TenantID  int64
	UserID    int64
	RequestID string
	Path      string
	Caller    string
	Time      time.Time
}

type authzLogRecord struct {
	AppID     string    `bson:"app_id"`
	Level     string    `bson:"level"`
	Message   string    `bson:"message"`
	TenantID  int64     `bson:"tenant_id,omitempty"`
	UserID    int64     `bson:"user_id,omitempty"`
	RequestID string    `bson:"request_id,omitempty"`
	Path      string    `bson:"path,omitempty"`
	Caller    string    `bson:"caller,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	collection logInserter
	logChan    chan LogEntry
	appId      string
	wg         sync.WaitGroup
	closeOnce  sync.Once

	mu     sync.RWMutex
	closed bool
}

// logInserter is the part of *mongo.Collection the worker uses.
type logInserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

func NewDBLogWriter(collection *mongo.Collection, appId string) *DBLogWriter {
	return newDBLogWriter(collection, appId)
}

func newDBLogWriter(collection logInserter, appId string) *DBLogWriter {
	writer := &DBLogWriter{
		collection: collection,
		logChan:    make(chan LogEntry, 1000),
		appId:      appId,
	}

	writer.wg.Add(1)
	go writer.processLogs()

	return writer
}

// AddLog never blocks the request path. A full buffer or a closed writer
// drops the entry.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.logChan <- entry:
	default:
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

// Close drains the buffer and stops the worker.
func (w *DBLogWriter) Close() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.logChan)
		w.mu.Unlock()
		w.wg.Wait()
	})
}

func (w *DBLogWriter) processLogs() {
	defer w.wg.Done()
	for entry := range w.logChan {
		createdAt := entry.Time
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		record := authzLogRecord{
			AppID:     w.appId,
			Level:     entry.Level.String(),
			Message:   entry.Message,
			TenantID:  entry.TenantID,
			UserID:    entry.UserID,
			RequestID: entry.RequestID,
			Path:      entry.Path,
			Caller:    entry.Caller,
			CreatedAt: createdAt.UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		// errors are dropped so logging never takes the app down
		_, _ = w.collection.InsertOne(ctx, record)
		cancel()
	}
}
