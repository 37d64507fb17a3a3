package logger

import (
	"context"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap/zapcore"
)

type memoryCollection struct {
	mu      sync.Mutex
	records []authzLogRecord
}

func (m *memoryCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, document.(authzLogRecord))
	return &mongo.InsertOneResult{}, nil
}

func (m *memoryCollection) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func TestDBLogWriterPersistsBeforeClose(t *testing.T) {
	coll := &memoryCollection{}
	w := newDBLogWriter(coll, "go-erp")

	w.AddLog(LogEntry{Level: zapcore.WarnLevel, Message: "tenant access denied", TenantID: 3, UserID: 5})
	w.Close()

	if coll.len() != 1 {
		t.Fatalf("expected 1 stored record, got %d", coll.len())
	}
	got := coll.records[0]
	if got.AppID != "go-erp" || got.TenantID != 3 || got.Level != "warn" {
		t.Errorf("unexpected record %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at should default to now")
	}
}

func TestDBLogWriterDropsAfterClose(t *testing.T) {
	coll := &memoryCollection{}
	w := newDBLogWriter(coll, "go-erp")
	w.Close()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("AddLog after Close panicked: %v", r)
		}
	}()
	w.AddLog(LogEntry{Level: zapcore.ErrorLevel, Message: "late", TenantID: 1})
	w.Close()

	if coll.len() != 0 {
		t.Errorf("entry logged after Close was stored: %d records", coll.len())
	}
}

func TestDBLogWriterConcurrentCloseAndAdd(t *testing.T) {
	coll := &memoryCollection{}
	w := newDBLogWriter(coll, "go-erp")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				w.AddLog(LogEntry{Level: zapcore.WarnLevel, Message: "denied", UserID: id})
			}
		}(int64(i + 1))
	}
	w.Close()
	wg.Wait()

	if n := coll.len(); n > 800 {
		t.Errorf("stored %d records from 800 adds", n)
	}
}
