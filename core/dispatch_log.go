package core

import (
	"log"
	"sync"
	"time"

	"gatekeeper/models"
)

// DispatchLogger records failed outbound deliveries (in-memory ring buffer).
// Dispatch failures are absorbed by the services that trigger them, so this
// buffer plus the log file are the only trace they leave.
type DispatchLogger struct {
	logs      []*models.DispatchLog
	mu        sync.RWMutex
	maxLogs   int
	idCounter int
}

var DispatchLoggerInstance *DispatchLogger

func init() {
	DispatchLoggerInstance = &DispatchLogger{
		logs:    make([]*models.DispatchLog, 0, 100),
		maxLogs: 100,
	}
}

// SetMaxLogs adjusts the ring capacity. Intended for startup configuration.
func (d *DispatchLogger) SetMaxLogs(n int) {
	if n < 1 {
		n = 1
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.maxLogs = n
	for len(d.logs) > d.maxLogs {
		d.logs = d.logs[1:]
	}
}

// Record stores a failed delivery attempt.
func (d *DispatchLogger) Record(kind string, postID uint, target, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Drop the oldest entry once full
	if len(d.logs) >= d.maxLogs {
		d.logs = d.logs[1:]
	}

	d.idCounter++
	d.logs = append(d.logs, &models.DispatchLog{
		ID:        d.idCounter,
		Timestamp: time.Now(),
		Kind:      kind,
		PostID:    postID,
		Target:    target,
		Message:   message,
	})
}

// Recent returns recorded failures, latest first.
func (d *DispatchLogger) Recent() []*models.DispatchLog {
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := len(d.logs)
	result := make([]*models.DispatchLog, total)
	for i := 0; i < total; i++ {
		result[i] = d.logs[total-1-i]
	}
	return result
}

// Clear removes all recorded failures
func (d *DispatchLogger) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logs = make([]*models.DispatchLog, 0, d.maxLogs)
	d.idCounter = 0
}

// LogDispatchFailure records a failed delivery and mirrors it to the log file.
func LogDispatchFailure(kind string, postID uint, target string, err error) {
	msg := "unknown dispatch error"
	if err != nil {
		msg = err.Error()
	}
	DispatchLoggerInstance.Record(kind, postID, target, msg)
	log.Printf("%s dispatch failed (post %d, target %q): %s", kind, postID, target, msg)
}
