package models

import (
	"strconv"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a unix-millisecond string to use as a record ID. Two calls
// in the same millisecond bump the counter, so IDs are strictly increasing
// and double as a chronological tie-break when sorting.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
