package model

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NextID returns a millisecond-timestamp-derived id that is strictly
// increasing within the process, so ids generated in the same millisecond
// stay distinct and creation order is preserved.
func NextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
