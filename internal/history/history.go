// Package history audits report invocations in a SQL database.
package history

import (
	"sync"

	"github.com/huangsam/launchpad/internal/contract"
)

// StoreManager holds the process-wide HistoryStore.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.HistoryStore
}

var _ contract.HistoryManager = &StoreManager{} // Compile-time check

// GetHistoryStore returns the HistoryStore, or nil when history is disabled.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}
