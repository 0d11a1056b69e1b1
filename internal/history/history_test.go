package history

import (
	"testing"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/stretchr/testify/assert"
)

func TestStoreManager_GetHistoryStore(t *testing.T) {
	mgr := &StoreManager{}
	assert.Nil(t, mgr.GetHistoryStore())

	store := &MockHistoryStore{}
	mgr.store = store
	assert.Equal(t, contract.HistoryStore(store), mgr.GetHistoryStore())
}

func TestMockHistoryManager(t *testing.T) {
	store := &MockHistoryStore{}
	mgr := &MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	assert.Same(t, store, mgr.GetHistoryStore())
	mgr.AssertExpectations(t)
}
