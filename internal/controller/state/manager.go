package state

import (
	"sync"

	"github.com/glebkhl/zapis_bot/internal/service"
)

// Manager хранит незавершённые последовательности выбора по пользователям.
// Состояние строго per-user: последовательность одного пользователя никогда
// не видна другому и не несёт никаких блокировок поверх хранилища окон.
// Брошенная последовательность просто протухает и перезаписывается
// при следующем заходе в выбор.
type Manager struct {
	mu         sync.RWMutex
	selections map[int64]*service.Selection // telegramID -> выбор
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		selections: make(map[int64]*service.Selection),
	}
}

// GetSelection получает текущий выбор пользователя, nil если выбора нет
func (sm *Manager) GetSelection(telegramID int64) *service.Selection {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.selections[telegramID]
}

// SetSelection устанавливает выбор пользователя
func (sm *Manager) SetSelection(telegramID int64, sel *service.Selection) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.selections[telegramID] = sel
}

// Clear очищает выбор пользователя
func (sm *Manager) Clear(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.selections, telegramID)
}

// Active проверяет есть ли у пользователя незавершённый выбор
func (sm *Manager) Active(telegramID int64) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	_, exists := sm.selections[telegramID]
	return exists
}
