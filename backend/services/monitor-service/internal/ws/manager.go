package ws

import (
	"context"
	"sync"
)

// Manager tracks meter connections, one per device.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*Connection
}

// NewManager builds connection manager.
func NewManager() *Manager {
	return &Manager{
		connections: make(map[string]*Connection),
	}
}

// Add registers a connection. An older connection for the same device is
// closed.
func (m *Manager) Add(conn *Connection) {
	m.mu.Lock()
	previous := m.connections[conn.DeviceID()]
	m.connections[conn.DeviceID()] = conn
	m.mu.Unlock()

	if previous != nil && previous != conn {
		previous.Close()
	}
}

// Remove forgets conn if it is still the registered connection for its device.
func (m *Manager) Remove(conn *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connections[conn.DeviceID()] == conn {
		delete(m.connections, conn.DeviceID())
	}
}

// Count returns the number of connected devices.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// Start blocks until ctx is done and then closes every connection.
func (m *Manager) Start(ctx context.Context) {
	<-ctx.Done()
	m.CloseAll()
}

// CloseAll closes every tracked connection.
func (m *Manager) CloseAll() {
	m.mu.RLock()
	open := make([]*Connection, 0, len(m.connections))
	for _, conn := range m.connections {
		open = append(open, conn)
	}
	m.mu.RUnlock()

	for _, conn := range open {
		conn.Close()
	}
}
