// Package signals provides file-based run control. Dropping a "stop"
// or "pause" file into the signals directory interrupts a running
// orchestration between waves.
package signals

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Manager watches a workspace signals directory for stop and pause
// files. It falls back to direct stat checks when no watcher is
// available.
type Manager struct {
	baseDir string

	mu          sync.RWMutex
	stopSignal  bool
	pauseSignal bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewManager creates a signal manager rooted at dir (typically the
// workspace .maestro directory).
func NewManager(dir string) (*Manager, error) {
	signalsDir := filepath.Join(dir, "signals")
	if err := os.MkdirAll(signalsDir, 0755); err != nil {
		return nil, err
	}

	m := &Manager{
		baseDir: dir,
		done:    make(chan struct{}),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Continue without watcher, stat fallback still works
		return m, nil
	}
	m.watcher = watcher

	if err := watcher.Add(signalsDir); err != nil {
		watcher.Close()
		m.watcher = nil
		return m, nil
	}

	go m.watch()
	return m, nil
}

func (m *Manager) watch() {
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// Stop stays latched once seen; pause lifts with its file.
				if filepath.Base(event.Name) == "pause" {
					m.mu.Lock()
					m.pauseSignal = false
					m.mu.Unlock()
				}
				continue
			}
			if event.Op&fsnotify.Create == 0 && event.Op&fsnotify.Write == 0 {
				continue
			}
			m.mu.Lock()
			switch filepath.Base(event.Name) {
			case "stop":
				m.stopSignal = true
			case "pause":
				m.pauseSignal = true
			}
			m.mu.Unlock()
		case <-m.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// ShouldStop reports whether a stop signal has been received.
func (m *Manager) ShouldStop() bool {
	// Also check the file directly in case the watcher missed it
	if _, err := os.Stat(m.signalPath("stop")); err == nil {
		m.mu.Lock()
		m.stopSignal = true
		m.mu.Unlock()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stopSignal
}

// ShouldPause reports whether a pause signal is in effect. Unlike stop,
// pause is not latched: removing the pause file lifts it.
func (m *Manager) ShouldPause() bool {
	_, err := os.Stat(m.signalPath("pause"))
	paused := err == nil

	m.mu.Lock()
	m.pauseSignal = paused
	m.mu.Unlock()
	return paused
}

// SendStop creates a stop signal file.
func (m *Manager) SendStop() error {
	return os.WriteFile(m.signalPath("stop"), []byte(time.Now().Format(time.RFC3339)), 0644)
}

// SendPause creates a pause signal file.
func (m *Manager) SendPause() error {
	return os.WriteFile(m.signalPath("pause"), []byte(time.Now().Format(time.RFC3339)), 0644)
}

// ClearPause lifts a pause without touching the stop signal.
func (m *Manager) ClearPause() {
	m.mu.Lock()
	m.pauseSignal = false
	m.mu.Unlock()

	os.Remove(m.signalPath("pause"))
}

// Clear removes all signal files and resets signal state.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopSignal = false
	m.pauseSignal = false

	os.Remove(m.signalPath("stop"))
	os.Remove(m.signalPath("pause"))
}

// Dir returns the managed base directory.
func (m *Manager) Dir() string {
	return m.baseDir
}

// Close shuts down the manager and its watcher.
func (m *Manager) Close() {
	close(m.done)
	if m.watcher != nil {
		m.watcher.Close()
	}
}

func (m *Manager) signalPath(name string) string {
	return filepath.Join(m.baseDir, "signals", name)
}
