package content

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Store holds the catalog currently served and swaps it on reload.
type Store struct {
	mu      sync.RWMutex
	current *Catalog
	logger  *log.Logger
}

// NewStore returns a store serving catalog.
func NewStore(catalog *Catalog, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{current: catalog, logger: logger}
}

// Current returns the catalog in effect.
func (s *Store) Current() *Catalog {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps the catalog in effect.
func (s *Store) Replace(catalog *Catalog) {
	if s == nil || catalog == nil {
		return
	}
	s.mu.Lock()
	s.current = catalog
	s.mu.Unlock()
}

// Reload loads dir and swaps it in. On failure the previous catalog stays.
func (s *Store) Reload(dir string) error {
	catalog, err := LoadDir(dir)
	if err != nil {
		return err
	}
	s.Replace(catalog)
	return nil
}

// Watch reloads dir whenever its files change, coalescing bursts of events
// within debounce. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, dir string, debounce time.Duration) error {
	if s == nil {
		return fmt.Errorf("content store is nil")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create content watcher: %w", err)
	}
	defer watcher.Close()

	for _, target := range []string{dir, filepath.Join(dir, coursesDir)} {
		if err := watcher.Add(target); err != nil {
			return fmt.Errorf("watch %s: %w", target, err)
		}
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if err := s.Reload(dir); err != nil {
					s.logger.Printf("content reload failed dir=%s err=%v", dir, err)
					return
				}
				s.logger.Printf("content reloaded dir=%s", dir)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Printf("content watcher error: %v", err)
		}
	}
}
