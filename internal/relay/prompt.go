package relay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultPrompt is the system prompt used when no prompt file is set.
func DefaultPrompt(owner string) string {
	if owner == "" {
		owner = "the owner"
	}
	return "You are the Cosmic AI Assistant on " + owner + "'s portfolio. " +
		"Answer clearly, briefly, and professionally. " +
		"You can talk about their skills, projects, and how to contact them."
}

// PromptSource serves a system prompt read from a file and reloads it when
// the file changes. Without a path it serves the fallback text.
type PromptSource struct {
	path     string
	fallback string
	logger   *zap.Logger

	mu   sync.RWMutex
	text string
}

func NewPromptSource(path, fallback string, logger *zap.Logger) (*PromptSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &PromptSource{path: path, fallback: fallback, logger: logger, text: fallback}
	if path == "" {
		return p, nil
	}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PromptSource) SystemPrompt() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.text
}

// Reload rereads the file. An empty file falls back to the default text.
func (p *PromptSource) Reload() error {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read system prompt: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = p.fallback
	}
	p.mu.Lock()
	p.text = text
	p.mu.Unlock()
	return nil
}

// Watch reloads the prompt on every write to the file until ctx is done.
// The parent directory is watched so editors that replace the file are
// picked up too.
func (p *PromptSource) Watch(ctx context.Context) error {
	if p.path == "" {
		<-ctx.Done()
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("prompt watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(p.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}
	target := filepath.Clean(p.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := p.Reload(); err != nil {
				p.logger.Warn("system prompt reload failed", zap.Error(err))
				continue
			}
			p.logger.Info("system prompt reloaded", zap.String("path", p.path))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("prompt watcher error", zap.Error(err))
		}
	}
}
