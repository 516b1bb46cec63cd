package widgetpolicy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store holds the current policy and reloads it from path on change.
type Store struct {
	path   string
	cur    atomic.Pointer[WidgetPolicy]
	logger *zap.SugaredLogger

	// Known, when set, filters out widgets that are not available.
	Known func(widget string) bool
}

func NewStore(path string, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Store{path: path, logger: logger}
	s.cur.Store(&WidgetPolicy{})
	return s
}

// Parse decodes a policy as JSON when isJSON is set, YAML otherwise.
func Parse(b []byte, isJSON bool) (*WidgetPolicy, error) {
	var p WidgetPolicy
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(b, &p); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads the file and swaps the policy in. A bad file keeps the old one.
func (s *Store) Load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read policy: %w", err)
	}
	p, err := Parse(b, strings.HasSuffix(strings.ToLower(s.path), ".json"))
	if err != nil {
		return err
	}
	s.cur.Store(p)
	s.logger.Infow("widget policy loaded", "path", s.path, "rules", len(p.Rules))
	return nil
}

// Set replaces the current policy.
func (s *Store) Set(p *WidgetPolicy) {
	s.cur.Store(p)
}

// Watch reloads on file changes until ctx is done.
func (s *Store) Watch(ctx context.Context) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Errorw("watcher", "err", err)
		return
	}
	defer w.Close()
	if err := w.Add(s.path); err != nil {
		s.logger.Errorw("watch add", "path", s.path, "err", err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				time.Sleep(200 * time.Millisecond)
				if err := s.Load(); err != nil {
					s.logger.Errorw("reload failed", "err", err)
				}
				// editors that replace the file drop the watch
				if ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Create) {
					_ = w.Add(s.path)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Errorw("watch error", "err", err)
		}
	}
}

func (s *Store) Get() *WidgetPolicy {
	return s.cur.Load()
}

// ResolveWidget resolves against the current policy. length <= 0 means unknown.
func (s *Store) ResolveWidget(kind, column string, length int) (string, map[string]any) {
	ctx := Ctx{Kind: kind, Name: column}
	if length > 0 {
		ctx.Length = &length
	}
	return s.Get().Resolve(ctx, s.Known)
}
