package assets

import (
	"fmt"
	"sync"

	"github.com/arraypress/contentquery/internal/static/errs"
)

type assetService struct {
	mu         sync.RWMutex
	registered map[Kind]map[string]Asset
	enqueued   map[Kind][]string
}

var _ IAssetService = &assetService{}

func NewAssetService() IAssetService {
	return &assetService{
		registered: map[Kind]map[string]Asset{
			KindScript: {},
			KindStyle:  {},
		},
		enqueued: map[Kind][]string{},
	}
}

func (s *assetService) Register(kind Kind, handle, source string, deps []string, version string) error {
	if handle == "" {
		return fmt.Errorf("register %s: empty handle", kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registered[kind][handle] = Asset{
		Handle:  handle,
		Kind:    kind,
		Source:  source,
		Deps:    append([]string(nil), deps...),
		Version: version,
	}
	return nil
}

func (s *assetService) Deregister(kind Kind, handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registered[kind], handle)
	s.enqueued[kind] = removeHandle(s.enqueued[kind], handle)
}

func (s *assetService) Enqueue(kind Kind, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registered[kind][handle]; !ok {
		return fmt.Errorf("enqueue %s %q: %w", kind, handle, errs.AssetNotFound)
	}
	for _, h := range s.enqueued[kind] {
		if h == handle {
			return nil
		}
	}
	s.enqueued[kind] = append(s.enqueued[kind], handle)
	return nil
}

func (s *assetService) Dequeue(kind Kind, handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueued[kind] = removeHandle(s.enqueued[kind], handle)
}

func (s *assetService) IsRegistered(kind Kind, handle string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registered[kind][handle]
	return ok
}

func (s *assetService) Resolve(kind Kind, handle string) ([]Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := newResolution(s.registered[kind])
	if err := r.visit(handle); err != nil {
		return nil, err
	}
	return r.ordered, nil
}

func (s *assetService) ResolveEnqueued(kind Kind) ([]Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := newResolution(s.registered[kind])
	for _, handle := range s.enqueued[kind] {
		if err := r.visit(handle); err != nil {
			return nil, err
		}
	}
	return r.ordered, nil
}

// resolution is a single depth-first walk over the dependency graph.
// done handles are already emitted; handles still on the stack mark a cycle.
type resolution struct {
	assets  map[string]Asset
	done    map[string]bool
	onStack map[string]bool
	ordered []Asset
}

func newResolution(assets map[string]Asset) *resolution {
	return &resolution{
		assets:  assets,
		done:    map[string]bool{},
		onStack: map[string]bool{},
	}
}

func (r *resolution) visit(handle string) error {
	if r.done[handle] {
		return nil
	}
	if r.onStack[handle] {
		return fmt.Errorf("resolve %q: %w", handle, errs.AssetCycle)
	}
	asset, ok := r.assets[handle]
	if !ok {
		return fmt.Errorf("resolve %q: %w", handle, errs.AssetNotFound)
	}
	r.onStack[handle] = true
	for _, dep := range asset.Deps {
		if err := r.visit(dep); err != nil {
			return err
		}
	}
	delete(r.onStack, handle)
	r.done[handle] = true
	r.ordered = append(r.ordered, asset)
	return nil
}

func removeHandle(handles []string, handle string) []string {
	kept := handles[:0]
	for _, h := range handles {
		if h != handle {
			kept = append(kept, h)
		}
	}
	return kept
}
