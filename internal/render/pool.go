package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// glamour.TermRenderer is not safe for concurrent Render calls, so renderers
// are pooled per option set and never shared.
type rendererPool struct {
	mu    sync.RWMutex
	pools map[string]*sync.Pool
}

var globalPool = &rendererPool{
	pools: make(map[string]*sync.Pool),
}

func poolKey(opts Options) string {
	return fmt.Sprintf("%s:%d:%t:%t:%t:%t",
		ResolveStyle(opts.Style),
		opts.Width,
		opts.EnableEmoji,
		opts.PreserveNewLines,
		opts.TableWrap,
		opts.InlineTableLinks,
	)
}

func (p *rendererPool) poolFor(opts Options) *sync.Pool {
	key := poolKey(opts)

	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok := p.pools[key]; ok {
		return pool
	}
	pool = &sync.Pool{
		New: func() interface{} {
			renderer, err := newRenderer(opts)
			if err != nil {
				return nil
			}
			return renderer
		},
	}
	p.pools[key] = pool
	return pool
}

func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := p.poolFor(opts).Get().(*glamour.TermRenderer); ok && r != nil {
		return r, nil
	}
	// New failed inside the pool; surface the error
	return newRenderer(opts)
}

func (p *rendererPool) put(opts Options, renderer *glamour.TermRenderer) {
	if renderer == nil {
		return
	}
	p.poolFor(opts).Put(renderer)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(ResolveStyle(opts.Style)),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops every pooled renderer.
func ClearCache() {
	globalPool.mu.Lock()
	globalPool.pools = make(map[string]*sync.Pool)
	globalPool.mu.Unlock()
}

// CacheSize returns the number of distinct option sets pooled.
func CacheSize() int {
	globalPool.mu.RLock()
	defer globalPool.mu.RUnlock()
	return len(globalPool.pools)
}
