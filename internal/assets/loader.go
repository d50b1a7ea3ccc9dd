package assets

import (
	"image"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font/opentype"
)

// Loader decodes assets on worker goroutines. Results are queued and only
// delivered to futures by Poll, so callbacks always run on the goroutine
// that calls Poll.
type Loader struct {
	manager *Manager
	log     *zap.Logger

	// MaxTextureSize bounds the larger texture side; bigger images are
	// downscaled. Zero disables scaling.
	MaxTextureSize int

	sem chan struct{}
	wg  sync.WaitGroup

	mu       sync.Mutex
	finished []func()
	pending  int

	textures map[string]*Future[*image.RGBA]
	fonts    map[string]*Future[*opentype.Font]
}

// NewLoader creates a loader running at most workers decodes at a time.
func NewLoader(m *Manager, workers int, log *zap.Logger) *Loader {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		manager:        m,
		log:            log,
		MaxTextureSize: 2048,
		sem:            make(chan struct{}, workers),
		textures:       make(map[string]*Future[*image.RGBA]),
		fonts:          make(map[string]*Future[*opentype.Font]),
	}
}

// submit runs decode(Load(name)) on a worker and queues the outcome.
func submit[T any](l *Loader, name string, decode func([]byte) (T, error), fallback func(error) (T, bool)) *Future[T] {
	f := NewFuture[T]()

	l.mu.Lock()
	l.pending++
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.sem <- struct{}{}
		defer func() { <-l.sem }()

		var v T
		data, err := l.manager.Load(name)
		if err == nil {
			v, err = decode(data)
		}

		var done func()
		if err != nil {
			l.log.Warn("asset load failed", zap.String("path", name), zap.Error(err))
			if fb, ok := fallback(err); ok {
				done = func() { f.Resolve(fb) }
			} else {
				done = func() { f.Fail(err) }
			}
		} else {
			l.log.Debug("asset loaded", zap.String("path", name))
			done = func() { f.Resolve(v) }
		}

		l.mu.Lock()
		l.finished = append(l.finished, done)
		l.mu.Unlock()
	}()

	return f
}

func noFallback[T any](error) (T, bool) {
	var zero T
	return zero, false
}

// Texture loads and decodes an image. Repeated requests for the same path
// share one future.
func (l *Loader) Texture(name string) *Future[*image.RGBA] {
	if f, ok := l.textures[name]; ok {
		return f
	}
	maxSize := l.MaxTextureSize
	f := submit(l, name, func(data []byte) (*image.RGBA, error) {
		return DecodeImage(data, maxSize)
	}, noFallback[*image.RGBA])
	l.textures[name] = f
	return f
}

// Font loads an OpenType font. A missing or broken file resolves to the
// built-in Go Regular face instead of failing.
func (l *Loader) Font(name string) *Future[*opentype.Font] {
	if f, ok := l.fonts[name]; ok {
		return f
	}
	var f *Future[*opentype.Font]
	if name == "" {
		f = NewFuture[*opentype.Font]()
		if def, err := DefaultFont(); err == nil {
			f.Resolve(def)
		} else {
			f.Fail(err)
		}
	} else {
		f = submit(l, name, opentype.Parse, func(error) (*opentype.Font, bool) {
			def, err := DefaultFont()
			return def, err == nil
		})
	}
	l.fonts[name] = f
	return f
}

// Bytes loads a raw file.
func (l *Loader) Bytes(name string) *Future[[]byte] {
	return submit(l, name, func(data []byte) ([]byte, error) {
		return data, nil
	}, noFallback[[]byte])
}

// Poll delivers finished loads to their futures and returns how many were
// delivered. It never blocks.
func (l *Loader) Poll() int {
	l.mu.Lock()
	finished := l.finished
	l.finished = nil
	l.pending -= len(finished)
	l.mu.Unlock()

	for _, done := range finished {
		done()
	}
	return len(finished)
}

// Pending returns the number of loads not yet delivered by Poll.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Wait blocks until every submitted load has finished decoding. Results
// still need a Poll to be delivered.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close waits for outstanding work and drops undelivered results.
func (l *Loader) Close() {
	l.wg.Wait()
	l.mu.Lock()
	l.finished = nil
	l.pending = 0
	l.mu.Unlock()
}
