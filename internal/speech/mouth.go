package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/hammamikhairi/souschef/internal/logger"
)

// MouthOption configures the Mouth.
type MouthOption func(*Mouth)

// WithQueueSize sets the internal notification channel capacity.
func WithQueueSize(n int) MouthOption {
	return func(m *Mouth) {
		m.notify = make(chan struct{}, n)
	}
}

// Mouth is the speech dispatcher. It serializes all spoken output
// through a single pipeline: queue -> synthesize -> play. Only one
// thing speaks at a time, and higher priority items are spoken first.
//
// Synthesized audio is cached in memory keyed by text, so repeated
// phrases (step repeats, stock confirmations) play instantly. Piper
// runs locally and is fast enough that no chunked parallel synthesis
// is needed.
type Mouth struct {
	tts    *PiperClient
	player *Player
	log    *logger.Logger

	mu          sync.Mutex
	queue       []Request
	notify      chan struct{}
	speaking    bool
	interrupted bool // set by Interrupt, checked before playback
	lastSpoken  string
	cache       map[string][]byte // audio by text hash
}

// NewMouth creates a speech dispatcher with the given TTS client and player.
func NewMouth(tts *PiperClient, player *Player, log *logger.Logger, opts ...MouthOption) *Mouth {
	m := &Mouth{
		tts:    tts,
		player: player,
		log:    log,
		notify: make(chan struct{}, 32),
		cache:  make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Say queues text to be spoken at the given priority. Non-blocking.
// When something at PriorityNormal or above is queued, stale
// PriorityLow items are flushed since they are no longer relevant.
func (m *Mouth) Say(text string, priority Priority) {
	if text == "" {
		return
	}

	m.mu.Lock()
	if priority >= PriorityNormal {
		m.flushLowLocked()
	}
	m.queue = append(m.queue, Request{
		Text:     text,
		Priority: priority,
		QueuedAt: time.Now(),
	})
	qLen := len(m.queue)
	m.mu.Unlock()

	m.log.Debug("mouth: queued (priority=%d, queue_len=%d): %s", priority, qLen, truncate(text, 60))

	select {
	case m.notify <- struct{}{}:
	default: // already signaled
	}
}

// flushLowLocked removes all PriorityLow items from the queue.
// Must be called with m.mu held.
func (m *Mouth) flushLowLocked() {
	n := 0
	for _, item := range m.queue {
		if item.Priority > PriorityLow {
			m.queue[n] = item
			n++
		}
	}
	dropped := len(m.queue) - n
	m.queue = m.queue[:n]
	if dropped > 0 {
		m.log.Debug("mouth: flushed %d low-priority items", dropped)
	}
}

// IsSpeaking reports whether audio is currently being synthesized or played.
func (m *Mouth) IsSpeaking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speaking
}

// QueueLen returns the number of pending speech requests.
func (m *Mouth) QueueLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Interrupt stops the currently playing audio and clears the queue.
// Use this when something more important needs to speak immediately.
func (m *Mouth) Interrupt() {
	m.mu.Lock()
	m.queue = m.queue[:0]
	m.interrupted = true
	m.mu.Unlock()

	m.player.Stop()

	m.log.Debug("mouth: interrupted, queue cleared")
}

// Start begins the speech processing goroutine. Non-blocking.
func (m *Mouth) Start(ctx context.Context) {
	go m.processLoop(ctx)
	m.log.Info("mouth started")
}

func (m *Mouth) processLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.log.Info("mouth stopped")
			return
		case <-m.notify:
			m.drain(ctx)
		}
	}
}

// drain processes all queued items, highest priority first.
func (m *Mouth) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// Clear the interrupted flag so items queued after the
		// interrupt still get spoken.
		m.mu.Lock()
		m.interrupted = false
		m.mu.Unlock()

		item, ok := m.dequeue()
		if !ok {
			return
		}

		m.mu.Lock()
		m.speaking = true
		m.mu.Unlock()

		m.process(ctx, item)

		if len(item.Text) > 20 {
			m.mu.Lock()
			m.lastSpoken = item.Text
			m.mu.Unlock()
		}

		m.mu.Lock()
		m.speaking = false
		m.mu.Unlock()
	}
}

// dequeue removes and returns the highest priority item from the queue.
func (m *Mouth) dequeue() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return Request{}, false
	}

	bestIdx := 0
	for i, item := range m.queue {
		if item.Priority > m.queue[bestIdx].Priority {
			bestIdx = i
		}
	}

	item := m.queue[bestIdx]
	m.queue = append(m.queue[:bestIdx], m.queue[bestIdx+1:]...)
	return item, true
}

// process synthesizes and plays a single speech request.
func (m *Mouth) process(ctx context.Context, req Request) {
	waitTime := time.Since(req.QueuedAt).Round(time.Millisecond)
	m.log.Debug("mouth: speaking (priority=%d, waited=%s): %s", req.Priority, waitTime, truncate(req.Text, 60))

	audio, err := m.synthesizeWithCache(ctx, req.Text)
	if err != nil {
		m.log.Error("mouth: synthesis failed: %v", err)
		return
	}

	m.mu.Lock()
	abort := m.interrupted
	m.mu.Unlock()
	if abort {
		m.log.Debug("mouth: skipping playback (interrupted)")
		return
	}

	if err := m.player.Play(audio); err != nil {
		m.log.Error("mouth: playback failed: %v", err)
	}
}

// synthesizeWithCache checks the in-memory cache first, otherwise runs
// Piper and stores the result. Thread-safe.
func (m *Mouth) synthesizeWithCache(ctx context.Context, text string) ([]byte, error) {
	key := cacheKey(m.tts.Voice(), text)

	m.mu.Lock()
	audio, ok := m.cache[key]
	m.mu.Unlock()
	if ok {
		m.log.Debug("mouth: cache hit for %q", truncate(text, 40))
		return audio, nil
	}

	audio, err := m.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[key] = audio
	m.mu.Unlock()
	return audio, nil
}

// Prefetch pre-synthesizes texts in background goroutines so playback
// starts instantly when Say is called. Skips texts already cached.
// Call it any time you know what will be spoken next, like the next
// recipe step.
func (m *Mouth) Prefetch(ctx context.Context, texts ...string) {
	for _, text := range texts {
		if text == "" {
			continue
		}
		key := cacheKey(m.tts.Voice(), text)

		m.mu.Lock()
		_, cached := m.cache[key]
		m.mu.Unlock()
		if cached {
			continue
		}

		go func(t, k string) {
			audio, err := m.tts.Synthesize(ctx, t)
			if err != nil {
				m.log.Error("prefetch: synthesis failed: %v", err)
				return
			}
			m.mu.Lock()
			m.cache[k] = audio
			m.mu.Unlock()
			m.log.Debug("prefetch: cached %d bytes for: %s", len(audio), truncate(t, 50))
		}(text, key)
	}
}

// LastSpoken returns the most recently spoken non-trivial text.
func (m *Mouth) LastSpoken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSpoken
}

func cacheKey(voice, text string) string {
	h := sha256.Sum256([]byte(voice + "\x00" + text))
	return hex.EncodeToString(h[:8])
}
