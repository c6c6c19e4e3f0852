package events

import "sync"

// Buffer is a bounded FIFO ring. Push never blocks: at capacity the oldest
// entry is dropped to admit the newest. Relative order of surviving
// entries is preserved. Safe for concurrent producers; the single per-tick
// consumer uses Drain or Peek.
type Buffer[T any] struct {
	mu      sync.Mutex
	items   []T
	head    int
	size    int
	dropped uint64
}

func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

func (b *Buffer[T]) Push(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.size == len(b.items) {
		// Evict oldest.
		b.items[b.head] = v
		b.head = (b.head + 1) % len(b.items)
		b.dropped++
		return
	}
	b.items[(b.head+b.size)%len(b.items)] = v
	b.size++
}

// Drain returns all buffered entries in arrival order and clears the
// buffer.
func (b *Buffer[T]) Drain() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.peekLocked()
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.head = 0
	b.size = 0
	return out
}

// Peek returns all buffered entries in arrival order without clearing,
// for buffers whose phase aggregates across ticks.
func (b *Buffer[T]) Peek() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.peekLocked()
}

func (b *Buffer[T]) peekLocked() []T {
	if b.size == 0 {
		return nil
	}
	out := make([]T, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.items[(b.head+i)%len(b.items)]
	}
	return out
}

func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Dropped reports how many entries were evicted by capacity pressure.
func (b *Buffer[T]) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Buffers bundles one ring per async event kind. Capacities come from
// tuning; each buffer is owned (drained) by exactly one collection phase.
type Buffers struct {
	Chat         *Buffer[ChatMessage]
	StatChanges  *Buffer[StatChange]
	Hitsplats    *Buffer[Hitsplat]
	Animations   *Buffer[AnimationChange]
	Interactions *Buffer[InteractionChange]
	Projectiles  *Buffer[ProjectileMoved]
	MenuClicks   *Buffer[MenuClick]
	KeyPresses   *Buffer[KeyPress]
	MouseClicks  *Buffer[MouseClick]
}

type Capacities struct {
	Chat        int
	StatChange  int
	Hitsplat    int
	Animation   int
	Interaction int
	Projectile  int
	MenuClick   int
	KeyPress    int
	MouseClick  int
}

func NewBuffers(caps Capacities) *Buffers {
	return &Buffers{
		Chat:         NewBuffer[ChatMessage](caps.Chat),
		StatChanges:  NewBuffer[StatChange](caps.StatChange),
		Hitsplats:    NewBuffer[Hitsplat](caps.Hitsplat),
		Animations:   NewBuffer[AnimationChange](caps.Animation),
		Interactions: NewBuffer[InteractionChange](caps.Interaction),
		Projectiles:  NewBuffer[ProjectileMoved](caps.Projectile),
		MenuClicks:   NewBuffer[MenuClick](caps.MenuClick),
		KeyPresses:   NewBuffer[KeyPress](caps.KeyPress),
		MouseClicks:  NewBuffer[MouseClick](caps.MouseClick),
	}
}

// TotalDropped sums eviction counts across all buffers, for the system
// metrics phase.
func (b *Buffers) TotalDropped() uint64 {
	return b.Chat.Dropped() +
		b.StatChanges.Dropped() +
		b.Hitsplats.Dropped() +
		b.Animations.Dropped() +
		b.Interactions.Dropped() +
		b.Projectiles.Dropped() +
		b.MenuClicks.Dropped() +
		b.KeyPresses.Dropped() +
		b.MouseClicks.Dropped()
}
