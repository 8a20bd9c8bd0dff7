package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultToastDuration is how long a toast stays up without being dismissed.
const DefaultToastDuration = 3 * time.Second

// Toast is a transient notification.
type Toast struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	seq       uint64
}

type liveToast struct {
	toast Toast
	timer *time.Timer
}

// Toasts holds active toasts, each removed by its own timer.
type Toasts struct {
	mu       sync.Mutex
	items    map[string]*liveToast
	duration time.Duration
	seq      uint64
	closed   bool
}

// NewToasts creates a registry. A non-positive duration uses DefaultToastDuration.
func NewToasts(duration time.Duration) *Toasts {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toasts{
		items:    make(map[string]*liveToast),
		duration: duration,
	}
}

// Push shows a toast until it expires or is dismissed.
// After Close it returns the toast without registering it.
func (t *Toasts) Push(title, message string) Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	toast := Toast{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
		seq:       t.seq,
	}
	if t.closed {
		return toast
	}

	id := toast.ID
	t.items[id] = &liveToast{
		toast: toast,
		timer: time.AfterFunc(t.duration, func() { t.expire(id) }),
	}
	return toast
}

func (t *Toasts) expire(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.items, id)
}

// Dismiss removes a toast early. It reports whether the toast was active.
func (t *Toasts) Dismiss(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, ok := t.items[id]
	if !ok {
		return false
	}
	item.timer.Stop()
	delete(t.items, id)
	return true
}

// Active returns the live toasts, oldest first.
func (t *Toasts) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Toast, 0, len(t.items))
	for _, item := range t.items {
		out = append(out, item.toast)
	}
	slices.SortFunc(out, func(a, b Toast) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Close stops every pending timer. No toast callback runs afterwards.
func (t *Toasts) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, item := range t.items {
		item.timer.Stop()
		delete(t.items, id)
	}
	t.closed = true
}
