package quiz

import (
	"context"
	"sync"
)

// Subscribe возвращает канал состояний: сначала текущее, затем каждое
// изменение по порядку. Канал закрывается после отмены ctx либо после
// остановки сессии, когда все накопленные состояния доставлены.
func (s *Session) Subscribe(ctx context.Context) <-chan State {
	s.mu.Lock()
	sub := newSubscriber(*s.state.Load())
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer s.unsubscribe(sub)
		sub.pump(ctx, s.done)
	}()

	return sub.out
}

func (s *Session) unsubscribe(sub *subscriber) {
	s.mu.Lock()
	delete(s.subscribers, sub)
	s.mu.Unlock()
}

// subscriber копит состояния в неограниченной очереди,
// чтобы медленный читатель не блокировал цикл событий.
type subscriber struct {
	out    chan State
	notify chan struct{}

	mu    sync.Mutex
	queue []State
}

func newSubscriber(initial State) *subscriber {
	return &subscriber{
		out:    make(chan State),
		notify: make(chan struct{}, 1),
		queue:  []State{initial},
	}
}

func (sub *subscriber) push(st State) {
	sub.mu.Lock()
	sub.queue = append(sub.queue, st)
	sub.mu.Unlock()

	select {
	case sub.notify <- struct{}{}:
	default:
	}
}

func (sub *subscriber) pop() (State, bool) {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	if len(sub.queue) == 0 {
		return State{}, false
	}

	next := sub.queue[0]
	sub.queue = sub.queue[1:]
	if len(sub.queue) == 0 {
		sub.queue = nil
	}

	return next, true
}

func (sub *subscriber) pump(ctx context.Context, done <-chan struct{}) {
	defer close(sub.out)

	for {
		next, ok := sub.pop()
		if !ok {
			select {
			case <-sub.notify:
				continue
			case <-ctx.Done():
				return
			case <-done:
				// сессия остановлена, но между pop и done могло прийти ещё что-то
				if next, ok = sub.pop(); !ok {
					return
				}
			}
		}

		select {
		case sub.out <- next:
		case <-ctx.Done():
			return
		}
	}
}
