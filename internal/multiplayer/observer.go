package multiplayer

import "sync"

// Observer receives match events. Send must not block the match loop.
type Observer interface {
	Send(evt Event)
}

// ChannelObserver is an Observer backed by a buffered channel. When the
// buffer is full the oldest event is dropped.
type ChannelObserver struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelObserver creates an observer that buffers up to size events.
func NewChannelObserver(size int) *ChannelObserver {
	if size < 1 {
		size = 64
	}
	return &ChannelObserver{
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// Send queues an event, dropping the oldest one if the buffer is full.
func (o *ChannelObserver) Send(evt Event) {
	select {
	case <-o.done:
		return
	default:
	}

	select {
	case o.events <- evt:
	default:
		select {
		case <-o.events:
		default:
		}
		select {
		case o.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (o *ChannelObserver) Events() <-chan Event {
	return o.events
}

// Done returns a channel closed by Close.
func (o *ChannelObserver) Done() <-chan struct{} {
	return o.done
}

// Close stops further delivery. Safe to call multiple times.
func (o *ChannelObserver) Close() {
	o.doneOnce.Do(func() {
		close(o.done)
	})
}
