package state

// EventType names a registry change
type EventType string

const (
	EventLaunched  EventType = "launched"
	EventClosed    EventType = "closed"
	EventFocused   EventType = "focused"
	EventMinimized EventType = "minimized"
	EventRestored  EventType = "restored"
	EventMaximized EventType = "maximized"
	EventMoved     EventType = "moved"
	EventResized   EventType = "resized"
	EventRetitled  EventType = "retitled"
	EventReset     EventType = "reset"
)

// Event is delivered to subscribers after a command has committed
type Event struct {
	Type     EventType
	WindowID string
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Callbacks run synchronously, after the registry lock is
// released, so they may call back into the session.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once bool
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if once {
			return
		}
		once = true
		delete(s.subs, id)
	}
}

// SubscriberCount returns the number of live subscriptions
func (s *Session) SubscriberCount() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

func (s *Session) emit(events ...Event) {
	if len(events) == 0 {
		return
	}

	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}
