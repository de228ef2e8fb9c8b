package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * Data is a *KeyEvent
	 */
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * Data is a *KeyEvent
	 */
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// An asset on disk was created or modified.
	/* Context usage:
	 * Data is an *AssetEvent
	 */
	EVENT_CODE_ASSET_CHANGED EventCode = 0x04

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type AssetEvent struct {
	// Path relative to the asset directory.
	Path string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type eventSystemState struct {
	mutex      sync.RWMutex
	registered map[EventCode][]FnOnEvent
}

var onceEvent sync.Once
var eventState *eventSystemState

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[EventCode][]FnOnEvent),
		}
	})
	return eventState != nil
}

func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()
	eventState.registered = make(map[EventCode][]FnOnEvent)
	return nil
}

// EventRegister adds a listener for the given code. Listeners are invoked in
// registration order.
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if eventState == nil || onEvent == nil {
		return false
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * Listeners run synchronously on the caller's goroutine.
 * @returns TRUE if handled, otherwise FALSE.
 */
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	eventState.mutex.RLock()
	listeners := append([]FnOnEvent(nil), eventState.registered[context.Type]...)
	eventState.mutex.RUnlock()

	for _, l := range listeners {
		if l(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
