package assistant

// EmptyWatcher tracks whether a text field is empty and reports the
// transition through onEmpty. A field is assumed empty until the first change.
// Every change to an empty value is reported, while a non-empty value is only
// reported on the transition from empty.
type EmptyWatcher struct {
	empty   bool
	onEmpty func(empty bool)
}

// NewEmptyWatcher creates a watcher in the empty state
func NewEmptyWatcher(onEmpty func(empty bool)) *EmptyWatcher {
	return &EmptyWatcher{empty: true, onEmpty: onEmpty}
}

// Changed feeds the field's new text to the watcher
func (w *EmptyWatcher) Changed(text string) {
	if len(text) == 0 {
		w.empty = true
		w.onEmpty(true)
		return
	}
	if w.empty {
		w.empty = false
		w.onEmpty(false)
	}
}

// Empty reports the watcher's current state
func (w *EmptyWatcher) Empty() bool {
	return w.empty
}
