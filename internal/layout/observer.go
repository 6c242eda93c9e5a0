package layout

// Observer is notified around every Store operation. Begin is called before
// the operation runs; the returned func is called once it finishes, with the
// error the operation returned (nil for no-ops and successes).
type Observer interface {
	Begin(op string, attrs map[string]string) (end func(err error))
}

type nopObserver struct{}

func (nopObserver) Begin(string, map[string]string) func(error) { return func(error) {} }

// Preferences persists small string values across sessions.
type Preferences interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}
