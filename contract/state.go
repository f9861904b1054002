package contract

import "okinoko-guess_reveal/sdk"

// Storage key layout of one game instance:
//
//	g_<id>_meta             immutable game fields (binary)
//	g_<id>_state            counters (binary)
//	g_<id>_cm_<address>     commitment digest (hex)
//	g_<id>_w_<address>      winner membership flag
//	g_<id>_winner_<n>       n-th registered winner
//	g_<id>_cl_<address>     claimed flag
func gamePrefix(id uint64) string                   { return "g_" + UInt64ToString(id) + "_" }
func gameMetaKey(id uint64) string                  { return gamePrefix(id) + "meta" }
func gameStateKey(id uint64) string                 { return gamePrefix(id) + "state" }
func commitmentKey(id uint64, a sdk.Address) string { return gamePrefix(id) + "cm_" + a.String() }
func winnerFlagKey(id uint64, a sdk.Address) string { return gamePrefix(id) + "w_" + a.String() }
func winnerKey(id uint64, n uint64) string          { return gamePrefix(id) + "winner_" + UInt64ToString(n) }
func claimedKey(id uint64, a sdk.Address) string    { return gamePrefix(id) + "cl_" + a.String() }

const flagSet = "1"

// writeSet stages the writes of one operation. Reads see staged values
// first; nothing reaches the host until flush, so an operation that fails a
// guard half way leaves the stored game untouched.
type writeSet struct {
	host sdk.Host
	keys []string
	vals map[string]string
}

func newWriteSet(host sdk.Host) *writeSet {
	return &writeSet{host: host, vals: make(map[string]string)}
}

func (w *writeSet) get(key string) (*string, error) {
	if v, ok := w.vals[key]; ok {
		return &v, nil
	}
	return w.host.StateGetObject(key)
}

// has reports whether key holds a non-empty value.
func (w *writeSet) has(key string) (bool, error) {
	v, err := w.get(key)
	if err != nil {
		return false, err
	}
	return v != nil && *v != "", nil
}

func (w *writeSet) set(key, value string) {
	if _, ok := w.vals[key]; !ok {
		w.keys = append(w.keys, key)
	}
	w.vals[key] = value
}

// flush writes the staged values in the order they were first staged.
func (w *writeSet) flush() error {
	for _, k := range w.keys {
		if err := w.host.StateSetObject(k, w.vals[k]); err != nil {
			return err
		}
	}
	w.keys = w.keys[:0]
	w.vals = make(map[string]string)
	return nil
}
