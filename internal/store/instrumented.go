package store

// instrumentedStore wraps a Store and automatically records Prometheus metrics
// for hits, misses, write failures, evictions, and current entry count under
// the given group label. All metric tracking lives in the store layer so
// callers do not need to manage it.
type instrumentedStore struct {
	inner Store
	group string
}

// newInstrumentedStore wraps inner with metric instrumentation for the given
// group. A lazy entries collector is registered that queries inner.Len() at
// scrape time, which is correct for backends (e.g., Redis) where TTL expiry
// removes entries outside the application's control.
func newInstrumentedStore(inner Store, group string) *instrumentedStore {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedStore{inner: inner, group: group}
}

func (s *instrumentedStore) Get(key string) ([]byte, bool) {
	val, ok := s.inner.Get(key)
	if ok {
		HitsTotal.WithLabelValues(s.group).Inc()
	} else {
		MissesTotal.WithLabelValues(s.group).Inc()
	}
	return val, ok
}

func (s *instrumentedStore) Set(key string, value []byte) error {
	err := s.inner.Set(key, value)
	if err != nil {
		WriteFailuresTotal.WithLabelValues(s.group).Inc()
	}
	return err
}

func (s *instrumentedStore) Contains(key string) bool {
	return s.inner.Contains(key)
}

func (s *instrumentedStore) Len() int {
	return s.inner.Len()
}

// Close unregisters the entries collector and closes the underlying store.
func (s *instrumentedStore) Close() error {
	unregisterEntriesCollector(s.group)
	return s.inner.Close()
}
