package stm

// readSet is the append-only, identity-deduplicated collection of TVars a
// write-mode transaction attempt has read. It stores no value or version
// snapshot per entry; validation at commit time re-reads the live lock.
//
// entries starts out backed by the fixed-size inline array so a
// transaction touching few cells never allocates; it only spills to a
// heap-backed slice once it outgrows that capacity (or if the caller
// configured a larger inline capacity up front via WithInlineCapacity).
type readSet struct {
	inline  [defaultInlineEntries]anyTVar
	entries []anyTVar
}

func newReadSet(cfg *config) *readSet {
	rs := &readSet{}
	if cfg.inlineEntries > defaultInlineEntries {
		rs.entries = make([]anyTVar, 0, cfg.inlineEntries)
	} else {
		rs.entries = rs.inline[:0]
	}
	return rs
}

// log records id if it isn't already present. Lookups are a linear scan;
// read sets target small transactions, so this beats hashing in practice.
func (rs *readSet) log(id anyTVar) {
	for i := range rs.entries {
		if rs.entries[i].equal(id) {
			return
		}
	}
	rs.entries = append(rs.entries, id)
}

func (rs *readSet) clear() {
	rs.entries = rs.entries[:0]
}
