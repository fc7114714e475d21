package service

// DummyPasswordHash exposes the hash compared for unknown accounts.
func DummyPasswordHash() []byte { return dummyPasswordHash() }

// SwapDummyPasswordHash replaces the unknown-account hash source until the
// returned func is called.
func SwapDummyPasswordHash(f func() []byte) (restore func()) {
	prev := dummyPasswordHash
	dummyPasswordHash = f
	return func() { dummyPasswordHash = prev }
}
