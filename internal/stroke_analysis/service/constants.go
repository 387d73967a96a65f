package service

import "time"

const (
	// AnalyzeTimeout bounds a full upload plus backend analysis.
	AnalyzeTimeout = 3 * time.Minute

	// lockMargin keeps a session lock alive past the end of the call it
	// guards, covering the handoff write and scheduling delay.
	lockMargin = 30 * time.Second

	// PingTimeout is used for backend health probes.
	PingTimeout = 5 * time.Second

	// errorBodyLimit caps how much of a failed response is kept for logs.
	errorBodyLimit = 512
)

// LockTTL is the session lock lifetime for a submission flow whose backend
// call is bounded by callTimeout.
func LockTTL(callTimeout time.Duration) time.Duration {
	if callTimeout <= 0 {
		callTimeout = AnalyzeTimeout
	}
	return callTimeout + lockMargin
}
