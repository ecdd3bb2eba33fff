package application

import "expvar"

// Counters exposed on /api/debug/vars.
var (
	metrics = expvar.NewMap("accounts")
)

const (
	metricRegistered    = "registered"
	metricRegisterTaken = "register_email_taken"
	metricLoginOK       = "login_ok"
	metricLoginFailed   = "login_failed"
	metricDeleted       = "deleted"
	metricDeletePartial = "delete_partial"
)
