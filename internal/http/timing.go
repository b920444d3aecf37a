package http

import (
	"crypto/tls"
	"net/http/httptrace"
	"time"
)

// TimingInfo holds the phases of one request.
type TimingInfo struct {
	StartTime           time.Time
	DNSLookupTime       time.Duration
	TCPConnectTime      time.Duration
	TLSHandshakeTime    time.Duration
	TimeToFirstByte     time.Duration
	ContentTransferTime time.Duration
	TotalTime           time.Duration
}

// newTrace returns a ClientTrace filling t. Time to first byte is measured
// from the end of the last completed phase.
func newTrace(t *TimingInfo) *httptrace.ClientTrace {
	var dnsStart, connectStart, tlsStart time.Time
	lastPhaseEnd := t.StartTime

	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			dnsStart = time.Now()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			now := time.Now()
			t.DNSLookupTime = now.Sub(dnsStart)
			lastPhaseEnd = now
		},
		ConnectStart: func(network, addr string) {
			connectStart = time.Now()
		},
		ConnectDone: func(network, addr string, err error) {
			if err != nil {
				return
			}
			now := time.Now()
			t.TCPConnectTime = now.Sub(connectStart)
			lastPhaseEnd = now
		},
		TLSHandshakeStart: func() {
			tlsStart = time.Now()
		},
		TLSHandshakeDone: func(_ tls.ConnectionState, err error) {
			if err != nil {
				return
			}
			now := time.Now()
			t.TLSHandshakeTime = now.Sub(tlsStart)
			lastPhaseEnd = now
		},
		GotFirstResponseByte: func() {
			t.TimeToFirstByte = time.Since(lastPhaseEnd)
		},
	}
}
