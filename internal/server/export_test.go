package server

import "time"

type ClientLimiters = clientLimiters

func NewClientLimiters(rps, burst int, idle time.Duration, now func() time.Time) *ClientLimiters {
	return newClientLimiters(rps, burst, idle, now)
}

func (l *clientLimiters) Allow(ip string) bool { return l.allow(ip) }
func (l *clientLimiters) Size() int            { return l.size() }
