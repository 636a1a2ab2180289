// Package waiters implements the availability gates that block an
// entrypoint until a dependency is ready: a TCP port accepting
// connections or a file showing up on disk. A gate that never becomes
// ready must not hang the container forever, so every wait carries a
// hard timeout and reports it as an error for the caller to treat as
// fatal.
package waiters

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

// Policy fixes the retry interval and the total time budget for one
// wait. It is immutable for the invocation that receives it; callers
// wanting different timing pass a different Policy.
type Policy struct {
	Interval time.Duration
	Timeout  time.Duration
}

// DefaultPolicy returns the standard entrypoint gate policy: poll every
// second, give up after five minutes.
func DefaultPolicy() Policy {
	return Policy{
		Interval: time.Second,
		Timeout:  300 * time.Second,
	}
}

// TimeoutError reports a wait that exhausted its time budget
type TimeoutError struct {
	Target string
	After  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for %s after %s", e.Target, e.After)
}

// IsTimeout reports whether err is a wait timeout
func IsTimeout(err error) bool {
	_, ok := err.(*TimeoutError)
	return ok
}

// Check is a single readiness probe. Probes report ready-or-not only;
// the reason a probe fails (connection refused, unresolvable host,
// missing file) never matters to the retry loop.
type Check interface {
	Ready() bool
	fmt.Stringer
}

// PortCheck probes for a TCP connection to host:port. Establishing the
// connection is the whole test; the remote closing it immediately
// afterward still counts as ready.
type PortCheck struct {
	Host           string
	Port           string
	ConnectTimeout time.Duration
}

// Ready satisfies the Check interface
func (p PortCheck) Ready() bool {
	conn, err := net.DialTimeout("tcp", p.String(), p.ConnectTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p PortCheck) String() string {
	return net.JoinHostPort(p.Host, p.Port)
}

// FileCheck probes for the existence of a path. Existence only: no
// content or completeness check, because writers signal readiness by
// creating the file at all.
type FileCheck struct {
	Path string
}

// Ready satisfies the Check interface
func (f FileCheck) Ready() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

func (f FileCheck) String() string {
	return f.Path
}

// Wait blocks until the check reports ready or the policy's timeout
// elapses, probing once per interval. An already-ready target returns
// immediately without sleeping or logging progress. Interrupt signals
// received mid-wait are acknowledged in the log and the wait continues;
// an entrypoint gate has no fallback path to hand control to.
func Wait(check Check, policy Policy) error {
	if check.Ready() {
		log.Debugf("%s is available", check)
		return nil
	}
	log.Infof("waiting for %s", check)

	sigRecv := make(chan os.Signal, 1)
	signal.Notify(sigRecv, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigRecv)

	ticker := time.NewTicker(policy.Interval)
	defer ticker.Stop()

	var elapsed time.Duration
	for {
		select {
		case sig := <-sigRecv:
			log.Infof("%v received while waiting for %s, continuing", sig, check)
		case <-ticker.C:
			elapsed += policy.Interval
			if check.Ready() {
				log.Infof("%s is available after %s", check, elapsed)
				return nil
			}
			if elapsed >= policy.Timeout {
				return &TimeoutError{Target: check.String(), After: elapsed}
			}
			if elapsed > policy.Interval {
				log.Infof("still waiting for %s (%s elapsed)", check, elapsed)
			}
		}
	}
}

// WaitForPort blocks until host:port accepts a TCP connection
func WaitForPort(policy Policy, host, port string) error {
	return Wait(PortCheck{
		Host:           host,
		Port:           port,
		ConnectTimeout: policy.Interval,
	}, policy)
}

// WaitForFile blocks until the path exists
func WaitForFile(policy Policy, path string) error {
	return Wait(FileCheck{Path: path}, policy)
}

// IsPortReachable runs the port probe exactly once
func IsPortReachable(policy Policy, host, port string) bool {
	return PortCheck{
		Host:           host,
		Port:           port,
		ConnectTimeout: policy.Interval,
	}.Ready()
}
