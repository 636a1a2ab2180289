// Package commands provides executable command wrappers, including
// running a command as a different user.
package commands

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strconv"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Command wraps an os/exec.Cmd with arg parsing and logging
type Command struct {
	Name string // used only in logs, defaults to Exec
	Cmd  *exec.Cmd
	Exec string
	Args []string
}

// NewCommand parses a raw exec argument into a Command
func NewCommand(rawArgs interface{}) (*Command, error) {
	executable, args, err := ParseArgs(rawArgs)
	if err != nil {
		return nil, err
	}
	return &Command{
		Name: executable,
		Exec: executable,
		Args: args,
	}, nil // exec.Cmd created at Run time
}

// ExitStatusError reports a child process that ran to completion and
// exited non-zero; its status must be propagated, not translated.
type ExitStatusError struct {
	Status int
	Err    error
}

func (e *ExitStatusError) Error() string {
	return e.Err.Error()
}

// RunAsUser starts the command as username with the invoking process's
// environment (not the target user's login environment), overriding
// HOME and USER for the target, and blocks until it exits. Returns the
// child's exit status; a status from a started child is paired with an
// ExitStatusError so callers can propagate it unchanged.
func (c *Command) RunAsUser(username string) (int, error) {
	target, err := user.Lookup(username)
	if err != nil {
		return 1, fmt.Errorf("could not look up user '%s': %s", username, err)
	}
	uid, err := strconv.ParseUint(target.Uid, 10, 32)
	if err != nil {
		return 1, fmt.Errorf("could not parse uid for '%s': %s", username, err)
	}
	gid, err := strconv.ParseUint(target.Gid, 10, 32)
	if err != nil {
		return 1, fmt.Errorf("could not parse gid for '%s': %s", username, err)
	}

	cmd := exec.Command(c.Exec, c.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = overrideEnv(os.Environ(),
		"HOME="+target.HomeDir, "USER="+target.Username)
	// switching to ourselves is a no-op; setting credentials anyway
	// would make the kernel demand privileges we don't need
	if int(uid) != os.Getuid() || int(gid) != os.Getgid() {
		cmd.SysProcAttr = &syscall.SysProcAttr{
			Credential: &syscall.Credential{Uid: uint32(uid), Gid: uint32(gid)},
		}
	}
	c.Cmd = cmd

	log.Debugf("%s.RunAsUser(%s) start", c.Name, username)
	if err := cmd.Start(); err != nil {
		// Setuid without the right to do so lands here as EPERM
		return 1, fmt.Errorf("unable to start %s as '%s': %s",
			c.Name, username, err)
	}
	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			status := 1
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				status = ws.ExitStatus()
			}
			return status, &ExitStatusError{Status: status, Err: err}
		}
		return 1, err
	}
	log.Debugf("%s.RunAsUser(%s) exited without error", c.Name, username)
	return 0, nil
}

// overrideEnv replaces any existing definitions of the given KEY=value
// pairs in env, appending the ones not already present
func overrideEnv(env []string, overrides ...string) []string {
	out := make([]string, 0, len(env)+len(overrides))
	for _, kv := range env {
		overridden := false
		for _, override := range overrides {
			if sameKey(kv, override) {
				overridden = true
				break
			}
		}
		if !overridden {
			out = append(out, kv)
		}
	}
	return append(out, overrides...)
}

func sameKey(a, b string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == '=' && b[i] == '=' {
			return true
		}
		if a[i] != b[i] {
			return false
		}
	}
	return false
}
