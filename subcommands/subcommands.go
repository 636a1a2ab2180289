// Package subcommands provides the top-level operations that the
// entrypoint-tool CLI dispatches to by name.
package subcommands

import (
	"fmt"
	"sort"

	"github.com/tritondatacenter/entrypoint-tool/commands"
	"github.com/tritondatacenter/entrypoint-tool/console"
	"github.com/tritondatacenter/entrypoint-tool/render"
	"github.com/tritondatacenter/entrypoint-tool/waiters"
)

// Params carries the operation arguments plus the process-wide values
// handlers need
type Params struct {
	Version string
	GitHash string

	Args       []string
	WaitPolicy waiters.Policy
}

// Handler functions implement an operation
type Handler func(Params) error

// UsageError reports an operation invoked with the wrong arguments
type UsageError struct {
	Op    string
	Usage string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: entrypoint-tool %s %s", e.Op, e.Usage)
}

// UnknownOperationError reports a name missing from the registry
type UnknownOperationError struct {
	Op string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation '%s'", e.Op)
}

type operation struct {
	handler Handler
	usage   string
	minArgs int
	maxArgs int // -1 for unlimited
}

// registry is the closed set of operations. Argument counts are
// enforced here so no handler starts work on a malformed invocation.
var registry = map[string]operation{
	"colored-output": {
		ColorHandler, "<color> <message>", 2, 2},
	"substitute-in-file": {
		SubstituteFileHandler, "<path>", 1, 1},
	"substitute-in-tree": {
		SubstituteTreeHandler, "<path> [name-pattern]", 1, 2},
	"exec-as": {
		ExecHandler, "<user> <command> [args...]", 2, -1},
	"is-port-reachable": {
		PortReachableHandler, "<host> <port>", 2, 2},
	"wait-for-port": {
		WaitPortHandler, "<host> <port>", 2, 2},
	"wait-for-file": {
		WaitFileHandler, "<path>", 1, 1},
	"version": {
		VersionHandler, "", 0, 0},
}

// Names returns the registered operation names, sorted
func Names() []string {
	var names []string
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch resolves the operation name and runs it with params
func Dispatch(name string, params Params) error {
	op, ok := registry[name]
	if !ok {
		return &UnknownOperationError{Op: name}
	}
	if len(params.Args) < op.minArgs ||
		(op.maxArgs >= 0 && len(params.Args) > op.maxArgs) {
		return &UsageError{Op: name, Usage: op.usage}
	}
	return op.handler(params)
}

// ColorHandler writes the message to stdout in the named color
func ColorHandler(params Params) error {
	console.Print(params.Args[0], params.Args[1])
	return nil
}

// SubstituteFileHandler rewrites ${VAR} tokens in one file
func SubstituteFileHandler(params Params) error {
	return render.File(params.Args[0])
}

// SubstituteTreeHandler rewrites ${VAR} tokens in every matching file
// under a directory
func SubstituteTreeHandler(params Params) error {
	pattern := ""
	if len(params.Args) == 2 {
		pattern = params.Args[1]
	}
	return render.Tree(params.Args[0], pattern)
}

// ExecHandler runs a command as another user, inheriting this process's
// environment
func ExecHandler(params Params) error {
	cmd, err := commands.NewCommand(params.Args[1:])
	if err != nil {
		return err
	}
	_, err = cmd.RunAsUser(params.Args[0])
	return err
}

// PortReachableHandler probes host:port once
func PortReachableHandler(params Params) error {
	host, port := params.Args[0], params.Args[1]
	if !waiters.IsPortReachable(params.WaitPolicy, host, port) {
		return fmt.Errorf("%s is not reachable",
			waiters.PortCheck{Host: host, Port: port})
	}
	return nil
}

// WaitPortHandler blocks until host:port accepts TCP connections
func WaitPortHandler(params Params) error {
	return waiters.WaitForPort(params.WaitPolicy, params.Args[0], params.Args[1])
}

// WaitFileHandler blocks until the path exists
func WaitFileHandler(params Params) error {
	return waiters.WaitForFile(params.WaitPolicy, params.Args[0])
}

// VersionHandler prints the version info only
func VersionHandler(params Params) error {
	fmt.Printf("Version: %s\nGitHash: %s\n", params.Version, params.GitHash)
	return nil
}
