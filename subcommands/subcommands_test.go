package subcommands

import (
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tritondatacenter/entrypoint-tool/waiters"
)

func testParams(args ...string) Params {
	return Params{
		Args: args,
		WaitPolicy: waiters.Policy{
			Interval: 10 * time.Millisecond,
			Timeout:  50 * time.Millisecond,
		},
	}
}

func TestDispatchUnknownOperation(t *testing.T) {
	err := Dispatch("make-coffee", testParams())
	assert.Error(t, err)
	unknownErr, ok := err.(*UnknownOperationError)
	assert.True(t, ok, "expected UnknownOperationError, got %T", err)
	assert.Equal(t, "unknown operation 'make-coffee'", unknownErr.Error())
}

func TestDispatchUsageErrors(t *testing.T) {
	for _, invocation := range []struct {
		op   string
		args []string
	}{
		{"colored-output", []string{"RED"}},
		{"colored-output", []string{"RED", "msg", "extra"}},
		{"substitute-in-file", nil},
		{"substitute-in-file", []string{"a", "b"}},
		{"substitute-in-tree", nil},
		{"substitute-in-tree", []string{"a", "b", "c"}},
		{"exec-as", []string{"nobody"}},
		{"is-port-reachable", []string{"localhost"}},
		{"wait-for-port", []string{"localhost"}},
		{"wait-for-port", []string{"localhost", "80", "extra"}},
		{"wait-for-file", nil},
		{"version", []string{"extra"}},
	} {
		err := Dispatch(invocation.op, testParams(invocation.args...))
		usageErr, ok := err.(*UsageError)
		if !ok {
			t.Fatalf("%s with %d args: expected UsageError, got %v",
				invocation.op, len(invocation.args), err)
		}
		assert.Contains(t, usageErr.Error(), invocation.op)
		assert.Contains(t, usageErr.Error(), "usage: entrypoint-tool")
	}
}

func TestDispatchWaitForFile(t *testing.T) {
	file, err := ioutil.TempFile("", "subcommands")
	assert.NoError(t, err)
	file.Close()
	defer os.Remove(file.Name())

	assert.NoError(t, Dispatch("wait-for-file", testParams(file.Name())))

	err = Dispatch("wait-for-file", testParams("/does/not/exist"))
	assert.True(t, waiters.IsTimeout(err), "expected timeout, got %v", err)
}

func TestDispatchPortReachable(t *testing.T) {
	// port 1 on localhost is in the reserved range and not listening
	// in any test environment we run in
	err := Dispatch("is-port-reachable", testParams("127.0.0.1", "1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestDispatchColoredOutput(t *testing.T) {
	assert.NoError(t, Dispatch("colored-output", testParams("GREEN", "all good")))
}

func TestDispatchSubstituteFile(t *testing.T) {
	os.Setenv("SUBCOMMANDS_TEST_VAR", "value")
	defer os.Unsetenv("SUBCOMMANDS_TEST_VAR")

	file, err := ioutil.TempFile("", "subcommands")
	assert.NoError(t, err)
	_, err = file.WriteString("key=${SUBCOMMANDS_TEST_VAR}")
	assert.NoError(t, err)
	file.Close()
	defer os.Remove(file.Name())

	assert.NoError(t, Dispatch("substitute-in-file", testParams(file.Name())))
	content, err := ioutil.ReadFile(file.Name())
	assert.NoError(t, err)
	assert.Equal(t, "key=value", string(content))
}

func TestNamesIsClosedSet(t *testing.T) {
	assert.Equal(t, []string{
		"colored-output",
		"exec-as",
		"is-port-reachable",
		"substitute-in-file",
		"substitute-in-tree",
		"version",
		"wait-for-file",
		"wait-for-port",
	}, Names())
}
