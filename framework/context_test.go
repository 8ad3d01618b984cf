package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	kind string
	id   string
}

type recordingTestLogger struct {
	events []recordedEvent
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, recordedEvent{"started", id.String()})
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, recordedEvent{"error", id.String()})
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	kind := "passed"
	if failed {
		kind = "failed"
	}
	r.events = append(r.events, recordedEvent{kind, id.String()})
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, recordedEvent{"skipped", id.String()})
}

func TestPassingAndFailingSubtests(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("passes", func(c *Context) {})
			c.Run("fails", func(c *Context) {
				c.Errorf("bad %d", 1)
				c.Errorf("worse")
			})
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "a/fails", results.Failures[0].TestID.String())
	assert.Equal(t, []error{errors.New("bad 1"), errors.New("worse")}, results.Failures[0].Errors)
	assert.Equal(t, []recordedEvent{
		{"started", "a"},
		{"started", "a/passes"},
		{"passed", "a/passes"},
		{"started", "a/fails"},
		{"error", "a/fails"},
		{"error", "a/fails"},
		{"failed", "a/fails"},
		{"passed", "a"},
	}, logger.events)
}

func TestFailNowStopsTest(t *testing.T) {
	reached := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Errorf("oops")
			c.FailNow()
			reached = true
		})
	})
	assert.False(t, reached)
	require.Len(t, results.Failures, 1)
	assert.Len(t, results.Failures[0].Errors, 1)
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) { c.FailNow() })
	})
	require.Len(t, results.Failures, 1)
	assert.EqualError(t, results.Failures[0].Errors[0], "test failed with no failure message")
}

func TestUnexpectedPanicFailsTest(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) { panic("boom") })
		c.Run("y", func(c *Context) {})
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
	assert.False(t, results.OK())
}

func TestSkipWithReason(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.SkipWithReason("not today")
			c.Errorf("unreachable")
		})
	})
	assert.True(t, results.OK())
	assert.Contains(t, logger.events, recordedEvent{"skipped", "x"})
	var x TestResult
	for _, r := range results.Tests {
		if r.TestID.String() == "x" {
			x = r
		}
	}
	assert.True(t, x.Skipped)
}

func TestFilterExcludesSubtests(t *testing.T) {
	var ran []string
	filter := func(id TestID) bool { return id.String() != "a/b" }
	Run(filter, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			ran = append(ran, "a")
			c.Run("b", func(c *Context) { ran = append(ran, "a/b") })
			c.Run("c", func(c *Context) { ran = append(ran, "a/c") })
		})
	})
	assert.Equal(t, []string{"a", "a/c"}, ran)
}

func TestDeferredFunctionsRunInReverseOrderEvenOnFailure(t *testing.T) {
	var calls []string
	Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Defer(func() { calls = append(calls, "first") })
			c.Defer(func() { calls = append(calls, "second") })
			c.FailNow()
		})
		c.Run("y", func(c *Context) {
			c.Defer(func() { calls = append(calls, "skipped") })
			c.Skip()
		})
	})
	assert.Equal(t, []string{"second", "first", "skipped"}, calls)
}

func TestPanicInDeferredFunctionIsContained(t *testing.T) {
	called := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Defer(func() { called = true })
			c.Defer(func() { panic("cleanup failed") })
		})
	})
	assert.True(t, called)
	assert.True(t, results.OK())
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	var output CapturedOutput
	logger := &debugCapturingTestLogger{onFinish: func(o CapturedOutput) { output = o }}
	Run(nil, logger, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Debug("hello %s", "there")
			c.DebugLogger().Printf("again")
		})
	})
	require.Len(t, output, 2)
	assert.Equal(t, "hello there", output[0].Message)
	assert.Equal(t, "again", output[1].Message)
}

type debugCapturingTestLogger struct {
	nullTestLogger
	onFinish func(CapturedOutput)
}

func (d *debugCapturingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	d.onFinish(debugOutput)
}
