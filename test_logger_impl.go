package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/courseware-qa/acceptance-tests/framework"

	"github.com/fatih/color"
)

var (
	failedLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
	errorText    = color.New(color.FgRed).SprintFunc()
)

// ConsoleTestLogger writes test progress to standard output. Colors are turned off
// automatically when the output is not a terminal.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", errorText(line))
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Printf("  %s: %s\n", failedLabel("FAILED"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Printf("  %s: %s\n", skippedLabel("SKIPPED"), id)
	} else {
		fmt.Printf("  %s: %s (%s)\n", skippedLabel("SKIPPED"), id, reason)
	}
}
