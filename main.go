package main

import (
	"fmt"
	"log"
	"os"

	"github.com/courseware-qa/acceptance-tests/framework"
	"github.com/courseware-qa/acceptance-tests/lmstests"
	"github.com/courseware-qa/acceptance-tests/pages"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	harness, err := framework.NewTestHarness(
		params.studioURL,
		params.lmsURL,
		params.statusQueryTimeout,
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		os.Exit(1)
	}

	driver, err := pages.Launch(params.headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Browser error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := lmstests.RunTestSuite(harness, driver, params.filters.AsFilter, testLogger)

	if err := driver.Close(); err != nil {
		mainDebugLogger.Printf("Error closing browser: %s", err)
	}

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests:")
		fmt.Println("  " + params.rerunCommand(os.Args[0], results.Failures))
		os.Exit(1)
	}
}
