package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/courseware-qa/acceptance-tests/framework"

	"github.com/alessio/shellescape"
)

const defaultStatusQueryTimeout = time.Second * 10

type commandParams struct {
	studioURL          string
	lmsURL             string
	filters            framework.RegexFilters
	headless           bool
	statusQueryTimeout time.Duration
	debug              bool
	debugAll           bool
}

// Read parses the command line. HEADLESS=false in the environment changes the default of
// -headless, so a visible browser can be requested without editing a CI command.
func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&c.studioURL, "studio-url", "", "base URL of the Studio instance to install courses into")
	fs.StringVar(&c.lmsURL, "lms-url", "", "base URL of the LMS instance under test")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.headless, "headless", headlessDefault(), "run the browser without a window")
	fs.DurationVar(&c.statusQueryTimeout, "status-timeout", defaultStatusQueryTimeout,
		"how long to wait for Studio and the LMS to respond at startup")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if c.studioURL == "" || c.lmsURL == "" {
		fmt.Fprintln(os.Stderr, "-studio-url and -lms-url are required")
		fs.Usage()
		return false
	}
	return true
}

func headlessDefault() bool {
	if v, err := strconv.ParseBool(os.Getenv("HEADLESS")); err == nil {
		return v
	}
	return true
}

// rerunCommand builds a command line that runs only the given failed tests, with debug
// output turned on.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program, "-studio-url", c.studioURL, "-lms-url", c.lmsURL)
	if !c.headless {
		b.add("-headless=false")
	}
	for _, f := range failures {
		b.add("-run", framework.ExactMatch(f.TestID))
	}
	b.add("-debug")
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
