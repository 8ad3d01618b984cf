package framework

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const statusPollInterval = time.Millisecond * 100

// TestHarness holds the locations of the services under test. Creating one verifies that
// both the authoring service (Studio) and the learner-facing service (LMS) are up.
type TestHarness struct {
	studioURL string
	lmsURL    string
}

// NewTestHarness creates a TestHarness, polling each service's base URL until it responds
// or the timeout elapses.
func NewTestHarness(
	studioURL string,
	lmsURL string,
	statusQueryTimeout time.Duration,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}

	h := &TestHarness{
		studioURL: strings.TrimSuffix(studioURL, "/"),
		lmsURL:    strings.TrimSuffix(lmsURL, "/"),
	}

	for _, s := range []struct{ name, url string }{
		{"Studio", h.studioURL},
		{"LMS", h.lmsURL},
	} {
		if err := awaitService(s.name, s.url, statusQueryTimeout, debugLogger, startupOutput); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *TestHarness) StudioURL() string {
	return h.studioURL
}

func (h *TestHarness) LMSURL() string {
	return h.lmsURL
}

// awaitService considers a service available as soon as it returns any status below 500;
// redirects to a login page are normal for the root of both services.
func awaitService(name, url string, timeout time.Duration, debugLogger Logger, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to %s at %s", name, url)

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := client.Get(url)
		if err != nil {
			debugLogger.Printf("%s status query failed: %s", name, err)
		} else {
			debugLogger.Printf("%s status query returned %d", name, resp.StatusCode)
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode < 500 {
				fmt.Fprintln(output)
				fmt.Fprintf(output, "%s responded with status %d\n", name, resp.StatusCode)
				return nil
			}
			err = fmt.Errorf("status code %d", resp.StatusCode)
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out waiting for %s, result of last query was: %w", name, err)
		}
		time.Sleep(statusPollInterval)
	}
}
