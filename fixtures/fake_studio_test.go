package fixtures

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const fakeCSRFToken = "csrf-token-value"

// fakeStudio imitates the parts of the Studio REST API that CourseFixture uses. Routes are
// matched as "METHOD /path" for fixed paths or "METHOD /prefix/*" for paths with a locator.
// It never reads request bodies; tests inspect those through the recorded requests.
type fakeStudio struct {
	overrides   map[string]http.Handler
	details     ldvalue.Value
	omitLocator map[int]bool
	created     int
	lock        sync.Mutex
}

func newFakeStudio() *fakeStudio {
	return &fakeStudio{
		overrides:   make(map[string]http.Handler),
		details:     ldvalue.ObjectBuild().Set("course_id", ldvalue.String("whatever")).Build(),
		omitLocator: make(map[int]bool),
	}
}

func (s *fakeStudio) override(route string, h http.Handler) *fakeStudio {
	s.overrides[route] = h
	return s
}

func routeOf(r *http.Request) string {
	path := r.URL.Path
	for _, prefix := range []string{"/course_info/", "/course_info_update/", "/xblock/", "/settings/details/"} {
		if strings.HasPrefix(path, prefix) {
			return r.Method + " " + prefix + "*"
		}
	}
	return r.Method + " " + path
}

func jsonHandler(status int, body string) http.Handler {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	return httphelpers.HandlerWithResponse(status, headers, []byte(body))
}

func (s *fakeStudio) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := routeOf(r)
	if h, ok := s.overrides[route]; ok {
		h.ServeHTTP(w, r)
		return
	}
	switch route {
	case "GET /auto_auth":
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: fakeCSRFToken, Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusOK)
	case "POST /course":
		jsonHandler(200, `{"url": "/course/x"}`).ServeHTTP(w, r)
	case "GET /course_info/*":
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html></html>"))
	case "POST /course_info_update/*", "POST /xblock/*", "POST /settings/details/*":
		jsonHandler(200, `{}`).ServeHTTP(w, r)
	case "GET /settings/details/*":
		jsonHandler(200, s.details.JSONString()).ServeHTTP(w, r)
	case "POST /xblock":
		s.lock.Lock()
		s.created++
		n := s.created
		s.lock.Unlock()
		if s.omitLocator[n] {
			jsonHandler(200, `{}`).ServeHTTP(w, r)
			return
		}
		jsonHandler(200, fmt.Sprintf(`{"locator": %q}`, blockLocator(n))).ServeHTTP(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func blockLocator(n int) string {
	return fmt.Sprintf("org.1.run/branch/draft/block/b%d", n)
}

// installWithFakeStudio installs a fixture against the fake and returns every request Studio
// received, in order, along with the result of Install.
func installWithFakeStudio(
	studio *fakeStudio,
	makeFixture func(studioURL string) *CourseFixture,
) ([]httphelpers.HTTPRequestInfo, error) {
	handler, requestsCh := httphelpers.RecordingHandler(studio)
	var installErr error
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		installErr = makeFixture(server.URL).Install()
	})
	var requests []httphelpers.HTTPRequestInfo
	for {
		select {
		case r := <-requestsCh:
			requests = append(requests, r)
		default:
			return requests, installErr
		}
	}
}

func requestLines(requests []httphelpers.HTTPRequestInfo) []string {
	var ret []string
	for _, r := range requests {
		ret = append(ret, r.Request.Method+" "+r.Request.URL.Path)
	}
	return ret
}

func requestsTo(requests []httphelpers.HTTPRequestInfo, route string) []httphelpers.HTTPRequestInfo {
	var ret []httphelpers.HTTPRequestInfo
	for _, r := range requests {
		if routeOf(r.Request) == route {
			ret = append(ret, r)
		}
	}
	return ret
}

func bodyValue(t *testing.T, r httphelpers.HTTPRequestInfo) ldvalue.Value {
	var v ldvalue.Value
	require.NoError(t, v.UnmarshalJSON(r.Body))
	return v
}
