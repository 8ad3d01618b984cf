package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/courseware-qa/acceptance-tests/framework"
	"github.com/courseware-qa/acceptance-tests/servicedef"

	"golang.org/x/net/publicsuffix"
)

// studioSession is a staff login to Studio. The login happens on first use and is then
// reused for every call made by the owning fixture. It is not safe for concurrent use.
type studioSession struct {
	baseURL     string
	client      *http.Client
	logger      framework.Logger
	established bool
	headers     http.Header
}

func newStudioSession(baseURL string, transport http.RoundTripper, logger framework.Logger) *studioSession {
	// cookiejar.New only fails if given a broken PublicSuffixList
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &studioSession{
		baseURL: baseURL,
		client:  &http.Client{Jar: jar, Transport: transport},
		logger:  logger,
	}
}

func (s *studioSession) ensureLoggedIn() error {
	if s.established {
		return nil
	}
	loginURL := s.baseURL + servicedef.AutoAuthPath + "?staff=true"
	s.logger.Printf("Logging in to Studio as staff: GET %s", loginURL)
	resp, err := s.client.Get(loginURL)
	if err != nil {
		return &AuthenticationError{Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if !isSuccess(resp.StatusCode) {
		return &AuthenticationError{StatusCode: resp.StatusCode}
	}

	s.headers = make(http.Header)
	s.headers.Set("Content-type", "application/json")
	s.headers.Set("Accept", "application/json")
	s.headers.Set(servicedef.CSRFHeaderName, s.cookie(servicedef.CSRFCookieName))
	s.established = true
	return nil
}

func (s *studioSession) cookie(name string) string {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return ""
	}
	for _, c := range s.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// studioResponse is a fully read response.
type studioResponse struct {
	StatusCode int
	Body       []byte
}

func (r studioResponse) ok() bool {
	return isSuccess(r.StatusCode)
}

// do sends a request carrying the session headers, or the given headers instead if they are
// non-nil. body is marshaled to JSON unless it is nil.
func (s *studioSession) do(method, path string, body interface{}, headers http.Header) (studioResponse, error) {
	if err := s.ensureLoggedIn(); err != nil {
		return studioResponse{}, err
	}

	var reader io.Reader
	if body != nil {
		data, err := marshalJSON(body)
		if err != nil {
			return studioResponse{}, err
		}
		s.logger.Printf("%s %s %s", method, path, snippet(data))
		reader = bytes.NewReader(data)
	} else {
		s.logger.Printf("%s %s", method, path)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	if err != nil {
		return studioResponse{}, err
	}
	if headers == nil {
		headers = s.headers
	}
	req.Header = headers.Clone()

	resp, err := s.client.Do(req)
	if err != nil {
		return studioResponse{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return studioResponse{}, fmt.Errorf("error reading response body: %w", err)
	}
	s.logger.Printf("  -> %d %s", resp.StatusCode, snippet(data))
	return studioResponse{StatusCode: resp.StatusCode, Body: data}, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// marshalJSON is json.Marshal without HTML escaping, so markup in payloads such as handout
// lists reaches Studio exactly as written.
func marshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
