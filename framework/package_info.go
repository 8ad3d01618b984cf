// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to any one page or content type.
//
// The general model is:
//
// 1. The test harness talks to two services: the authoring service (Studio), whose REST API
// is used to install test content, and the learner-facing service (LMS), whose pages are
// driven through a browser.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results and debug output.
//
// The domain-specific code that knows what is being tested is responsible for installing
// fixtures, driving pages, and providing a domain-specific test API on top of the test
// context.
package framework
