// Package lmstests contains the end-to-end LMS tests and their supporting API.
//
// Each test installs the course it needs through Studio, using the fixtures package, and then
// drives the LMS in a browser through the page objects in the pages package. Infrastructure that
// is not specific to the LMS, such as running tests outside of the Go test runner and collecting
// their results, is in the lower-level framework package.
package lmstests
