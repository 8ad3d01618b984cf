// Package servicedef defines the JSON bodies exchanged with the Studio REST API.
package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	AutoAuthPath         = "/auto_auth"
	CoursePath           = "/course"
	CourseInfoPath       = "/course_info/"
	CourseInfoUpdatePath = "/course_info_update/"
	XBlockPath           = "/xblock"
	SettingsDetailsPath  = "/settings/details/"
	CSRFCookieName       = "csrftoken"
	CSRFHeaderName       = "X-CSRFToken"
	PublishMakePublic    = "make_public"
	CourseDetailsStart   = "start_date"
	CourseDetailsEnd     = "end_date"
)

type CreateCourseParams struct {
	Org         string `json:"org"`
	Number      string `json:"number"`
	Run         string `json:"run"`
	DisplayName string `json:"display_name"`
}

// CreateCourseResponse is returned with status 200 even when creation failed; in that case
// ErrMsg is set, for instance when the course identifier is already taken. ErrMsg is usually
// a string, but any non-null value counts as a failure.
type CreateCourseResponse struct {
	ErrMsg ldvalue.Value `json:"ErrMsg"`
}

type CourseUpdateParams struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

type HandoutsParams struct {
	Children ldvalue.Value `json:"children"`
	Data     string        `json:"data"`
	ID       string        `json:"id"`
	Metadata ldvalue.Value `json:"metadata"`
}

// XBlockParams is the body of both the create call (POST /xblock, ParentLocator set) and the
// configure call (POST /xblock/{locator}, ParentLocator empty). Publish is nil for categories
// that have no publish state.
//
// Data, Metadata and GraderType use plain Go types rather than ldvalue, whose marshalers
// escape markup; nil is sent as null.
type XBlockParams struct {
	Category      string      `json:"category"`
	DisplayName   string      `json:"display_name"`
	Data          *string     `json:"data"`
	Metadata      interface{} `json:"metadata"`
	GraderType    *string     `json:"grader_type"`
	Publish       *string     `json:"publish,omitempty"`
	ParentLocator string      `json:"parent_locator,omitempty"`
}

type CreateXBlockResponse struct {
	Locator ldvalue.OptionalString `json:"locator"`
}
