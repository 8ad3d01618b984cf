package fixtures

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/courseware-qa/acceptance-tests/framework"
	"github.com/courseware-qa/acceptance-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Installation steps, as reported in InstallationError.Step.
const (
	StepCreateCourse    = "create course"
	StepUpdateLocMap    = "update location map"
	StepInstallUpdates  = "install course updates"
	StepInstallHandouts = "install course handouts"
	StepConfigureCourse = "configure course"
	StepCreateXBlock    = "create xblock"
	StepConfigureXBlock = "configure xblock"
)

const (
	handoutsListCSSClass = "treeview-handoutsnav"
	isoDateTimeFormat    = "2006-01-02T15:04:05"
)

// DefaultStartDate is used when no start date is set, so that the course is already running
// and students can enroll.
var DefaultStartDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// CourseUpdateDesc describes a course update. Date is free text, e.g. "January 29, 2014".
type CourseUpdateDesc struct {
	Date    string
	Content string
}

// CourseFixture describes a course to be created in Studio, along with its updates,
// handouts and content tree.
//
// Installing is NOT idempotent: if the course already exists, Install fails. Use unique
// course identifiers for each fixture to avoid conflicts between tests.
type CourseFixture struct {
	studioURL   string
	org         string
	number      string
	run         string
	displayName string
	startDate   time.Time
	endDate     *time.Time
	updates     []CourseUpdateDesc
	handouts    []string
	children    []*XBlockDesc
	transport   http.RoundTripper
	logger      framework.Logger
	session     *studioSession
}

// NewCourseFixture configures a course with the given identifiers. These have the same
// meaning as in the Studio REST API's course creation endpoint.
func NewCourseFixture(studioURL, org, number, run, displayName string) *CourseFixture {
	return &CourseFixture{
		studioURL:   strings.TrimSuffix(studioURL, "/"),
		org:         org,
		number:      number,
		run:         run,
		displayName: displayName,
		startDate:   DefaultStartDate,
		logger:      framework.NullLogger(),
	}
}

func (f *CourseFixture) WithStartDate(t time.Time) *CourseFixture {
	f.startDate = t
	return f
}

// WithEndDate sets the course end date. Without it, Studio's default is kept.
func (f *CourseFixture) WithEndDate(t time.Time) *CourseFixture {
	f.endDate = &t
	return f
}

func (f *CourseFixture) WithLogger(logger framework.Logger) *CourseFixture {
	if logger == nil {
		logger = framework.NullLogger()
	}
	f.logger = logger
	return f
}

// WithTransport sets the HTTP transport used to reach Studio. The fixture always keeps its
// own cookie jar.
func (f *CourseFixture) WithTransport(transport http.RoundTripper) *CourseFixture {
	f.transport = transport
	return f
}

// AddChildren adds top-level XBlocks (usually chapters or static tabs) to the course. It
// returns the fixture to allow chaining.
func (f *CourseFixture) AddChildren(children ...*XBlockDesc) *CourseFixture {
	f.children = append(f.children, children...)
	return f
}

// Children returns a copy of the top-level XBlocks.
func (f *CourseFixture) Children() []*XBlockDesc {
	return append([]*XBlockDesc(nil), f.children...)
}

func (f *CourseFixture) AddUpdate(update CourseUpdateDesc) *CourseFixture {
	f.updates = append(f.updates, update)
	return f
}

// AddHandout links the named static asset from the course info page. It does not upload
// the asset.
func (f *CourseFixture) AddHandout(assetName string) *CourseFixture {
	f.handouts = append(f.handouts, assetName)
	return f
}

func (f *CourseFixture) String() string {
	return fmt.Sprintf("<CourseFixture: org='%s', number='%s', run='%s'>", f.org, f.number, f.run)
}

// CourseID is the identifier the LMS uses for the course.
func (f *CourseFixture) CourseID() string {
	return f.org + "/" + f.number + "/" + f.run
}

func (f *CourseFixture) CourseLocator() string {
	return f.blockLocator(f.run)
}

func (f *CourseFixture) UpdatesLocator() string {
	return f.blockLocator("updates")
}

func (f *CourseFixture) HandoutsLocator() string {
	return f.blockLocator("handouts")
}

func (f *CourseFixture) blockLocator(block string) string {
	return fmt.Sprintf("%s.%s.%s/branch/draft/block/%s", f.org, f.number, f.run, block)
}

func (f *CourseFixture) studio() *studioSession {
	if f.session == nil {
		f.session = newStudioSession(f.studioURL, f.transport, f.logger)
	}
	return f.session
}

// Install creates the course and everything configured in it. It stops at the first
// failure; whatever was already created stays in Studio.
func (f *CourseFixture) Install() error {
	f.logger.Printf("Installing %s", f)
	steps := []func() error{
		f.createCourse,
		f.updateLocMap,
		f.installCourseUpdates,
		f.installCourseHandouts,
		f.configureCourse,
		func() error { return f.createXBlockChildren(f.CourseLocator(), f.children) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (f *CourseFixture) createCourse() error {
	params := servicedef.CreateCourseParams{
		Org:         f.org,
		Number:      f.number,
		Run:         f.run,
		DisplayName: f.displayName,
	}
	resp, err := f.studio().do(http.MethodPost, servicedef.CoursePath, params, nil)
	if err != nil {
		return wrapTransportError(StepCreateCourse, f.String(), err)
	}

	var result servicedef.CreateCourseResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return &DecodeError{Description: "response from course request", Body: resp.Body, Err: err}
	}
	// Studio answers 200 with an error message if the course identifier is not unique
	if !result.ErrMsg.IsNull() {
		return &InstallationError{
			Step:    StepCreateCourse,
			Message: fmt.Sprintf("could not create course %s. Error message: '%s'", f, errMsgText(result.ErrMsg)),
		}
	}
	if !resp.ok() {
		return &InstallationError{
			Step:       StepCreateCourse,
			Message:    fmt.Sprintf("could not create course %s", f),
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

func errMsgText(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}

// updateLocMap loads the course info page, which makes Studio rebuild its location map
// for the new course. Later calls fail without it.
func (f *CourseFixture) updateLocMap() error {
	headers := http.Header{"Accept": []string{"text/html"}}
	resp, err := f.studio().do(http.MethodGet, servicedef.CourseInfoPath+f.CourseLocator(), nil, headers)
	if err != nil {
		return wrapTransportError(StepUpdateLocMap, "could not load course info page", err)
	}
	if !resp.ok() {
		return &InstallationError{
			Step:       StepUpdateLocMap,
			Message:    "could not load Studio course info page to trigger location map update",
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

func (f *CourseFixture) installCourseUpdates() error {
	path := servicedef.CourseInfoUpdatePath + f.UpdatesLocator()
	for _, update := range f.updates {
		params := servicedef.CourseUpdateParams{Date: update.Date, Content: update.Content}
		desc := fmt.Sprintf("could not add update to course: {%s, %s}", update.Date, update.Content)
		resp, err := f.studio().do(http.MethodPost, path, params, nil)
		if err != nil {
			return wrapTransportError(StepInstallUpdates, desc, err)
		}
		if !resp.ok() {
			return &InstallationError{Step: StepInstallUpdates, Message: desc, StatusCode: resp.StatusCode}
		}
	}
	return nil
}

func (f *CourseFixture) installCourseHandouts() error {
	params := servicedef.HandoutsParams{
		Children: ldvalue.Null(),
		Data:     HandoutsHTML(f.handouts),
		ID:       f.HandoutsLocator(),
		Metadata: ldvalue.ObjectBuild().Build(),
	}
	resp, err := f.studio().do(http.MethodPost, servicedef.XBlockPath+"/"+f.HandoutsLocator(), params, nil)
	if err != nil {
		return wrapTransportError(StepInstallHandouts, "could not update course handouts", err)
	}
	if !resp.ok() {
		return &InstallationError{
			Step:       StepInstallHandouts,
			Message:    "could not update course handouts",
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

// HandoutsHTML renders the handouts list shown on the course info page, one link per
// asset in the given order.
func HandoutsHTML(assetNames []string) string {
	var b strings.Builder
	b.WriteString(`<ol class="` + handoutsListCSSClass + `">`)
	for _, name := range assetNames {
		b.WriteString(`<li><a href="/static/` + html.EscapeString(name) + `">Example Handout</a></li>`)
	}
	b.WriteString(`</ol>`)
	return b.String()
}

func (f *CourseFixture) courseDetails() ldvalue.Value {
	b := ldvalue.ObjectBuild().Set(servicedef.CourseDetailsStart, ldvalue.String(isoFormat(f.startDate)))
	if f.endDate != nil {
		b.Set(servicedef.CourseDetailsEnd, ldvalue.String(isoFormat(*f.endDate)))
	}
	return b.Build()
}

func (f *CourseFixture) configureCourse() error {
	path := servicedef.SettingsDetailsPath + f.CourseLocator()

	resp, err := f.studio().do(http.MethodGet, path, nil, nil)
	if err != nil {
		return wrapTransportError(StepConfigureCourse, "could not retrieve course details", err)
	}
	if !resp.ok() {
		return &InstallationError{
			Step:       StepConfigureCourse,
			Message:    "could not retrieve course details",
			StatusCode: resp.StatusCode,
		}
	}

	var current ldvalue.Value
	if err := json.Unmarshal(resp.Body, &current); err != nil {
		return &DecodeError{Description: "course details", Body: resp.Body, Err: err}
	}
	if current.Type() != ldvalue.ObjectType {
		return &DecodeError{Description: "course details", Body: resp.Body,
			Err: fmt.Errorf("expected a JSON object, got %s", current.Type())}
	}

	overrides := f.courseDetails()
	merged := MergeDetails(current, overrides)

	resp, err = f.studio().do(http.MethodPost, path, merged, nil)
	if err != nil {
		return wrapTransportError(StepConfigureCourse, "could not update course details", err)
	}
	if !resp.ok() {
		return &InstallationError{
			Step:       StepConfigureCourse,
			Message:    fmt.Sprintf("could not update course details to '%s'", overrides.JSONString()),
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

// MergeDetails returns the properties of current with every property of overrides replacing
// the one of the same name. Both values are expected to be JSON objects.
func MergeDetails(current, overrides ldvalue.Value) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, k := range current.Keys() {
		b.Set(k, current.GetByKey(k))
	}
	for _, k := range overrides.Keys() {
		b.Set(k, overrides.GetByKey(k))
	}
	return b.Build()
}

// createXBlockChildren creates the descriptors under parentLocator depth-first, each block
// before its children and siblings in order.
func (f *CourseFixture) createXBlockChildren(parentLocator string, descs []*XBlockDesc) error {
	for _, desc := range descs {
		locator, err := f.createXBlock(parentLocator, desc)
		if err != nil {
			return err
		}
		if err := f.createXBlockChildren(locator, desc.children); err != nil {
			return err
		}
	}
	return nil
}

// createXBlock creates one XBlock under parentLocator, then configures it, and returns the
// locator Studio assigned to it.
func (f *CourseFixture) createXBlock(parentLocator string, desc *XBlockDesc) (string, error) {
	resp, err := f.studio().do(http.MethodPost, servicedef.XBlockPath, desc.params(parentLocator), nil)
	if err != nil {
		return "", wrapTransportError(StepCreateXBlock, fmt.Sprintf("could not create %s", desc), err)
	}
	if !resp.ok() {
		return "", &InstallationError{
			Step:       StepCreateXBlock,
			Message:    fmt.Sprintf("could not create %s", desc),
			StatusCode: resp.StatusCode,
		}
	}

	var result servicedef.CreateXBlockResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return "", &DecodeError{Description: fmt.Sprintf("response from creating %s", desc), Body: resp.Body, Err: err}
	}
	locator := result.Locator.StringValue()
	if locator == "" {
		return "", &InstallationError{
			Step:    StepCreateXBlock,
			Message: fmt.Sprintf("could not retrieve location of %s", desc),
		}
	}

	resp, err = f.studio().do(http.MethodPost, servicedef.XBlockPath+"/"+locator, desc.params(""), nil)
	if err != nil {
		return "", wrapTransportError(StepConfigureXBlock, fmt.Sprintf("could not update %s", desc), err)
	}
	if !resp.ok() {
		return "", &InstallationError{
			Step:       StepConfigureXBlock,
			Message:    fmt.Sprintf("could not update %s", desc),
			StatusCode: resp.StatusCode,
		}
	}
	f.logger.Printf("Created %s %q at %s", desc.Category, desc.DisplayName, locator)
	return locator, nil
}

// wrapTransportError passes authentication failures through unchanged, since they come from
// the session rather than from the step itself.
func wrapTransportError(step, message string, err error) error {
	if _, ok := err.(*AuthenticationError); ok {
		return err
	}
	return &InstallationError{Step: step, Message: message, Err: err}
}

// isoFormat matches the naive ISO-8601 form Studio expects, in UTC, with microseconds only
// when present.
func isoFormat(t time.Time) string {
	t = t.UTC()
	s := t.Format(isoDateTimeFormat)
	if micros := t.Nanosecond() / 1000; micros != 0 {
		s += fmt.Sprintf(".%06d", micros)
	}
	return s
}
