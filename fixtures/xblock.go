package fixtures

import (
	"fmt"

	"github.com/courseware-qa/acceptance-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// detachedCategories are XBlock categories that live outside the course hierarchy. Studio
// does not track publish state for them, so the publish field must not be sent.
var detachedCategories = map[string]bool{
	"static_tab": true,
}

// XBlockDesc describes an XBlock to be created by a CourseFixture. Nothing is sent to Studio
// until the fixture is installed; the fields have the same meaning as in the Studio REST API.
//
// Descriptors are built up front and must not be changed once Install has started.
type XBlockDesc struct {
	Category    string
	DisplayName string
	Data        ldvalue.OptionalString
	Metadata    ldvalue.Value
	GraderType  ldvalue.OptionalString
	Publish     string

	children []*XBlockDesc
}

// NewXBlockDesc creates a descriptor with no data or metadata that will be made public.
func NewXBlockDesc(category, displayName string) *XBlockDesc {
	return &XBlockDesc{
		Category:    category,
		DisplayName: displayName,
		Publish:     servicedef.PublishMakePublic,
	}
}

func (d *XBlockDesc) WithData(data string) *XBlockDesc {
	d.Data = ldvalue.NewOptionalString(data)
	return d
}

// WithMetadata sets the metadata, which must be a JSON object value.
func (d *XBlockDesc) WithMetadata(metadata ldvalue.Value) *XBlockDesc {
	d.Metadata = metadata
	return d
}

func (d *XBlockDesc) WithGraderType(graderType string) *XBlockDesc {
	d.GraderType = ldvalue.NewOptionalString(graderType)
	return d
}

func (d *XBlockDesc) WithPublish(publish string) *XBlockDesc {
	d.Publish = publish
	return d
}

// AddChildren appends child descriptors, which will be created in the given order after
// this XBlock exists. It returns the receiver to allow chaining.
func (d *XBlockDesc) AddChildren(children ...*XBlockDesc) *XBlockDesc {
	d.children = append(d.children, children...)
	return d
}

// Children returns a copy of the child list.
func (d *XBlockDesc) Children() []*XBlockDesc {
	return append([]*XBlockDesc(nil), d.children...)
}

// IsDetached is true for categories that are not part of the course hierarchy.
func (d *XBlockDesc) IsDetached() bool {
	return detachedCategories[d.Category]
}

// params builds the request body. parentLocator is only given for the create call.
func (d *XBlockDesc) params(parentLocator string) servicedef.XBlockParams {
	p := servicedef.XBlockParams{
		Category:      d.Category,
		DisplayName:   d.DisplayName,
		Data:          d.Data.AsPointer(),
		Metadata:      d.Metadata.AsArbitraryValue(),
		GraderType:    d.GraderType.AsPointer(),
		ParentLocator: parentLocator,
	}
	if !d.IsDetached() {
		publish := d.Publish
		p.Publish = &publish
	}
	return p
}

func (d *XBlockDesc) String() string {
	var childNames []string
	for _, c := range d.children {
		childNames = append(childNames, c.Category+" "+fmt.Sprintf("%q", c.DisplayName))
	}
	return fmt.Sprintf("<XBlockDesc: category=%s, display_name=%q, data=%s, metadata=%s, grader_type=%s, publish=%s, children=%v>",
		d.Category, d.DisplayName, optionalString(d.Data), d.Metadata.JSONString(), optionalString(d.GraderType),
		d.Publish, childNames)
}

func optionalString(o ldvalue.OptionalString) string {
	if !o.IsDefined() {
		return "null"
	}
	return fmt.Sprintf("%q", snippet([]byte(o.StringValue())))
}
