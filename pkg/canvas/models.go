package canvas

import (
	"net/url"
	"strconv"
)

type AccessToken struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int       `json:"expires_in"`
	User         TokenUser `json:"user"`
}

type TokenUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Course struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	AccountID     int64  `json:"account_id"`
	UUID          string `json:"uuid"`
	CourseCode    string `json:"course_code"`
	WorkflowState string `json:"workflow_state"`
	StartAt       string `json:"start_at"`
	EndAt         string `json:"end_at"`
	ImageURL      string `json:"image_download_url,omitempty"`
}

type Account struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	UUID            string `json:"uuid"`
	ParentAccountID int64  `json:"parent_account_id"`
	RootAccountID   int64  `json:"root_account_id"`
	WorkflowState   string `json:"workflow_state"`
	DefaultTimeZone string `json:"default_time_zone"`
}

type Module struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Position      int    `json:"position"`
	ItemsCount    int    `json:"items_count"`
	ItemsURL      string `json:"items_url"`
	State         string `json:"state"`
	WorkflowState string `json:"workflow_state"`
}

type ModuleItem struct {
	ID        int64  `json:"id"`
	ModuleID  int64  `json:"module_id"`
	Position  int    `json:"position"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	ContentID int64  `json:"content_id"`
	HTMLURL   string `json:"html_url"`
	URL       string `json:"url,omitempty"`
}

type Page struct {
	PageID    int64  `json:"page_id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Published bool   `json:"published"`
	FrontPage bool   `json:"front_page"`
}

type ContentExport struct {
	ID            int64            `json:"id"`
	CreatedAt     string           `json:"created_at"`
	ExportType    string           `json:"export_type"`
	WorkflowState string           `json:"workflow_state"`
	ProgressURL   string           `json:"progress_url"`
	Attachment    ExportAttachment `json:"attachment"`
}

type ExportAttachment struct {
	URL string `json:"url"`
}

type CourseSettings struct {
	AllowStudentDiscussionTopics  bool `json:"allow_student_discussion_topics"`
	AllowStudentForumAttachments  bool `json:"allow_student_forum_attachments"`
	AllowStudentDiscussionEditing bool `json:"allow_student_discussion_editing"`
	HideFinalGrades               bool `json:"hide_final_grades"`
	HideDistributionGraphs        bool `json:"hide_distribution_graphs"`
	RestrictStudentPastView       bool `json:"restrict_student_past_view"`
	RestrictStudentFutureView     bool `json:"restrict_student_future_view"`
}

// Ack is the body Canvas returns for a course deletion.
type Ack struct {
	Delete bool `json:"delete"`
}

// CourseFields is the writable subset of a course. Empty fields are omitted
// from the form body. Keys follow the Canvas course[...] convention.
type CourseFields struct {
	Name       string
	CourseCode string
	ImageURL   string
	StartAt    string
	EndAt      string
	License    string
}

func (f CourseFields) form() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set("course["+key+"]", val)
		}
	}
	set("name", f.Name)
	set("course_code", f.CourseCode)
	set("image_url", f.ImageURL)
	set("start_at", f.StartAt)
	set("end_at", f.EndAt)
	set("license", f.License)
	return v
}

// SettingsFields carries the settings a caller wants to change; nil fields
// are left untouched upstream.
type SettingsFields struct {
	AllowStudentDiscussionTopics *bool
	AllowStudentForumAttachments *bool
	HideFinalGrades              *bool
	RestrictStudentPastView      *bool
	RestrictStudentFutureView    *bool
}

func (f SettingsFields) form() url.Values {
	v := url.Values{}
	set := func(key string, val *bool) {
		if val != nil {
			v.Set(key, strconv.FormatBool(*val))
		}
	}
	set("allow_student_discussion_topics", f.AllowStudentDiscussionTopics)
	set("allow_student_forum_attachments", f.AllowStudentForumAttachments)
	set("hide_final_grades", f.HideFinalGrades)
	set("restrict_student_past_view", f.RestrictStudentPastView)
	set("restrict_student_future_view", f.RestrictStudentFutureView)
	return v
}

// ListOptions applies to every paginated listing call. Cursor is the opaque
// next-page reference surfaced by a previous call; it is passed through to
// Canvas unchanged and overrides the endpoint path when set.
type ListOptions struct {
	Cursor  string
	PerPage int
}
