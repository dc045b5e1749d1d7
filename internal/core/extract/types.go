package extract

import "fmt"

// PageType is the caller-declared classification of a target page. It selects
// which extraction variant runs.
type PageType string

const (
	PageCompany PageType = "company"
	PageProfile PageType = "profile"
	PagePost    PageType = "post"
)

func (t PageType) Valid() bool {
	switch t {
	case PageCompany, PageProfile, PagePost:
		return true
	}
	return false
}

// Record is a tagged union over the three extraction variants; exactly one
// pointer is set.
type Record struct {
	Company *Company `json:"company,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
	Post    *Post    `json:"post,omitempty"`
}

// Counter-style fields (likes, connections, followers) are kept as display
// strings because the source renders them abbreviated and localized ("1.2K").
// Numeric normalization is deferred to downstream consumers.

type Company struct {
	Name         string        `json:"name"`
	Industry     string        `json:"industry"`
	Website      string        `json:"website"`
	Size         string        `json:"size"`
	Headquarters string        `json:"headquarters"`
	Founded      string        `json:"founded"`
	Specialties  []string      `json:"specialties,omitempty"`
	About        string        `json:"about"`
	RecentPosts  []PostPreview `json:"recent_posts,omitempty"`
}

type PostPreview struct {
	Text     string `json:"text"`
	Likes    string `json:"likes,omitempty"`
	Comments string `json:"comments,omitempty"`
}

type Profile struct {
	Name        string       `json:"name"`
	Headline    string       `json:"headline"`
	Location    string       `json:"location"`
	Connections string       `json:"connections"`
	About       string       `json:"about"`
	Experience  []Experience `json:"experience,omitempty"`
	Education   []Education  `json:"education,omitempty"`
}

type Experience struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Years  string `json:"years"`
}

type Post struct {
	Author         string    `json:"author"`
	AuthorHeadline string    `json:"author_headline"`
	Content        string    `json:"content"`
	Timestamp      string    `json:"timestamp"`
	Likes          string    `json:"likes"`
	Comments       string    `json:"comments"`
	Reposts        string    `json:"reposts"`
	CommentsList   []Comment `json:"comments_list,omitempty"`
}

type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

type FieldErrorKind string

const (
	FieldNotFound     FieldErrorKind = "not_found"
	FieldParseFailure FieldErrorKind = "parse_failure"
)

// FieldError is a non-fatal failure to locate or parse one named field. It is
// accumulated per attempt and never aborts extraction of sibling fields.
type FieldError struct {
	Field  string         `json:"field"`
	Kind   FieldErrorKind `json:"kind"`
	Detail string         `json:"detail,omitempty"`
}

func (e FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("field %s: %s: %s", e.Field, e.Kind, e.Detail)
	}
	return fmt.Sprintf("field %s: %s", e.Field, e.Kind)
}
