package entity

// Page is a managed LinkedIn company page, keyed by its external page_id.
type Page struct {
	PageID         string   `json:"page_id"`
	Name           string   `json:"name"`
	URL            string   `json:"url"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
	Description    string   `json:"description,omitempty"`
	Website        string   `json:"website,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Followers      *int     `json:"followers,omitempty"`
	HeadCount      *int     `json:"head_count,omitempty"`
	Specialities   []string `json:"specialities,omitempty"`
}

// Post is a managed LinkedIn post, keyed by its external post_id.
type Post struct {
	PageID        string `json:"page_id"`
	PostID        string `json:"post_id"`
	Content       string `json:"content,omitempty"`
	Likes         int    `json:"likes"`
	CommentsCount int    `json:"comments_count"`
	Shares        int    `json:"shares"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// User is a managed LinkedIn member, keyed by its external linkedin_id.
type User struct {
	LinkedInID     string `json:"linkedin_id"`
	Name           string `json:"name"`
	ProfileURL     string `json:"profile_url"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	Company        string `json:"company,omitempty"`
}
