package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table holds the declarative selectors used to locate fields on rendered
// pages. The compiled-in defaults match LinkedIn's current class names; a
// YAML file can override any subset of them without a rebuild.
type Table struct {
	Company CompanySelectors `yaml:"company"`
	Profile ProfileSelectors `yaml:"profile"`
	Post    PostSelectors    `yaml:"post"`
}

type CompanySelectors struct {
	Name        string `yaml:"name"`
	Industry    string `yaml:"industry"`
	DetailItem  string `yaml:"detail_item"`
	DetailLabel string `yaml:"detail_label"`
	DetailValue string `yaml:"detail_value"`
	About       string `yaml:"about"`
	PostItem    string `yaml:"post_item"`
	PostText    string `yaml:"post_text"`
	PostMetric  string `yaml:"post_metric"`
}

type ProfileSelectors struct {
	Name           string `yaml:"name"`
	Headline       string `yaml:"headline"`
	Location       string `yaml:"location"`
	Connections    string `yaml:"connections"`
	About          string `yaml:"about"`
	ExperienceItem string `yaml:"experience_item"`
	EducationItem  string `yaml:"education_item"`
	ItemTitle      string `yaml:"item_title"`
	ItemDetail     string `yaml:"item_detail"`
}

type PostSelectors struct {
	Author         string `yaml:"author"`
	AuthorHeadline string `yaml:"author_headline"`
	Timestamp      string `yaml:"timestamp"`
	Content        string `yaml:"content"`
	MetricItem     string `yaml:"metric_item"`
	CommentItem    string `yaml:"comment_item"`
	CommentAuthor  string `yaml:"comment_author"`
	CommentText    string `yaml:"comment_text"`
}

func DefaultTable() *Table {
	return &Table{
		Company: CompanySelectors{
			Name:        ".org-top-card-summary__title",
			Industry:    ".org-top-card-summary-info-list__info-item",
			DetailItem:  ".org-about-company-module__about-us-item",
			DetailLabel: ".org-about-company-module__about-us-label",
			DetailValue: ".org-about-company-module__about-us-text",
			About:       ".org-about-us-organization-description__text",
			PostItem:    ".occludable-update",
			PostText:    ".feed-shared-update-v2__description",
			PostMetric:  ".social-details-social-counts__item",
		},
		Profile: ProfileSelectors{
			Name:           ".text-heading-xlarge",
			Headline:       ".text-body-medium",
			Location:       ".pv-text-details__left-panel .text-body-small",
			Connections:    ".pv-text-details__right-panel .text-body-small",
			About:          "#about + div span",
			ExperienceItem: "#experience + div li",
			EducationItem:  "#education + div li",
			ItemTitle:      ".t-bold",
			ItemDetail:     ".t-normal",
		},
		Post: PostSelectors{
			Author:         ".feed-shared-actor__name",
			AuthorHeadline: ".feed-shared-actor__description",
			Timestamp:      ".feed-shared-actor__sub-description",
			Content:        ".feed-shared-update-v2__description",
			MetricItem:     ".social-details-social-counts__item",
			CommentItem:    ".comments-comment-item",
			CommentAuthor:  ".comments-post-meta__name-text",
			CommentText:    ".comments-comment-item__main-content",
		},
	}
}

// LoadTable returns the default table with any overrides from the given YAML
// file merged in. An empty path returns the defaults unchanged.
func LoadTable(path string) (*Table, error) {
	table := DefaultTable()
	if path == "" {
		return table, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selector table: %w", err)
	}
	if err := yaml.Unmarshal(b, table); err != nil {
		return nil, fmt.Errorf("parse selector table: %w", err)
	}
	return table, nil
}
