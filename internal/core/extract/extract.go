package extract

import (
	"strings"

	"linkedin-insights/internal/core/fetch"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxRecentPosts = 3
	maxComments    = 5
)

// Extract interprets a rendered page into the record shape declared by the
// caller. Every expected field is attempted independently: a missing or
// unparsable field yields its zero value plus one entry in the returned error
// list, and never aborts extraction of the remaining fields. The caller
// decides what a non-empty error list means for overall status.
func Extract(page *fetch.RenderedPage, declaredType PageType, table *Table) (*Record, []FieldError) {
	doc, err := page.Document()
	if err != nil {
		return &Record{}, []FieldError{{Field: "document", Kind: FieldParseFailure, Detail: err.Error()}}
	}

	switch declaredType {
	case PageCompany:
		company, errs := extractCompany(doc, table.Company)
		return &Record{Company: company}, errs
	case PageProfile:
		profile, errs := extractProfile(doc, table.Profile)
		return &Record{Profile: profile}, errs
	case PagePost:
		post, errs := extractPost(doc, table.Post)
		return &Record{Post: post}, errs
	}
	return &Record{}, []FieldError{{Field: "declared_type", Kind: FieldParseFailure, Detail: string(declaredType)}}
}

// accumulator collects per-field errors while fields are attempted one by one.
type accumulator struct {
	errs []FieldError
}

func (a *accumulator) missing(field string) {
	a.errs = append(a.errs, FieldError{Field: field, Kind: FieldNotFound})
}

func (a *accumulator) unparsable(field, detail string) {
	a.errs = append(a.errs, FieldError{Field: field, Kind: FieldParseFailure, Detail: detail})
}

// text locates a single field by selector and returns its trimmed text.
func (a *accumulator) text(doc *goquery.Document, field, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		a.missing(field)
		return ""
	}
	v := strings.TrimSpace(sel.Text())
	if v == "" {
		a.missing(field)
	}
	return v
}

func extractCompany(doc *goquery.Document, sel CompanySelectors) (*Company, []FieldError) {
	acc := &accumulator{}
	company := &Company{}

	company.Name = acc.text(doc, "name", sel.Name)
	company.Industry = acc.text(doc, "industry", sel.Industry)
	company.About = acc.text(doc, "about", sel.About)

	// The about-us module renders label/value pairs; map labels onto the
	// typed fields and report each expected detail that never appeared.
	found := map[string]bool{}
	doc.Find(sel.DetailItem).Each(func(_ int, item *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(item.Find(sel.DetailLabel).First().Text()))
		value := strings.TrimSpace(item.Find(sel.DetailValue).First().Text())
		if label == "" || value == "" {
			return
		}
		switch {
		case strings.Contains(label, "website"):
			company.Website = value
			found["website"] = true
		case strings.Contains(label, "size"):
			company.Size = value
			found["size"] = true
		case strings.Contains(label, "headquarters"):
			company.Headquarters = value
			found["headquarters"] = true
		case strings.Contains(label, "founded"):
			company.Founded = value
			found["founded"] = true
		case strings.Contains(label, "specialties"):
			for _, s := range strings.Split(value, ",") {
				if s = strings.TrimSpace(s); s != "" {
					company.Specialties = append(company.Specialties, s)
				}
			}
			found["specialties"] = true
		}
	})
	for _, field := range []string{"website", "size", "headquarters", "founded", "specialties"} {
		if !found[field] {
			acc.missing(field)
		}
	}

	doc.Find(sel.PostItem).EachWithBreak(func(i int, item *goquery.Selection) bool {
		if i >= maxRecentPosts {
			return false
		}
		text := strings.TrimSpace(item.Find(sel.PostText).First().Text())
		if text == "" {
			return true
		}
		preview := PostPreview{Text: text}
		item.Find(sel.PostMetric).Each(func(_ int, metric *goquery.Selection) {
			count := strings.TrimSpace(metric.Text())
			// Classify on a lowered copy; the stored value keeps the
			// source's display casing ("1.2K likes").
			switch lowered := strings.ToLower(count); {
			case strings.Contains(lowered, "like"):
				preview.Likes = count
			case strings.Contains(lowered, "comment"):
				preview.Comments = count
			}
		})
		company.RecentPosts = append(company.RecentPosts, preview)
		return true
	})
	if len(company.RecentPosts) == 0 {
		acc.missing("recent_posts")
	}

	return company, acc.errs
}

func extractProfile(doc *goquery.Document, sel ProfileSelectors) (*Profile, []FieldError) {
	acc := &accumulator{}
	profile := &Profile{}

	profile.Name = acc.text(doc, "name", sel.Name)
	profile.Headline = acc.text(doc, "headline", sel.Headline)
	profile.Location = acc.text(doc, "location", sel.Location)
	profile.Connections = acc.text(doc, "connections", sel.Connections)
	profile.About = acc.text(doc, "about", sel.About)

	doc.Find(sel.ExperienceItem).Each(func(_ int, item *goquery.Selection) {
		title := strings.TrimSpace(item.Find(sel.ItemTitle).First().Text())
		if title == "" {
			return
		}
		details := item.Find(sel.ItemDetail)
		exp := Experience{Title: title}
		exp.Company = strings.TrimSpace(details.Eq(0).Text())
		if details.Length() > 1 {
			exp.Duration = strings.TrimSpace(details.Eq(1).Text())
		}
		profile.Experience = append(profile.Experience, exp)
	})
	if len(profile.Experience) == 0 {
		acc.missing("experience")
	}

	doc.Find(sel.EducationItem).Each(func(_ int, item *goquery.Selection) {
		school := strings.TrimSpace(item.Find(sel.ItemTitle).First().Text())
		if school == "" {
			return
		}
		details := item.Find(sel.ItemDetail)
		edu := Education{School: school}
		edu.Degree = strings.TrimSpace(details.Eq(0).Text())
		if details.Length() > 1 {
			edu.Years = strings.TrimSpace(details.Eq(1).Text())
		}
		profile.Education = append(profile.Education, edu)
	})
	if len(profile.Education) == 0 {
		acc.missing("education")
	}

	return profile, acc.errs
}

func extractPost(doc *goquery.Document, sel PostSelectors) (*Post, []FieldError) {
	acc := &accumulator{}
	post := &Post{}

	post.Author = acc.text(doc, "author", sel.Author)
	post.AuthorHeadline = acc.text(doc, "author_headline", sel.AuthorHeadline)
	post.Timestamp = acc.text(doc, "timestamp", sel.Timestamp)
	post.Content = acc.text(doc, "content", sel.Content)

	doc.Find(sel.MetricItem).Each(func(_ int, metric *goquery.Selection) {
		count := strings.TrimSpace(metric.Text())
		switch lowered := strings.ToLower(count); {
		case strings.Contains(lowered, "like"):
			post.Likes = count
		case strings.Contains(lowered, "repost"):
			post.Reposts = count
		case strings.Contains(lowered, "comment"):
			post.Comments = count
		}
	})
	if post.Likes == "" {
		acc.missing("likes")
	}
	if post.Comments == "" {
		acc.missing("comments")
	}
	if post.Reposts == "" {
		acc.missing("reposts")
	}

	doc.Find(sel.CommentItem).EachWithBreak(func(i int, item *goquery.Selection) bool {
		if i >= maxComments {
			return false
		}
		author := strings.TrimSpace(item.Find(sel.CommentAuthor).First().Text())
		text := strings.TrimSpace(item.Find(sel.CommentText).First().Text())
		if author == "" && text == "" {
			return true
		}
		post.CommentsList = append(post.CommentsList, Comment{Author: author, Text: text})
		return true
	})
	if len(post.CommentsList) == 0 {
		acc.missing("comments_list")
	}

	return post, acc.errs
}
