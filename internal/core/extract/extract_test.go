package extract

import (
	"testing"

	"linkedin-insights/internal/core/fetch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyPageHTML = `<html><body>
<h1 class="org-top-card-summary__title"> Acme Corp </h1>
<div class="org-top-card-summary-info-list__info-item">Software Development</div>
<dl>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Website</dt>
    <dd class="org-about-company-module__about-us-text">https://acme.example</dd>
  </div>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Company size</dt>
    <dd class="org-about-company-module__about-us-text">201-500 employees</dd>
  </div>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Headquarters</dt>
    <dd class="org-about-company-module__about-us-text">Rotterdam, NL</dd>
  </div>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Founded</dt>
    <dd class="org-about-company-module__about-us-text">2011</dd>
  </div>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Specialties</dt>
    <dd class="org-about-company-module__about-us-text">anvils, rockets, tunnels</dd>
  </div>
</dl>
<p class="org-about-us-organization-description__text">We make everything.</p>
<div class="occludable-update">
  <div class="feed-shared-update-v2__description">Shipping v2 today</div>
  <span class="social-details-social-counts__item">42 likes</span>
  <span class="social-details-social-counts__item">7 comments</span>
</div>
<div class="occludable-update">
  <div class="feed-shared-update-v2__description">We are hiring</div>
  <span class="social-details-social-counts__item">1.2K likes</span>
</div>
</body></html>`

func renderedPage(html string) *fetch.RenderedPage {
	return &fetch.RenderedPage{URL: "https://www.linkedin.com/company/acme", HTML: html}
}

func TestExtractCompanyComplete(t *testing.T) {
	record, errs := Extract(renderedPage(companyPageHTML), PageCompany, DefaultTable())
	require.NotNil(t, record.Company)
	assert.Empty(t, errs)

	company := record.Company
	assert.Equal(t, "Acme Corp", company.Name)
	assert.Equal(t, "Software Development", company.Industry)
	assert.Equal(t, "https://acme.example", company.Website)
	assert.Equal(t, "201-500 employees", company.Size)
	assert.Equal(t, "Rotterdam, NL", company.Headquarters)
	assert.Equal(t, "2011", company.Founded)
	assert.Equal(t, []string{"anvils", "rockets", "tunnels"}, company.Specialties)
	assert.Equal(t, "We make everything.", company.About)

	require.Len(t, company.RecentPosts, 2)
	assert.Equal(t, "Shipping v2 today", company.RecentPosts[0].Text)
	assert.Equal(t, "42 likes", company.RecentPosts[0].Likes)
	assert.Equal(t, "7 comments", company.RecentPosts[0].Comments)
	assert.Equal(t, "1.2K likes", company.RecentPosts[1].Likes)
	assert.Empty(t, company.RecentPosts[1].Comments)
}

func TestExtractCompanyMissingAbout(t *testing.T) {
	html := `<html><body>
<h1 class="org-top-card-summary__title">Acme Corp</h1>
<div class="org-top-card-summary-info-list__info-item">Software Development</div>
<dl>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Website</dt>
    <dd class="org-about-company-module__about-us-text">https://acme.example</dd>
  </div>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Company size</dt>
    <dd class="org-about-company-module__about-us-text">201-500 employees</dd>
  </div>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Headquarters</dt>
    <dd class="org-about-company-module__about-us-text">Rotterdam, NL</dd>
  </div>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Founded</dt>
    <dd class="org-about-company-module__about-us-text">2011</dd>
  </div>
  <div class="org-about-company-module__about-us-item">
    <dt class="org-about-company-module__about-us-label">Specialties</dt>
    <dd class="org-about-company-module__about-us-text">anvils</dd>
  </div>
</dl>
<div class="occludable-update">
  <div class="feed-shared-update-v2__description">Shipping v2 today</div>
</div>
</body></html>`

	record, errs := Extract(renderedPage(html), PageCompany, DefaultTable())
	require.NotNil(t, record.Company)

	// The one omission is observable; everything else is still populated.
	require.Len(t, errs, 1)
	assert.Equal(t, "about", errs[0].Field)
	assert.Equal(t, FieldNotFound, errs[0].Kind)
	assert.Empty(t, record.Company.About)
	assert.Equal(t, "Acme Corp", record.Company.Name)
	assert.Equal(t, "https://acme.example", record.Company.Website)
}

func TestExtractCompanyEmptyPage(t *testing.T) {
	record, errs := Extract(renderedPage("<html><body></body></html>"), PageCompany, DefaultTable())
	require.NotNil(t, record.Company)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
		assert.Equal(t, FieldNotFound, e.Kind)
	}
	for _, want := range []string{"name", "industry", "website", "size", "headquarters", "founded", "specialties", "about", "recent_posts"} {
		assert.True(t, fields[want], "expected a field error for %s", want)
	}
}

const profilePageHTML = `<html><body>
<div class="pv-text-details__left-panel">
  <h1 class="text-heading-xlarge">Jane Doe</h1>
  <div class="text-body-medium">Platform Engineer</div>
  <span class="text-body-small">Rotterdam, Netherlands</span>
</div>
<div class="pv-text-details__right-panel">
  <span class="text-body-small">500+ connections</span>
</div>
<div id="about"></div>
<div><span>I build data pipelines.</span></div>
<section id="experience"></section>
<div>
  <ul>
    <li><span class="t-bold">Platform Engineer</span><span class="t-normal">Acme Corp</span><span class="t-normal">3 yrs</span></li>
    <li><span class="t-bold">SRE</span><span class="t-normal">Initech</span></li>
  </ul>
</div>
<section id="education"></section>
<div>
  <ul>
    <li><span class="t-bold">TU Delft</span><span class="t-normal">MSc Computer Science</span><span class="t-normal">2013-2015</span></li>
  </ul>
</div>
</body></html>`

func TestExtractProfileComplete(t *testing.T) {
	record, errs := Extract(renderedPage(profilePageHTML), PageProfile, DefaultTable())
	require.NotNil(t, record.Profile)
	assert.Empty(t, errs)

	profile := record.Profile
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "Platform Engineer", profile.Headline)
	assert.Equal(t, "Rotterdam, Netherlands", profile.Location)
	assert.Equal(t, "500+ connections", profile.Connections)
	assert.Equal(t, "I build data pipelines.", profile.About)

	require.Len(t, profile.Experience, 2)
	assert.Equal(t, Experience{Title: "Platform Engineer", Company: "Acme Corp", Duration: "3 yrs"}, profile.Experience[0])
	assert.Equal(t, Experience{Title: "SRE", Company: "Initech"}, profile.Experience[1])

	require.Len(t, profile.Education, 1)
	assert.Equal(t, Education{School: "TU Delft", Degree: "MSc Computer Science", Years: "2013-2015"}, profile.Education[0])
}

func TestExtractProfileMissingSections(t *testing.T) {
	html := `<html><body>
<h1 class="text-heading-xlarge">Jane Doe</h1>
<div class="text-body-medium">Platform Engineer</div>
</body></html>`

	record, errs := Extract(renderedPage(html), PageProfile, DefaultTable())
	require.NotNil(t, record.Profile)
	assert.Equal(t, "Jane Doe", record.Profile.Name)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"location", "connections", "about", "experience", "education"} {
		assert.True(t, fields[want], "expected a field error for %s", want)
	}
	assert.False(t, fields["name"])
	assert.False(t, fields["headline"])
}

const postPageHTML = `<html><body>
<span class="feed-shared-actor__name">Jane Doe</span>
<span class="feed-shared-actor__description">Platform Engineer at Acme</span>
<span class="feed-shared-actor__sub-description">2d</span>
<div class="feed-shared-update-v2__description">We shipped the thing.</div>
<span class="social-details-social-counts__item">1.2K likes</span>
<span class="social-details-social-counts__item">87 comments</span>
<span class="social-details-social-counts__item">15 reposts</span>
<div class="comments-comment-item">
  <span class="comments-post-meta__name-text">John Roe</span>
  <div class="comments-comment-item__main-content">Congrats!</div>
</div>
<div class="comments-comment-item">
  <span class="comments-post-meta__name-text">Ann Poe</span>
  <div class="comments-comment-item__main-content">Well done.</div>
</div>
</body></html>`

func TestExtractPostComplete(t *testing.T) {
	record, errs := Extract(renderedPage(postPageHTML), PagePost, DefaultTable())
	require.NotNil(t, record.Post)
	assert.Empty(t, errs)

	post := record.Post
	assert.Equal(t, "Jane Doe", post.Author)
	assert.Equal(t, "Platform Engineer at Acme", post.AuthorHeadline)
	assert.Equal(t, "2d", post.Timestamp)
	assert.Equal(t, "We shipped the thing.", post.Content)
	// Counters stay display strings with the source's casing; "1.2K" is
	// never parsed or normalized here.
	assert.Equal(t, "1.2K likes", post.Likes)
	assert.Equal(t, "87 comments", post.Comments)
	assert.Equal(t, "15 reposts", post.Reposts)

	require.Len(t, post.CommentsList, 2)
	assert.Equal(t, Comment{Author: "John Roe", Text: "Congrats!"}, post.CommentsList[0])
}

func TestExtractPostMissingMetrics(t *testing.T) {
	html := `<html><body>
<span class="feed-shared-actor__name">Jane Doe</span>
<span class="feed-shared-actor__description">Platform Engineer at Acme</span>
<span class="feed-shared-actor__sub-description">2d</span>
<div class="feed-shared-update-v2__description">We shipped the thing.</div>
<span class="social-details-social-counts__item">1.2K likes</span>
</body></html>`

	record, errs := Extract(renderedPage(html), PagePost, DefaultTable())
	require.NotNil(t, record.Post)
	assert.Equal(t, "1.2K likes", record.Post.Likes)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["comments"])
	assert.True(t, fields["reposts"])
	assert.True(t, fields["comments_list"])
	assert.False(t, fields["likes"])
}

func TestExtractRecentPostsCapped(t *testing.T) {
	html := `<html><body><h1 class="org-top-card-summary__title">Acme</h1>`
	for i := 0; i < 6; i++ {
		html += `<div class="occludable-update"><div class="feed-shared-update-v2__description">post</div></div>`
	}
	html += `</body></html>`

	record, _ := Extract(renderedPage(html), PageCompany, DefaultTable())
	require.NotNil(t, record.Company)
	assert.Len(t, record.Company.RecentPosts, 3)
}
