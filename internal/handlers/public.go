package handlers

import (
	"bytes"
	"net/http"

	"backoffice/internal/listview"
	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
)

// PublicJobs feeds the careers page: active postings only.
func (a *API) PublicJobs(c *gin.Context) {
	r := a.Jobs
	st := listview.ParseQuery(c.Request.URL.Query(), r.View, listview.DefaultPageSize)
	st = st.WithFilter("status", "active").WithPage(st.Page)

	res := r.View.Compute(r.Store.Items(), st)
	c.JSON(http.StatusOK, gin.H{"data": res.Items, "meta": metaOf(res)})
}

// PublicBlog lists published posts, newest first unless another sort is asked.
func (a *API) PublicBlog(c *gin.Context) {
	r := a.BlogPosts
	st := listview.ParseQuery(c.Request.URL.Query(), r.View, listview.DefaultPageSize)
	page := st.Page
	st = st.WithFilter("status", "published")
	if st.SortBy == "" {
		st = st.WithSort("published_at", listview.Desc)
	}
	st = st.WithPage(page)

	res := r.View.Compute(r.Store.Items(), st)
	c.JSON(http.StatusOK, gin.H{"data": res.Items, "meta": metaOf(res)})
}

func (a *API) PublicBlogPost(c *gin.Context) {
	slug := c.Param("slug")
	var post models.BlogPost
	found := false
	for _, p := range a.BlogPosts.Store.Items() {
		if p.Slug == slug && bool(p.IsPublished) {
			post, found = p, true
			break
		}
	}
	if !found {
		RespondError(c, http.StatusNotFound, "post not found", nil)
		return
	}

	var html bytes.Buffer
	if err := a.markdown.Convert([]byte(post.Content), &html); err != nil {
		RespondError(c, http.StatusInternalServerError, "could not render post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post, "html": html.String()})
}
