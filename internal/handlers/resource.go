package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"backoffice/internal/audit"
	"backoffice/internal/export"
	"backoffice/internal/listview"
	"backoffice/internal/middleware"
	"backoffice/internal/models"
	"backoffice/internal/store"

	"github.com/gin-gonic/gin"
)

// Resource serves one admin table: list view, CRUD, toggles and bulk actions
// over a Store.
type Resource[T store.Record] struct {
	Name  string // сегмент URL и ключ настроек страницы
	Store *store.Store[T]
	View  *listview.Engine[T]
	Audit *audit.Logger
	Prefs *listview.PageSizePrefs

	// Module is the audit module; empty disables audit entries.
	Module models.AuditModule
	// Required fields must be non-empty strings on create.
	Required []string
	// ToggleActions maps a toggle to the audit actions for on and off.
	ToggleActions map[string][2]models.AuditAction
	// UpdateAction picks a more specific action than update, e.g. archive.
	UpdateAction func(before, after T) models.AuditAction

	Columns []export.Column
	Row     func(T) []string

	// Redact hides personal data from read-only operators.
	Redact func(T) T
	// OpenToggles are flags any signed-in operator may flip, e.g. marking a
	// notification read. Other toggles need the write guard.
	OpenToggles []string

	now func() time.Time
}

type listMeta struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalPages    int `json:"totalPages"`
	FilteredCount int `json:"filteredCount"`
	Total         int `json:"total"`
	From          int `json:"from"`
	To            int `json:"to"`
}

type idsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// Register mounts read routes on rg and write routes behind write.
func (r *Resource[T]) Register(rg *gin.RouterGroup, write ...gin.HandlerFunc) {
	g := rg.Group("/" + r.Name)
	g.GET("", r.List)
	g.GET("/ids", r.SelectAll)
	g.GET("/:id", r.Get)
	if r.Module != "" {
		g.GET("/:id/history", r.History)
	}

	w := g.Group("", write...)
	w.POST("", r.Create)
	w.PUT("/:id", r.Update)
	w.DELETE("/:id", r.Delete)
	w.POST("/refresh", r.Refresh)
	w.POST("/bulk-delete", r.BulkDelete)
	g.POST("/export", r.Export)
	for _, name := range r.Store.Toggles() {
		if slices.Contains(r.OpenToggles, name) {
			g.PATCH("/:id/"+name, r.Toggle(name))
		} else {
			w.PATCH("/:id/"+name, r.Toggle(name))
		}
	}
}

func (r *Resource[T]) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// state собирает состояние списка из query; page_size запоминается для страницы.
func (r *Resource[T]) state(c *gin.Context) listview.State {
	ctx := c.Request.Context()
	def := listview.DefaultPageSize
	if r.Prefs != nil {
		def = r.Prefs.Get(ctx, r.Name)
	}
	st := listview.ParseQuery(c.Request.URL.Query(), r.View, def)
	if r.Prefs != nil && c.Query("page_size") != "" && st.PageSize != def {
		_, _ = r.Prefs.Set(ctx, r.Name, st.PageSize)
	}
	return st
}

// redacted применяет Redact для роли viewer.
func (r *Resource[T]) redacted(c *gin.Context, items []T) []T {
	user, _ := middleware.CurrentUser(c)
	if r.Redact == nil || user.Role != models.RoleViewer {
		return items
	}
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = r.Redact(it)
	}
	return out
}

func (r *Resource[T]) List(c *gin.Context) {
	st := r.state(c)
	snapshot := r.Store.State()
	res := r.View.Compute(snapshot.Items, st)

	c.JSON(http.StatusOK, gin.H{
		"data":      r.redacted(c, res.Items),
		"meta":      metaOf(res),
		"state":     st,
		"isLoading": snapshot.IsLoading,
		"error":     snapshot.Error,
	})
}

func metaOf[T any](res listview.Result[T]) listMeta {
	return listMeta{
		Page:          res.Page,
		PageSize:      res.PageSize,
		TotalPages:    res.TotalPages,
		FilteredCount: res.FilteredCount,
		Total:         res.Total,
		From:          res.From,
		To:            res.To,
	}
}

// SelectAll returns the ids of every filtered item, across all pages.
func (r *Resource[T]) SelectAll(c *gin.Context) {
	res := r.View.Compute(r.Store.Items(), r.state(c))
	sel := listview.NewSelection()
	listview.SelectAll(sel, r.View, res.Filtered)
	c.JSON(http.StatusOK, gin.H{"ids": sel.IDs(), "count": sel.Len()})
}

func (r *Resource[T]) Get(c *gin.Context) {
	item, ok := r.Store.Get(models.ID(c.Param("id")))
	if !ok {
		RespondError(c, http.StatusNotFound, r.Name+" not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": r.redacted(c, []T{item})[0]})
}

func (r *Resource[T]) Create(c *gin.Context) {
	var patch store.Patch
	if !BindJSONOrError(c, &patch) {
		return
	}
	for _, f := range r.Required {
		if s, _ := patch[f].(string); strings.TrimSpace(s) == "" {
			RespondError(c, http.StatusUnprocessableEntity, f+" is required", nil)
			return
		}
	}

	item, ok := r.Store.Add(c.Request.Context(), patch)
	if !ok {
		RespondError(c, http.StatusBadGateway, "could not create "+r.Name, nil)
		return
	}
	r.log(c, models.ActionCreate, item, nil, nil)
	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (r *Resource[T]) Update(c *gin.Context) {
	id := models.ID(c.Param("id"))
	before, ok := r.Store.Get(id)
	if !ok {
		RespondError(c, http.StatusNotFound, r.Name+" not found", nil)
		return
	}

	var patch store.Patch
	if !BindJSONOrError(c, &patch) {
		return
	}
	after, ok := r.Store.Update(c.Request.Context(), id, patch)
	if !ok {
		RespondError(c, http.StatusUnprocessableEntity, "could not update "+r.Name, nil)
		return
	}

	action := models.ActionUpdate
	if r.UpdateAction != nil {
		action = r.UpdateAction(before, after)
	}
	r.log(c, action, after, audit.Diff(before, after), nil)
	c.JSON(http.StatusOK, gin.H{"data": after})
}

func (r *Resource[T]) Delete(c *gin.Context) {
	removed, ok := r.Store.Delete(c.Request.Context(), models.ID(c.Param("id")))
	if !ok {
		RespondError(c, http.StatusNotFound, r.Name+" not found", nil)
		return
	}
	r.log(c, models.ActionDelete, removed, nil, nil)
	c.Status(http.StatusNoContent)
}

// Toggle flips the named flag of one record and logs the matching action.
func (r *Resource[T]) Toggle(name string) gin.HandlerFunc {
	return func(c *gin.Context) { r.toggle(c, name) }
}

func (r *Resource[T]) toggle(c *gin.Context, name string) {
	if !r.Store.HasToggle(name) {
		RespondError(c, http.StatusNotFound, "unknown action "+name, nil)
		return
	}
	item, ok := r.Store.Toggle(c.Request.Context(), models.ID(c.Param("id")), name)
	if !ok {
		RespondError(c, http.StatusNotFound, r.Name+" not found", nil)
		return
	}

	if actions, ok := r.ToggleActions[name]; ok {
		action := actions[1]
		if r.Store.Flag(item, name) {
			action = actions[0]
		}
		r.log(c, action, item, nil, nil)
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (r *Resource[T]) Refresh(c *gin.Context) {
	r.Store.Fetch(c.Request.Context())
	st := r.Store.State()
	status := http.StatusOK
	if st.Error != "" {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"count": len(st.Items), "error": st.Error})
}

func (r *Resource[T]) BulkDelete(c *gin.Context) {
	var req idsRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	deleted := 0
	missing := []string{}
	for _, id := range req.IDs {
		removed, ok := r.Store.Delete(c.Request.Context(), models.ID(id))
		if !ok {
			missing = append(missing, id)
			continue
		}
		deleted++
		r.log(c, models.ActionDelete, removed, nil, map[string]any{"bulk": true})
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "missing": missing})
}

// Export renders the selected rows, or the whole filtered list when no ids
// are given, as a PDF.
func (r *Resource[T]) Export(c *gin.Context) {
	if r.Row == nil {
		RespondError(c, http.StatusNotFound, "export is not available for "+r.Name, nil)
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid payload", err)
			return
		}
	}

	res := r.View.Compute(r.Store.Items(), r.state(c))
	items := res.Filtered
	if len(req.IDs) > 0 {
		sel := listview.NewSelection(req.IDs...)
		items = items[:0:0]
		for _, it := range res.Filtered {
			if sel.Has(r.View.ID(it)) {
				items = append(items, it)
			}
		}
	}

	table := export.Table{Title: strings.ToUpper(r.Name[:1]) + r.Name[1:], Columns: r.Columns}
	for _, it := range r.redacted(c, items) {
		table.Rows = append(table.Rows, r.Row(it))
	}
	out, err := export.PDF(table, r.clock())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not render PDF", err)
		return
	}

	filename := fmt.Sprintf("%s-%s.pdf", r.Name, r.clock().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

// History returns the audit entries of one record, oldest first.
func (r *Resource[T]) History(c *gin.Context) {
	id := models.ID(c.Param("id"))
	item, ok := r.Store.Get(id)
	if !ok {
		RespondError(c, http.StatusNotFound, r.Name+" not found", nil)
		return
	}

	entries := r.Audit.Entries()
	logs := make([]models.AuditLog, 0)
	for i := len(entries) - 1; i >= 0; i-- {
		if e := entries[i]; e.Module == r.Module && e.ResourceID == id {
			logs = append(logs, e)
		}
	}
	c.JSON(http.StatusOK, gin.H{"resource": item, "data": logs})
}

func (r *Resource[T]) log(c *gin.Context, action models.AuditAction, item T, changes []models.FieldChange, meta map[string]any) {
	if r.Module == "" || r.Audit == nil {
		return
	}
	user, _ := middleware.CurrentUser(c)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["request_id"] = middleware.GetRequestID(c)
	meta["ip"] = c.ClientIP()
	r.Audit.LogAction(c.Request.Context(), action, r.Module, item.RecordID(), item.DisplayName(), user.Actor(), changes, meta)
}
