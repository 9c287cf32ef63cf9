package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-cv-backend/config"
	"go-cv-backend/internal/delivery/http/middleware"
	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/apperror"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CollectionHandler struct {
	collectionUC domain.CollectionUsecase
	config       *config.Config
}

func NewCollectionHandler(protected, admin *gin.RouterGroup, collectionUC domain.CollectionUsecase, cfg *config.Config) {
	handler := &CollectionHandler{collectionUC: collectionUC, config: cfg}

	collections := protected.Group("/collection")
	{
		collections.GET("", handler.List)
		collections.GET("/by-ids/:ids", handler.GetByIDs)
		collections.GET("/:id", handler.Get)
		collections.GET("/:id/export", handler.Export)
	}

	adminCollections := admin.Group("/collection")
	{
		adminCollections.POST("", handler.Create)
		adminCollections.POST("/clone", handler.Clone)
		adminCollections.PUT("/bulk/:ids", handler.AddProfiles)
		adminCollections.PUT("/:id", handler.Update)
		adminCollections.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Create a collection
// @Tags         collection
// @Accept       json
// @Produce      json
// @Param        collection  body      domain.CollectionInput  true  "Name and relation sets"
// @Success      201         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      409         {object}  response.Response
// @Router       /collection [post]
// @Security     BearerAuth
func (h *CollectionHandler) Create(c *gin.Context) {
	var req domain.CollectionInput
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.collectionUC.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Collection créée", created)
}

// List godoc
// @Summary      List collections
// @Tags         collection
// @Produce      json
// @Param        search        query     string  false  "Name fragment"
// @Param        nom           query     string  false  "Second collection name fragment (AND-ed with search)"
// @Param        membre        query     string  false  "User id that must own a member profile"
// @Param        user_count    query     int     false  "Minimum member count"
// @Param        dateCreation  query     string  false  "Creation day (YYYY-MM-DD)"
// @Param        page          query     int     false  "Page (default 1)"
// @Param        limit         query     int     false  "Page size (0 = all)"
// @Success      200           {object}  response.Response{data=domain.CollectionPage}
// @Failure      400           {object}  response.Response
// @Router       /collection [get]
// @Security     BearerAuth
func (h *CollectionHandler) List(c *gin.Context) {
	filter, err := parseCollectionFilter(c)
	if err != nil {
		c.Error(err)
		return
	}
	page, err := h.collectionUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	if page.Pagination != nil {
		h.linkPages(c, page.Pagination)
	}
	response.Success(c, http.StatusOK, "Collections", page)
}

func parseCollectionFilter(c *gin.Context) (domain.CollectionFilter, error) {
	f := domain.CollectionFilter{
		Search: c.Query("search"),
		Nom:    c.Query("nom"),
		Membre: c.Query("membre"),
		Page:   1,
	}
	var err error
	if v := c.Query("page"); v != "" {
		if f.Page, err = strconv.Atoi(v); err != nil {
			return f, apperror.BadRequest("page doit être un entier")
		}
	}
	if v := c.Query("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil || f.Limit < 0 {
			return f, apperror.BadRequest("limit doit être un entier positif")
		}
	}
	if v := c.Query("user_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, apperror.BadRequest("user_count doit être un entier positif")
		}
		f.UserCount = &n
	}
	if v := c.Query("dateCreation"); v != "" {
		day, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return f, apperror.BadRequest("dateCreation doit être au format YYYY-MM-DD")
		}
		f.DateCreation = &day
	}
	return f, nil
}

// linkPages fills next/previous with absolute URLs of the neighbouring pages.
func (h *CollectionHandler) linkPages(c *gin.Context, p *domain.Pagination) {
	base := h.config.APIBaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	pageURL := func(page int) *string {
		q := c.Request.URL.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(p.Limit))
		u := fmt.Sprintf("%s%s?%s", base, c.Request.URL.Path, q.Encode())
		return &u
	}
	if p.HasNext() {
		p.Next = pageURL(p.CurrentPage + 1)
	}
	if p.HasPrevious() {
		p.Previous = pageURL(p.CurrentPage - 1)
	}
}

// Get godoc
// @Summary      Get a collection
// @Tags         collection
// @Produce      json
// @Param        id        path      string  true   "Collection ID"
// @Param        populate  query     bool    false  "Expand relations (default true)"
// @Success      200       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /collection/{id} [get]
// @Security     BearerAuth
func (h *CollectionHandler) Get(c *gin.Context) {
	populate := true
	if v := c.Query("populate"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.Error(apperror.BadRequest("populate doit être true ou false"))
			return
		}
		populate = parsed
	}
	detail, err := h.collectionUC.Get(c.Request.Context(), c.Param("id"), populate)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Collection", detail)
}

// GetByIDs godoc
// @Summary      Get several collections
// @Tags         collection
// @Produce      json
// @Param        ids  path      string  true  "Comma-separated collection IDs"
// @Success      200  {object}  response.Response{data=[]domain.CollectionSummary}
// @Router       /collection/by-ids/{ids} [get]
// @Security     BearerAuth
func (h *CollectionHandler) GetByIDs(c *gin.Context) {
	rows, err := h.collectionUC.GetByIDs(c.Request.Context(), splitIDs(c.Param("ids")))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Collections", rows)
}

// Update godoc
// @Summary      Update a collection
// @Description  Renames the collection and replaces its three relation sets.
// @Tags         collection
// @Accept       json
// @Produce      json
// @Param        id          path      string                  true  "Collection ID"
// @Param        collection  body      domain.CollectionInput  true  "Name and relation sets"
// @Success      200         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Failure      409         {object}  response.Response
// @Router       /collection/{id} [put]
// @Security     BearerAuth
func (h *CollectionHandler) Update(c *gin.Context) {
	var req domain.CollectionInput
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.collectionUC.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Collection mise à jour", updated)
}

// Delete godoc
// @Summary      Delete a collection
// @Tags         collection
// @Produce      json
// @Param        id   path      string  true  "Collection ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /collection/{id} [delete]
// @Security     BearerAuth
func (h *CollectionHandler) Delete(c *gin.Context) {
	if err := h.collectionUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Collection supprimée", nil)
}

// Clone godoc
// @Summary      Clone a collection
// @Description  The copy is named "<baseName> -copie(N)" where N is the highest existing suffix plus one.
// @Tags         collection
// @Accept       json
// @Produce      json
// @Param        clone  body      domain.CloneInput  true  "Original and base name"
// @Success      201    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /collection/clone [post]
// @Security     BearerAuth
func (h *CollectionHandler) Clone(c *gin.Context) {
	var req domain.CloneInput
	if !bindJSON(c, &req) {
		return
	}
	clone, err := h.collectionUC.Clone(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Collection clonée", clone)
}

// AddProfiles godoc
// @Summary      Attach profiles to several collections
// @Tags         collection
// @Accept       json
// @Produce      json
// @Param        ids      path      string                  true  "Comma-separated collection IDs"
// @Param        request  body      domain.BulkAttachInput  true  "Profiles"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /collection/bulk/{ids} [put]
// @Security     BearerAuth
func (h *CollectionHandler) AddProfiles(c *gin.Context) {
	var req domain.BulkAttachInput
	if !bindJSON(c, &req) {
		return
	}
	inserted, err := h.collectionUC.AddProfiles(c.Request.Context(), splitIDs(c.Param("ids")), req.ProfileIDs)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profils ajoutés", gin.H{"inserted": inserted})
}

// Export godoc
// @Summary      Export collection members
// @Tags         collection
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "Collection ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /collection/{id}/export [get]
// @Security     BearerAuth
func (h *CollectionHandler) Export(c *gin.Context) {
	data, filename, err := h.collectionUC.ExportMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	disposition := fmt.Sprintf(`attachment; filename="export.xlsx"; filename*=UTF-8''%s`, url.PathEscape(filename))
	c.DataFromReader(http.StatusOK, int64(len(data)), xlsxContentType, bytes.NewReader(data), map[string]string{
		"Content-Disposition": disposition,
	})
}
