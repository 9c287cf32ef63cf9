package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/internal/domain"
)

// TaxonomyHandler serves the CRUD routes of one taxonomy kind.
type TaxonomyHandler struct {
	kind       domain.TaxonomyKind
	taxonomyUC domain.TaxonomyUsecase
}

// NewTaxonomyHandlers mounts /<kind> for every taxonomy. Postes get their
// relation-aware create, update and read routes.
func NewTaxonomyHandlers(public, admin *gin.RouterGroup, taxonomyUC domain.TaxonomyUsecase, posteUC domain.PosteUsecase) {
	for _, kind := range domain.TaxonomyKinds {
		handler := &TaxonomyHandler{kind: kind, taxonomyUC: taxonomyUC}
		path := "/" + string(kind)

		pub := public.Group(path)
		adm := admin.Group(path)

		pub.GET("", handler.List)
		adm.DELETE("/:id", handler.Delete)

		switch kind {
		case domain.KindPoste:
			poste := &PosteHandler{posteUC: posteUC}
			pub.GET("/:id", poste.Get)
			adm.POST("", poste.Create)
			adm.PUT("/:id", poste.Update)
		case domain.KindGrade:
			pub.GET("/names", handler.Names)
			fallthrough
		default:
			pub.GET("/:id", handler.Get)
			adm.POST("", handler.Create)
			adm.PUT("/:id", handler.Update)
		}
	}
}

// List godoc
// @Summary      List taxonomy entries
// @Tags         taxonomy
// @Produce      json
// @Param        kind    path      string  true   "grade, metier, poste, competence, expertise-metier, expertise-technique or expertise-logicielle"
// @Param        search  query     string  false  "Name fragment (FR or EN)"
// @Success      200     {object}  response.Response{data=[]domain.Taxonomy}
// @Router       /{kind} [get]
func (h *TaxonomyHandler) List(c *gin.Context) {
	items, err := h.taxonomyUC.List(c.Request.Context(), h.kind, c.Query("search"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Liste", items)
}

// Get godoc
// @Summary      Get a taxonomy entry
// @Tags         taxonomy
// @Produce      json
// @Param        kind  path      string  true  "Taxonomy kind"
// @Param        id    path      string  true  "ID"
// @Success      200   {object}  response.Response{data=domain.Taxonomy}
// @Failure      404   {object}  response.Response
// @Router       /{kind}/{id} [get]
func (h *TaxonomyHandler) Get(c *gin.Context) {
	item, err := h.taxonomyUC.Get(c.Request.Context(), h.kind, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Détail", item)
}

// Create godoc
// @Summary      Create a taxonomy entry
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        kind   path      string                true  "Taxonomy kind"
// @Param        entry  body      domain.TaxonomyInput  true  "Names"
// @Success      201    {object}  response.Response{data=domain.Taxonomy}
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /{kind} [post]
// @Security     BearerAuth
func (h *TaxonomyHandler) Create(c *gin.Context) {
	var req domain.TaxonomyInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.taxonomyUC.Create(c.Request.Context(), h.kind, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Créé", item)
}

// Update godoc
// @Summary      Rename a taxonomy entry
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        kind   path      string                true  "Taxonomy kind"
// @Param        id     path      string                true  "ID"
// @Param        entry  body      domain.TaxonomyInput  true  "Names"
// @Success      200    {object}  response.Response{data=domain.Taxonomy}
// @Failure      404    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /{kind}/{id} [put]
// @Security     BearerAuth
func (h *TaxonomyHandler) Update(c *gin.Context) {
	var req domain.TaxonomyInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.taxonomyUC.Update(c.Request.Context(), h.kind, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mis à jour", item)
}

// Delete godoc
// @Summary      Delete a taxonomy entry
// @Description  Grades and métiers are removed; other kinds are deactivated.
// @Tags         taxonomy
// @Produce      json
// @Param        kind  path      string  true  "Taxonomy kind"
// @Param        id    path      string  true  "ID"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /{kind}/{id} [delete]
// @Security     BearerAuth
func (h *TaxonomyHandler) Delete(c *gin.Context) {
	if err := h.taxonomyUC.Delete(c.Request.Context(), h.kind, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Supprimé", nil)
}

// Names godoc
// @Summary      Grade names
// @Tags         taxonomy
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.NamePair}
// @Router       /grade/names [get]
func (h *TaxonomyHandler) Names(c *gin.Context) {
	names, err := h.taxonomyUC.GradeNames(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Noms des grades", names)
}

type PosteHandler struct {
	posteUC domain.PosteUsecase
}

// Create godoc
// @Summary      Create a poste with its skills
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        poste  body      domain.PosteInput  true  "Poste"
// @Success      201    {object}  response.Response{data=domain.Poste}
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /poste [post]
// @Security     BearerAuth
func (h *PosteHandler) Create(c *gin.Context) {
	var req domain.PosteInput
	if !bindJSON(c, &req) {
		return
	}
	poste, err := h.posteUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Poste créé", poste)
}

// Update godoc
// @Summary      Update a poste and replace its skills
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        id     path      string             true  "Poste ID"
// @Param        poste  body      domain.PosteInput  true  "Poste"
// @Success      200    {object}  response.Response{data=domain.Poste}
// @Failure      404    {object}  response.Response
// @Router       /poste/{id} [put]
// @Security     BearerAuth
func (h *PosteHandler) Update(c *gin.Context) {
	var req domain.PosteInput
	if !bindJSON(c, &req) {
		return
	}
	poste, err := h.posteUC.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Poste mis à jour", poste)
}

// Get godoc
// @Summary      Get a poste with its skill ids
// @Tags         taxonomy
// @Produce      json
// @Param        id   path      string  true  "Poste ID"
// @Success      200  {object}  response.Response{data=domain.Poste}
// @Failure      404  {object}  response.Response
// @Router       /poste/{id} [get]
func (h *PosteHandler) Get(c *gin.Context) {
	poste, err := h.posteUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Poste", poste)
}
