package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/httpresp"
	"github.com/BruksfildServices01/food-storefront/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/food-storefront/internal/usecase/catalog"
)

type ProductUseCases struct {
	List       *ucCatalog.ListProducts
	Categories *ucCatalog.ListCategories
	ByCategory *ucCatalog.ProductsByCategory
	Get        *ucCatalog.GetProduct
	Create     *ucCatalog.CreateProduct
	Update     *ucCatalog.UpdateProduct
	Delete     *ucCatalog.DeleteProduct
	Toggle     *ucCatalog.ToggleStock
}

type ProductHandler struct {
	uc  ProductUseCases
	log *zap.Logger
}

func NewProductHandler(uc ProductUseCases, log *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// ======================================================
// STOREFRONT
// ======================================================

// List serves the storefront and back-office listings alike.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.uc.List.Execute(
		c.Request.Context(),
		c.DefaultQuery("sort_by", "all"),
		c.Query("search"),
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, "products", products)
}

func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.uc.Categories.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, "categories", categories)
}

func (h *ProductHandler) ByCategory(c *gin.Context) {
	products, err := h.uc.ByCategory.Execute(c.Request.Context(), c.Param("category"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, "products", products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"product": p})
}

// ======================================================
// BACK OFFICE
// ======================================================

func (h *ProductHandler) Create(c *gin.Context) {
	var req ucCatalog.ProductInput
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.uc.Create.Execute(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucCatalog.MsgProductAdded, gin.H{"product_id": p.ID})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ucCatalog.ProductInput
	if !bindJSON(c, &req) {
		return
	}

	if err := h.uc.Update.Execute(c.Request.Context(), middleware.Actor(c), id, req); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucCatalog.MsgProductUpdated, nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), middleware.Actor(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucCatalog.MsgProductDeleted, nil)
}

func (h *ProductHandler) ToggleStock(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	msg, err := h.uc.Toggle.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, msg, nil)
}
