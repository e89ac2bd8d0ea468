package controllers

import (
	"net/http"
	"strings"

	"github.com/alikalatearabi/salemina-main-app-backend/models"
	"github.com/alikalatearabi/salemina-main-app-backend/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Svc *services.ProductService
}

func NewProductController(svc *services.ProductService) *ProductController {
	return &ProductController{Svc: svc}
}

// GET /api/products?brand=&cluster=&childCluster=
func (h *ProductController) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context(), services.ProductFilter{
		Brand:        c.Query("brand"),
		Cluster:      c.Query("cluster"),
		ChildCluster: c.Query("childCluster"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/products/search?q=
func (h *ProductController) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
		return
	}
	products, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/products/barcode/:barcode
func (h *ProductController) GetByBarcode(c *gin.Context) {
	product, err := h.Svc.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Barcode            string   `json:"barcode"`
	ProductName        string   `json:"productName"`
	Brand              string   `json:"brand"`
	Cluster            string   `json:"cluster"`
	ChildCluster       string   `json:"childCluster"`
	MainDataStatus     *int     `json:"mainDataStatus"`
	ProductDescription string   `json:"productDescription"`
	StateOfMatter      *int     `json:"stateOfMatter"`
	Per                *float64 `json:"per"`
	Calorie            *float64 `json:"calorie"`
	Fat                *float64 `json:"fat"`
	Sugar              *float64 `json:"sugar"`
	Salt               *float64 `json:"salt"`
	TransFattyAcids    *float64 `json:"transfattyAcids"`
	Protein            *string  `json:"protein"`
	Carbohydrate       *string  `json:"carbohydrate"`
}

// POST /api/products
func (h *ProductController) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Barcode == "" || req.ProductName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Barcode and product name are required"})
		return
	}

	product := models.Product{
		Barcode:            req.Barcode,
		ProductName:        req.ProductName,
		Brand:              req.Brand,
		Cluster:            req.Cluster,
		ChildCluster:       req.ChildCluster,
		ProductDescription: req.ProductDescription,
		StateOfMatter:      req.StateOfMatter,
		Per:                req.Per,
		Calorie:            req.Calorie,
		Fat:                req.Fat,
		Sugar:              req.Sugar,
		Salt:               req.Salt,
		TransFattyAcids:    req.TransFattyAcids,
	}
	if req.MainDataStatus != nil {
		product.MainDataStatus = *req.MainDataStatus
	}
	if req.Protein != nil {
		product.Protein = *req.Protein
	}
	if req.Carbohydrate != nil {
		product.Carbohydrate = *req.Carbohydrate
	}

	if err := h.Svc.Create(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// PUT /api/products/barcode/:barcode
func (h *ProductController) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Svc.Update(c.Request.Context(), c.Param("barcode"), func(p *models.Product) {
		if req.ProductName != "" {
			p.ProductName = req.ProductName
		}
		if req.Brand != "" {
			p.Brand = req.Brand
		}
		if req.Cluster != "" {
			p.Cluster = req.Cluster
		}
		if req.ChildCluster != "" {
			p.ChildCluster = req.ChildCluster
		}
		if req.ProductDescription != "" {
			p.ProductDescription = req.ProductDescription
		}
		if req.MainDataStatus != nil {
			p.MainDataStatus = *req.MainDataStatus
		}
		if req.StateOfMatter != nil {
			p.StateOfMatter = req.StateOfMatter
		}
		if req.Per != nil {
			p.Per = req.Per
		}
		if req.Calorie != nil {
			p.Calorie = req.Calorie
		}
		if req.Fat != nil {
			p.Fat = req.Fat
		}
		if req.Sugar != nil {
			p.Sugar = req.Sugar
		}
		if req.Salt != nil {
			p.Salt = req.Salt
		}
		if req.TransFattyAcids != nil {
			p.TransFattyAcids = req.TransFattyAcids
		}
		if req.Protein != nil {
			p.Protein = *req.Protein
		}
		if req.Carbohydrate != nil {
			p.Carbohydrate = *req.Carbohydrate
		}
	})
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/barcode/:barcode
func (h *ProductController) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("barcode")); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/products/barcode/:barcode/picture  { "image_base64": "data:…" }
func (h *ProductController) UploadPicture(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	product, err := h.Svc.AttachPicture(c.Request.Context(), c.Param("barcode"), req.ImageBase64)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": product.Picture})
}

// POST /api/products/recognize  { "image_base64": "data:…" }
func (h *ProductController) Recognize(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	products, err := h.Svc.FindByPhoto(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}
