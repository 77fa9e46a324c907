package controllers

import (
	"errors"
	"net/http"

	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/config"
	"github.com/thedosaspot/dosaspot/pkg/ctx"
)

const defaultMaxUpload = 5 << 20

type categoryBody struct {
	services.CategoryInput
	Password string `json:"password"`
}

type itemBody struct {
	services.ItemInput
	Password string `json:"password"`
}

type MenuController struct {
	menu *services.MenuService
}

func NewMenuController(s *services.MenuService) *MenuController {
	return &MenuController{menu: s}
}

// Index returns {"categories":[...]} with every item nested.
func (h *MenuController) Index(c *ctx.Context) {
	cats, err := h.menu.Menu(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]any{"categories": cats})
}

func (h *MenuController) ShowCategory(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	cat, err := h.menu.Category(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(cat)
}

func (h *MenuController) StoreCategory(c *ctx.Context) {
	var body categoryBody
	if !c.BindJSON(&body) {
		return
	}
	cat, err := h.menu.CreateCategory(c.Context(), body.CategoryInput, body.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(cat)
}

func (h *MenuController) UpdateCategory(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var body categoryBody
	if !c.BindJSON(&body) {
		return
	}
	cat, err := h.menu.RenameCategory(c.Context(), id, body.CategoryInput, body.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(cat)
}

// DestroyCategory removes the category and every item in it.
func (h *MenuController) DestroyCategory(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := h.menu.DeleteCategory(c.Context(), id, c.AdminPassword()); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Category deleted")
}

func (h *MenuController) ShowItem(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	it, err := h.menu.Item(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(it)
}

func (h *MenuController) StoreItem(c *ctx.Context) {
	var body itemBody
	if !c.BindJSON(&body) {
		return
	}
	it, err := h.menu.CreateItem(c.Context(), body.ItemInput, body.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(it)
}

func (h *MenuController) UpdateItem(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var body itemBody
	if !c.BindJSON(&body) {
		return
	}
	it, err := h.menu.UpdateItem(c.Context(), id, body.ItemInput, body.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(it)
}

func (h *MenuController) DestroyItem(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := h.menu.DeleteItem(c.Context(), id, c.AdminPassword()); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Item deleted")
}

// UploadImage takes a multipart form with an "image" file and a "password"
// field.
func (h *MenuController) UploadImage(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}

	limit := int64(config.Int("MAX_UPLOAD_BYTES", defaultMaxUpload))
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, limit)
	if err := c.R.ParseMultipartForm(limit); err != nil {
		c.Error(http.StatusBadRequest, "invalid upload: "+err.Error())
		return
	}
	defer c.R.MultipartForm.RemoveAll() //nolint:errcheck

	password := c.R.FormValue("password")
	if password == "" {
		password = c.AdminPassword()
	}

	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.ValidationError(map[string]string{"image": "The image field is required."})
		return
	}
	defer file.Close()

	it, err := h.menu.UploadItemImage(c.Context(), id, password, services.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if errors.Is(err, services.ErrUploadsDisabled) {
		c.Error(http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(it)
}
