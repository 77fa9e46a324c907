package controllers

import (
	"strconv"

	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/pkg/ctx"
)

type bannerBody struct {
	services.BannerInput
	Password string `json:"password"`
}

type BannerController struct {
	banners *services.BannerService
}

func NewBannerController(s *services.BannerService) *BannerController {
	return &BannerController{banners: s}
}

// Index lists every banner; ?active=true narrows it to what the home page shows.
func (h *BannerController) Index(c *ctx.Context) {
	activeOnly, err := strconv.ParseBool(c.DefaultQuery("active", "false"))
	if err != nil {
		c.ValidationError(map[string]string{"active": "The active field must be true or false."})
		return
	}
	list, err := h.banners.List(c.Context(), activeOnly)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(list)
}

func (h *BannerController) Show(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	b, err := h.banners.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(b)
}

func (h *BannerController) Store(c *ctx.Context) {
	var body bannerBody
	if !c.BindJSON(&body) {
		return
	}
	b, err := h.banners.Create(c.Context(), body.BannerInput, body.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(b)
}

func (h *BannerController) Update(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var body bannerBody
	if !c.BindJSON(&body) {
		return
	}
	b, err := h.banners.Update(c.Context(), id, body.BannerInput, body.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(b)
}

func (h *BannerController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := h.banners.Delete(c.Context(), id, c.AdminPassword()); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Banner deleted")
}
