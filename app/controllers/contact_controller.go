package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type ContactController struct {
	contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) *ContactController {
	return &ContactController{contacts: contacts}
}

func (cc *ContactController) Index(c *ctx.Context) {
	items, p, err := cc.contacts.List(c.Context(), c.QueryInt("page", 1))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Paginated(items, p)
}

func (cc *ContactController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}
	contact, err := cc.contacts.Get(c.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(contact)
}

func (cc *ContactController) Store(c *ctx.Context) {
	var in services.ContactInput
	if !c.BindJSON(&in) {
		return
	}
	contact, err := cc.contacts.Create(c.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(contact)
}

func (cc *ContactController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}
	var in services.ContactInput
	if !c.BindJSON(&in) {
		return
	}
	contact, err := cc.contacts.Update(c.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(contact)
}

func (cc *ContactController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}
	if err := cc.contacts.Delete(c.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Success(map[string]uint{"id": id})
}

func (cc *ContactController) Subjects(c *ctx.Context) {
	c.Success(cc.contacts.Subjects())
}
