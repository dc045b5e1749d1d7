package entity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes uniform CRUD endpoints for pages, posts and users.
type Handler struct {
	pages *Collection
	posts *Collection
	users *Collection
}

func NewHandler(pages, posts, users *Collection) *Handler {
	return &Handler{pages: pages, posts: posts, users: users}
}

func crudError(c *fiber.Ctx, err error, kind string) error {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": kind + " with this ID already exists"})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": kind + " not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
}

// Pages

func (h *Handler) HandleCreatePage(c *fiber.Ctx) error {
	var p Page
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	if p.PageID == "" || p.Name == "" || p.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "page_id, name and url are required"})
	}
	if err := h.pages.Create(c.Context(), p.PageID, p); err != nil {
		return crudError(c, err, "page")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "page": p})
}

func (h *Handler) HandleGetPage(c *fiber.Ctx) error {
	var p Page
	if err := h.pages.Get(c.Context(), c.Params("pageId"), &p); err != nil {
		return crudError(c, err, "page")
	}
	return c.JSON(fiber.Map{"success": true, "page": p})
}

func (h *Handler) HandleUpdatePage(c *fiber.Ctx) error {
	if err := h.pages.Update(c.Context(), c.Params("pageId"), c.Body()); err != nil {
		return crudError(c, err, "page")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) HandleDeletePage(c *fiber.Ctx) error {
	if err := h.pages.Delete(c.Context(), c.Params("pageId")); err != nil {
		return crudError(c, err, "page")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) HandleListPages(c *fiber.Ctx) error {
	docs, err := h.pages.List(c.Context(), c.QueryInt("skip", 0), c.QueryInt("limit", 10))
	if err != nil {
		return crudError(c, err, "page")
	}
	return c.JSON(fiber.Map{"success": true, "pages": docs})
}

// Posts

func (h *Handler) HandleCreatePost(c *fiber.Ctx) error {
	var p Post
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	if p.PostID == "" || p.PageID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "post_id and page_id are required"})
	}
	if err := h.posts.Create(c.Context(), p.PostID, p); err != nil {
		return crudError(c, err, "post")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "post": p})
}

func (h *Handler) HandleGetPost(c *fiber.Ctx) error {
	var p Post
	if err := h.posts.Get(c.Context(), c.Params("postId"), &p); err != nil {
		return crudError(c, err, "post")
	}
	return c.JSON(fiber.Map{"success": true, "post": p})
}

func (h *Handler) HandleUpdatePost(c *fiber.Ctx) error {
	if err := h.posts.Update(c.Context(), c.Params("postId"), c.Body()); err != nil {
		return crudError(c, err, "post")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) HandleDeletePost(c *fiber.Ctx) error {
	if err := h.posts.Delete(c.Context(), c.Params("postId")); err != nil {
		return crudError(c, err, "post")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) HandleListPosts(c *fiber.Ctx) error {
	docs, err := h.posts.List(c.Context(), c.QueryInt("skip", 0), c.QueryInt("limit", 10))
	if err != nil {
		return crudError(c, err, "post")
	}
	return c.JSON(fiber.Map{"success": true, "posts": docs})
}

// Users

func (h *Handler) HandleCreateUser(c *fiber.Ctx) error {
	var u User
	if err := c.BodyParser(&u); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	if u.LinkedInID == "" || u.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "linkedin_id and name are required"})
	}
	if err := h.users.Create(c.Context(), u.LinkedInID, u); err != nil {
		return crudError(c, err, "user")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "user": u})
}

func (h *Handler) HandleGetUser(c *fiber.Ctx) error {
	var u User
	if err := h.users.Get(c.Context(), c.Params("linkedinId"), &u); err != nil {
		return crudError(c, err, "user")
	}
	return c.JSON(fiber.Map{"success": true, "user": u})
}

func (h *Handler) HandleUpdateUser(c *fiber.Ctx) error {
	if err := h.users.Update(c.Context(), c.Params("linkedinId"), c.Body()); err != nil {
		return crudError(c, err, "user")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Context(), c.Params("linkedinId")); err != nil {
		return crudError(c, err, "user")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) HandleListUsers(c *fiber.Ctx) error {
	docs, err := h.users.List(c.Context(), c.QueryInt("skip", 0), c.QueryInt("limit", 10))
	if err != nil {
		return crudError(c, err, "user")
	}
	return c.JSON(fiber.Map{"success": true, "users": docs})
}
