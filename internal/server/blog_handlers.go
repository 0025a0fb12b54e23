package server

import (
	"bloglist/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBlogs handles GET /api/blogs
// @Summary List blogs
// @Tags blogs
// @Produce json
// @Success 200 {array} models.BlogWithOwner
// @Router /blogs [get]
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	blogs, err := s.blogService.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(blogs)
}

// GetBlogStats handles GET /api/blogs/stats
// @Summary Aggregate blog statistics
// @Tags blogs
// @Produce json
// @Success 200 {object} stats.Summary
// @Router /blogs/stats [get]
func (s *Server) GetBlogStats(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	summary, err := s.blogService.Stats(ctx)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// CreateBlog handles POST /api/blogs
// @Summary Create a blog
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,author=string,url=string,likes=int} true "Blog"
// @Success 201 {object} models.BlogWithOwner
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /blogs [post]
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req struct {
		Title  string `json:"title"`
		Author string `json:"author"`
		URL    string `json:"url"`
		Likes  *int   `json:"likes"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	blog, err := s.blogService.Create(ctx, service.CreateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
		Owner:  user,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(blog)
}

// UpdateBlogLikes handles PUT /api/blogs/:id
// @Summary Update the like count of a blog
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path string true "Blog ID"
// @Param request body object{likes=int} true "Likes"
// @Success 200 {object} models.BlogWithOwner
// @Failure 404 {object} object{error=string}
// @Router /blogs/{id} [put]
func (s *Server) UpdateBlogLikes(c *fiber.Ctx) error {
	var req struct {
		Likes *int `json:"likes"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	blog, err := s.blogService.UpdateLikes(ctx, c.Params("id"), req.Likes)
	if err != nil {
		return err
	}
	return c.JSON(blog)
}

// DeleteBlog handles DELETE /api/blogs/:id
// @Summary Delete a blog
// @Tags blogs
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 204
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /blogs/{id} [delete]
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.blogService.Delete(ctx, c.Params("id"), user.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
