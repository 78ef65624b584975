package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-platform/internal/api/dto"
	"github.com/spec-kit/social-platform/internal/auth"
	"github.com/spec-kit/social-platform/internal/domain"
	"github.com/spec-kit/social-platform/internal/service"
	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

// PostsHandler exposes post CRUD endpoints.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// Create handles POST /api/posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	var req dto.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationFailed("invalid payload")
	}

	userID := req.UserID
	if userID == "" {
		userID = auth.ContextFromRequest(c).UserID
	}

	post, err := h.posts.Create(c.UserContext(), service.PostCreateInput{
		Content: req.Content,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(toPostDto(post))
}

// List handles GET /api/posts.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	posts, total, err := h.posts.List(c.UserContext(), c.Queries())
	if err != nil {
		return err
	}

	items := make([]dto.PostDto, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostDto(post))
	}

	return c.JSON(fiber.Map{
		"data":  items,
		"total": total,
	})
}

// Get handles GET /api/posts/:postId.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.posts.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(toPostDto(post))
}

// Update handles PUT /api/posts/:postId.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req dto.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationFailed("invalid payload")
	}

	post, err := h.posts.Update(c.UserContext(), id, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(toPostDto(post))
}

// Delete handles DELETE /api/posts/:postId.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parsePostID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("postId"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationFailed("Provide valid post id")
	}
	return id, nil
}

func toPostDto(post *domain.Post) dto.PostDto {
	return dto.PostDto{
		ID:        post.ID,
		Content:   post.Content,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
