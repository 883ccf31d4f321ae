package server

import (
	"openboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UpdateNickname handles PUT /api/user/nickname
func (s *Server) UpdateNickname(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateNickname(c.UserContext(), userID, req.Nickname)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Nickname updated",
		"nickname": user.Nickname,
	})
}

// UploadAvatar handles POST /api/user/avatar
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	content, err := readFormFile(c, "avatar")
	if err != nil {
		return nil
	}

	user, err := s.userService.UploadAvatar(c.UserContext(), userID, content)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Avatar updated",
		"avatar_url": user.AvatarURL,
	})
}

// DeleteAvatar handles DELETE /api/user/avatar
func (s *Server) DeleteAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.DeleteAvatar(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Avatar removed",
		"avatar_url": user.AvatarURL,
	})
}

// DeleteAccount handles DELETE /api/user. The account and everything
// hanging off it (posts, comments, likes) is removed permanently.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.userService.DeleteAccount(c.UserContext(), userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// GetMyPosts handles GET /api/user/my-posts
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	posts, err := s.postService.MyPosts(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(unpaginatedPage(posts))
}

// GetMyComments handles GET /api/user/my-comments
func (s *Server) GetMyComments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	comments, err := s.commentService.MyComments(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	return c.JSON(comments)
}

// GetMyLikes handles GET /api/user/my-likes. The response is a bare
// array of post IDs so the client can mark like buttons without a
// second fetch.
func (s *Server) GetMyLikes(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	ids, err := s.postService.MyLikes(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if ids == nil {
		ids = []uint{}
	}

	return c.JSON(ids)
}

// GetMyLikedPosts handles GET /api/user/my-likes-posts
func (s *Server) GetMyLikedPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	posts, err := s.postService.MyLikedPosts(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(unpaginatedPage(posts))
}

// unpaginatedPage wraps a full result set in the listing envelope.
// The size is echoed as both total_count and limit, page is always 1.
func unpaginatedPage(posts []*models.Post) *models.PostPage {
	if posts == nil {
		posts = []*models.Post{}
	}
	return &models.PostPage{
		Posts:      posts,
		TotalCount: int64(len(posts)),
		Page:       1,
		Limit:      len(posts),
	}
}
