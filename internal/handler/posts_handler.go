package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Valo_Party/internal/service"
)

type PostsHandler struct {
	svc *service.PostsService
}

func NewPostsHandler(svc *service.PostsService) *PostsHandler {
	return &PostsHandler{svc: svc}
}

// ListPosts 只读的帖子信息流接口：抓取失败也返回 200 + 空列表
func (h *PostsHandler) ListPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListPosts(c.Request.Context()))
}
