package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"Valo_Party/internal/service"
)

type PartyHandler struct {
	svc *service.PartyService
}

// CreatePartyReq 字段名沿用对外请求格式；add_tags 用 RawMessage 接住，
// 非数组的取值由 service 层归一化成空数组。
type CreatePartyReq struct {
	PartyCode   string          `json:"partyCode"`
	Description string          `json:"description"`
	ServerTag   string          `json:"serverTag"`
	AddTags     json.RawMessage `json:"add_tags"`
	Rank        string          `json:"rank"`
	Gamemode    string          `json:"gamemode"`
}

func NewPartyHandler(svc *service.PartyService) *PartyHandler {
	return &PartyHandler{svc: svc}
}

// ListParties 获取未删除的 party 列表接口
func (h *PartyHandler) ListParties(c *gin.Context) {
	list, err := h.svc.ListParties(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if len(list) == 0 {
		// 空结果是提示，不是错误
		c.JSON(http.StatusOK, gin.H{"msg": "No parties found"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateParty 创建 party 接口
func (h *PartyHandler) CreateParty(c *gin.Context) {
	var req CreatePartyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	party, err := h.svc.CreateParty(c.Request.Context(), service.CreatePartyParams{
		PartyCode:   req.PartyCode,
		Description: req.Description,
		ServerTag:   req.ServerTag,
		AddTags:     req.AddTags,
		Rank:        req.Rank,
		Gamemode:    req.Gamemode,
	})
	if err != nil {
		if errors.Is(err, service.ErrProfanity) || errors.Is(err, service.ErrCodeTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, party)
}
