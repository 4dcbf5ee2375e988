package router

import (
	"github.com/gin-gonic/gin"

	"Valo_Party/internal/handler"
	"Valo_Party/internal/middleware"
)

func InitRouter(party *handler.PartyHandler, posts *handler.PostsHandler, events *handler.EventsHandler, allowOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowOrigins))

	// party 相关接口
	partyGroup := r.Group("/api/parties")
	{
		partyGroup.GET("", party.ListParties)
		partyGroup.POST("", party.CreateParty)
	}

	// 只读的帖子信息流
	r.GET("/api/posts", posts.ListPosts)

	// 生命周期事件推送（SSE）
	r.GET("/api/events", events.Stream)

	return r
}
