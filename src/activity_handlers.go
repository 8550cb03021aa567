package main

import (
	"gotix/src/core"
	"gotix/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func activityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/activity", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var query struct {
				Limit int `form:"limit,default=50"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			entries, err := core.ActivityFeed(query.Limit)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": entries, "count": len(entries)})
		})
	return g
}
