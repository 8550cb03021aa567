package main

import (
	"errors"
	"gotix/src/core"
	"gotix/src/db"
	"gotix/src/models"
	"gotix/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func refundHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/refunds", func(ctx *gin.Context) {
			var body types.CreateRefundRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			customerID := ctx.GetUint("id")
			refund, err := core.RequestRefund(body.OrderID, customerID, body.Reason, ctx.GetString("email"))
			if err != nil {
				log.Printf("Error requesting refund: %s\n", err.Error())
				status := http.StatusBadRequest
				switch {
				case errors.Is(err, core.ErrOrderNotFound):
					status = http.StatusNotFound
				case errors.Is(err, core.ErrRefundAlreadyRequested):
					status = http.StatusConflict
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": refund})
		}).
		GET("/refunds", func(ctx *gin.Context) {
			var query struct {
				EventID uint `form:"event"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			role := ctx.GetString("role")
			if query.EventID > 0 {
				if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
					return
				}
				refunds, err := core.GetRefundsByEventID(query.EventID)
				if err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": refunds, "count": len(refunds)})
				return
			}
			dbi := db.GetDb()
			var refunds []models.RefundRequest
			q := dbi.Model(&models.RefundRequest{}).Order("requested_at DESC")
			if role == string(types.ROLE_CUSTOMER) {
				q = q.Where(&models.RefundRequest{CustomerID: ctx.GetUint("id")})
			}
			if err := q.Find(&refunds).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": refunds, "count": len(refunds)})
		}).
		PATCH("/refunds/:id/approve", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := core.ApproveRefund(params.ID, ctx.GetString("email")); err != nil {
				log.Printf("Error approving refund [%d]: %s\n", params.ID, err.Error())
				status := http.StatusBadRequest
				switch {
				case errors.Is(err, core.ErrRefundNotFound):
					status = http.StatusNotFound
				case errors.Is(err, core.ErrInvalidRefundTransition):
					status = http.StatusConflict
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PATCH("/refunds/:id/reject", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := core.RejectRefund(params.ID, ctx.GetString("email")); err != nil {
				log.Printf("Error rejecting refund [%d]: %s\n", params.ID, err.Error())
				status := http.StatusBadRequest
				switch {
				case errors.Is(err, core.ErrRefundNotFound):
					status = http.StatusNotFound
				case errors.Is(err, core.ErrInvalidRefundTransition):
					status = http.StatusConflict
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
