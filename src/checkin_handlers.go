package main

import (
	"context"
	"errors"
	"fmt"
	"gotix/src/config"
	"gotix/src/core"
	"gotix/src/db"
	"gotix/src/lib"
	"gotix/src/models"
	"gotix/src/types"
	"log"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeqown/go-qrcode"
)

func checkinHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/admission", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var body types.CreateAdmissionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, event, err := core.CheckIn(body.Code, ctx.GetString("email"))
			if err != nil {
				log.Printf("Error on Ticket admission: %s\n", err.Error())
				status := http.StatusBadRequest
				switch {
				case errors.Is(err, core.ErrTicketNotFound):
					status = http.StatusNotFound
				case errors.Is(err, core.ErrAlreadyCheckedIn):
					status = http.StatusConflict
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"ticket": ticket, "event": event}})
		}).
		PUT("/admission/:id/undo", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := core.UndoCheckIn(params.ID, ctx.GetString("email"))
			if err != nil {
				status := http.StatusBadRequest
				if errors.Is(err, core.ErrTicketNotFound) {
					status = http.StatusNotFound
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		}).
		GET("/tickets/:id/code", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dbi := db.GetDb()
			var ticket models.Ticket
			if err := dbi.
				Where(&models.Ticket{ID: params.ID}).
				Preload("Order").
				First(&ticket).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": core.ErrTicketNotFound.Error()})
				return
			}
			role := ctx.GetString("role")
			if role == string(types.ROLE_CUSTOMER) && ticket.Order.CustomerID != ctx.GetUint("id") {
				ctx.Status(http.StatusForbidden)
				return
			}

			filename := fmt.Sprintf("ticketcode_%d", ticket.ID)
			rd := lib.GetRedisClient()
			var filepath string
			if rd != nil {
				cached, err := rd.Get(context.Background(), filename).Result()
				if err != nil {
					if errors.Is(err, redis.Nil) {
						log.Printf("No value for key: %s\n", filename)
					} else {
						log.Printf("Error reading from cache: %s\n", err.Error())
					}
				}
				filepath = cached
			}
			if filepath == "" {
				qrc, err := qrcode.New(ticket.QRCode)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				filepath = path.Join(config.GetTempDir(), fmt.Sprintf("%s.jpeg", filename))
				if err := qrc.Save(filepath); err != nil {
					log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				if rd != nil {
					if err := rd.SetEx(context.Background(), filename, filepath, 2*time.Hour).Err(); err != nil {
						log.Printf("Error caching value [%s]: %s\n", filepath, err.Error())
					}
				}
			}
			ctx.FileAttachment(filepath, "eticket.jpeg")
		})
	return g
}
