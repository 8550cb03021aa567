package main

import (
	"gotix/src/core"
	"gotix/src/db"
	"gotix/src/models"
	"gotix/src/types"
	"gotix/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			var query struct {
				Featured bool `form:"featured"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dbi := db.GetDb()
			var events []models.Event
			q := dbi.Model(&models.Event{}).Order("date_time")
			if query.Featured {
				q = q.Where(&models.Event{Featured: true})
			}
			if err := q.Find(&events).Error; err != nil {
				log.Printf("Error retrieving Events: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dbi := db.GetDb()
			var event models.Event
			if err := dbi.
				Where(&models.Event{ID: params.ID}).
				Preload("TicketTypes").
				First(&event).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		POST("/events", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			organizerID := ctx.GetUint("id")
			id, err := utils.CreateNewEvent(&body, organizerID)
			if err != nil {
				log.Printf("error creating event: %s", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": id})
		}).
		PATCH("/events/:id/publish", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := utils.PublishEvent(params.ID); err != nil {
				log.Printf("error publishing event: %s", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PATCH("/events/:id/admission", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := utils.OpenAdmission(params.ID); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PATCH("/events/:id/feature", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ADMIN) {
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body struct {
				Featured bool `json:"featured"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := utils.SetEventFeatured(params.ID, body.Featured); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/ticket-types", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var body types.CreateTicketTypeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			id, err := utils.CreateNewTicketType(&body)
			if err != nil {
				log.Printf("error creating ticket type: %s", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": id})
		}).
		GET("/events/:id/ticket-types", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dbi := db.GetDb()
			var ticketTypes []models.TicketType
			ss := dbi.Session(&gorm.Session{PrepareStmt: true})
			if err := ss.
				Where(&models.TicketType{EventID: params.ID}).
				Order("id").
				Find(&ticketTypes).
				Error; err != nil {
				log.Printf("Error retrieving TicketTypes for Event [%d]: %s\n", params.ID, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticketTypes})
		}).
		GET("/events/:id/tickets", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			tickets, err := core.GetTicketsByEventID(params.ID)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tickets, "count": len(tickets)})
		}).
		GET("/events/:id/attendees", func(ctx *gin.Context) {
			if !requireRole(ctx, types.ROLE_ORGANIZER, types.ROLE_ADMIN) {
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			rows, err := core.GetAttendeeRows(params.ID)
			if err != nil {
				log.Printf("Error building attendee rows for Event [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rows, "count": len(rows)})
		})
	return g
}
