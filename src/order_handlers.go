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
	"gorm.io/gorm"
)

func orderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/orders", func(ctx *gin.Context) {
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			customerID := ctx.GetUint("id")

			// Unit prices come from the ticket types, not the client.
			dbi := db.GetDb()
			items := make([]core.CartItem, 0, len(body.Items))
			for _, line := range body.Items {
				var ticketType models.TicketType
				if err := dbi.
					Where(&models.TicketType{ID: line.TicketTypeID, EventID: body.EventID}).
					First(&ticketType).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						ctx.JSON(http.StatusNotFound, gin.H{"error": core.ErrTicketTypeNotFound.Error()})
						return
					}
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				items = append(items, core.CartItem{
					TicketTypeID: ticketType.ID,
					EventID:      ticketType.EventID,
					Quantity:     line.Qty,
					UnitPrice:    ticketType.Price,
				})
			}

			paymentMethod := body.PaymentMethod
			if paymentMethod == "" {
				paymentMethod = "card"
			}
			order, err := core.CreateOrder(customerID, items, paymentMethod, ctx.GetString("email"))
			if err != nil {
				log.Printf("Error creating Order: %s\n", err.Error())
				status := http.StatusBadRequest
				if errors.Is(err, core.ErrOutOfStock) {
					status = http.StatusConflict
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": order})
		}).
		GET("/orders", func(ctx *gin.Context) {
			role := ctx.GetString("role")
			if role == string(types.ROLE_ADMIN) || role == string(types.ROLE_ORGANIZER) {
				orders, err := core.GetAllOrders()
				if err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
				return
			}
			orders, err := core.GetOrdersByCustomerID(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
		}).
		GET("/orders/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dbi := db.GetDb()
			var order models.Order
			if err := dbi.
				Where(&models.Order{ID: params.ID}).
				Preload("Tickets").
				Preload("Event").
				First(&order).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": core.ErrOrderNotFound.Error()})
				return
			}
			role := ctx.GetString("role")
			if role == string(types.ROLE_CUSTOMER) && order.CustomerID != ctx.GetUint("id") {
				ctx.Status(http.StatusForbidden)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": order})
		})
	return g
}
