package aquaflowserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/aquaflow/aquaflow-api/internal/domains/orders/application"
	ordertypes "github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	ordersdomain "github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	ordersports "github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the orders bounded context service
// and workflows.
type OrderAPI struct {
	service   ordersports.Service
	booking   *ordersapp.Booking
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided collaborators.
func NewOrderAPI(service ordersports.Service, booking *ordersapp.Booking, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, booking: booking, workflows: workflows}
}

// Post /v1/orders
// Place an order against a service area's inventory
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.PlaceOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.PlaceOrder(c.Request.Context(), ordermapper.ToPlaceOrderInput(payload))
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(saved))
}

// Get /v1/orders/:orderId
// Load one order with items, messages, and address attached
func (api *OrderAPI) GetOrderById(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Get /v1/customers/:customerId/orders
// List a customer's orders, newest first
func (api *OrderAPI) ListCustomerOrders(c *gin.Context) {
	id, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	orders, err := api.service.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrderList(orders))
}

// Get /v1/vendors/:vendorId/orders
// List a vendor's incoming orders, newest first
func (api *OrderAPI) ListVendorOrders(c *gin.Context) {
	id, ok := parseIDParam(c, "vendorId")
	if !ok {
		return
	}
	orders, err := api.service.ListByVendor(c.Request.Context(), id)
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrderList(orders))
}

// Put /v1/orders/:orderId/status
// Move an order along its lifecycle
func (api *OrderAPI) ChangeOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload ordermapper.ChangeStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.changeStatus(c.Request.Context(), ordermapper.ToChangeStatusInput(id, payload))
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(updated))
}

// changeStatus routes the delivered transition through the durable
// workflow engine when one is configured.
func (api *OrderAPI) changeStatus(ctx context.Context, input ordertypes.ChangeStatusInput) (*ordersdomain.Order, error) {
	if api.workflows != nil && input.Status == string(ordersdomain.StatusDelivered) {
		return api.workflows.FulfillDelivery(ctx, input.OrderID)
	}
	return api.service.ChangeStatus(ctx, input)
}

// Post /v1/orders/:orderId/messages
// Append one entry to the order thread
func (api *OrderAPI) SendOrderMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload ordermapper.SendMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.SendMessage(c.Request.Context(), ordermapper.ToSendMessageInput(id, payload))
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainMessage(saved))
}

// Get /v1/orders/:orderId/messages
// List the order thread, oldest first
func (api *OrderAPI) ListOrderMessages(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	msgs, err := api.service.ListMessages(c.Request.Context(), id)
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainMessageList(msgs))
}

// Post /v1/orders/:orderId/invoice
// Generate the order's invoice; allowed once per order
func (api *OrderAPI) GenerateInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	invoice, err := api.service.GenerateInvoice(c.Request.Context(), id)
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainInvoice(invoice))
}

// Post /v1/bookings
// Submit a booking cart as a delivery order
func (api *OrderAPI) SubmitBooking(c *gin.Context) {
	if api.booking == nil {
		respondError(c, http.StatusInternalServerError, ordersports.ErrNotFound)
		return
	}
	var payload ordermapper.SubmitBooking
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input, selection := ordermapper.ToSubmitBookingInput(payload)
	order, err := api.booking.SubmitSelection(c.Request.Context(), input, selection)
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

// Get /v1/addresses/:addressId/products
// List the inventory a delivery address can order from; an address
// outside every service area yields an empty shelf
func (api *OrderAPI) ListAvailableProducts(c *gin.Context) {
	id, ok := parseIDParam(c, "addressId")
	if !ok {
		return
	}
	if api.booking == nil {
		respondError(c, http.StatusInternalServerError, ordersports.ErrNotFound)
		return
	}
	items, err := api.booking.AvailableProducts(c.Request.Context(), id)
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromItemRefs(items))
}
