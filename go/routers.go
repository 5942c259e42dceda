package aquaflowserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the per-domain API handlers.
type ApiHandleFunctions struct {
	AccountAPI AccountAPI
	CatalogAPI CatalogAPI
	OrderAPI   OrderAPI
}

// NewRouter returns a new router with the registered routes.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	for _, mw := range middleware {
		if mw != nil {
			router.Use(mw)
		}
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandler
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func defaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{})
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{
			"CreateUser",
			http.MethodPost,
			"/v1/users",
			h.AccountAPI.CreateUser,
		},
		{
			"GetCurrentUser",
			http.MethodGet,
			"/v1/users/me",
			h.AccountAPI.GetCurrentUser,
		},
		{
			"GetUserById",
			http.MethodGet,
			"/v1/users/:userId",
			h.AccountAPI.GetUserById,
		},
		{
			"UpdateUser",
			http.MethodPatch,
			"/v1/users/:userId",
			h.AccountAPI.UpdateUser,
		},
		{
			"DeleteUser",
			http.MethodDelete,
			"/v1/users/:userId",
			h.AccountAPI.DeleteUser,
		},
		{
			"CreateAddress",
			http.MethodPost,
			"/v1/users/:userId/addresses",
			h.AccountAPI.CreateAddress,
		},
		{
			"ListAddresses",
			http.MethodGet,
			"/v1/users/:userId/addresses",
			h.AccountAPI.ListAddresses,
		},
		{
			"UpdateAddress",
			http.MethodPatch,
			"/v1/addresses/:addressId",
			h.AccountAPI.UpdateAddress,
		},
		{
			"DeleteAddress",
			http.MethodDelete,
			"/v1/addresses/:addressId",
			h.AccountAPI.DeleteAddress,
		},
		{
			"CreateArea",
			http.MethodPost,
			"/v1/areas",
			h.CatalogAPI.CreateArea,
		},
		{
			"ListAreas",
			http.MethodGet,
			"/v1/areas",
			h.CatalogAPI.ListAreas,
		},
		{
			"GetAreaById",
			http.MethodGet,
			"/v1/areas/:areaId",
			h.CatalogAPI.GetAreaById,
		},
		{
			"DeleteArea",
			http.MethodDelete,
			"/v1/areas/:areaId",
			h.CatalogAPI.DeleteArea,
		},
		{
			"ListAreaItems",
			http.MethodGet,
			"/v1/areas/:areaId/items",
			h.CatalogAPI.ListAreaItems,
		},
		{
			"CreateItem",
			http.MethodPost,
			"/v1/items",
			h.CatalogAPI.CreateItem,
		},
		{
			"GetItemById",
			http.MethodGet,
			"/v1/items/:itemId",
			h.CatalogAPI.GetItemById,
		},
		{
			"UpdateItem",
			http.MethodPatch,
			"/v1/items/:itemId",
			h.CatalogAPI.UpdateItem,
		},
		{
			"DeleteItem",
			http.MethodDelete,
			"/v1/items/:itemId",
			h.CatalogAPI.DeleteItem,
		},
		{
			"ListVendorItems",
			http.MethodGet,
			"/v1/vendors/:vendorId/items",
			h.CatalogAPI.ListVendorItems,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/v1/orders",
			h.OrderAPI.PlaceOrder,
		},
		{
			"GetOrderById",
			http.MethodGet,
			"/v1/orders/:orderId",
			h.OrderAPI.GetOrderById,
		},
		{
			"ListCustomerOrders",
			http.MethodGet,
			"/v1/customers/:customerId/orders",
			h.OrderAPI.ListCustomerOrders,
		},
		{
			"ListVendorOrders",
			http.MethodGet,
			"/v1/vendors/:vendorId/orders",
			h.OrderAPI.ListVendorOrders,
		},
		{
			"ChangeOrderStatus",
			http.MethodPut,
			"/v1/orders/:orderId/status",
			h.OrderAPI.ChangeOrderStatus,
		},
		{
			"SendOrderMessage",
			http.MethodPost,
			"/v1/orders/:orderId/messages",
			h.OrderAPI.SendOrderMessage,
		},
		{
			"ListOrderMessages",
			http.MethodGet,
			"/v1/orders/:orderId/messages",
			h.OrderAPI.ListOrderMessages,
		},
		{
			"GenerateInvoice",
			http.MethodPost,
			"/v1/orders/:orderId/invoice",
			h.OrderAPI.GenerateInvoice,
		},
		{
			"SubmitBooking",
			http.MethodPost,
			"/v1/bookings",
			h.OrderAPI.SubmitBooking,
		},
		{
			"ListAvailableProducts",
			http.MethodGet,
			"/v1/addresses/:addressId/products",
			h.OrderAPI.ListAvailableProducts,
		},
	}
}
