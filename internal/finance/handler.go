// File: internal/finance/handler.go
package finance

import (
	"strconv"

	"thrive_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for accounts, transactions and dashboards.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new finance handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the finance routes. All of them require an
// authenticated session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	accounts := router.Group("/accounts")
	accounts.Use(authMiddleware)
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
	}

	transactions := router.Group("/transactions")
	transactions.Use(authMiddleware)
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
	}

	dashboard := router.Group("/dashboard")
	dashboard.Use(authMiddleware)
	{
		dashboard.GET("/net-worth", h.netWorth)
		dashboard.GET("/spending", h.spending)
	}
}

func (h *Handler) createAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		}
		return
	}

	account, err := h.service.CreateAccount(c.Request.Context(), common.GetUserIDFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Account created.", account)
}

func (h *Handler) listAccounts(c *gin.Context) {
	accounts, err := h.service.ListAccounts(c.Request.Context(), common.GetUserIDFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", accounts)
}

func (h *Handler) createTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		}
		return
	}

	txn, err := h.service.RecordTransaction(c.Request.Context(), common.GetUserIDFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Transaction recorded.", txn)
}

func (h *Handler) listTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	transactions, pagination, err := h.service.ListTransactions(c.Request.Context(), common.GetUserIDFromContext(c), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "", transactions, pagination)
}

func (h *Handler) netWorth(c *gin.Context) {
	series, err := h.service.NetWorthSeries(c.Request.Context(), common.GetUserIDFromContext(c), c.Query("range"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", series)
}

func (h *Handler) spending(c *gin.Context) {
	breakdown, err := h.service.SpendingBreakdown(c.Request.Context(), common.GetUserIDFromContext(c), c.Query("range"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", breakdown)
}
