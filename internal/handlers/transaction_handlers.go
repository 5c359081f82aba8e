package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func transactionFromRequest(req models.TransactionRequest) (*models.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("сумма транзакции должна быть положительной: %w", models.ErrInvalidInput)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	return &models.Transaction{
		UserID:     req.UserID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Type:       req.Type,
		Date:       date,
		Note:       req.Note,
	}, nil
}

func CreateTransaction(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат транзакции"})
			return
		}

		transaction, err := transactionFromRequest(req)
		if err != nil {
			respondError(c, err)
			return
		}

		if err := database.CreateTransaction(pool, transaction); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, transaction)
	}
}

func GetTransaction(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}

		transaction, err := database.GetTransactionByID(pool, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

func ListTransactions(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseTransactionFilter(c)
		if err != nil {
			respondError(c, err)
			return
		}
		params := parseListParams(c)

		transactions, err := database.GetTransactions(pool, filter, params)
		if err != nil {
			respondError(c, err)
			return
		}
		total, err := database.GetTransactionsCount(pool, filter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"transactions": transactions, "total": total})
	}
}

func UpdateTransaction(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}

		var req models.TransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат транзакции"})
			return
		}

		transaction, err := transactionFromRequest(req)
		if err != nil {
			respondError(c, err)
			return
		}
		transaction.ID = id

		if err := database.UpdateTransaction(pool, transaction); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}

		if err := database.DeleteTransaction(pool, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Транзакция успешно удалена"})
	}
}

// ExportTransactions выгружает отфильтрованные транзакции файлом JSON.
func ExportTransactions(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseTransactionFilter(c)
		if err != nil {
			respondError(c, err)
			return
		}

		rows, err := database.GetTransactionRows(pool, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		if rows == nil {
			rows = []models.TransactionRow{}
		}

		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", `attachment; filename="transactions.json"`)
		c.Status(http.StatusOK)

		encoder := json.NewEncoder(c.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rows); err != nil {
			// Заголовки уже отправлены, остается только залогировать
			_ = c.Error(err)
		}
	}
}
