// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TFMV/ExpenseClassifier/internal/classifier"
	"github.com/TFMV/ExpenseClassifier/internal/expense"
	"github.com/gin-gonic/gin"
)

const (
	statusMessage          = "ML Expense Service is running"
	errDescriptionRequired = "description field is required"
)

type PredictRequest struct {
	Description *string `json:"description"`
}

type PredictResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// StatusHandler answers the plain-text liveness check on /.
func StatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, statusMessage)
	}
}

// PredictHandler classifies the description in the request body.
// A missing, null or non-string description is rejected with 400.
func PredictHandler(predictor classifier.Predictor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Description == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errDescriptionRequired})
			return
		}

		c.JSON(http.StatusOK, PredictResponse{
			Description: *req.Description,
			Category:    predictor.Predict(*req.Description),
		})
	}
}

// CategoriesHandler lists the categories the loaded model can predict.
func CategoriesHandler(predictor classifier.Predictor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": predictor.Categories()})
	}
}

// HealthCheckHandler handles health check requests
func HealthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		zuluTime := time.Now().UTC().Format(time.RFC3339)
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"zuluTime": zuluTime,
		})
	}
}

func ListExpensesHandler(svc *expense.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenses, err := svc.List(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

func GetExpenseHandler(svc *expense.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

func CreateExpenseHandler(svc *expense.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req expense.Expense
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense payload"})
			return
		}

		created, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateExpenseHandler replaces an expense. An unknown id creates a new one.
func UpdateExpenseHandler(svc *expense.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req expense.Expense
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense payload"})
			return
		}

		updated, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteExpenseHandler(svc *expense.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ImportExpensesHandler stores every expense in an uploaded CSV file.
func ImportExpensesHandler(svc *expense.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{
					"error": fmt.Sprintf("upload exceeds the %d byte limit", tooLarge.Limit),
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
			return
		}

		f, err := file.Open()
		if err != nil {
			abortWithError(c, err)
			return
		}
		defer f.Close()

		n, err := svc.Import(c.Request.Context(), f)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "success",
			"imported": n,
		})
	}
}

// abortWithError records err for ErrorHandler with the matching status.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, expense.ErrInvalidExpense):
		status = http.StatusBadRequest
	case errors.Is(err, expense.ErrNotFound):
		status = http.StatusNotFound
	}
	_ = c.Error(err)
	c.Status(status)
	c.Abort()
}
