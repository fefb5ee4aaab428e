package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"todoapi/internal/models"
	"todoapi/internal/store"

	"github.com/gin-gonic/gin"
)

// TodoStore is the persistence the todo handlers depend on.
type TodoStore interface {
	List(ctx context.Context, page store.Page) ([]models.Todo, error)
	Get(ctx context.Context, id int) (models.Todo, error)
	Create(ctx context.Context, attrs models.TodoAttributes) (models.Todo, error)
	Update(ctx context.Context, id int, attrs models.TodoAttributes) (models.Todo, error)
	Delete(ctx context.Context, id int) error
}

// TodoHandler serves the /todos resource.
type TodoHandler struct {
	todos TodoStore
}

func NewTodoHandler(todos TodoStore) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// todoID parses the :id path param. Ids are SERIAL (int4), so anything that
// is not a positive 32-bit integer cannot match a row and is answered the
// same way as a missing one.
func todoID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		respondError(c, &store.NotFoundError{Resource: "Todo", ID: raw})
		return 0, false
	}
	return int(id), true
}

// bindTodoAttributes decodes the JSON body. An empty body supplies no
// attributes.
func bindTodoAttributes(c *gin.Context) (models.TodoAttributes, bool) {
	var attrs models.TodoAttributes
	if err := c.ShouldBindJSON(&attrs); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c)
		return models.TodoAttributes{}, false
	}
	return attrs, true
}

// List handles GET /todos
func (h *TodoHandler) List(c *gin.Context) {
	page := parseListQueryParams(c.Query("limit"), c.Query("offset"))

	todos, err := h.todos.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, todos)
}

// Show handles GET /todos/:id
func (h *TodoHandler) Show(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.todos.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// Create handles POST /todos
func (h *TodoHandler) Create(c *gin.Context) {
	attrs, ok := bindTodoAttributes(c)
	if !ok {
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), attrs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, todo)
}

// Update handles PUT /todos/:id and answers with an empty 204.
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}
	attrs, ok := bindTodoAttributes(c)
	if !ok {
		return
	}

	if _, err := h.todos.Update(c.Request.Context(), id, attrs); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Destroy handles DELETE /todos/:id
func (h *TodoHandler) Destroy(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.todos.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
