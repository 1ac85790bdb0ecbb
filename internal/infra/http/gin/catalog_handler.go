package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"festiloc/internal/app/dto"
	domainarticle "festiloc/internal/domain/article"
	domainclient "festiloc/internal/domain/client"
)

// ArticleHandler serves the read-only article catalog.
type ArticleHandler struct {
	Articles domainarticle.Source
}

func (h ArticleHandler) List(c *gin.Context) {
	articles, err := h.Articles.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MapArticles(articles))
}

func (h ArticleHandler) Get(c *gin.Context) {
	a, err := h.Articles.ByID(c.Request.Context(), domainarticle.ArticleID(c.Param("id")))
	if err != nil {
		if errors.Is(err, domainarticle.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MapArticle(a))
}

var _ ArticleHTTP = ArticleHandler{}

// ClientHandler serves client records for display purposes.
type ClientHandler struct {
	Clients domainclient.Source
}

func (h ClientHandler) List(c *gin.Context) {
	clients, err := h.Clients.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	items := make([]dto.Client, 0, len(clients))
	for _, cl := range clients {
		items = append(items, dto.MapClient(cl))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h ClientHandler) Get(c *gin.Context) {
	cl, err := h.Clients.ByID(c.Request.Context(), domainclient.ClientID(c.Param("id")))
	if err != nil {
		if errors.Is(err, domainclient.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MapClient(cl))
}

var _ ClientHTTP = ClientHandler{}
