package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roleready/roleready-api/internal/middleware"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/pkg/listquery"
)

// respondOK sends the success envelope
func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// requireSession returns the caller's session or writes a 401
func requireSession(c *gin.Context) (*models.Session, bool) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return nil, false
	}
	return session, true
}

// pathID reads a uuid path parameter or writes a 400
func pathID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid id",
			[]ValidationError{{Field: name, Message: name + " must be a valid id"}}, err)
		return "", false
	}
	return id.String(), true
}

// listParams reads page, limit, sortBy, sortOrder and toggle. columns may be
// empty for lists with a fixed order.
func listParams(c *gin.Context, columns listquery.Columns) (models.ListParams, bool) {
	params := models.ListParams{
		Page: listquery.ParsePage(c.Query("page"), c.Query("limit")),
	}
	if len(columns.SQL) == 0 {
		return params, true
	}

	sort, err := columns.Parse(c.Query("sortBy"), c.Query("sortOrder"), c.Query("toggle"))
	if err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid sort",
			[]ValidationError{{Field: "sort", Message: err.Error()}}, err)
		return params, false
	}
	params.Sort = sort
	return params, true
}

// boolQuery parses an optional boolean filter such as ?active=true
func boolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameter",
			[]ValidationError{{Field: name, Message: name + " must be true or false"}}, err)
		return nil, false
	}
	return &v, true
}
