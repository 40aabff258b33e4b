package endpoint

import (
	"fmt"
	"strconv"

	"github.com/ariebrainware/hospital-records/middleware"
	"github.com/ariebrainware/hospital-records/repository"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// requireDB returns the request scoped DB or writes a server error.
func requireDB(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return nil, false
	}
	return db, true
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid ID format",
			Err: err,
		})
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// parsePage reads page (raw row offset) and per_page.
func parsePage(c *gin.Context) (repository.Page, bool) {
	page, err := queryInt(c, "page")
	if err == nil {
		var perPage int
		perPage, err = queryInt(c, "per_page")
		if err == nil {
			return repository.NewPage(page, perPage), true
		}
	}
	util.CallUserError(c, util.APIErrorParams{
		Msg: "Invalid pagination parameters",
		Err: err,
	})
	return repository.Page{}, false
}

// bindJSON decodes the request body into req.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return false
	}
	return true
}
