package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/pagination"
)

// pathID parses a non-negative integer path parameter. Anything else, including
// ids no int4 column can hold, is a 404, the same as a route that does not exist.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 0 || !fitsInt4(id) {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return id, nil
}

// fitsInt4 reports whether id can be stored in an INTEGER column
func fitsInt4(id int) bool {
	return id >= math.MinInt32 && id <= math.MaxInt32
}

func pageParam(c echo.Context) int {
	return pagination.ParsePage(c.QueryParam("page"))
}

// flexInt decodes a JSON number or a string holding one
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = flexInt(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}
