package endpoint

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

type requestSpec struct {
	method       string
	registerPath string
	requestPath  string
	handler      gin.HandlerFunc
	body         interface{}
}

// encodeBody accepts raw JSON strings as is, so malformed payloads can be sent.
func encodeBody(body interface{}) io.Reader {
	switch v := body.(type) {
	case nil:
		return nil
	case string:
		return bytes.NewBufferString(v)
	default:
		b, _ := json.Marshal(v)
		return bytes.NewReader(b)
	}
}

func performRequest(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	req := httptest.NewRequest(spec.method, spec.requestPath, encodeBody(spec.body))
	if spec.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() == 0 {
		return w, nil, nil
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	return w, response, err
}

// doRequestWithHandler mounts a single handler on r and calls it.
func doRequestWithHandler(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	r.Handle(spec.method, spec.registerPath, spec.handler)
	return performRequest(r, spec)
}
