package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// HTTPTestHelper provides utilities for HTTP testing
type HTTPTestHelper struct {
	t      *testing.T
	router *gin.Engine
}

// NewHTTPTestHelper creates a new HTTP test helper
func NewHTTPTestHelper(t *testing.T) *HTTPTestHelper {
	gin.SetMode(gin.TestMode)
	return &HTTPTestHelper{
		t:      t,
		router: gin.New(),
	}
}

// SetRouter sets the gin router to use for testing
func (h *HTTPTestHelper) SetRouter(router *gin.Engine) {
	h.router = router
}

// Request performs an arbitrary request with optional raw body and headers
func (h *HTTPTestHelper) Request(method, url string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(h.t, err, "Failed to create HTTP request")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, req)

	return recorder
}

// PostJSON performs a POST request with a JSON payload and optional headers
func (h *HTTPTestHelper) PostJSON(url string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(h.t, err, "Failed to marshal JSON payload")

	merged := map[string]string{"Content-Type": "application/json"}
	for key, value := range headers {
		merged[key] = value
	}

	return h.Request("POST", url, body, merged)
}

// GetJSON performs a GET request expecting a JSON response
func (h *HTTPTestHelper) GetJSON(url string, headers map[string]string) *httptest.ResponseRecorder {
	return h.Request("GET", url, nil, headers)
}

// Delete performs a DELETE request
func (h *HTTPTestHelper) Delete(url string, headers map[string]string) *httptest.ResponseRecorder {
	return h.Request("DELETE", url, nil, headers)
}

// AssertJSONResponse asserts that the response is valid JSON and unmarshals it
func (h *HTTPTestHelper) AssertJSONResponse(recorder *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	require.Equal(h.t, expectedStatus, recorder.Code, "Unexpected status code")

	err := json.Unmarshal(recorder.Body.Bytes(), target)
	require.NoError(h.t, err, "Failed to unmarshal JSON response")
}

// AssertErrorEnvelope asserts the failure envelope shape and message
func (h *HTTPTestHelper) AssertErrorEnvelope(recorder *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	require.Equal(h.t, expectedStatus, recorder.Code, "Unexpected status code")

	var envelope struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	err := json.Unmarshal(recorder.Body.Bytes(), &envelope)
	require.NoError(h.t, err, "Failed to unmarshal error envelope")

	require.Equal(h.t, expectedStatus, envelope.Status, "Envelope status should match HTTP status")
	require.Equal(h.t, expectedMessage, envelope.Message, "Unexpected envelope message")
}
