package http_test

import (
	"net/http"
	"net/http/httptest"
)

func serve(h http.Handler, method, url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
