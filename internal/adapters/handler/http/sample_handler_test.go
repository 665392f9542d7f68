package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/gym-occupancy/internal/adapters/handler/http"
	"github.com/comitanigiacomo/gym-occupancy/internal/adapters/repository"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
)

func setupSampleRouter(repo domain.SampleRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := adapterHTTP.NewSampleHandler(services.NewSampleService(repo, nil))

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func post(r *gin.Engine, url, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecordSample(t *testing.T) {
	t.Run("Success: 201 and the sample is stored", func(t *testing.T) {
		repo := repository.NewInMemorySampleRepository()
		r := setupSampleRouter(repo)

		w := post(r, "/api/v1/samples", `{"timestamp":"2024-03-14T18:00:00+01:00","occupancy_level":37}`)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"timestamp":"2024-03-14T17:00:00Z"`)

		stored, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, 37, stored[0].OccupancyLevel)
		assert.True(t, time.Date(2024, 3, 14, 17, 0, 0, 0, time.UTC).Equal(stored[0].Timestamp))
	})

	t.Run("Success: Zero level is accepted", func(t *testing.T) {
		r := setupSampleRouter(repository.NewInMemorySampleRepository())

		w := post(r, "/api/v1/samples", `{"timestamp":"2024-03-14T18:00:00Z","occupancy_level":0}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Validation: 400 when the level is missing", func(t *testing.T) {
		r := setupSampleRouter(repository.NewInMemorySampleRepository())

		w := post(r, "/api/v1/samples", `{"timestamp":"2024-03-14T18:00:00Z"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Validation: 400 on negative level", func(t *testing.T) {
		r := setupSampleRouter(repository.NewInMemorySampleRepository())

		w := post(r, "/api/v1/samples", `{"timestamp":"2024-03-14T18:00:00Z","occupancy_level":-2}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid sample")
	})

	t.Run("Validation: 400 on malformed JSON", func(t *testing.T) {
		r := setupSampleRouter(repository.NewInMemorySampleRepository())

		w := post(r, "/api/v1/samples", `{"timestamp":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failure: 500 when storage rejects the write", func(t *testing.T) {
		r := setupSampleRouter(&brokenRepo{err: assert.AnError})

		w := post(r, "/api/v1/samples", `{"timestamp":"2024-03-14T18:00:00Z","occupancy_level":5}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
