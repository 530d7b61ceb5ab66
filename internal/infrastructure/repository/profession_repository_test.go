package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/registro/client/internal/domain/profession"
	"github.com/registro/client/internal/domain/shared"
	"github.com/registro/client/internal/infrastructure/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfessionRepo(t *testing.T, register func(r *gin.Engine)) *ProfessionRepository {
	t.Helper()
	server := newStubServer(t, register)
	return NewProfessionRepository(gateway.New(server.URL), nil)
}

func TestProfessionRepositoryGetAll(t *testing.T) {
	var gotPage, gotSize string
	repo := newProfessionRepo(t, func(r *gin.Engine) {
		r.GET("/professions", func(c *gin.Context) {
			gotPage = c.Query("page")
			gotSize = c.Query("size")
			c.JSON(http.StatusOK, profession.ListResponse{
				Professions: []profession.Profession{{ID: 1, Name: "INGENIERO"}},
				Total:       51,
				Page:        1,
				Size:        50,
				TotalPages:  2,
			})
		})
	})

	list, err := repo.GetAll(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, "1", gotPage)
	assert.Equal(t, "50", gotSize)
	assert.Equal(t, 51, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Professions, 1)
	assert.Equal(t, "INGENIERO", list.Professions[0].Name)
}

func TestProfessionRepositoryGetAllForSelector(t *testing.T) {
	repo := newProfessionRepo(t, func(r *gin.Engine) {
		r.GET("/professions/all", func(c *gin.Context) {
			c.JSON(http.StatusOK, []profession.Profession{{ID: 1}, {ID: 2}})
		})
	})

	professions, err := repo.GetAllForSelector(context.Background())
	require.NoError(t, err)
	assert.Len(t, professions, 2)
}

func TestProfessionRepositoryCreate(t *testing.T) {
	var gotBody map[string]any
	repo := newProfessionRepo(t, func(r *gin.Engine) {
		r.POST("/professions", func(c *gin.Context) {
			body, _ := io.ReadAll(c.Request.Body)
			require.NoError(t, json.Unmarshal(body, &gotBody))
			c.JSON(http.StatusCreated, profession.Profession{ID: 9, Name: "INGENIERO CIVIL"})
		})
	})

	created, err := repo.Create(context.Background(), profession.CreateInput{Name: "INGENIERO CIVIL"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, map[string]any{"name": "INGENIERO CIVIL"}, gotBody)
}

func TestProfessionRepositoryUpdateTransmitsOnlySuppliedFields(t *testing.T) {
	t.Run("with a name", func(t *testing.T) {
		var gotBody string
		repo := newProfessionRepo(t, func(r *gin.Engine) {
			r.PUT("/professions/4", func(c *gin.Context) {
				body, _ := io.ReadAll(c.Request.Body)
				gotBody = string(body)
				c.JSON(http.StatusOK, profession.Profession{ID: 4, Name: "MEDICO"})
			})
		})

		name := "MEDICO"
		_, err := repo.Update(context.Background(), 4, profession.UpdateInput{Name: &name})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"MEDICO"}`, gotBody)
	})

	t.Run("without a name", func(t *testing.T) {
		var gotBody string
		repo := newProfessionRepo(t, func(r *gin.Engine) {
			r.PUT("/professions/4", func(c *gin.Context) {
				body, _ := io.ReadAll(c.Request.Body)
				gotBody = string(body)
				c.JSON(http.StatusOK, profession.Profession{ID: 4})
			})
		})

		_, err := repo.Update(context.Background(), 4, profession.UpdateInput{})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, gotBody)
	})
}

func TestProfessionRepositoryDelete(t *testing.T) {
	t.Run("succeeds on 204", func(t *testing.T) {
		repo := newProfessionRepo(t, func(r *gin.Engine) {
			r.DELETE("/professions/3", func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})
		})
		assert.NoError(t, repo.Delete(context.Background(), 3))
	})

	t.Run("propagates server rejection", func(t *testing.T) {
		repo := newProfessionRepo(t, func(r *gin.Engine) {
			r.DELETE("/professions/3", func(c *gin.Context) {
				c.JSON(http.StatusConflict, gin.H{"detail": "profession is in use"})
			})
		})

		err := repo.Delete(context.Background(), 3)
		require.Error(t, err)
		assert.Equal(t, "profession is in use", err.Error())
		assert.Equal(t, shared.KindServer, shared.KindOf(err))
	})
}

func TestProfessionRepositorySearch(t *testing.T) {
	var gotQuery string
	repo := newProfessionRepo(t, func(r *gin.Engine) {
		r.GET("/professions/search", func(c *gin.Context) {
			gotQuery = c.Query("query")
			c.JSON(http.StatusOK, []profession.Profession{{ID: 1, Name: "INGENIERO"}})
		})
	})

	professions, err := repo.Search(context.Background(), "inge")
	require.NoError(t, err)
	assert.Len(t, professions, 1)
	assert.Equal(t, "inge", gotQuery)
}
