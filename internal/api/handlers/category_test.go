package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/avaldez/ecommerce-api/internal/domain"
	"github.com/avaldez/ecommerce-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithToken(t *testing.T, method, url, token string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCategoryHandler_CRUD(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminPass := testutil.NewUserBuilder().
		WithUsername("catadmin").
		WithRole(domain.RoleAdmin).
		Build(t, ts.DB.DB)
	_, userPass := testutil.NewUserBuilder().
		WithUsername("catuser").
		Build(t, ts.DB.DB)

	adminToken := testutil.Login(t, ts, "catadmin", adminPass)
	userToken := testutil.Login(t, ts, "catuser", userPass)

	var createdID string

	t.Run("admin creates a category", func(t *testing.T) {
		resp := requestWithToken(t, http.MethodPost, ts.APIURL("/categories/"), adminToken,
			map[string]string{"name": "Electronics"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)
		var category domain.Category
		testutil.AssertJSONResponse(t, resp, &category)
		assert.Equal(t, "Electronics", category.Name)
		assert.Equal(t, "electronics", category.Slug)
		createdID = category.ID.String()
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		resp := requestWithToken(t, http.MethodPost, ts.APIURL("/categories/"), adminToken,
			map[string]string{"name": " electronics "})
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusConflict, "already exists")
	})

	t.Run("non-admin cannot create", func(t *testing.T) {
		resp := requestWithToken(t, http.MethodPost, ts.APIURL("/categories/"), userToken,
			map[string]string{"name": "Books"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("anonymous reads are public", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/categories/"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var categories []domain.Category
		testutil.AssertJSONResponse(t, resp, &categories)
		require.Len(t, categories, 1)
	})

	t.Run("admin renames the category", func(t *testing.T) {
		resp := requestWithToken(t, http.MethodPatch, ts.APIURL("/categories/"+createdID), adminToken,
			map[string]string{"name": "Consumer Electronics"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var category domain.Category
		testutil.AssertJSONResponse(t, resp, &category)
		assert.Equal(t, "Consumer Electronics", category.Name)
		assert.Equal(t, "consumer-electronics", category.Slug)
	})

	t.Run("admin deletes the category", func(t *testing.T) {
		resp := requestWithToken(t, http.MethodDelete, ts.APIURL("/categories/"+createdID), adminToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNoContent)

		getResp, err := http.Get(ts.APIURL("/categories/" + createdID))
		require.NoError(t, err)
		defer getResp.Body.Close()
		testutil.AssertStatusCode(t, getResp, http.StatusNotFound)
	})
}
