package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type propertyBody struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Status  string   `json:"status"`
	OwnerID string   `json:"owner_id"`
	Photos  []string `json:"photos"`
}

func createProperty(t *testing.T, env *testEnv, token string, payload fiber.Map) propertyBody {
	t.Helper()
	resp := env.request(t, http.MethodPost, "/properties", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var property propertyBody
	decodeBody(t, resp, &property)
	require.NotEmpty(t, property.ID)
	return property
}

func TestPropertyCreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ana", "ana@example.com", "agent")

	property := createProperty(t, env, token, propertyPayload())
	assert.Equal(t, "Apartamento 3 quartos no Centro", property.Title)
	assert.Equal(t, "available", property.Status)
	assert.NotEmpty(t, property.OwnerID)

	resp := env.request(t, http.MethodGet, "/properties/"+property.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got propertyBody
	decodeBody(t, resp, &got)
	assert.Equal(t, property.ID, got.ID)
}

func TestPropertyCreateRejectsSchemaViolations(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ana", "ana@example.com", "agent")

	missing := propertyPayload()
	delete(missing, "sale_price")
	resp := env.request(t, http.MethodPost, "/properties", token, missing)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PROP_2002", errorCode(t, resp))

	unknown := propertyPayload()
	unknown["pool_heated"] = true
	resp = env.request(t, http.MethodPost, "/properties", token, unknown)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	negative := propertyPayload()
	negative["sale_price"] = -1
	resp = env.request(t, http.MethodPost, "/properties", token, negative)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPropertyUpdateKeepsOwnership(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ana", "ana@example.com", "agent")
	property := createProperty(t, env, token, propertyPayload())

	payload := propertyPayload()
	payload["title"] = "Apartamento reformado no Centro"
	resp := env.request(t, http.MethodPut, "/properties/"+property.ID, token, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated propertyBody
	decodeBody(t, resp, &updated)
	assert.Equal(t, property.ID, updated.ID)
	assert.Equal(t, property.OwnerID, updated.OwnerID)
	assert.Equal(t, "Apartamento reformado no Centro", updated.Title)
}

func TestPropertyStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ana", "ana@example.com", "agent")
	property := createProperty(t, env, token, propertyPayload())

	resp := env.request(t, http.MethodPatch, "/properties/"+property.ID+"/status", token, fiber.Map{"status": "sold"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated propertyBody
	decodeBody(t, resp, &updated)
	assert.Equal(t, "sold", updated.Status)

	resp = env.request(t, http.MethodPatch, "/properties/"+property.ID+"/status", token, fiber.Map{"status": "demolished"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPropertyHiddenFromOtherAgents(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.register(t, "Ana", "ana@example.com", "agent")
	otherToken := env.register(t, "Beto", "beto@example.com", "agent")
	property := createProperty(t, env, ownerToken, propertyPayload())

	resp := env.request(t, http.MethodGet, "/properties/"+property.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PROP_2001", errorCode(t, resp))
}

func TestPropertyDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ana", "ana@example.com", "agent")
	property := createProperty(t, env, token, propertyPayload())

	resp := env.request(t, http.MethodDelete, "/properties/"+property.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/properties/"+property.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPropertyPhotoUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ana", "ana@example.com", "agent")
	property := createProperty(t, env, token, propertyPayload())

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photo", "sala.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/properties/"+property.ID+"/photos", &buf)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var updated propertyBody
	decodeBody(t, resp, &updated)
	require.Len(t, updated.Photos, 2)
	assert.True(t, strings.HasSuffix(updated.Photos[1], ".jpg"))
}

func TestPropertyPhotoUploadRequiresFile(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ana", "ana@example.com", "agent")
	property := createProperty(t, env, token, propertyPayload())

	resp := env.request(t, http.MethodPost, "/properties/"+property.ID+"/photos", token, fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "REQUEST_2002", errorCode(t, resp))
}
