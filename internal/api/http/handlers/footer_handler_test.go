package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/api/dto"
	"github.com/spec-kit/companion-service/internal/events"
	"github.com/spec-kit/companion-service/internal/i18n"
	"github.com/spec-kit/companion-service/internal/service"
)

func newFooterApp(store *memoryFooter) *fiber.App {
	app := newTestApp(fakeProfiles{})
	h := NewFooterHandler(service.NewContentService(newMemoryFeatures(), store, events.NewInMemoryDispatcher(), zap.NewNop()))
	app.Get("/api/footer", h.Get)
	app.Put("/api/admin/footer", h.Replace)
	app.Delete("/api/admin/footer", h.Reset)
	app.Post("/api/admin/footer/items", h.AddItem)
	app.Patch("/api/admin/footer/items/:section/:id", h.ChangeItem)
	app.Delete("/api/admin/footer/items/:section/:id", h.RemoveItem)
	return app
}

func TestFooter_DefaultsFollowLanguage(t *testing.T) {
	app := newFooterApp(&memoryFooter{})

	resp, body := do(t, app, http.MethodGet, "/api/footer", "", fiber.HeaderAcceptLanguage, "en-GB,en;q=0.9")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.FooterResponse](t, body)
	assert.False(t, got.Stored)
	assert.Equal(t, i18n.English, got.Language)
	assert.Equal(t, i18n.T(i18n.English, "footer.companyDescription"), got.Content.CompanyDescription)

	_, body = do(t, app, http.MethodGet, "/api/footer?lang=sv", "", fiber.HeaderAcceptLanguage, "en")
	assert.Equal(t, i18n.Swedish, decode[dto.FooterResponse](t, body).Language)
}

func TestFooter_ReplaceThenReset(t *testing.T) {
	store := &memoryFooter{}
	app := newFooterApp(store)

	resp, _ := do(t, app, http.MethodPut, "/api/admin/footer",
		`{"companyName":"Acme","features":[{"id":1,"title":"Chat","url":"/chat"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, store.stored)
	assert.Equal(t, "Acme", store.stored.Content.CompanyName)
	assert.NotNil(t, store.stored.Content.Legal)

	_, body := do(t, app, http.MethodGet, "/api/footer", "")
	got := decode[dto.FooterResponse](t, body)
	assert.True(t, got.Stored)
	assert.Equal(t, "Acme", got.Content.CompanyName)

	resp, _ = do(t, app, http.MethodDelete, "/api/admin/footer", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, store.stored)
}

func TestFooter_ItemLifecycle(t *testing.T) {
	store := &memoryFooter{}
	app := newFooterApp(store)

	resp, body := do(t, app, http.MethodPost, "/api/admin/footer/items", `{"section":"legal"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	legal := decode[dto.FooterResponse](t, body).Content.Legal
	require.NotEmpty(t, legal)
	added := legal[len(legal)-1]
	assert.Equal(t, "New Item", added.Title)

	itemPath := "/api/admin/footer/items/legal/" + strconv.FormatInt(added.ID, 10)
	resp, _ = do(t, app, http.MethodPatch, itemPath, `{"title":"Cookies","url":"/cookies"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	changed := store.stored.Content.Legal[len(store.stored.Content.Legal)-1]
	assert.Equal(t, "Cookies", changed.Title)
	assert.Equal(t, "/cookies", changed.URL)

	resp, _ = do(t, app, http.MethodDelete, itemPath, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, store.stored.Content.Legal, len(legal)-1)
}

func TestFooter_BadItemRequests(t *testing.T) {
	app := newFooterApp(&memoryFooter{})

	resp, _ := do(t, app, http.MethodPost, "/api/admin/footer/items", `{"section":"nowhere"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodDelete, "/api/admin/footer/items/legal/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
