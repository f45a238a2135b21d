package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	appinventory "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/pharmacy"
	"github.com/jhoicas/Farmacia-api/internal/application/search"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	pkgjwt "github.com/jhoicas/Farmacia-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes y servidor de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakeExtractor struct {
	items []entity.PriceListItem
	err   error
}

func (f *fakeExtractor) ExtractPriceList(_ context.Context, _ []byte, _ string) ([]entity.PriceListItem, error) {
	return f.items, f.err
}

type fakeReport struct{}

func (fakeReport) GenerateInventoryReport(_ context.Context, p *entity.Pharmacy, stock []entity.MedicineStock) ([]byte, error) {
	return []byte("%PDF-fake " + p.Name), nil
}

type testServer struct {
	app       *fiber.App
	store     *appinventory.Store
	extractor *fakeExtractor
}

// Farmacias sobre el ecuador: 0.009° de longitud ≈ 1.0 km.
var testSeed = []entity.Pharmacy{
	{ID: 1, Name: "Apollo Pharmacy", Address: "Connaught Place", Phone: "011-1", Lat: 0, Lon: 0.009},
	{ID: 2, Name: "Wellness Forever", Address: "Karol Bagh", Phone: "011-2", Lat: 0, Lon: 0.0135},
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	pharmRepo := memory.NewPharmacyRepository()
	dir := pharmacy.NewDirectory(testSeed, pharmRepo, log)
	require.NoError(t, dir.Load(ctx))
	registrar := pharmacy.NewRegistrar(dir, pharmRepo, log)

	store := appinventory.NewStore(memory.NewInventoryRepository(), log)
	require.NoError(t, store.Load(ctx))

	extractor := &fakeExtractor{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Search:    search.NewEngine(dir, store, nil, log),
		Directory: dir,
		Registrar: registrar,
		Store:     store,
		ScanUC:    appinventory.NewScanUseCase(extractor, store, log),
		ReportUC:  appinventory.NewReportUseCase(dir, store, fakeReport{}),
		JWT:       config.JWTConfig{Secret: testJWTSecret, Expiration: testExpMin, Issuer: testIssuer},
	})
	return &testServer{app: app, store: store, extractor: extractor}
}

func (s *testServer) do(t *testing.T, method, target, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) doJSON(t *testing.T, method, target, token string, payload any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return s.do(t, method, target, token, bytes.NewReader(raw), fiber.MIMEApplicationJSON)
}

// session registra (o recupera) la farmacia y devuelve el header Authorization.
func (s *testServer) session(t *testing.T, name string, lat, lon float64) (string, entity.Pharmacy) {
	t.Helper()
	resp := s.doJSON(t, http.MethodPost, "/api/owners/session", "", map[string]any{
		"name": name, "phone": "9810000000", "address": "Lajpat Nagar", "lat": lat, "lon": lon,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.OwnerSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return "Bearer " + out.Token, out.Pharmacy
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_Validacion_Retorna400(t *testing.T) {
	s := newTestServer(t)
	cases := []string{
		"/api/search?lat=0&lon=0",
		"/api/search?medicine=Dolo&lat=abc&lon=0",
		"/api/search?medicine=Dolo&lat=0",
		"/api/search?medicine=Dolo&lat=91&lon=0",
		"/api/search?medicine=Dolo&lat=0&lon=-181",
	}
	for _, target := range cases {
		resp := s.do(t, http.MethodGet, target, "", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		resp.Body.Close()
	}
}

func TestSearch_EnStockOrdenadoConMejorOpcion(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, s.store.Upsert(ctx, 1, []entity.PriceListItem{{MedicineName: "Dolo 650", Price: decimal.NewFromInt(40)}}))
	require.NoError(t, s.store.Upsert(ctx, 2, []entity.PriceListItem{{MedicineName: "DOLO 650", Price: decimal.NewFromInt(30)}}))

	resp := s.do(t, http.MethodGet, "/api/search?medicine=dolo%20650&lat=0&lon=0", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.SearchResponse](t, resp)

	require.Equal(t, 2, out.Count)
	assert.Equal(t, int64(1), out.Results[0].ID)
	assert.Equal(t, 1.0, out.Results[0].Distance)
	assert.Equal(t, entity.PriceUnitStrip, out.Results[0].PriceUnit)
	assert.Equal(t, int64(2), out.Results[1].ID)
	// 30 < 40 y 1.5 km < 1.0 + 2 → gana la segunda.
	assert.False(t, out.Results[0].IsBestOption)
	assert.True(t, out.Results[1].IsBestOption)
}

func TestSearch_MedicamentoDesconocido_SinResultados(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/search?medicine=Unobtainium&lat=0&lon=0", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.SearchResponse](t, resp)
	assert.Equal(t, 0, out.Count)
	assert.Empty(t, out.Results)
}

func TestSearch_LimiteExcedido_Retorna429(t *testing.T) {
	limit, err := apphttp.RateLimit("1-M")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/api/search", limit, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	first, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/search", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, "1", first.Header.Get("X-RateLimit-Limit"))

	second, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/search", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}

func TestRateLimit_FormatoInvalido(t *testing.T) {
	_, err := apphttp.RateLimit("muchas")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Directorio y sesión de dueños
// ──────────────────────────────────────────────────────────────────────────────

func TestPharmacies_ListadoIncluyeRegistradas(t *testing.T) {
	s := newTestServer(t)
	_, p := s.session(t, "Sharma Medicos", 28.6, 77.2)
	assert.Equal(t, int64(1001), p.ID)

	resp := s.do(t, http.MethodGet, "/api/pharmacies", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.PharmacyListResponse](t, resp)

	require.Equal(t, 3, out.Total)
	assert.Equal(t, "Apollo Pharmacy", out.Pharmacies[0].Name)
	assert.Equal(t, "Sharma Medicos", out.Pharmacies[2].Name)
}

func TestSession_NombreExistenteSinDistinguirMayusculas(t *testing.T) {
	s := newTestServer(t)
	token, p := s.session(t, "apollo PHARMACY", 10, 10)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Apollo Pharmacy", p.Name)
	assert.Equal(t, 0.009, p.Lon)

	claims, err := pkgjwt.Parse(testJWTSecret, strings.TrimPrefix(token, "Bearer "))
	require.NoError(t, err)
	assert.Equal(t, "Apollo Pharmacy", claims.OwnerName, "el token lleva el nombre guardado")
}

type failingPharmacyRepo struct{}

func (failingPharmacyRepo) LoadAll(context.Context) ([]entity.Pharmacy, error) { return nil, nil }
func (failingPharmacyRepo) ReplaceAll(context.Context, []entity.Pharmacy) error {
	return errors.New("disco lleno")
}

func TestSession_FallaDeEscrituraEmiteTokenConAviso(t *testing.T) {
	log := zerolog.Nop()
	dir := pharmacy.NewDirectory(testSeed, failingPharmacyRepo{}, log)
	require.NoError(t, dir.Load(context.Background()))
	store := appinventory.NewStore(memory.NewInventoryRepository(), log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Search:    search.NewEngine(dir, store, nil, log),
		Directory: dir,
		Registrar: pharmacy.NewRegistrar(dir, failingPharmacyRepo{}, log),
		Store:     store,
		ScanUC:    appinventory.NewScanUseCase(&fakeExtractor{}, store, log),
		ReportUC:  appinventory.NewReportUseCase(dir, store, fakeReport{}),
		JWT:       config.JWTConfig{Secret: testJWTSecret, Expiration: testExpMin, Issuer: testIssuer},
	})
	s := &testServer{app: app, store: store}

	resp := s.doJSON(t, http.MethodPost, "/api/owners/session", "", map[string]any{
		"name": "Farmacia Luna", "lat": 0, "lon": 0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.OwnerSessionResponse](t, resp)
	assert.Greater(t, out.Pharmacy.ID, pharmacy.IDBaseline)
	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.Warning)

	// La farmacia en memoria sirve para las rutas de dueño.
	resp = s.do(t, http.MethodGet, "/api/owner/inventory", "Bearer "+out.Token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, out.Pharmacy.ID, decode[dto.InventoryListResponse](t, resp).PharmacyID)
}

func TestSession_Validacion_Retorna400(t *testing.T) {
	s := newTestServer(t)

	resp := s.doJSON(t, http.MethodPost, "/api/owners/session", "", map[string]any{"name": "Sin Ubicación"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.doJSON(t, http.MethodPost, "/api/owners/session", "", map[string]any{"name": " ", "lat": 1, "lon": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/owners/session", "", strings.NewReader("{"), fiber.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario del dueño
// ──────────────────────────────────────────────────────────────────────────────

func TestOwnerInventory_SinToken_Retorna401(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/owner/inventory", "", nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOwnerInventory_CicloCompleto(t *testing.T) {
	s := newTestServer(t)
	token, p := s.session(t, "Sharma Medicos", 0, 0.0045)

	// Carga
	resp := s.doJSON(t, http.MethodPut, "/api/owner/inventory", token, map[string]any{
		"items": []map[string]any{
			{"medicineName": "Paracetamol 500mg", "price": 25},
			{"medicineName": "Azithromycin 250mg", "price": 95.5, "stock": "Low Stock"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Listado
	resp = s.do(t, http.MethodGet, "/api/owner/inventory", token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.InventoryListResponse](t, resp)
	assert.Equal(t, p.ID, list.PharmacyID)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "azithromycin 250mg", list.Items[0].MedicineKey)
	assert.Equal(t, entity.LowStock, list.Items[0].Stock)
	assert.Equal(t, entity.InStock, list.Items[1].Stock)

	// La nueva farmacia aparece en la búsqueda (0.5 km)
	resp = s.do(t, http.MethodGet, "/api/search?medicine=PARACETAMOL%20500MG&lat=0&lon=0", "", nil, "")
	out := decode[dto.SearchResponse](t, resp)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, p.ID, out.Results[0].ID)
	assert.True(t, out.Results[0].IsBestOption)

	// Cambio de stock con nombre codificado en el path
	target := "/api/owner/inventory/" + url.PathEscape("Paracetamol 500mg")
	resp = s.doJSON(t, http.MethodPatch, target, token, map[string]string{"stock": "Out of Stock"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.UpdateStockResponse](t, resp).Updated)

	resp = s.do(t, http.MethodGet, "/api/search?medicine=paracetamol%20500mg&lat=0&lon=0", "", nil, "")
	assert.Equal(t, 0, decode[dto.SearchResponse](t, resp).Count)

	// Baja
	resp = s.do(t, http.MethodDelete, target, token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.RemoveResponse](t, resp).Removed)

	resp = s.do(t, http.MethodDelete, target, token, nil, "")
	assert.False(t, decode[dto.RemoveResponse](t, resp).Removed)
	assert.False(t, s.store.HasMedicine("Paracetamol 500mg"))
}

func TestOwnerInventory_NombreEnPathNoSeCorrompeConRequestsPosteriores(t *testing.T) {
	s := newTestServer(t)
	token, p := s.session(t, "Sharma Medicos", 0, 0)

	resp := s.doJSON(t, http.MethodPut, "/api/owner/inventory", token, map[string]any{
		"items": []map[string]any{{"medicineName": "crocin", "price": 30}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Nombre ya en minúsculas y sin escapes: el path llega tal cual al inventario.
	resp = s.doJSON(t, http.MethodPatch, "/api/owner/inventory/crocin", token, map[string]string{"stock": "Low Stock"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.UpdateStockResponse](t, resp).Updated)

	for i := 0; i < 5; i++ {
		resp = s.doJSON(t, http.MethodPatch, "/api/owner/inventory/zzzzzz", token, map[string]string{"stock": "In Stock"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	records := s.store.Lookup("crocin")
	require.Len(t, records, 1)
	assert.Equal(t, entity.LowStock, records[0].Stock)

	stock := s.store.ListByPharmacy(p.ID)
	require.Len(t, stock, 1)
	assert.Equal(t, "crocin", stock[0].MedicineKey)
	assert.False(t, s.store.HasMedicine("zzzzzz"))
}

func TestOwnerInventory_StockDeMedicamentoDesconocidoNoCambiaNada(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.session(t, "Sharma Medicos", 0, 0)

	resp := s.doJSON(t, http.MethodPatch, "/api/owner/inventory/Crocin", token, map[string]string{"stock": "Low Stock"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.UpdateStockResponse](t, resp).Updated)
	assert.False(t, s.store.HasMedicine("Crocin"))
}

func TestOwnerInventory_Validacion_Retorna400(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.session(t, "Sharma Medicos", 0, 0)

	resp := s.doJSON(t, http.MethodPatch, "/api/owner/inventory/Crocin", token, map[string]string{"stock": "Plenty"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.doJSON(t, http.MethodPut, "/api/owner/inventory", token, map[string]any{
		"items": []map[string]any{{"medicineName": "Crocin", "price": -1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.doJSON(t, http.MethodPut, "/api/owner/inventory", token, map[string]any{
		"items": []map[string]any{{"medicineName": "", "price": 10}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func scanBody(t *testing.T, image []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "lista.png")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestOwnerInventory_Scan(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.session(t, "Sharma Medicos", 0, 0)
	s.extractor.items = []entity.PriceListItem{
		{MedicineName: "Dolo 650", Price: decimal.NewFromInt(30)},
		{MedicineName: "", Price: decimal.NewFromInt(10)},
	}

	body, ct := scanBody(t, pngHeader)
	resp := s.do(t, http.MethodPost, "/api/owner/inventory/scan", token, body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ScanResponse](t, resp)

	assert.Equal(t, 1, out.Imported)
	assert.True(t, s.store.HasMedicine("dolo 650"))
}

func TestOwnerInventory_ScanSinAPIKey(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.session(t, "Sharma Medicos", 0, 0)
	s.extractor.err = errors.New("AI: GEMINI_API_KEY no configurado")

	body, ct := scanBody(t, pngHeader)
	resp := s.do(t, http.MethodPost, "/api/owner/inventory/scan", token, body, ct)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestOwnerInventory_ScanRechazaNoImagen(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.session(t, "Sharma Medicos", 0, 0)

	body, ct := scanBody(t, []byte("medicina,precio\n"))
	resp := s.do(t, http.MethodPost, "/api/owner/inventory/scan", token, body, ct)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOwnerInventory_Reporte(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.session(t, "Sharma Medicos", 0, 0)

	resp := s.do(t, http.MethodGet, "/api/owner/inventory/report.pdf", token, nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake Sharma Medicos", string(raw))
}
