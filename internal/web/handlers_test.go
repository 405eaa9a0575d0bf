package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/db"
	"github.com/fitform/fitform/internal/ops"
	"github.com/fitform/fitform/internal/synth"
	"github.com/fitform/fitform/internal/wardrobe"
)

// testServer builds the full HTTP handler backed by a seeded in-memory
// catalog and a fake synthesis client.
func testServer(t *testing.T) (http.Handler, *synth.Fake) {
	t.Helper()

	database, err := db.Init(fmt.Sprintf("file:web_%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	catalog := wardrobe.NewCatalog(database)
	if err := catalog.Seed(wardrobe.DefaultItems()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	fake := synth.NewFake()
	srv := NewServer(catalog, fake, config.DefaultConfig(), zerolog.Nop(), "test", "127.0.0.1", 0)
	return srv.Handler, fake
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// newSession creates a session and finalizes a model for it.
func newSession(t *testing.T, handler http.Handler) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, rec, &created)
	if created.SessionID == "" {
		t.Fatal("create session returned no id")
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/"+created.SessionID+"/model",
		map[string]string{"user_photo": "upload.jpg"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create model: status %d, body %s", rec.Code, rec.Body.String())
	}

	return created.SessionID
}

func TestHandlePing(t *testing.T) {
	handler, _ := testServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/ping", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		OK bool `json:"ok"`
	}
	decodeBody(t, rec, &body)
	if !body.OK {
		t.Error("ok = false")
	}
}

func TestHandleGuide(t *testing.T) {
	handler, _ := testServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "fitform studio") {
		t.Error("guide page missing title")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing security headers")
	}
}

func TestSessionLifecycle(t *testing.T) {
	handler, _ := testServer(t)
	id := newSession(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/sessions/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get state: status %d", rec.Code)
	}
	var state ops.StateOutput
	decodeBody(t, rec, &state)
	if !state.Active {
		t.Error("session should be active after model creation")
	}
	if state.PoseVocabulary != 20 {
		t.Errorf("PoseVocabulary = %d, want 20", state.PoseVocabulary)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/sessions/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/sessions/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", rec.Code)
	}
}

func TestUnknownSessionErrorEnvelope(t *testing.T) {
	handler, _ := testServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/nope/undo", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Status  int    `json:"status"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	if body.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", body.Error.Code)
	}
	if body.Error.Status != 404 {
		t.Errorf("status field = %d, want 404", body.Error.Status)
	}
}

func TestApplyGarmentAndPoses(t *testing.T) {
	handler, fake := testServer(t)
	id := newSession(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/garments",
		map[string]string{"item_id": "classic-white-tee"})
	if rec.Code != http.StatusOK {
		t.Fatalf("apply: status %d, body %s", rec.Code, rec.Body.String())
	}
	var state ops.StateOutput
	decodeBody(t, rec, &state)
	if len(state.ActiveGarments) != 1 || state.ActiveGarments[0] != "classic-white-tee" {
		t.Errorf("ActiveGarments = %v", state.ActiveGarments)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/poses/next", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("next pose: status %d", rec.Code)
	}
	decodeBody(t, rec, &state)
	if state.PoseIndex != 1 {
		t.Errorf("PoseIndex = %d, want 1", state.PoseIndex)
	}

	calls := fake.Calls()
	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/poses/previous", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("previous pose: status %d", rec.Code)
	}
	decodeBody(t, rec, &state)
	if state.PoseIndex != 0 {
		t.Errorf("PoseIndex = %d, want 0", state.PoseIndex)
	}
	if fake.Calls() != calls {
		t.Errorf("previous pose synthesized, calls %d → %d", calls, fake.Calls())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/poses",
		map[string]int{"pose_index": 99})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out-of-range pose: status %d, want 400", rec.Code)
	}
}

func TestUndoRedoRemoveReset(t *testing.T) {
	handler, _ := testServer(t)
	id := newSession(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/garments",
		map[string]string{"item_id": "charcoal-chinos"})
	if rec.Code != http.StatusOK {
		t.Fatalf("apply: status %d", rec.Code)
	}

	var state ops.StateOutput
	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/undo", nil)
	decodeBody(t, rec, &state)
	if len(state.ActiveGarments) != 0 {
		t.Errorf("after undo ActiveGarments = %v, want none", state.ActiveGarments)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/redo", nil)
	decodeBody(t, rec, &state)
	if len(state.ActiveGarments) != 1 {
		t.Errorf("after redo ActiveGarments = %v, want one", state.ActiveGarments)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/sessions/"+id+"/garments/last", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: status %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/"+id+"/reset", nil)
	decodeBody(t, rec, &state)
	if state.Active {
		t.Error("session still active after reset")
	}
}

func TestHandleWardrobeAndPoseList(t *testing.T) {
	handler, _ := testServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/wardrobe", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("wardrobe: status %d", rec.Code)
	}
	var wb struct {
		Items []wardrobe.Item `json:"items"`
	}
	decodeBody(t, rec, &wb)
	if len(wb.Items) != len(wardrobe.DefaultItems()) {
		t.Errorf("items = %d, want %d", len(wb.Items), len(wardrobe.DefaultItems()))
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/poses", nil)
	var poses struct {
		Poses []string `json:"poses"`
	}
	decodeBody(t, rec, &poses)
	if len(poses.Poses) != 20 {
		t.Errorf("poses = %d, want 20", len(poses.Poses))
	}
}

func TestMultipartUpload(t *testing.T) {
	handler, _ := testServer(t)
	id := newSession(t, handler)

	var pic bytes.Buffer
	encodeTestPNG(t, &pic)

	body, contentType := multipartForm(t, "garment", "tee.png", pic.Bytes(), map[string]string{
		"name":     "Uploaded Tee",
		"category": "shirt",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/garments", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var state ops.StateOutput
	decodeBody(t, rec, &state)
	if len(state.Layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(state.Layers))
	}
	if got := state.Layers[1].Garment; got == nil || !got.Custom {
		t.Errorf("top garment = %+v, want a custom upload", got)
	}
}

func TestMultipartUpload_RejectsNonImage(t *testing.T) {
	handler, _ := testServer(t)
	id := newSession(t, handler)

	body, contentType := multipartForm(t, "garment", "notes.txt", []byte("plain text, no pixels here"), map[string]string{
		"name":     "Not A Garment",
		"category": "shirt",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/garments", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var errBody struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, rec, &errBody)
	if errBody.Error.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", errBody.Error.Code)
	}
}

func encodeTestPNG(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
}

func multipartForm(t *testing.T, field, filename string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %q: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}
