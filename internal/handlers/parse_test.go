// Package handlers provides the HTTP request handlers of the viewer API.
package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExport = `<?xml version="1.0" encoding="UTF-8"?>
<ADOXML version="3.1">
  <MODELS>
    <MODEL id="mod.1" name="Logistics" applib="FEM Toolkit" modeltype="FEM" version="1.0" libtype="bp">
      <INSTANCE id="inst.1" class="Process" name="Ship Goods">
        <ATTRIBUTE name="Denomination" type="STRING">Ship goods to customer</ATTRIBUTE>
        <INTERREF name="Referenced Asset">
          <IREF type="objectreference" tmodelname="Assets" tobjname="Truck"/>
        </INTERREF>
      </INSTANCE>
      <INSTANCE id="inst.2" class="Asset" name="Truck">
        <ATTRIBUTE name="Denomination" type="STRING">Delivery truck</ATTRIBUTE>
      </INSTANCE>
      <CONNECTOR id="con.1" class="Flow">
        <FROM instance="inst.1"/>
        <TO instance="inst.2"/>
      </CONNECTOR>
    </MODEL>
  </MODELS>
</ADOXML>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseHandler(t *testing.T) {
	handler := ParseHandler(testLogger(), 1<<20)

	t.Run("returns 200 OK for a valid export", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(testExport))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("returns the parsed models", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(testExport))
		w := httptest.NewRecorder()

		handler(w, req)

		var resp ParseResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Models, 1)
		assert.Equal(t, "mod.1", resp.Models[0].ID)
		assert.Len(t, resp.Models[0].Instances, 2)
		assert.Len(t, resp.Models[0].Connectors, 1)
	})

	t.Run("returns 400 for a structurally invalid export", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`<ADOXML/>`))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid export")
	})

	t.Run("returns 400 for an empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(""))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pretty-prints on request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse?pretty=true", strings.NewReader(testExport))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "\n  ")
	})
}
