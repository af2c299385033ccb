package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/logshield/pkg/config"
	"github.com/codeready-toolchain/logshield/pkg/logging"
	"github.com/codeready-toolchain/logshield/pkg/masking"
	"github.com/codeready-toolchain/logshield/pkg/sink"
)

func TestMaskHandler(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMasked string
		wantKinds  []string
	}{
		{
			name:       "email and card",
			body:       `{"message":"User email: john.doe@example.com and credit card: 1234-5678-9876-5432"}`,
			wantStatus: http.StatusOK,
			wantMasked: "User email: ***@example.com and credit card: **** **** **** 5432",
			wantKinds:  []string{"email", "credit_card"},
		},
		{
			name:       "clean message",
			body:       `{"message":"nothing to hide"}`,
			wantStatus: http.StatusOK,
			wantMasked: "nothing to hide",
			wantKinds:  []string{},
		},
		{
			name:       "empty message",
			body:       `{"message":""}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing message",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"message":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s.Handler(), http.MethodPost, "/api/v1/mask", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				errResp := decodeBody[ErrorResponse](t, rec)
				assert.NotEmpty(t, errResp.Error)
				assert.NotEmpty(t, errResp.RequestID)
				return
			}

			resp := decodeBody[MaskResponse](t, rec)
			assert.Equal(t, tt.wantMasked, resp.Masked)
			kinds := make([]string, len(resp.Redactions))
			for i, r := range resp.Redactions {
				kinds[i] = r.Kind
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestMaskHandler_RedactionOffsets(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s.Handler(), http.MethodPost, "/api/v1/mask", `{"message":"a@example.com wrote from Via Roma, Milano"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[MaskResponse](t, rec)
	require.Len(t, resp.Redactions, 2)
	assert.Equal(t, Redaction{Kind: "email", Start: 0, Length: 13}, resp.Redactions[0])
	assert.Equal(t, "street_address", resp.Redactions[1].Kind)
	assert.Greater(t, resp.Redactions[1].Start, resp.Redactions[0].Start)
	assert.NotContains(t, rec.Body.String(), "Roma")
}

func TestDetectorsHandler(t *testing.T) {
	catalog, err := masking.BuildCatalog(&config.MaskingConfig{
		DisabledDetectors: []string{"street_address"},
		CustomPatterns: []config.MaskingPattern{
			{Name: "iban", Pattern: `IT\d{2}[A-Z]\d{22}`, Replacement: "[MASKED_IBAN]", Description: "Italian IBAN"},
		},
	})
	require.NoError(t, err)
	svc := masking.NewService(catalog)
	s := NewServer(config.DefaultServerConfig(), svc, logging.NewProvider(sink.NewSlogProvider(nil), svc))

	rec := doRequest(t, s.Handler(), http.MethodGet, "/api/v1/detectors", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[DetectorsResponse](t, rec)
	require.Len(t, resp.Detectors, 5)
	wantKinds := []string{"email", "credit_card", "national_id", "phone_number", "custom:iban"}
	for i, d := range resp.Detectors {
		assert.Equal(t, wantKinds[i], d.Kind)
		assert.Equal(t, i, d.Priority)
	}
	assert.False(t, resp.Detectors[0].Custom)
	assert.True(t, resp.Detectors[4].Custom)
	assert.Equal(t, "Italian IBAN", resp.Detectors[4].Description)
}
