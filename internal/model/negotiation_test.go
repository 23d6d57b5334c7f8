package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryValueAndScan(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	original := History{
		{At: at, Description: "negotiation registered", UserName: "ana@example.com"},
		{At: at.Add(time.Hour), Description: "status changed from PROPOSAL to SIGNED", UserName: "ana@example.com"},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var decoded History
	require.NoError(t, decoded.Scan(value))

	require.Len(t, decoded, 2)
	assert.Equal(t, original[0].Description, decoded[0].Description)
	assert.Equal(t, original[1].UserName, decoded[1].UserName)
	assert.True(t, original[0].At.Equal(decoded[0].At))
}

func TestHistoryNilValueIsEmptyArray(t *testing.T) {
	var h History
	value, err := h.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestHistoryScanHandlesBytesAndNil(t *testing.T) {
	var h History
	require.NoError(t, h.Scan([]byte(`[{"description":"visit scheduled"}]`)))
	require.Len(t, h, 1)
	assert.Equal(t, "visit scheduled", h[0].Description)

	require.NoError(t, h.Scan(nil))
	assert.Empty(t, h)
}

func TestHistoryScanRejectsUnknownType(t *testing.T) {
	var h History
	assert.Error(t, h.Scan(42))
}

func TestValidNegotiationStatus(t *testing.T) {
	for _, s := range []string{
		NegotiationStatusProspecting, NegotiationStatusVisit, NegotiationStatusProposal,
		NegotiationStatusDocumentReview, NegotiationStatusContractReview,
		NegotiationStatusSigned, NegotiationStatusClosed,
		NegotiationStatusLost, NegotiationStatusCanceled,
	} {
		assert.True(t, ValidNegotiationStatus(s), s)
	}
	assert.False(t, ValidNegotiationStatus("HAGGLING"))
	assert.False(t, ValidNegotiationStatus(""))
}
