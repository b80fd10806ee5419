package codec

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traffic-fines-backend/internal/domain"
)

func TestMarshal_DeterministicAndPreservesNanoseconds(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC)
	fine := domain.Fine{
		ReferenceNumber:      "ref",
		Owner:                domain.OwnerSnapshot{TaxID: "12345678A", Name: "Ana"},
		Vehicle:              domain.VehicleSnapshot{Plate: "1234ABC", Year: 2019},
		Reason:               "Illegal parking",
		Amount:               60.5,
		CreatedAt:            created,
		ModificationDeadline: created.Add(domain.ModificationWindow),
	}

	first, err := Marshal(fine)
	require.NoError(t, err)
	second, err := Marshal(fine)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))

	var decoded domain.Fine
	require.NoError(t, Unmarshal(first, &decoded))
	assert.True(t, decoded.CreatedAt.Equal(created))
	assert.True(t, decoded.ModificationDeadline.Equal(created.Add(15*time.Minute)))
	assert.Equal(t, fine.Owner, decoded.Owner)
	assert.Equal(t, fine.Amount, decoded.Amount)
}
