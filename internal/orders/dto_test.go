package orders

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemInputLegacyAliases(t *testing.T) {
	productID := uuid.New()

	var item ItemInput
	payload := `{"type":"rental","acId":"` + productID.String() + `","duration":6,"price":1200}`
	require.NoError(t, json.Unmarshal([]byte(payload), &item))
	require.NotNil(t, item.ProductID)
	assert.Equal(t, productID, *item.ProductID)

	var canonical ItemInput
	payload = `{"type":"rental","product_id":"` + productID.String() + `","acId":"` + uuid.NewString() + `"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &canonical))
	require.NotNil(t, canonical.ProductID)
	assert.Equal(t, productID, *canonical.ProductID, "canonical key wins over the alias")
}

func TestItemInputBookingDetailAliases(t *testing.T) {
	var item ItemInput
	payload := `{"type":"service","service_id":"` + uuid.NewString() + `","booking_details":{"date":"2025-09-01","notes":"gate code 4411","address":"12 MG Road"}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &item))
	require.NotNil(t, item.BookingDetails)
	assert.Equal(t, "2025-09-01", item.BookingDetails.PreferredDate)
	assert.Equal(t, "gate code 4411", item.BookingDetails.Description)
	assert.Equal(t, "12 MG Road", item.BookingDetails.Address)
}
