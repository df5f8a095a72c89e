package mocktools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestLookupStoreInfoDeterministic(t *testing.T) {
	sim := NewSimulator(WithClock(fixedClock()))

	first := sim.LookupStoreInfo("63235514", "", "")
	second := sim.LookupStoreInfo("63235514", "", "")
	assert.Equal(t, first, second)

	assert.Equal(t, "63235514", first.StoreCode)
	assert.Contains(t, storeNames, first.StoreName)
	assert.Len(t, first.RegisteredPhone, 10)
	assert.Equal(t, byte('0'), first.RegisteredPhone[0])
	assert.Contains(t, []string{"active", "đóng", "inactive"}, first.Status)
}

func TestLookupStoreInfoGeneratesStoreCode(t *testing.T) {
	sim := NewSimulator(WithClock(fixedClock()))

	byPhone := sim.LookupStoreInfo("", "0912345678", "")
	assert.Len(t, byPhone.StoreCode, 8)
	assert.Equal(t, byPhone, sim.LookupStoreInfo("", "0912345678", ""))

	// different seeds should not collapse onto one fixture
	other := sim.LookupStoreInfo("", "0987654321", "")
	assert.NotEqual(t, byPhone.StoreCode, other.StoreCode)
}

func TestCheckRelationshipDeterministic(t *testing.T) {
	sim := NewSimulator(WithClock(fixedClock()))

	first := sim.CheckRelationship("63235514", "10375694")
	second := sim.CheckRelationship("63235514", "10375694")
	assert.Equal(t, first, second)

	if first.HasRelationship {
		assert.NotEmpty(t, first.CurrentDistributor)
		assert.NotEmpty(t, first.DistributorName)
		assert.Contains(t, []string{"Active", "Inactive"}, first.Status)
		assert.Contains(t, []string{"SA", "user", "system"}, first.ModifiedBy)
		assert.NotEmpty(t, first.LastModified)
	} else {
		assert.Equal(t, Relationship{}, first)
	}
}

func TestCheckOrderStatus(t *testing.T) {
	sim := NewSimulator(WithClock(fixedClock()))

	result := sim.CheckOrderStatus("2509076469100", "SEM")
	assert.Equal(t, result, sim.CheckOrderStatus("2509076469100", "SEM"))

	assert.Contains(t, orderStatuses, result.Status)
	assert.Len(t, result.OutletID, 8)
	assert.Equal(t, "2025-0", result.OrderDate[:6])

	if result.OrderType == "Gratis" {
		assert.NotNil(t, result.Approved)
	} else {
		assert.Equal(t, "Thường", result.OrderType)
		assert.Nil(t, result.Approved)
	}
}

func TestCreateTicket(t *testing.T) {
	sim := NewSimulator()

	ticket := sim.CreateTicket("SEM", "Đơn không về NPP", `{"outlet_id":"63235514"}`)
	assert.Regexp(t, `^TKT\d{6}$`, ticket.TicketID)
	assert.Equal(t, "Đã tạo thành công", ticket.Status)
	assert.Equal(t, ticket, sim.CreateTicket("SEM", "Đơn không về NPP", `{"outlet_id":"63235514"}`))
}

func TestForceSyncAndSendGuide(t *testing.T) {
	sim := NewSimulator()

	assert.Equal(t, sim.ForceSync("63235514", "10375694"), sim.ForceSync("63235514", "10375694"))
	assert.True(t, sim.SendGuide("xuất_gratis").Sent)
}

func TestCallDispatch(t *testing.T) {
	sim := NewSimulator(WithClock(fixedClock()))

	result, err := sim.Call("lookup_store_info", map[string]interface{}{"store_code": "63235514"})
	require.NoError(t, err)
	info, ok := result.(StoreInfo)
	require.True(t, ok)
	assert.Equal(t, sim.LookupStoreInfo("63235514", "", ""), info)

	result, err = sim.Call("check_order_status", map[string]interface{}{
		"order_code": "CO251124-01481",
		"channel":    "SEM",
	})
	require.NoError(t, err)
	assert.IsType(t, OrderStatus{}, result)

	_, err = sim.Call("reset_password", map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestCallNonStringArguments(t *testing.T) {
	sim := NewSimulator()

	first, err := sim.Call("create_ticket", map[string]interface{}{
		"team":        "SEM",
		"description": "sync issue",
		"payload":     map[string]interface{}{"outlet_id": "63235514"},
	})
	require.NoError(t, err)
	second, err := sim.Call("create_ticket", map[string]interface{}{
		"team":        "SEM",
		"description": "sync issue",
		"payload":     map[string]interface{}{"outlet_id": "63235514"},
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
