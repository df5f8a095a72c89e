package thinking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBlock = `Tình huống: KH quên mật khẩu
Quy trình: Quên/Đổi mật khẩu
Bước: 2 - Xác thực
Thông tin có: SĐT
Thông tin cần thêm: OutletID
Hành động: Gọi tool`

func TestExtractAllFields(t *testing.T) {
	record := Extract(sampleBlock)

	require.Equal(t, 6, record.PresentCount())
	assert.False(t, record.OrderViolation)

	assert.Equal(t, "KH quên mật khẩu", record.Value(FieldSituation).Text)
	assert.Equal(t, "Quên/Đổi mật khẩu", record.Value(FieldProcedure).Text)
	assert.Equal(t, "2 - Xác thực", record.Value(FieldStep).Text)
	assert.Equal(t, "SĐT", record.Value(FieldKnownInfo).Text)
	assert.Equal(t, "OutletID", record.Value(FieldMissingInfo).Text)
	assert.Equal(t, "Gọi tool", record.Value(FieldAction).Text)
}

func TestExtractKnownInfoQualifiedLabel(t *testing.T) {
	record := Extract("Thông tin có (từ hội thoại): SĐT 0901234567\nHành động: Trả lời")

	v := record.Value(FieldKnownInfo)
	require.True(t, v.Present)
	assert.Equal(t, "SĐT 0901234567", v.Text)
	assert.True(t, record.Value(FieldAction).Present)
}

func TestExtractPresentButEmpty(t *testing.T) {
	record := Extract("Quy trình: không xác định\nBước:\nHành động: Hỏi thêm")

	step := record.Value(FieldStep)
	require.True(t, step.Present)
	assert.Equal(t, "", step.Text)

	// no anchor at all means absent
	assert.False(t, record.Value(FieldSituation).Present)
}

func TestExtractMultilineContent(t *testing.T) {
	record := Extract("Tình huống: dòng một\ndòng hai\nQuy trình: Hỗ trợ đăng nhập")

	assert.Equal(t, "dòng một\ndòng hai", record.Value(FieldSituation).Text)
	assert.Equal(t, "Hỗ trợ đăng nhập", record.Value(FieldProcedure).Text)
}

func TestExtractOrderViolation(t *testing.T) {
	record := Extract("Quy trình: Kiểm tra đơn hàng\nTình huống: KH hỏi đơn\nHành động: Tra cứu")

	assert.True(t, record.OrderViolation)
	assert.Equal(t, 3, record.PresentCount())
	// matching itself stays order-independent
	assert.Equal(t, "KH hỏi đơn", record.Value(FieldSituation).Text)
}

func TestFieldLabels(t *testing.T) {
	assert.Equal(t, "Bước", FieldStep.Label())
	assert.Equal(t, "Step", FieldStep.String())
	assert.Len(t, Fields(), 6)
}
