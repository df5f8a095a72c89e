package thinking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStepFormat(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		valid   bool
	}{
		{"empty", "", true},
		{"single step", "2 - Xác thực", true},
		{"step list", "1, 2, 3 - Thu thập thông tin", true},
		{"step list tight", "1,2,3 - Thu thập", true},
		{"exception", "ngoại lệ - KH không hợp tác", true},
		{"exception capitalized", "Ngoại lệ - hệ thống lỗi", true},
		{"exception in description", "3 - Xử lý (gặp ngoại lệ hệ thống)", true},
		{"exception mixed with steps", "ngoại lệ - 1, 2 thất bại", false},
		{"no description", "1, 2 -", false},
		{"no separator", "2 Xác thực", false},
		{"prose", "làm theo hướng dẫn", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidStepFormat(tc.content))
		})
	}
}

func TestParseStepReference(t *testing.T) {
	ref := ParseStepReference("3, 1, 2 - làm ba bước")
	require.Equal(t, StepNumbered, ref.Kind)
	assert.Equal(t, []int{1, 2, 3}, ref.Steps)
	assert.Equal(t, "làm ba bước", ref.Description)

	exc := ParseStepReference("Ngoại lệ - hệ thống lỗi")
	require.Equal(t, StepException, exc.Kind)
	assert.Equal(t, "hệ thống lỗi", exc.Description)

	assert.Equal(t, StepEmpty, ParseStepReference("").Kind)
	assert.Equal(t, StepEmpty, ParseStepReference("không rõ").Kind)
}

func TestStepsMatch(t *testing.T) {
	a := ParseStepReference("1, 3 - mô tả a")
	b := ParseStepReference("3, 1 - mô tả hoàn toàn khác")
	c := ParseStepReference("2 - mô tả c")

	assert.True(t, StepsMatch(a, b))
	assert.False(t, StepsMatch(a, c))

	// symmetric
	assert.Equal(t, StepsMatch(a, b), StepsMatch(b, a))
	assert.Equal(t, StepsMatch(a, c), StepsMatch(c, a))

	// exception and empty compare by tag only
	assert.True(t, StepsMatch(ParseStepReference("ngoại lệ - x"), ParseStepReference("ngoại lệ - y")))
	assert.True(t, StepsMatch(ParseStepReference(""), ParseStepReference("")))
	assert.False(t, StepsMatch(ParseStepReference(""), a))
}

func TestValidProcedure(t *testing.T) {
	assert.True(t, ValidProcedure("Quên/Đổi mật khẩu"))
	assert.True(t, ValidProcedure("quy trình Kiểm tra đơn hàng (SEM)"))
	assert.True(t, ValidProcedure("không xác định"))
	assert.True(t, ValidProcedure("không liên quan"))
	assert.False(t, ValidProcedure("đổi địa chỉ giao hàng"))
	assert.False(t, ValidProcedure(""))
}

func TestStepPolicyViolation(t *testing.T) {
	assert.True(t, StepPolicyViolation("không xác định", "1 - vẫn có bước"))
	assert.False(t, StepPolicyViolation("không xác định", ""))
	assert.False(t, StepPolicyViolation("Kiểm tra đơn hàng", "1 - hợp lệ"))
}
