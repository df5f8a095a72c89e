package thinking

import "strings"

// Procedure sentinels: the conversation matches no known procedure, or a
// procedure is irrelevant to the request.
const (
	SentinelUndetermined  = "không xác định"
	SentinelNotApplicable = "không liên quan"
)

// procedureCategories is the closed set of support procedures the dialogue
// model is trained on.
var procedureCategories = []string{
	"Hỗ trợ đăng nhập",
	"Quên/Đổi mật khẩu",
	"Kiểm tra đơn hàng",
	"Kiểm tra MQH Outlet-NPP/SubD",
	"Hướng dẫn xử lý đơn hàng SEM",
}

// ValidProcedure reports whether the Procedure field names one of the known
// procedure categories or one of the two sentinels, as a substring.
func ValidProcedure(content string) bool {
	content = strings.TrimSpace(content)
	for _, category := range procedureCategories {
		if strings.Contains(content, category) {
			return true
		}
	}
	return ProcedureIsSentinel(content)
}

// ProcedureIsSentinel reports whether the Procedure field resolves to the
// undetermined or not-applicable sentinel.
func ProcedureIsSentinel(content string) bool {
	return strings.Contains(content, SentinelUndetermined) ||
		strings.Contains(content, SentinelNotApplicable)
}

// StepPolicyViolation reports the business rule breach where the Procedure
// field resolves to a sentinel but the Step field still carries content.
// The violation is reported, never silently corrected.
func StepPolicyViolation(procedure, step string) bool {
	return ProcedureIsSentinel(procedure) && strings.TrimSpace(step) != ""
}
