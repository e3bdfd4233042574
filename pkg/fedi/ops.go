package fedi

// Cache entry names for the operations the reporter memoizes. The file a
// result lands in is derived from the name, so renaming one orphans the
// old entry.
const (
	OpInstanceSummary = "instance_summary"
	OpMyInfo          = "my_info"
	OpFollowers       = "followers"
	OpFollowing       = "following"
	OpSuspended       = "my_suspended_acquaintances"
	OpTableRows       = "suspended_table_rows"
)

// Ops lists every cache entry the reporter writes, in pipeline order.
func Ops() []string {
	return []string{
		OpInstanceSummary,
		OpMyInfo,
		OpFollowers,
		OpFollowing,
		OpSuspended,
		OpTableRows,
	}
}
