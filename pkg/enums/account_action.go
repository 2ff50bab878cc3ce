package enums

import "fmt"

// AccountAction enumerates the lifecycle actions an admin can request on a user.
type AccountAction string

const (
	AccountActionResetPassword    AccountAction = "reset-password"
	AccountActionDeactivate       AccountAction = "deactivate"
	AccountActionBlacklist        AccountAction = "blacklist"
	AccountActionFlag             AccountAction = "flag"
	AccountActionViewTransactions AccountAction = "view-transactions"
	AccountActionViewRevenue      AccountAction = "view-revenue"
	AccountActionMessage          AccountAction = "message"
)

var validAccountActions = []AccountAction{
	AccountActionResetPassword,
	AccountActionDeactivate,
	AccountActionBlacklist,
	AccountActionFlag,
	AccountActionViewTransactions,
	AccountActionViewRevenue,
	AccountActionMessage,
}

// String implements fmt.Stringer.
func (a AccountAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AccountAction.
func (a AccountAction) IsValid() bool {
	for _, candidate := range validAccountActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAccountAction converts raw input into an AccountAction.
func ParseAccountAction(value string) (AccountAction, error) {
	for _, candidate := range validAccountActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid account action %q", value)
}

// AccountActionOutcome is the recorded result of an account action.
type AccountActionOutcome string

const (
	AccountActionOutcomeAcknowledged AccountActionOutcome = "acknowledged"
)
