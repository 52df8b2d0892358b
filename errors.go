package rebalance

import "fmt"

// The engine distinguishes four kinds of failures. All of them abort the
// current Process call; there is no partial-success mode.

// InvalidConfigurationError reports a structural violation detected at
// construction time, such as an out-of-range allocation or a negative price.
type InvalidConfigurationError struct {
	msg string
}

func (e *InvalidConfigurationError) Error() string { return e.msg }

func invalidConfigf(format string, args ...any) error {
	return &InvalidConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// BadConfigurationError reports a referential integrity failure discovered
// during processing, such as a holding that is missing from the share
// catalog. The message names the offending identifiers.
type BadConfigurationError struct {
	msg string
}

func (e *BadConfigurationError) Error() string { return e.msg }

func badConfigf(format string, args ...any) error {
	return &BadConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// NotEnoughFundsError reports a rebalance instruction whose total cost
// exceeds the cash available in the account.
type NotEnoughFundsError struct {
	Account   string
	Cost      Money
	Available Money
}

func (e *NotEnoughFundsError) Error() string {
	return fmt.Sprintf("the cost of %s exceeds the available cash of %s in the %q account",
		e.Cost, e.Available, e.Account)
}

// UpstreamPriceError reports a failure of the price resolution collaborator.
// The underlying error is propagated unchanged.
type UpstreamPriceError struct {
	Err error
}

func (e *UpstreamPriceError) Error() string { return "price lookup failed: " + e.Err.Error() }
func (e *UpstreamPriceError) Unwrap() error { return e.Err }
