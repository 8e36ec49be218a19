//go:build !windows

package wallet

// hideFile is a no-op outside Windows; file modes already keep wallets private.
func hideFile(string) {}
