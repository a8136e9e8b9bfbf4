package radix

import (
	"fmt"
)

var (
	ErrEntityNotFound      = fmt.Errorf("entity not found")
	ErrResourceNotFound    = fmt.Errorf("resource not found")
	ErrCollectionNotFound  = fmt.Errorf("collection not found")
	ErrTransactionNotFound = fmt.Errorf("transaction not found")
	ErrTokenNotFound       = fmt.Errorf("token not found")
	ErrTokenExpired        = fmt.Errorf("token expired")
	ErrInvalidPublicKey    = fmt.Errorf("invalid public key")
	ErrGatewayFailed       = fmt.Errorf("gateway request failed")
)

var AllErrors = []error{
	ErrEntityNotFound,
	ErrResourceNotFound,
	ErrCollectionNotFound,
	ErrTransactionNotFound,
	ErrTokenNotFound,
	ErrTokenExpired,
	ErrInvalidPublicKey,
	ErrGatewayFailed,
}
