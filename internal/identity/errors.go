package identity

import "errors"

// ErrPoolExhausted is returned by Allocate when all identifiers in
// [1, MaxID] are in use.
var ErrPoolExhausted = errors.New("identity: maximum number of vpcs instances reached")
