package mongodb

import "errors"

// ErrNotFound marks updates that matched no document. Reads return
// (nil, nil) for missing documents instead, mirroring the store's
// "document may simply not exist" contract.
var ErrNotFound = errors.New("document not found")
