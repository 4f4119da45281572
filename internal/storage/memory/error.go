package memory

import "errors"

var ErrNilRecord = errors.New("nil booking record")
