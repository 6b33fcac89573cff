package sim

import "errors"

// ErrInvalidParams indicates physics parameters that cannot drive a show.
var ErrInvalidParams = errors.New("sim: invalid parameters")
