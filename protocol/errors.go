package protocol

import "errors"

// ErrUnknownType is returned when a type tag (on decode) or a Label (on
// encode) is not present in the active vendor's registry. Per the error
// taxonomy, an unknown type tag must not abort the session: callers log and
// drop.
var ErrUnknownType = errors.New("protocol: unknown type tag")

// ErrSchemaError wraps a protobuf parse failure for a recognised type tag.
// Per the error taxonomy, callers log with the type tag and drop without
// failing the session.
var ErrSchemaError = errors.New("protocol: schema error")
